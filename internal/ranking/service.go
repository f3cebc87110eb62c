package ranking

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Junyu06/DynamicDo-Backend/internal/observability"
	"github.com/Junyu06/DynamicDo-Backend/internal/state"
)

// Service runs the ranking pipeline: fetch uncompleted reminders, project,
// build the model request, call the provider and merge the result. It never
// mutates stored state; everything it creates is request-local.
type Service struct {
	store   state.ReminderStore
	ranker  Ranker
	timeout time.Duration
	logger  *zap.Logger
}

func NewService(store state.ReminderStore, ranker Ranker, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, ranker: ranker, timeout: timeout, logger: logger}
}

// Result is the outcome of one ranking call. Fallback is true when the
// provider failed and the whole batch carries default ranks.
type Result struct {
	Reminders []RankedReminder
	Fallback  bool
}

// Rank is a pure read-transform flow: a provider failure degrades to default
// ranks, it never surfaces as an error. Errors are reserved for store access
// failures and contract violations.
func (s *Service) Rank(ctx context.Context, userID string, directive Directive) (Result, error) {
	mode := ModeFor(directive.Debug)
	observability.Default.IncCounter("rank_requests_total", map[string]string{"mode": mode.String()}, 1)

	records, err := s.store.ListUncompleted(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("list uncompleted reminders: %w", err)
	}
	if len(records) == 0 {
		return Result{Reminders: []RankedReminder{}}, nil
	}

	projected, err := Project(records)
	if err != nil {
		return Result{}, err
	}
	req, err := BuildRequest(projected, directive)
	if err != nil {
		return Result{}, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	callCtx, span := observability.StartSpan(callCtx, "ranking.model_call",
		attribute.String("ranking.mode", mode.String()),
		attribute.Int("ranking.reminders", len(records)),
	)
	started := time.Now()
	entries, err := s.ranker.Rank(callCtx, req)
	span.End()
	observability.Default.SetGauge("rank_model_latency_seconds", nil, time.Since(started).Seconds())

	if err != nil {
		s.logger.Warn("model ranking failed, using whole-batch fallback",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		observability.Default.IncCounter("rank_fallback_total", map[string]string{"scope": "batch"}, 1)
		return Result{Reminders: Fallback(records), Fallback: true}, nil
	}

	ranked, missing := Merge(records, entries, mode)
	if missing > 0 {
		s.logger.Warn("model omitted entries, per-record fallback applied",
			zap.String("user_id", userID),
			zap.Int("missing", missing),
		)
		observability.Default.IncCounter("rank_fallback_total", map[string]string{"scope": "record"}, float64(missing))
	}
	return Result{Reminders: ranked}, nil
}
