package ranker

import (
	"context"

	"github.com/Junyu06/DynamicDo-Backend/internal/ranking"
)

// LocalRanker scores reminders without any network call, from the stated
// priority alone. It is the default provider when no API key is configured
// and a deterministic stand-in for tests and development.
type LocalRanker struct{}

func NewLocalRanker() *LocalRanker { return &LocalRanker{} }

func (l *LocalRanker) Rank(_ context.Context, req ranking.Request) ([]ranking.Entry, error) {
	entries := make([]ranking.Entry, 0, len(req.Records))
	for _, rec := range req.Records {
		entry := ranking.Entry{ID: rec.ID, Priority: rec.Priority}
		switch rec.Priority {
		case "high":
			entry.Rank = 0.9
		case "low":
			entry.Rank = 0.1
		default:
			entry.Rank = 0.5
			entry.Priority = "medium"
		}
		if req.Mode == ranking.ModeDebug {
			entry.Reasoning = "scored locally from stated priority"
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
