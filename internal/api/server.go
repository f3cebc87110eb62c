package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Junyu06/DynamicDo-Backend/internal/auth"
	"github.com/Junyu06/DynamicDo-Backend/internal/observability"
	"github.com/Junyu06/DynamicDo-Backend/internal/ranking"
	"github.com/Junyu06/DynamicDo-Backend/internal/state"
	"github.com/Junyu06/DynamicDo-Backend/pkg/dynamicdoapi"
)

type Server struct {
	store        state.Store
	tokens       *auth.TokenService
	rank         *ranking.Service
	logger       *zap.Logger
	metricsToken string
}

func NewServer(store state.Store, tokens *auth.TokenService, rank *ranking.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		store:        store,
		tokens:       tokens,
		rank:         rank,
		logger:       logger,
		metricsToken: strings.TrimSpace(os.Getenv("DYNAMICDO_METRICS_TOKEN")),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/users/register", s.handleRegister)
	mux.HandleFunc("/api/users/login", s.handleLogin)
	mux.HandleFunc("/api/users/me", s.handleMe)
	mux.HandleFunc("/api/reminders", s.handleReminders)
	mux.HandleFunc("/api/reminders/delete", s.handleDeleteReminder)
	mux.HandleFunc("/api/reminders/complete", s.handleCompleteReminder)
	mux.HandleFunc("/api/reminders/rank", s.handleRankReminders)
	mux.HandleFunc("/api/metrics", s.handleMetrics)
	mux.HandleFunc("/api/metrics/prometheus", s.handleMetricsPrometheus)
	return withTracing(s.withLogging(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "DynamicDo API"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dynamicdoapi.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user, err := s.store.CreateUser(r.Context(), state.UserRecord{Email: req.Email, PasswordHash: hash})
	if errors.Is(err, state.ErrDuplicateEmail) {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, dynamicdoapi.RegisterResponse{UserID: user.ID, Email: user.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req dynamicdoapi.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, ok, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok || !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dynamicdoapi.LoginResponse{Token: token, AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dynamicdoapi.MeResponse{UserID: claims.UserID, Email: claims.Email})
}

func (s *Server) handleReminders(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodPost:
		s.createReminder(w, r, claims)
	case http.MethodGet:
		s.listReminders(w, r, claims)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	var req dynamicdoapi.CreateReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Reminder title is required")
		return
	}
	priority := strings.ToLower(strings.TrimSpace(req.Priority))
	if priority == "" {
		priority = state.PriorityMedium
	}
	if !state.ValidPriority(priority) {
		writeError(w, http.StatusBadRequest, "priority must be high, medium or low")
		return
	}
	rec, err := s.store.CreateReminder(r.Context(), state.ReminderRecord{
		UserID:   claims.UserID,
		Title:    req.Title,
		Notes:    req.Notes,
		URL:      req.URL,
		Date:     req.Date,
		Time:     req.Time,
		Priority: priority,
		List:     req.List,
		Tag:      req.Tag,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	observability.Default.IncCounter("reminders_created_total", nil, 1)
	writeJSON(w, http.StatusCreated, reminderPayload(rec))
}

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request, claims auth.Claims) {
	recs, err := s.store.ListReminders(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]dynamicdoapi.Reminder, 0, len(recs))
	for _, rec := range recs {
		out = append(out, reminderPayload(rec))
	}
	writeJSON(w, http.StatusOK, dynamicdoapi.ListRemindersResponse{Reminders: out})
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req dynamicdoapi.DeleteReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "reminder id is required")
		return
	}
	err := s.store.DeleteReminder(r.Context(), claims.UserID, req.ID)
	if errors.Is(err, state.ErrNotFound) {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleCompleteReminder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req dynamicdoapi.CompleteReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "reminder id is required")
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}
	err := s.store.SetCompleted(r.Context(), claims.UserID, req.ID, completed)
	if errors.Is(err, state.ErrNotFound) {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"accepted": true})
}

func (s *Server) handleRankReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	claims, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	var req dynamicdoapi.RankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.rank.Rank(r.Context(), claims.UserID, ranking.Directive{Context: req.Context, Debug: req.Debug})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to rank reminders: "+err.Error())
		return
	}
	if len(result.Reminders) == 0 {
		writeJSON(w, http.StatusOK, dynamicdoapi.RankResponse{
			Reminders: []dynamicdoapi.RankedReminder{},
			Count:     0,
			Message:   "No uncompleted reminders to rank",
		})
		return
	}
	out := make([]dynamicdoapi.RankedReminder, 0, len(result.Reminders))
	for _, rr := range result.Reminders {
		out = append(out, dynamicdoapi.RankedReminder{
			Reminder:  reminderPayload(rr.Record),
			Rank:      rr.Rank,
			Reasoning: rr.Reasoning,
		})
	}
	writeJSON(w, http.StatusOK, dynamicdoapi.RankResponse{Reminders: out, Count: len(out)})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireOperator(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, observability.Default.Snapshot())
}

func (s *Server) handleMetricsPrometheus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if !s.requireOperator(w, r) {
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(observability.Default.RenderPrometheus()))
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, err := s.tokens.Verify(bearerToken(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return auth.Claims{}, false
	}
	return claims, true
}

// requireOperator guards the metrics endpoints with a static operator token.
// An empty DYNAMICDO_METRICS_TOKEN leaves them open, matching a development
// deployment.
func (s *Server) requireOperator(w http.ResponseWriter, r *http.Request) bool {
	if s.metricsToken == "" {
		return true
	}
	if bearerToken(r) != s.metricsToken {
		writeError(w, http.StatusUnauthorized, "missing or invalid operator token")
		return false
	}
	return true
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return ""
}

func reminderPayload(rec state.ReminderRecord) dynamicdoapi.Reminder {
	return dynamicdoapi.Reminder{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Title:     rec.Title,
		Notes:     rec.Notes,
		URL:       rec.URL,
		Date:      rec.Date,
		Time:      rec.Time,
		Priority:  rec.Priority,
		Tag:       rec.Tag,
		List:      rec.List,
		Completed: rec.Completed,
		CreatedAt: rec.CreatedAt.Format(http.TimeFormat),
		UpdatedAt: rec.UpdatedAt.Format(http.TimeFormat),
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dynamicdoapi.ErrorResponse{Error: msg})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		started := time.Now()
		next.ServeHTTP(sw, r)
		s.logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Duration("elapsed", time.Since(started)),
		)
	})
}

func withTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := observability.StartSpan(r.Context(), "http.request",
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
		)
		defer span.End()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		if traceID := span.SpanContext().TraceID().String(); span.SpanContext().HasTraceID() {
			sw.Header().Set("X-Trace-ID", traceID)
		}
		next.ServeHTTP(sw, r.WithContext(ctx))
		span.SetAttributes(attribute.Int("http.status_code", sw.status))
	})
}
