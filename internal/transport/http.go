package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/checklist"
	"github.com/carebound/checklist-engine/internal/domain/materialize"
)

// Runner triggers materialization runs.
type Runner interface {
	RunDaily(ctx context.Context, today civil.Date) (materialize.RunResult, error)
	RunBackfill(ctx context.Context, today civil.Date) (materialize.RunResult, error)
}

// ItemReader lists checklist items for the dashboard.
type ItemReader interface {
	List(ctx context.Context, opts checklist.ListOptions) ([]checklist.Item, error)
}

// RunReader lists recent driver runs.
type RunReader interface {
	ListRecent(ctx context.Context, limit int) ([]materialize.RunRecord, error)
}

// Server wires HTTP handlers.
type Server struct {
	runner Runner
	items  ItemReader
	runs   RunReader
	loc    *time.Location
	logger *slog.Logger
}

// NewServer creates the HTTP router. loc decides what calendar date "today"
// is when a trigger arrives without an explicit date.
func NewServer(runner Runner, items ItemReader, runs RunReader, loc *time.Location, logger *slog.Logger) *chi.Mux {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}

	srv := &Server{runner: runner, items: items, runs: runs, loc: loc, logger: logger}

	r := chi.NewRouter()
	r.Post("/runs/daily", srv.handleRunDaily)
	r.Post("/runs/backfill", srv.handleRunBackfill)
	r.Get("/runs", srv.handleListRuns)
	r.Get("/items", srv.handleListItems)
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRunDaily(w http.ResponseWriter, r *http.Request) {
	s.handleRun(w, r, s.runner.RunDaily)
}

func (s *Server) handleRunBackfill(w http.ResponseWriter, r *http.Request) {
	s.handleRun(w, r, s.runner.RunBackfill)
}

// runError carries the counts known at failure time back to the trigger, so
// the dashboard can show what was attempted before the run failed.
type runError struct {
	Error   string `json:"error"`
	Created int    `json:"created_count"`
	Skipped int    `json:"skipped_count"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, run func(context.Context, civil.Date) (materialize.RunResult, error)) {
	today, err := s.referenceDate(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, runError{Error: err.Error()})
		return
	}

	res, err := run(r.Context(), today)
	if err != nil {
		s.logger.Error("run failed", "run_date", today, "error", err)
		writeJSON(w, http.StatusInternalServerError, runError{
			Error:   err.Error(),
			Created: res.Created,
			Skipped: res.Skipped,
		})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// referenceDate returns "today" for the run: the date query parameter when
// present, otherwise the current date in the configured location.
func (s *Server) referenceDate(r *http.Request) (civil.Date, error) {
	if raw := r.URL.Query().Get("date"); raw != "" {
		return civil.ParseDate(raw)
	}
	return civil.Today(s.loc), nil
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	opts := checklist.ListOptions{
		TaskID: r.URL.Query().Get("task_id"),
		Status: checklist.Status(r.URL.Query().Get("status")),
		Limit:  intParam(r, "limit"),
		Offset: intParam(r, "offset"),
	}

	items, err := s.items.List(r.Context(), opts)
	if err != nil {
		s.logger.Error("listing items failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, runError{Error: err.Error()})
		return
	}
	if items == nil {
		items = []checklist.Item{}
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.runs.ListRecent(r.Context(), intParam(r, "limit"))
	if err != nil {
		s.logger.Error("listing runs failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, runError{Error: err.Error()})
		return
	}
	if runs == nil {
		runs = []materialize.RunRecord{}
	}

	writeJSON(w, http.StatusOK, runs)
}

func intParam(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
