package materialize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/domain/checklist"
	"github.com/carebound/checklist-engine/internal/domain/definition"
)

// Service materializes recurring task definitions into dated checklist items.
//
// Both drivers take the reference date explicitly instead of reading a clock,
// so a run is deterministic for a given (definition set, today) pair and can
// be replayed in tests without time mocking. Definitions are processed in
// repository order and dates in ascending calendar order; repeated runs over
// unchanged input make identical decisions.
type Service struct {
	definitions DefinitionRepository
	items       ItemRepository
	runs        RunLogRepository
	logger      *slog.Logger
}

// NewService creates a materialization service. runs may be nil to disable
// run logging.
func NewService(definitions DefinitionRepository, items ItemRepository, runs RunLogRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		definitions: definitions,
		items:       items,
		runs:        runs,
		logger:      logger,
	}
}

// RunDaily materializes items due on the single given date for every
// definition with auto-generation enabled. It is safe to invoke repeatedly
// for the same date: already-materialized keys are counted as skipped.
func (s *Service) RunDaily(ctx context.Context, today civil.Date) (RunResult, error) {
	startedAt := time.Now()

	defs, err := s.definitions.ListAutoGenerate(ctx)
	if err != nil {
		err = fmt.Errorf("fetching definitions: %w", err)
		s.record(ctx, KindDaily, today, startedAt, RunResult{}, err)
		return RunResult{}, err
	}

	var staged []checklist.Item
	var res RunResult
	for _, def := range defs {
		if !def.AutoGenerateChecklist {
			continue
		}
		if err := definition.ValidateForGeneration(def); err != nil {
			s.logger.Warn("skipping malformed definition",
				"definition_id", def.ID, "task_name", def.TaskName, "error", err)
			continue
		}
		if !definition.IsDue(def, today) {
			continue
		}

		exists, err := s.items.Exists(ctx, def.ID, today)
		if err != nil {
			s.logger.Warn("existence check failed, skipping date",
				"definition_id", def.ID, "due_date", today, "error", err)
			continue
		}
		if exists {
			res.Skipped++
			continue
		}

		staged = append(staged, checklist.Build(def, today, false, false, time.Now()))
	}

	res, err = s.commit(ctx, staged, res)
	s.record(ctx, KindDaily, today, startedAt, res, err)
	if err != nil {
		return res, err
	}

	s.logger.Info("daily run complete",
		"run_date", today, "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

// RunBackfill walks every calendar day from each history-enabled definition's
// configured start date through today inclusive. Dates strictly before today
// produce auto-completed items; today's item is a normal pending
// materialization, identical to what the daily driver would create.
func (s *Service) RunBackfill(ctx context.Context, today civil.Date) (RunResult, error) {
	startedAt := time.Now()

	defs, err := s.definitions.ListHistoryEnabled(ctx)
	if err != nil {
		err = fmt.Errorf("fetching definitions: %w", err)
		s.record(ctx, KindBackfill, today, startedAt, RunResult{}, err)
		return RunResult{}, err
	}

	var staged []checklist.Item
	var res RunResult
	for _, def := range defs {
		if !def.AutoGenerateChecklist {
			continue
		}
		if err := definition.ValidateForBackfill(def); err != nil {
			s.logger.Warn("skipping malformed definition",
				"definition_id", def.ID, "task_name", def.TaskName, "error", err)
			continue
		}

		start, _ := def.HistoryStart()
		for date := start; !date.After(today); date = date.AddDays(1) {
			if !definition.IsDue(def, date) {
				continue
			}

			exists, err := s.items.Exists(ctx, def.ID, date)
			if err != nil {
				s.logger.Warn("existence check failed, skipping date",
					"definition_id", def.ID, "due_date", date, "error", err)
				continue
			}
			if exists {
				res.Skipped++
				continue
			}

			historical := date.Before(today)
			staged = append(staged, checklist.Build(def, date, historical, true, time.Now()))
		}
	}

	res, err = s.commit(ctx, staged, res)
	s.record(ctx, KindBackfill, today, startedAt, res, err)
	if err != nil {
		return res, err
	}

	s.logger.Info("backfill run complete",
		"run_date", today, "created", res.Created, "skipped", res.Skipped)
	return res, nil
}

// commit persists all staged items as one atomic batch. Either every staged
// item lands or none do. Keys that raced into existence between the check and
// the write are absorbed by the storage layer's uniqueness constraint and
// reported as skipped rather than created.
func (s *Service) commit(ctx context.Context, staged []checklist.Item, res RunResult) (RunResult, error) {
	if len(staged) == 0 {
		return res, nil
	}

	inserted, err := s.items.CreateBatch(ctx, staged)
	if err != nil {
		return res, fmt.Errorf("committing batch: %w", err)
	}

	res.Created = inserted
	res.Skipped += len(staged) - inserted
	return res, nil
}

func (s *Service) record(ctx context.Context, kind RunKind, runDate civil.Date, startedAt time.Time, res RunResult, runErr error) {
	if s.runs == nil {
		return
	}

	rec := &RunRecord{
		Kind:       kind,
		RunDate:    runDate,
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		Created:    res.Created,
		Skipped:    res.Skipped,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}

	if err := s.runs.Append(ctx, rec); err != nil {
		s.logger.Warn("failed to record run", "kind", kind, "error", err)
	}
}
