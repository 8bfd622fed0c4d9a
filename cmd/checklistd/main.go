package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/carebound/checklist-engine/internal/civil"
	"github.com/carebound/checklist-engine/internal/config"
	"github.com/carebound/checklist-engine/internal/domain/materialize"
	"github.com/carebound/checklist-engine/internal/sqlite"
	"github.com/carebound/checklist-engine/internal/transport"
)

var (
	runDate string

	rootCmd = &cobra.Command{
		Use:   "checklistd",
		Short: "Materializes recurring compliance tasks into dated checklist items.",
		Long: `checklistd turns recurring task definitions (daily medication counts,
weekly fire-drill logs, monthly audits) into concrete, dated checklist items.
Runs are idempotent: each (task, due date) pair materializes at most once.`,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP trigger surface and the daily schedule.",
		RunE:  runServe,
	}

	dailyCmd = &cobra.Command{
		Use:   "daily",
		Short: "Run the daily driver once and print the result.",
		RunE:  runDailyOnce,
	}

	backfillCmd = &cobra.Command{
		Use:   "backfill",
		Short: "Materialize history for every definition with backfill enabled.",
		RunE:  runBackfillOnce,
	}
)

func init() {
	dailyCmd.Flags().StringVar(&runDate, "date", "", "Reference date (YYYY-MM-DD); defaults to today.")
	backfillCmd.Flags().StringVar(&runDate, "date", "", "Reference date (YYYY-MM-DD); defaults to today.")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(backfillCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// engine bundles everything a command needs after wiring.
type engine struct {
	cfg    config.Config
	logger *slog.Logger
	loc    *time.Location
	db     *sqlite.DB
	svc    *materialize.Service
	items  *sqlite.ItemRepository
	runs   *sqlite.RunLogRepository
}

func newEngine() (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	definitionRepo := sqlite.NewDefinitionRepository(db)
	itemRepo := sqlite.NewItemRepository(db)
	runRepo := sqlite.NewRunLogRepository(db)

	svc := materialize.NewService(definitionRepo, itemRepo, runRepo, logger)

	return &engine{
		cfg:    cfg,
		logger: logger,
		loc:    loc,
		db:     db,
		svc:    svc,
		items:  itemRepo,
		runs:   runRepo,
	}, nil
}

func (e *engine) close() {
	e.db.Close()
}

// referenceDate resolves the --date flag, defaulting to today in the
// configured timezone.
func (e *engine) referenceDate() (civil.Date, error) {
	if runDate == "" {
		return civil.Today(e.loc), nil
	}
	return civil.ParseDate(runDate)
}

func runDailyOnce(cmd *cobra.Command, _ []string) error {
	return runOnce(cmd.Context(), func(ctx context.Context, e *engine, today civil.Date) (materialize.RunResult, error) {
		return e.svc.RunDaily(ctx, today)
	})
}

func runBackfillOnce(cmd *cobra.Command, _ []string) error {
	return runOnce(cmd.Context(), func(ctx context.Context, e *engine, today civil.Date) (materialize.RunResult, error) {
		return e.svc.RunBackfill(ctx, today)
	})
}

func runOnce(ctx context.Context, run func(context.Context, *engine, civil.Date) (materialize.RunResult, error)) error {
	eng, err := newEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	defer eng.close()

	today, err := eng.referenceDate()
	if err != nil {
		eng.logger.Error("invalid reference date", "date", runDate, "error", err)
		return err
	}

	res, err := run(ctx, eng, today)
	if err != nil {
		eng.logger.Error("run failed", "run_date", today, "error", err)
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(res)
}

func runServe(cmd *cobra.Command, _ []string) error {
	eng, err := newEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	defer eng.close()

	router := transport.NewServer(eng.svc, eng.items, eng.runs, eng.loc, eng.logger)

	addr := fmt.Sprintf("%s:%d", eng.cfg.Server.Host, eng.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if eng.cfg.Schedule.Enabled {
		go runDailySchedule(ctx, eng.svc, eng.loc, eng.cfg.Schedule.DailyRunHour, eng.logger)
	}

	go func() {
		eng.logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			eng.logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(eng.logger, httpServer)
	return nil
}

// runDailySchedule fires the daily driver once per day at the configured
// local hour. The reference date is computed at fire time, so a run delayed
// past midnight still materializes the day it actually executes on.
func runDailySchedule(ctx context.Context, svc *materialize.Service, loc *time.Location, hour int, logger *slog.Logger) {
	for {
		next := nextRunTime(time.Now().In(loc), hour)
		logger.Info("next scheduled daily run", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := svc.RunDaily(ctx, civil.Today(loc)); err != nil {
			logger.Error("scheduled daily run failed", "error", err)
		}
	}
}

func nextRunTime(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
