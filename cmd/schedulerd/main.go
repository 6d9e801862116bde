package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todoist-scheduler/config"
	_ "todoist-scheduler/docs" // Swagger docs
	analyticsRepo "todoist-scheduler/internal/analytics/repository/file"
	"todoist-scheduler/internal/estimate"
	"todoist-scheduler/internal/httpserver"
	lifeblockRepo "todoist-scheduler/internal/lifeblock/repository/file"
	"todoist-scheduler/internal/schedule"
	scheduleUC "todoist-scheduler/internal/schedule/usecase"
	todoistRepo "todoist-scheduler/internal/task/repository/todoist"
	"todoist-scheduler/pkg/gcalendar"
	"todoist-scheduler/pkg/llmprovider"
	"todoist-scheduler/pkg/log"
	"todoist-scheduler/pkg/timegrid"
)

// @title       Todoist Scheduler API
// @description Automatic day scheduler for Todoist: duration estimation, gap filling, and life blocks.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Todoist Scheduler...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Time grid
	grid, err := timegrid.New(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Scheduler.Timezone, err)
		grid, _ = timegrid.New("UTC")
	}

	// 4. Task store
	todoistClient := todoistRepo.NewClient(cfg.Todoist.BaseURL, cfg.Todoist.APIKey)
	taskRepo := todoistRepo.New(todoistClient, grid.Location(), logger)

	// 5. LLM providers (optional; the estimator degrades to heuristics)
	var llmManager *llmprovider.Manager
	if len(cfg.LLM.Providers) > 0 {
		providers, provErr := llmprovider.InitializeProviders(&cfg.LLM)
		if provErr != nil {
			logger.Warnf(ctx, "LLM providers not available (optional): %v", provErr)
		} else {
			retryDelay, _ := time.ParseDuration(cfg.LLM.RetryDelay)
			maxTimeout, _ := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
			llmManager = llmprovider.NewManager(providers, &llmprovider.Config{
				FallbackEnabled: cfg.LLM.FallbackEnabled,
				RetryAttempts:   cfg.LLM.RetryAttempts,
				RetryDelay:      retryDelay,
				MaxTotalTimeout: maxTimeout,
			}, logger)
			logger.Infof(ctx, "LLM estimation enabled with %d provider(s)", len(providers))
		}
	} else {
		logger.Warn(ctx, "No LLM providers configured, estimation falls back to heuristics")
	}

	// 6. Duration estimator
	cacheTTL, _ := time.ParseDuration(cfg.Scheduler.EstimateCacheTTL)
	estimator := estimate.New(llmManager, logger, estimate.Config{
		IntervalMinutes: cfg.Scheduler.IntervalMinutes,
		MinDuration:     cfg.Scheduler.MinDuration,
		DefaultDuration: cfg.Scheduler.DefaultDuration,
		CacheSize:       cfg.Scheduler.EstimateCacheSize,
		CacheTTL:        cacheTTL,
		RatePerMinute:   cfg.Scheduler.EstimateRatePerMinute,
	})

	// 7. Life blocks & pass history
	blocks := lifeblockRepo.New(cfg.LifeBlocks.Path, logger)
	recorder := analyticsRepo.New(cfg.Analytics.Path, logger)

	// 8. Google Calendar (optional busy-window source)
	var calendar schedule.CalendarSource
	if cfg.GoogleCalendar.CredentialsPath != "" && cfg.GoogleCalendar.CalendarID != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "→ Run `go run scripts/gcal-auth/main.go` to generate token.json")
		} else {
			calendar = calendarClient
			logger.Info(ctx, "Google Calendar busy windows enabled")
		}
	}

	// 9. Scheduler
	sleepHour, sleepMinute, err := cfg.Scheduler.SleepClock()
	if err != nil {
		logger.Error(ctx, "Invalid sleep time: ", err)
		return
	}
	leadTime, _ := time.ParseDuration(cfg.Scheduler.LeadTime)

	uc := scheduleUC.New(logger, taskRepo, estimator, blocks, calendar, recorder, grid, schedule.Config{
		IntervalMinutes:  cfg.Scheduler.IntervalMinutes,
		MinDuration:      cfg.Scheduler.MinDuration,
		SleepHour:        sleepHour,
		SleepMinute:      sleepMinute,
		WeekdayStartHour: cfg.Scheduler.WeekdayStartHour,
		WeekendStartHour: cfg.Scheduler.WeekendStartHour,
		FallbackDuration: cfg.Scheduler.FallbackDuration,
		LeadTime:         leadTime,
		SearchLimit:      cfg.Scheduler.SearchLimit,
		AutoPriorities:   cfg.Scheduler.AutoPriorities,
		CalendarID:       cfg.GoogleCalendar.CalendarID,
	})
	runner := schedule.NewRunner(uc, logger)

	// 10. Periodic passes
	passInterval, err := time.ParseDuration(cfg.Scheduler.PassInterval)
	if err != nil || passInterval <= 0 {
		logger.Warnf(ctx, "Invalid pass_interval %q, defaulting to 10m", cfg.Scheduler.PassInterval)
		passInterval = 10 * time.Minute
	}
	go runPasses(ctx, logger, runner, passInterval)

	// 11. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Runner:      runner,
		Recorder:    recorder,
		Blocks:      blocks,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 12. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

// runPasses triggers a scheduling pass immediately and then on every tick
// until the context is cancelled. Overlapping triggers are skipped by the
// runner.
func runPasses(ctx context.Context, logger log.Logger, runner *schedule.Runner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		record, started, err := runner.TryRun(ctx)
		if err != nil {
			logger.Errorf(ctx, "Scheduling pass failed: %v", err)
			return
		}
		if started {
			logger.Infof(ctx, "Pass %s: %d seen, %d placed, %d skipped, %d failed",
				record.ID, record.TasksSeen, record.Placed, record.Skipped, record.Failed)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
