package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meusaldo/internal/interfaces/scheduler"
	"meusaldo/internal/shared/config"
	"meusaldo/internal/shared/logger"
	"meusaldo/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx := context.Background()

	// Telemetry (optional)
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdownTelemetry(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("telemetry shutdown failed")
			}
		}()
	}

	deps, err := NewDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Daily reminder scheduler
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(scheduler.Config{
			ScheduleTimes: cfg.Scheduler.ScheduleTimes,
			WorkerCount:   cfg.Scheduler.WorkerCount,
			JobDelay:      cfg.Scheduler.JobDelay,
			QueueSize:     cfg.Scheduler.QueueSize,
			RunOnStartup:  cfg.Scheduler.RunOnStartup,
			JobProvider:   reminderJobProvider(deps),
			Logger:        log,
		})
		if err != nil {
			return err
		}
		sched.Start()
		log.Info().Strs("times", cfg.Scheduler.ScheduleTimes).Msg("scheduler started")
	} else {
		log.Info().Msg("scheduler is disabled")
	}

	handler := SetupRoutes(deps, cfg, log)
	srv, redirectSrv := StartServers(NewServerConfigFromConfig(handler, cfg), log)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, redirectSrv, sched, 30*time.Second, log)
	return nil
}

// reminderJobProvider lists every known user and builds one reminder job per
// user for each scheduled run.
func reminderJobProvider(deps *Dependencies) func(context.Context) ([]scheduler.Job, error) {
	return func(ctx context.Context) ([]scheduler.Job, error) {
		userIDs, err := deps.Firestore.ListUserIDs(ctx)
		if err != nil {
			return nil, err
		}
		jobs := make([]scheduler.Job, 0, len(userIDs))
		for _, id := range userIDs {
			jobs = append(jobs, scheduler.NewReminderJob(id, deps.ReminderService))
		}
		return jobs, nil
	}
}
