package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edumorph/backend/internal/config"
	"github.com/edumorph/backend/internal/logger"
	"github.com/edumorph/backend/internal/offline"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// syncd drains the local offline queue against the content API. It
// assumes the network is up at start; SIGUSR2 marks it down, SIGUSR1
// marks it back up and triggers an immediate flush.
func main() {
	cfg, err := config.LoadSync()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting EduMorph Sync Daemon",
		zap.String("store", cfg.Offline.StorePath),
		zap.String("server", cfg.Offline.ServerURL))

	queue, err := offline.OpenQueue(cfg.Offline.StorePath, cfg.Offline.BackoffBase, cfg.Offline.BackoffMax)
	if err != nil {
		logger.Logger.Fatal("Failed to open offline queue", zap.Error(err))
	}
	defer queue.Close()

	monitor := offline.NewMonitor(true, logger.Logger)
	apiClient := offline.NewAPIClient(cfg.Offline.ServerURL)
	reconciler := offline.NewReconciler(queue, apiClient, monitor, logger.Logger)
	writer := offline.NewWriter(queue, reconciler, monitor, logger.Logger)

	// Local write endpoint: device apps post progress and preference
	// updates here instead of the content API
	ingress := offline.NewIngress(writer, logger.Logger)
	ingressServer := &http.Server{
		Addr:         cfg.Offline.IngressAddr,
		Handler:      ingress.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}
	go func() {
		logger.Logger.Info("Ingress listening", zap.String("addr", cfg.Offline.IngressAddr))
		if err := ingressServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Ingress server failed", zap.Error(err))
		}
	}()

	// Flush whenever connectivity returns
	monitor.Subscribe("syncd", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := reconciler.Flush(ctx); err != nil {
			logger.Logger.Error("Flush on reconnect failed", zap.Error(err))
		}
	})

	// Periodic flush picks up entries waiting out their backoff
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Offline.SyncSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		report, err := reconciler.Flush(ctx)
		if err != nil {
			logger.Logger.Error("Scheduled flush failed", zap.Error(err))
			return
		}
		if len(report.Succeeded) > 0 || len(report.Failed) > 0 {
			logger.Logger.Info("Scheduled flush",
				zap.Int("succeeded", len(report.Succeeded)),
				zap.Int("failed", len(report.Failed)))
		}
	}); err != nil {
		logger.Logger.Fatal("Failed to schedule sync", zap.Error(err))
	}
	scheduler.Start()

	// Drain anything left over from the previous run
	{
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if _, err := reconciler.Flush(ctx); err != nil {
			logger.Logger.Error("Startup flush failed", zap.Error(err))
		}
		cancel()
	}

	connectivity := make(chan os.Signal, 1)
	signal.Notify(connectivity, syscall.SIGUSR1, syscall.SIGUSR2)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case sig := <-connectivity:
			switch sig {
			case syscall.SIGUSR1:
				monitor.HandleOnline()
			case syscall.SIGUSR2:
				monitor.HandleOffline()
			}
		case <-quit:
			logger.Logger.Info("Shutting down sync daemon...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := ingressServer.Shutdown(shutdownCtx); err != nil {
				logger.Logger.Warn("Ingress shutdown failed", zap.Error(err))
			}
			cancel()
			ctx := scheduler.Stop()
			select {
			case <-ctx.Done():
			case <-time.After(30 * time.Second):
				logger.Logger.Warn("Timed out waiting for running flush")
			}
			logger.Logger.Info("Sync daemon exited")
			return
		}
	}
}
