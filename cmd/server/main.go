package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/coverage-monitor/internal/api"
	"github.com/Kamar-Folarin/coverage-monitor/internal/config"
	"github.com/Kamar-Folarin/coverage-monitor/internal/dashboard"
	"github.com/Kamar-Folarin/coverage-monitor/internal/db"
	"github.com/Kamar-Folarin/coverage-monitor/internal/logging"
	"github.com/Kamar-Folarin/coverage-monitor/internal/metrics"
	"github.com/Kamar-Folarin/coverage-monitor/internal/poller"
	"github.com/Kamar-Folarin/coverage-monitor/internal/reconcile"
)

const pruneInterval = time.Hour

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration with defaults
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log)
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The tick journal is optional
	var (
		recorder poller.TickRecorder
		journal  api.TickJournal
	)
	if cfg.DBConnectionString != "" {
		dbStore, err := openStore(cfg.DBConnectionString, logger)
		if err != nil {
			logger.Fatalf("Failed to initialize database: %v", err)
		}
		defer dbStore.Close()

		dbStore.StartRetention(ctx, cfg.TickRetention, pruneInterval)
		recorder = dbStore
		journal = dbStore
	} else {
		logger.Info("DB_CONNECTION_STRING not set, poll ticks will not be journaled")
	}

	// Initialize services
	client := metrics.NewClient(&cfg.MetricsAPI, logger)
	details := reconcile.NewStore(client, logger)
	monitor := poller.NewSyncMonitor(client, details, poller.MonitorConfig{
		Poll:         cfg.Poll,
		CoverageDays: cfg.CoverageDays,
		Recorder:     recorder,
	}, logger)
	dashboardService := dashboard.NewService(monitor, details, cfg.ListCap, logger)
	apiHandler := api.NewHandler(dashboardService, journal, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.SetupRouter(apiHandler, cfg.CORSAllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	monitor.Start(ctx)

	// Start server in goroutine
	go func() {
		logger.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"metrics_api": cfg.MetricsAPI.BaseURL,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	monitor.Stop()
	cancel()
	logger.Info("Server exited properly")
}

func openStore(connectionString string, logger *logrus.Logger) (*db.PostgresStore, error) {
	var dbStore *db.PostgresStore
	if err := retry(3, 5*time.Second, func() error {
		var err error
		dbStore, err = db.NewPostgresStore(connectionString, logger)
		return err
	}); err != nil {
		return nil, err
	}

	// Run migrations with retry logic
	if err := retry(3, 5*time.Second, dbStore.Migrate); err != nil {
		dbStore.Close()
		return nil, err
	}
	return dbStore, nil
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
