package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"financas/internal/amqp"
	"financas/internal/cli"
	apphttp "financas/internal/http"
	"financas/internal/ingest"
	applog "financas/internal/log"
	"financas/internal/statement"
	"financas/internal/store"
	"financas/internal/store/memory"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	var (
		st      store.Store
		cleanup func()
	)
	switch cfg.DataBackend {
	case "sqlite":
		repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
		st = repo
		cleanup = func() { _ = repo.Close() }
		logger.Info("Initialized sqlite backend", applog.FieldPath, cfg.SQLiteDBPath)
	default:
		st = memory.New()
		cleanup = func() {}
		logger.Info("Initialized memory backend")
	}
	defer cleanup()

	// AMQP is optional: without a broker URL, uploads simply skip the
	// imported event and the archive worker relies on its periodic sweep.
	var events ingest.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		events = amqpClient
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	classifier := cli.LoadClassifier(logger, cfg.RulesPath)
	svc := ingest.NewService(statement.NewParser(classifier), st, events)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		Lister:         st,
		Ingest:         svc,
		Classifier:     classifier,
		Logger:         logger,
		UploadMaxBytes: cfg.UploadMaxBytes,
	})

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
	})

	logger.Info("Starting financas server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
