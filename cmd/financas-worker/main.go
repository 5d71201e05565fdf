package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/archive"
	"financas/internal/archive/google"
	"financas/internal/cli"
	"financas/internal/ingest"
	applog "financas/internal/log"
	"financas/internal/statement"
	"financas/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	logger.Info("Starting financas-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Google Sheets archive target is optional.
	var archiveWriter archive.Writer
	if cfg.ArchiveEnabled() {
		client, err := google.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		archiveWriter = client
		logger.Info("Google Sheets archive initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets archive disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	var archiveWorker *worker.ArchiveWorker
	if archiveWriter != nil {
		archiveWorker = worker.NewArchiveWorker(repo, archiveWriter, cfg.ArchiveBatchSize)

		logger.Info("Performing startup archive check...")
		if err := archiveWorker.StartupArchiveCheck(ctx); err != nil {
			logger.Error("Failed startup archive check", applog.FieldError, err)
			// Keep going, the periodic sweep retries.
		}
	} else {
		logger.Info("Skipping archive operations - no archive target available")
	}

	// Consume imported events only when there is an archive worker to act on
	// them.
	if archiveWorker != nil && cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			if err := amqpClient.ConsumeStatementImported(gctx, archiveWorker.HandleImportedMessage); err != nil {
				if err != context.Canceled {
					logger.Error("Message consumption failed", applog.FieldError, err)
					return err
				}
			}
			return nil
		})
	}

	// Periodic sweep for batches whose imported event was lost.
	if archiveWorker != nil {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.ArchiveInterval)
			defer ticker.Stop()

			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					if err := archiveWorker.ProcessPendingBatches(gctx); err != nil {
						logger.Error("Periodic archive sweep failed", applog.FieldError, err)
					}
				}
			}
		})
	}

	// Inbox watcher ingests statement files dropped into a directory.
	if cfg.InboxDir != "" {
		classifier := cli.LoadClassifier(logger, cfg.RulesPath)
		svc := ingest.NewService(statement.NewParser(classifier), repo, nil)
		watcher := worker.NewInboxWatcher(cfg.InboxDir, svc)

		g.Go(func() error {
			logger.Info("Watching inbox directory", applog.FieldPath, cfg.InboxDir)
			if err := watcher.Run(gctx); err != nil && err != context.Canceled {
				logger.Error("Inbox watcher failed", applog.FieldError, err)
				return err
			}
			return nil
		})
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-gctx.Done():
		logger.Info("Worker context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()

	waitDone := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(waitDone)
	}()

	select {
	case <-waitDone:
		logger.Info("Worker shutdown complete")
	case <-time.After(30 * time.Second):
		logger.Warn("Shutdown timeout reached")
	}
}
