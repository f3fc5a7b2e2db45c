package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/api"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/blobstore"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/config"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/index"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	store := blobstore.NewClient(cfg.BlobstoreURL, cfg.BlobstoreAPIKey)
	idx := index.NewClient(cfg.IndexURL, cfg.IndexAPIKey, cfg.IndexCollection)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, store, idx, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		idx.Close()
		store.Close()
	}()

	log.Info("starting document indexer", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
