package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"salesdesk/internal/backend"
	"salesdesk/internal/catalog"
	"salesdesk/internal/checkout"
	"salesdesk/internal/config"
	"salesdesk/internal/db"
	"salesdesk/internal/httpserver"
	"salesdesk/internal/journal"
	"salesdesk/internal/metrics"
	"salesdesk/internal/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	m := metrics.New()

	client := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, logger).WithObserver(m)

	var (
		pool        *pgxpool.Pool
		journalRepo journal.Repository
	)
	if cfg.JournalDSN != "" {
		var err error
		pool, err = db.Connect(ctx, cfg.JournalDSN)
		if err != nil {
			logger.Fatalf("connect journal db: %v", err)
		}
		defer pool.Close()
		journalRepo = journal.NewPostgres(pool)
		logger.Printf("journal: postgres")
	} else {
		journalRepo = journal.NewMemory()
		logger.Printf("journal: in-memory (submissions do not survive restarts)")
	}

	catalogIndex := catalog.NewIndex(client)
	references := catalog.NewReferenceData(client)

	// Initial loads are best-effort; the reload endpoints cover retries.
	if err := catalogIndex.Load(ctx); err != nil {
		logger.Printf("initial catalog load failed: %v", err)
	}
	if err := references.Load(ctx); err != nil {
		logger.Printf("initial reference load failed: %v", err)
	}

	sessions := session.NewStore(catalogIndex, references, func() *checkout.Workflow {
		return checkout.New(client, journalRepo, logger).WithMetrics(m)
	})

	srv := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Catalog:     catalogIndex,
		References:  references,
		Sessions:    sessions,
		JournalPool: pool,
		CORSOrigins: cfg.CORSOrigins,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
