package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/irongantt/internal/logger"
	"github.com/existflow/irongantt/server"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// run serves until ctx is cancelled and returns the process exit code.
// Deferred cleanup runs before main exits.
func run(ctx context.Context) int {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logConfig := logger.DefaultConfig()
	logConfig.Console = true
	logConfig.FilePath = os.Getenv("LOG_FILE")
	logConfig.Level = logger.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err := logger.Init(logConfig); err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		return 1
	}
	defer logger.Close()

	var store server.SnapshotStore
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pg, err := server.OpenPostgres(ctx, dbURL)
		if err != nil {
			logger.Error("Failed to open database", logger.F("error", err))
			return 1
		}
		store = pg
	} else {
		logger.Warn("DATABASE_URL not set, snapshots are kept in memory only")
		store = server.NewMemoryStore()
	}

	srv := server.New(store, os.Getenv("IRONGANTT_SERVER_TOKEN"))
	defer func() {
		if err := srv.Close(); err != nil {
			logger.Error("Error closing store", logger.F("error", err))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(":" + port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", logger.F("error", err))
		return 1
	}
	return 0
}
