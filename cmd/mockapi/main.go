// Command mockapi serves the REST resources the dashboard reads and writes:
// ads, Teacher, Student and users.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/db/mongo"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/http/handlers"
	"github.com/schoolhub/admin-dashboard/internal/mockapi"
	"github.com/schoolhub/admin-dashboard/internal/pkg/config"
	"github.com/schoolhub/admin-dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		App:    "mockapi",
	})

	var (
		store  ports.ResourceStore
		checks []handlers.Check
	)
	switch cfg.MockAPI.Store {
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
		}()
		if err := mongo.EnsureIndexes(ctx, db, mockapi.Resources); err != nil {
			log.Fatal().Err(err).Msg("mongo index setup failed")
		}
		store = mongo.NewResourceRepository(db)
		checks = append(checks, handlers.MongoCheck(db))
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	case "memory", "":
		store = mockapi.NewMemoryStore()
		log.Info().Msg("using in-memory store")
	default:
		log.Fatal().Str("store", cfg.MockAPI.Store).Msg("unknown MOCKAPI_STORE")
	}

	e := mockapi.NewRouter(mockapi.NewServer(store, logger.Component("mockapi")), checks...)
	serve(ctx, e.Start, e.Shutdown, ":"+cfg.MockAPI.Port, log)
}

// serve runs start until ctx is cancelled and then shuts down gracefully.
func serve(ctx context.Context, start func(string) error, shutdown func(context.Context) error, addr string, log zerolog.Logger) {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
