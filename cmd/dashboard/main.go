// Command dashboard serves the school and ads admin dashboard: the HTML
// pages, the JSON API and the health and metrics endpoints.
//
//	@title						School Admin Dashboard API
//	@version					1.0
//	@description				JSON API and session auth for the school and ads admin dashboard.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schoolhub/admin-dashboard/internal/api"
	"github.com/schoolhub/admin-dashboard/internal/api/metrics"
	"github.com/schoolhub/admin-dashboard/internal/api/web"
	"github.com/schoolhub/admin-dashboard/internal/core/domain"
	"github.com/schoolhub/admin-dashboard/internal/core/ports"
	"github.com/schoolhub/admin-dashboard/internal/core/service"
	"github.com/schoolhub/admin-dashboard/internal/dashboard"
	redisdb "github.com/schoolhub/admin-dashboard/internal/infrastructure/db/redis"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/http/handlers"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/queue"
	"github.com/schoolhub/admin-dashboard/internal/infrastructure/restclient"
	"github.com/schoolhub/admin-dashboard/internal/pkg/config"
	"github.com/schoolhub/admin-dashboard/pkg/logger"
)

const (
	shutdownTimeout   = 10 * time.Second
	queueDepthPeriod  = 5 * time.Second
	upstreamProbePath = "/ads"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
		App:    "dashboard",
	})

	// --- Upstream REST clients ---
	httpClient := &http.Client{}
	clientOpts := []restclient.Option{
		restclient.WithHTTPClient(httpClient),
		restclient.WithTimeout(cfg.API.Timeout),
		restclient.WithObserver(metrics.ObserveUpstream),
		restclient.WithLogger(logger.Component("restclient")),
	}
	adsClient := restclient.New[domain.Ads](cfg.API.BaseURL, "ads", clientOpts...)
	teacherClient := restclient.New[domain.Person](cfg.API.BaseURL, domain.KindTeacher.Endpoint(), clientOpts...)
	studentClient := restclient.New[domain.Person](cfg.API.BaseURL, domain.KindStudent.Endpoint(), clientOpts...)
	userClient := restclient.New[domain.User](cfg.API.BaseURL, "users", clientOpts...)

	svcLog := logger.Component("service")
	authService := service.NewAuthService(userClient, cfg.JWTSecret, cfg.TokenTTL, svcLog)

	checks := []handlers.Check{handlers.UpstreamCheck(httpClient, cfg.API.BaseURL+upstreamProbePath)}

	// --- Generation tokens: redis when configured, memory otherwise ---
	var gens ports.Generations = service.NewMemoryGenerations()
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		gens = redisdb.NewGenerationStore(rdb)
		checks = append(checks, handlers.RedisCheck(rdb))
		log.Info().Str("addr", cfg.Redis.Addr).Msg("generation tokens in redis")
	}

	// --- Mutation dispatcher ---
	dispatcher := queue.NewDispatcher(cfg.Dashboard.Workers, logger.Component("dispatcher"))
	dispatcher.SetObserver(metrics.ObserveMutation)
	dispatcher.Start(ctx)
	go reportQueueDepth(ctx, dispatcher)

	// --- Dashboard pages ---
	board := dashboard.NewBoard(
		service.NewAdsService(adsClient, svcLog),
		service.NewPersonService(domain.KindTeacher, teacherClient, svcLog),
		service.NewPersonService(domain.KindStudent, studentClient, svcLog),
		dashboard.BoardConfig{
			SearchDebounce: cfg.Dashboard.SearchDebounce,
			Page: dashboard.PageConfig{
				ActionDelay: cfg.Dashboard.ActionDelay,
				Generations: gens,
				Mutator:     dispatcher,
				Log:         logger.Component("dashboard"),
			},
			Classmates: service.NewPersonService(domain.KindStudent, studentClient, svcLog),
		},
	)
	board.Start(ctx)

	e, err := api.NewRouter(api.Dependencies{
		Config: cfg,
		Log:    logger.Component("http"),
		Services: api.Services{
			Auth:     authService,
			Ads:      service.NewAdsService(adsClient, svcLog),
			Teachers: service.NewPersonService(domain.KindTeacher, teacherClient, svcLog),
			Students: service.NewPersonService(domain.KindStudent, studentClient, svcLog),
		},
		Board:    board,
		Sessions: web.NewCookieStore(cfg.SessionSecret, !cfg.IsDevelopment()),
		Checks:   checks,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("api", cfg.API.BaseURL).Msg("dashboard listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func reportQueueDepth(ctx context.Context, d *queue.Dispatcher) {
	ticker := time.NewTicker(queueDepthPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.SetQueueDepth(d.Pending())
		}
	}
}
