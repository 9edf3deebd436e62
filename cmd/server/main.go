package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/recipedesk/internal/api"
	"github.com/socialchef/recipedesk/internal/cache"
	"github.com/socialchef/recipedesk/internal/config"
	"github.com/socialchef/recipedesk/internal/httpclient"
	"github.com/socialchef/recipedesk/internal/links"
	"github.com/socialchef/recipedesk/internal/logger"
	"github.com/socialchef/recipedesk/internal/metrics"
	"github.com/socialchef/recipedesk/internal/middleware"
	"github.com/socialchef/recipedesk/internal/sentry"
	"github.com/socialchef/recipedesk/internal/services/assistant"
	"github.com/socialchef/recipedesk/internal/services/spoonacular"
	"github.com/socialchef/recipedesk/internal/services/thumbnail"
	"github.com/socialchef/recipedesk/internal/session"
	"github.com/socialchef/recipedesk/internal/telemetry"
	"go.opentelemetry.io/otel"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg := config.MustLoad()

	// Initialize telemetry
	if cfg.OtelExporterOTLPEndpoint != "" {
		shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env,
			cfg.OtelExporterOTLPEndpoint, telemetry.ParseHeaders(cfg.OtelExporterOTLPHeaders))
		if err != nil {
			slog.Warn("Failed to init telemetry", "error", err)
		} else {
			defer shutdown(ctx)
		}
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	}
	if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	slog.SetDefault(logger.New(cfg.Env))

	httpClient := httpclient.New(cfg.HTTPTimeout)

	// Optional thumbnail cache
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Warn("Thumbnail cache disabled", "error", err)
		} else {
			defer redisClient.Close()
		}
	}
	fetcher := thumbnail.NewFetcher(httpClient, cache.NewThumbnailCache(redisClient),
		cfg.Thumbnails.CacheTTL, cfg.Thumbnails.MaxAttempts)
	renderer := thumbnail.NewRenderer(fetcher, cfg.Thumbnails.Size)

	provider := assistant.NewProvider(cfg.Assistant, assistant.Credentials{
		OpenAIKey:  cfg.OpenAIKey,
		GroqKey:    cfg.GroqKey,
		GeminiKey:  cfg.GeminiKey,
		HTTPClient: httpClient,
	})
	defer func() {
		if err := assistant.Close(provider); err != nil {
			slog.Warn("Failed to close assistant provider", "error", err)
		}
	}()

	sessions := session.NewManager(session.Deps{
		Searcher:        spoonacular.NewClient(cfg.SpoonacularKey, cfg.SpoonacularBaseURL, httpClient),
		Assistant:       assistant.NewClient(provider),
		Launcher:        links.NewLauncher(cfg.BrowserLaunch),
		TranscriptLimit: cfg.Assistant.TranscriptLimit,
	}, cfg.SessionMaxIdle)

	apiServer := api.NewServer(cfg, renderer)

	// Router
	r := chi.NewRouter()

	// Middleware
	r.Use(otelchi.Middleware(cfg.ServiceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(cfg.ServiceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(sentry.HTTPMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:" + cfg.Port, "http://127.0.0.1:" + cfg.Port},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", apiServer.HandleHealth)

	// Session-bound routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(cfg.SessionSecret, sessions))
		r.Get("/", apiServer.HandleIndex)
		r.Post("/api/events", apiServer.HandleEvent)
		r.Get("/api/search", apiServer.HandleSearch)
		r.Get("/api/favorites", apiServer.HandleFavorites)
		r.Get("/api/meal-plan", apiServer.HandleMealPlan)
		r.Post("/api/assistant", apiServer.HandleAssistant)
	})

	srv := &http.Server{
		Addr:              "127.0.0.1:" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "addr", srv.Addr, "assistant_provider", cfg.Assistant.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.BrowserLaunch {
		links.Open(links.BrowserLauncher{}, "http://"+srv.Addr+"/")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
