package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/dealspot/subscription-deals-site/internal/api/router"
	"github.com/dealspot/subscription-deals-site/internal/carousel"
	"github.com/dealspot/subscription-deals-site/internal/catalog"
	"github.com/dealspot/subscription-deals-site/internal/chat"
	appconfig "github.com/dealspot/subscription-deals-site/internal/config"
	"github.com/dealspot/subscription-deals-site/internal/contact"
	"github.com/dealspot/subscription-deals-site/internal/intent"
	"github.com/dealspot/subscription-deals-site/internal/notify"
	"github.com/dealspot/subscription-deals-site/internal/observability/metrics"
	"github.com/dealspot/subscription-deals-site/pkg/logging"
	"github.com/dealspot/subscription-deals-site/web"
)

func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting subscription-deals-site API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Metrics registry backing the /metrics endpoint.
	registry := prometheus.NewRegistry()
	siteMetrics := metrics.NewSiteMetrics(registry)

	// Catalog and intent matching are static configuration, not storage.
	deals := catalog.Default()
	matcher := intent.NewMatcher(deals)

	// Chat transcripts live in Redis when available; the widget degrades to
	// per-connection history without it.
	var transcriptStore chat.TranscriptStore
	if redisClient := buildRedisClient(ctx, cfg, logger); redisClient != nil {
		transcriptStore = chat.NewRedisTranscriptStore(redisClient)
		logger.Info("chat transcript store enabled", "addr", cfg.RedisAddr)
	}

	// Contact submissions persist to Postgres when DATABASE_URL is set,
	// falling back to in-memory storage for local development.
	var contactRepo contact.Repository = contact.NewInMemoryRepository()
	var pgPool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		if err := pool.Ping(ctx); err != nil {
			logger.Warn("postgres not reachable, using in-memory contact store", "error", err)
			pool.Close()
		} else {
			pgPool = pool
			contactRepo = contact.NewPostgresRepository(pool)
			logger.Info("contact store backed by postgres")
		}
	}

	var emailSender notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		emailSender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	} else {
		emailSender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(emailSender, cfg.ContactOwnerEmail, logger)

	chatCfg := chat.Config{
		ReplyDelay:     cfg.ChatReplyDelay,
		ModalOpenDelay: cfg.ChatModalOpenDelay,
		HistoryLimit:   int64(cfg.ChatHistoryLimit),
	}

	routerCfg := &router.Config{
		Logger:          logger,
		CatalogHandler:  catalog.NewHandler(deals, logger),
		ChatHandler:     chat.NewHandler(matcher, transcriptStore, siteMetrics, chatCfg, web.WidgetJS, logger),
		ContactHandler:  contact.NewHandler(contactRepo, notifier, siteMetrics, logger),
		CarouselHandler: carousel.NewHandler(carousel.DefaultConfig()),
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),

		AdminJWTSecret:     cfg.AdminJWTSecret,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,

		ContactRatePerSec: 1,
		ContactRateBurst:  5,
	}
	r := router.New(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	if pgPool != nil {
		pgPool.Close()
	}

	logger.Info("server stopped")
}

// buildRedisClient returns a configured Redis client or nil when disabled or
// unreachable.
func buildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *redis.Client {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available, chat history disabled", "error", err)
		return nil
	}
	return client
}
