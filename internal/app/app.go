package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/blog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/cart"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/catalog"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/chat"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/config"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/event"
	handler "github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/handler/http"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/provider"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/memory"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/postgres"
	redisrepo "github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/repository/redis"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender/logsender"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/sender/webhook"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/service"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/database"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/health"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/httpclient"
	pkgkafka "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/kafka"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/middleware"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/tracing"
)

const (
	serviceName    = "storefront"
	serviceVersion = "0.1.0"
)

// Infra holds the optional backing services. Nil fields are not configured.
type Infra struct {
	Pool     *pgxpool.Pool
	Redis    *redis.Client
	Producer *pkgkafka.Producer
}

// Connect opens every backing service named in cfg. Missing addresses are
// skipped and the in-memory alternative is used instead.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Infra, error) {
	infra := &Infra{}

	if cfg.RedisAddr != "" {
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		infra.Redis = rdb
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr))
	}

	if cfg.PostgresURL != "" {
		pool, err := database.NewPostgresPool(ctx, database.PostgresConfig{
			URL:             cfg.PostgresURL,
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
			MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
		}, logger)
		if err != nil {
			infra.Close(logger)
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		infra.Pool = pool
		logger.Info("connected to PostgreSQL")

		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
			logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}
		if cfg.SlowQueryThresholdMs > 0 {
			database.SetSlowQueryLogging(time.Duration(cfg.SlowQueryThresholdMs)*time.Millisecond, logger)
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		infra.Producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	return infra, nil
}

// Close releases every open connection.
func (i *Infra) Close(logger *slog.Logger) {
	if i.Producer != nil {
		if err := i.Producer.Close(); err != nil {
			logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if i.Pool != nil {
		i.Pool.Close()
	}
}

// NewSender returns the webhook sender when a URL is configured, the logging
// sender otherwise.
func NewSender(cfg *config.Config, logger *slog.Logger) sender.Sender {
	if cfg.QuotationWebhookURL == "" {
		return logsender.New(time.Duration(cfg.SenderDelayMs)*time.Millisecond, logger)
	}
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.Config{
			Timeout:         10 * time.Second,
			MaxRetries:      2,
			RetryWaitMin:    500 * time.Millisecond,
			RetryWaitMax:    5 * time.Second,
			MaxConnsPerHost: 10,
			UserAgent:       "kranian-storefront/1.0",
		}),
		httpclient.DefaultCircuitBreakerConfig("email-webhook"),
		logger,
	)
	return webhook.New(cfg.QuotationWebhookURL, client, logger)
}

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	infra          *Infra
	worker         *Worker
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		Insecure:       true,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	infra, err := Connect(ctx, cfg, logger)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, err
	}

	// Static content.
	products, err := catalog.Load()
	if err != nil {
		infra.Close(logger)
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	posts, err := blog.Load()
	if err != nil {
		infra.Close(logger)
		return nil, fmt.Errorf("load blog: %w", err)
	}

	// Cart storage.
	var storage cart.Storage
	if infra.Redis != nil {
		storage = redisrepo.NewCartStorage(infra.Redis, cfg.CartTTL())
	} else {
		storage = memory.NewCartStorage(cfg.CartTTL())
		logger.Warn("REDIS_ADDR not set, carts are kept in memory")
	}

	// Newsletter store.
	var subscriptions repository.SubscriptionRepository
	if infra.Pool != nil {
		if err := database.RunMigrations(ctx, infra.Pool, postgres.Migrations(), logger); err != nil {
			infra.Close(logger)
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("database migrations completed")
		subscriptions = postgres.NewSubscriptionRepository(infra.Pool)
	} else {
		subscriptions = memory.NewSubscriptionRepository()
		logger.Warn("DATABASE_URL not set, newsletter subscriptions are kept in memory")
	}

	// Domain events.
	var publisher event.Publisher
	if infra.Producer != nil {
		publisher = infra.Producer
	} else {
		publisher = event.NewNopPublisher(logger)
	}
	events := event.NewProducer(publisher, logger)

	snd := NewSender(cfg, logger)

	chatCB := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.Config{
			Timeout:         time.Duration(cfg.ChatTimeout) * time.Second,
			MaxConnsPerHost: 20,
			UserAgent:       "kranian-storefront/1.0",
		}),
		httpclient.DefaultCircuitBreakerConfig("chat"),
		logger,
	)
	if !cfg.ChatEnabled() {
		logger.Warn("CHAT_API_KEY not set, chat requests will get the fallback reply")
	}
	chatClient := chat.New(chat.Config{
		BaseURL: cfg.ChatBaseURL,
		APIKey:  cfg.ChatAPIKey,
		Model:   cfg.ChatModel,
	}, chatCB, logger)

	// Build the dependency graph.
	carts := service.NewCartService(storage, products, events, logger)
	svc := handler.Services{
		Catalog:  products,
		Blog:     posts,
		Renderer: blog.NewRenderer(),
		Cart:     carts,
		Checkout: service.NewCheckoutService(carts,
			provider.NewSimulated(time.Duration(cfg.PaymentDelayMs)*time.Millisecond, logger), events, logger),
		Newsletter: service.NewNewsletterService(subscriptions, events, logger),
		Quotations: service.NewQuotationService(carts, products, snd, events, logger),
		Chat:       service.NewChatService(chatClient, logger),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	if infra.Redis != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return infra.Redis.Ping(ctx).Err()
		})
	}
	if infra.Pool != nil {
		healthHandler.Register("postgres", func(ctx context.Context) error {
			return infra.Pool.Ping(ctx)
		})
	}
	if infra.Producer != nil {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return infra.Producer.Ping(ctx)
		})
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(svc, healthHandler, handler.RouterConfig{
		CORS: cors,
		Sessions: middleware.NewCookieStore(middleware.SessionConfig{
			CookieName: cfg.SessionCookie,
			Secret:     cfg.SessionSecret,
			MaxAge:     cfg.SessionMaxAge,
			Secure:     cfg.SessionSecure,
		}),
		SessionCookie:  cfg.SessionCookie,
		CacheMaxAge:    cfg.CacheMaxAge,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
		RateLimit: middleware.RateLimitConfig{
			RPS:        cfg.RateLimitRPS,
			Burst:      cfg.RateLimitBurst,
			TrustProxy: cfg.TrustProxy,
		},
	}, logger)

	var worker *Worker
	if cfg.WorkerEnabled {
		worker = NewWorker(cfg, snd, infra.Redis, logger)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.RequestTimeout+5) * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		infra:          infra,
		worker:         worker,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server (and the worker when enabled), then blocks until
// the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	if a.worker != nil {
		go func() {
			if err := a.worker.Run(ctx); err != nil {
				a.logger.Error("order confirmation worker error", slog.String("error", err.Error()))
			}
		}()
	}

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server, worker,
// tracer, then the backing connections.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.worker != nil {
		if err := a.worker.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.infra.Close(a.logger)

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
