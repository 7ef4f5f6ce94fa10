package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/blstream/ShopMe-Backend/internal/core/port"
	"github.com/blstream/ShopMe-Backend/internal/core/search"
	"github.com/blstream/ShopMe-Backend/internal/infra/config"
	"github.com/blstream/ShopMe-Backend/internal/infra/database"
	kafkainfra "github.com/blstream/ShopMe-Backend/internal/infra/kafka"
	"github.com/blstream/ShopMe-Backend/internal/infra/logger"
	redisinfra "github.com/blstream/ShopMe-Backend/internal/infra/redis"
	"github.com/blstream/ShopMe-Backend/internal/infra/security"
	postgresrepo "github.com/blstream/ShopMe-Backend/internal/repository/postgres"
	redisrepo "github.com/blstream/ShopMe-Backend/internal/repository/redis"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/middleware"
	"github.com/blstream/ShopMe-Backend/internal/transport/http/routes"
	"github.com/blstream/ShopMe-Backend/internal/usecase"
)

// Application wires the marketplace service together.
type Application struct {
	cfg      *config.AppConfig
	engine   *gin.Engine
	logger   *zap.Logger
	pool     *pgxpool.Pool
	redis    *redisinfra.Client
	producer *kafkainfra.Producer
}

// New builds the application graph from configuration.
func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, fmt.Errorf("init postgres: %w", err)
	}

	redisClient, err := redisinfra.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init redis: %w", err)
	}

	if err := security.ConfigureArgon2(security.Argon2Config{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	}); err != nil {
		return nil, fmt.Errorf("configure argon2: %w", err)
	}

	tokenManager, err := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	repos := postgresrepo.NewRepositories(pool)

	var producer *kafkainfra.Producer
	var eventPublisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub publisher", zap.Error(err))
			eventPublisher = kafkainfra.NewStubPublisher(log)
		} else {
			eventPublisher = kafkainfra.NewEventPublisher(producer, cfg.App, log)
		}
	} else {
		log.Info("kafka brokers not configured, using stub publisher")
		eventPublisher = kafkainfra.NewStubPublisher(log)
	}

	voivodeshipCache := redisrepo.NewVoivodeshipCache(redisClient.Client(), cfg.Redis.VoivodeshipPrefix, cfg.Redis.VoivodeshipTTL)
	attemptStore := redisrepo.NewLoginAttemptStore(redisClient.Client(), cfg.Redis.RateLimitPrefix, cfg.JWT.LoginWindow*2)

	pageCfg := search.PageConfig{
		FirstPage:            cfg.Search.FirstPage,
		DefaultPage:          cfg.Search.DefaultPage,
		DefaultPageSize:      cfg.Search.DefaultPageSize,
		PageSizeMax:          cfg.Search.PageSizeMax,
		DefaultSortField:     search.Field(cfg.Search.DefaultSortField),
		DefaultSortDirection: search.SortDirection(cfg.Search.DefaultSortDirection),
	}
	tokenizer := search.NewTokenizer(cfg.Offers.TitleMaxLength, cfg.Search.TitleAllowedChars)

	revocationService := usecase.NewRevocationService(repos.RevokedTokens, cfg.JWT.RevocationSweepPeriod, log)
	voivodeshipService := usecase.NewVoivodeshipService(repos.Voivodeships, voivodeshipCache, log)
	offerService := usecase.NewOfferService(repos.Offers, eventPublisher, tokenizer, pageCfg, cfg.Offers.TitleMaxLength, log)
	userService := usecase.NewUserService(repos.Users, offerService, voivodeshipService, security.NewPasswordPolicy(), eventPublisher, log)
	authService := usecase.NewAuthService(
		repos.Users,
		tokenManager,
		revocationService,
		attemptStore,
		cfg.JWT.LoginMaxAttempts,
		cfg.JWT.LoginWindow,
		eventPublisher,
		log,
	)

	metrics, err := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
		Services: routes.ServiceSet{
			Auth:         authService,
			Users:        userService,
			Offers:       offerService,
			Voivodeships: voivodeshipService,
		},
	})

	return &Application{
		cfg:      cfg,
		engine:   engine,
		logger:   log,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer a.pool.Close()
	defer func() {
		_ = a.redis.Close()
	}()
	defer func() {
		if a.producer != nil {
			_ = a.producer.Close()
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", a.cfg.App.Host, a.cfg.App.Port),
		Handler:           a.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	a.logger.Info("starting marketplace API",
		zap.String("env", a.cfg.App.Env),
		zap.String("address", srv.Addr),
	)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- fmt.Errorf("run server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	case err := <-serverErrCh:
		return err
	}
}
