package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/config"
	"github.com/grocify/account-guard/internal/infra/database"
	"github.com/grocify/account-guard/internal/infra/delivery"
	kafkainfra "github.com/grocify/account-guard/internal/infra/kafka"
	"github.com/grocify/account-guard/internal/infra/logger"
	redisinfra "github.com/grocify/account-guard/internal/infra/redis"
	"github.com/grocify/account-guard/internal/infra/security"
	"github.com/grocify/account-guard/internal/infra/telemetry"
	"github.com/grocify/account-guard/internal/infra/wordlist"
	postgresrepo "github.com/grocify/account-guard/internal/repository/postgres"
	redisrepo "github.com/grocify/account-guard/internal/repository/redis"
	"github.com/grocify/account-guard/internal/transport/http/middleware"
	"github.com/grocify/account-guard/internal/transport/http/routes"
	"github.com/grocify/account-guard/internal/usecase"
)

type Application struct {
	cfg    *config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
	pool   *pgxpool.Pool
	redis  *redisinfra.Client
	tracer *telemetry.TracerProvider
	kafka  *kafkainfra.Producer
}

func New(ctx context.Context, cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	if _, err := telemetry.Attach(ctx, cfg); err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("init tracer provider: %w", err)
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

	accounts := postgresrepo.NewAccountRepository(pool)
	locks := redisrepo.NewLockRepository(redisClient.Client(), cfg.Redis.LockPrefix)
	breaches := redisrepo.NewBreachSetRepository(redisClient.Client(), cfg.Redis.BreachSetKey)

	words := wordlist.NewFile(cfg.Security.WordlistPath)
	passwords := security.NewPasswordRuleEngine(words, breaches, cfg.Security.ContextWords...)

	isDev := cfg.App.Env == "development"

	var email port.CodeDeliveryChannel
	var admin port.AdminNotifier
	if isDev {
		email = delivery.NewLogChannel(log)
		admin = delivery.NewLogNotifier(log)
	} else {
		channel := delivery.NewSMTPEmailChannel(cfg.SMTP, log)
		email = channel
		admin = delivery.NewAdminMailer(channel)
	}

	var gateway port.PhoneVerifyGateway
	if cfg.Phone.ServiceSID == "" {
		gateway = delivery.NewLogGateway(log)
	} else {
		gateway = delivery.NewVerifyGateway(cfg.Phone, log)
	}

	var audit port.AuditLog
	var producer *kafkainfra.Producer
	if len(cfg.Kafka.Brokers) > 0 && !isDev {
		producer, err = kafkainfra.NewProducer(cfg.Kafka, log)
		if err != nil {
			log.Warn("failed to init kafka producer, using stub audit log", zap.Error(err))
			audit = kafkainfra.NewStubAuditLog(log)
			producer = nil
		} else {
			audit = kafkainfra.NewAuditPublisher(producer, cfg.App, log)
		}
	} else {
		log.Info("kafka brokers not configured, using stub audit log")
		audit = kafkainfra.NewStubAuditLog(log)
	}

	attempts := usecase.NewAttemptTracker(locks)
	codes := usecase.NewVerificationCodeManager(accounts, email, gateway)
	coordinator := usecase.NewAccountCoordinator(accounts, passwords, attempts, codes, audit, admin, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		_ = redisClient.Close()
		pool.Close()
		return nil, fmt.Errorf("init http metrics: %w", err)
	}

	engine := routes.Register(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Accounts: coordinator,
		Metrics:  metrics,
		Database: pool,
		Cache:    redisClient,
	})

	return &Application{
		cfg:    cfg,
		engine: engine,
		logger: log,
		pool:   pool,
		redis:  redisClient,
		tracer: tracer,
		kafka:  producer,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	defer func() {
		_ = a.logger.Sync()
	}()
	defer func() {
		if a.pool != nil {
			a.pool.Close()
		}
	}()
	defer func() {
		if a.redis != nil {
			_ = a.redis.Close()
		}
	}()
	defer func() {
		if a.kafka != nil {
			_ = a.kafka.Close()
		}
	}()
	defer func() {
		if a.tracer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = a.tracer.Shutdown(shutdownCtx)
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

	a.logger.Info("starting account guard API",
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
