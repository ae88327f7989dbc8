package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http"
	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/handler"
	postgresRepo "github.com/paulossjunior/exemplokiro-sub001/internal/adapter/repository/postgres"
	redisRepo "github.com/paulossjunior/exemplokiro-sub001/internal/adapter/repository/redis"
	"github.com/paulossjunior/exemplokiro-sub001/internal/balance"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/auth"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/config"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/keys"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/logger"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/metrics"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/postgres"
	"github.com/paulossjunior/exemplokiro-sub001/internal/infrastructure/redis"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(log, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Metrics
	m := metrics.New()

	// Integrity stack. The signing key comes from configuration and is
	// never persisted next to the records it protects.
	keyProvider := keys.NewStaticProvider(cfg.SigningSecret)
	hasher := integrity.NewHasher()
	signer := integrity.NewSigner(keyProvider)
	verifier := integrity.NewVerifier(hasher)
	idGen := postgresRepo.NewULIDGenerator()
	recorder := integrity.NewRecorder(hasher, signer, idGen)

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	bankAccountRepo := postgresRepo.NewBankAccountRepository(pool)
	accountingRepo := postgresRepo.NewAccountingAccountRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	balanceCache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Use cases
	transactionUC := usecase.NewTransactionUseCase(
		txManager, transactionRepo, bankAccountRepo, accountingRepo, auditRepo,
		hasher, signer, recorder, idGen, balanceCache, m,
	)
	bankAccountUC := usecase.NewBankAccountUseCase(bankAccountRepo, auditRepo, recorder, idGen)
	accountingUC := usecase.NewAccountingAccountUseCase(accountingRepo, auditRepo, recorder, idGen)
	balanceUC := usecase.NewBalanceUseCase(
		transactionRepo, bankAccountRepo, balance.NewCalculator(), balanceCache, cfg.BalanceCacheTTL,
	)
	integrityUC := usecase.NewIntegrityUseCase(transactionRepo, auditRepo, verifier, recorder, m)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	// Handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		BankAccountHandler: handler.NewBankAccountHandler(bankAccountUC),
		AccountingHandler:  handler.NewAccountingAccountHandler(accountingUC),
		BalanceHandler:     handler.NewBalanceHandler(balanceUC),
		IntegrityHandler:   handler.NewIntegrityHandler(integrityUC),
		AuditHandler:       handler.NewAuditHandler(auditUC),
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),

		JWTManager:       jwtManager,
		AuthEnabled:      cfg.AuthEnabled,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		Metrics:          m,
		Logger:           log,
		RateLimit:        cfg.RateLimitRPS,
		RateBurst:        cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
