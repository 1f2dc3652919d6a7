package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	accountsapp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/accounts"
	authapp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/auth"
	transactionsapp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/transactions"
	usersapp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/app/users"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/config"
	accountshttp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/handler/http/accounts"
	authhttp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/handler/http/auth"
	transactionshttp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/handler/http/transactions"
	usershttp "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/handler/http/users"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/infrastructure/database"
	kafkainfra "github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/infrastructure/kafka"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/outbox"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/accounts_repo"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/outbox_repo"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/transactions_repo"
	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/repository/users_repo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	logger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("banking API starting")

	db := connectDB(cfg.DatabaseDSN, logger)
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", zap.Error(err))
		}
	}()

	runMigrations(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureKafkaTopics(ctx, cfg.KafkaBrokers, []string{cfg.BalanceTopic}, logger); err != nil {
		logger.Fatal("failed to ensure kafka topics", zap.Error(err))
	}
	cancel()

	txRunner := database.NewTxRunner(db)
	userRepository := users_repo.NewUserRepository()
	accountRepository := accounts_repo.NewAccountRepository()
	transactionRepository := transactions_repo.NewTransactionRepository()
	outboxRepository := outbox_repo.NewOutboxRepository()

	userService := usersapp.NewUserService(db, userRepository,
		logger.With(zap.String("component", "UserService")))
	accountService := accountsapp.NewAccountService(db, txRunner, accountRepository, outboxRepository, cfg.BalanceTopic,
		logger.With(zap.String("component", "AccountService")))
	transactionService := transactionsapp.NewTransactionService(db, txRunner, accountRepository, transactionRepository, outboxRepository, cfg.BalanceTopic,
		logger.With(zap.String("component", "TransactionService")))
	authService := authapp.NewAuthService(db, userRepository, cfg.JWTSecret, cfg.TokenTTL,
		logger.With(zap.String("component", "AuthService")))

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		usershttp.RegisterRoutes(r, userService, logger)
		accountshttp.RegisterRoutes(r, accountService, logger)
		transactionshttp.RegisterRoutes(r, transactionService, logger)
		authhttp.RegisterRoutes(r, authService, logger)
	})

	producer := kafkainfra.NewProducer(cfg.KafkaBrokers, logger.With(zap.String("component", "KafkaProducer")))
	defer func() {
		if err := producer.Close(); err != nil {
			logger.Error("error closing kafka producer", zap.Error(err))
		}
	}()

	processor := outbox.NewProcessor(txRunner, outboxRepository, producer, cfg.OutboxBatchSize, cfg.OutboxPollPeriod,
		logger.With(zap.String("component", "OutboxProcessor")))

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	runCtx, stopRun := context.WithCancel(context.Background())

	go func() {
		logger.Info("starting HTTP server", zap.String("address", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	go processor.Start(runCtx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}

	stopRun()
	logger.Info("shutdown complete")
}

func connectDB(dsn string, logger *zap.Logger) *sql.DB {
	const maxRetries = 10
	const retryDelay = 5 * time.Second

	var db *sql.DB
	var err error
	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dsn)
		if err == nil {
			logger.Info("connected to database")
			return db
		}
		logger.Warn("failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", maxRetries),
			zap.Error(err),
		)
		time.Sleep(retryDelay)
	}

	logger.Fatal("could not connect to database", zap.Error(err))
	return nil
}

func runMigrations(cfg *config.Config, logger *zap.Logger) {
	m, err := migrate.New("file://"+cfg.MigrationsPath, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("failed to create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")
}

func ensureKafkaTopics(ctx context.Context, brokers, topics []string, logger *zap.Logger) error {
	conn, err := kafka.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial kafka broker: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("failed to get kafka controller: %w", err)
	}
	controllerConn, err := kafka.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		return fmt.Errorf("failed to dial kafka controller: %w", err)
	}
	defer controllerConn.Close()

	topicConfigs := make([]kafka.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}

	if err := controllerConn.CreateTopics(topicConfigs...); err != nil {
		if errors.Is(err, kafka.TopicAlreadyExists) {
			logger.Info("kafka topics already exist")
			return nil
		}
		return fmt.Errorf("failed to create kafka topics: %w", err)
	}

	logger.Info("kafka topics ensured", zap.Strings("topics", topics))
	return nil
}
