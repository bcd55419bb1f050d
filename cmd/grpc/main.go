package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/RandalBristow/pizza-palace-sub000/config"
	"github.com/RandalBristow/pizza-palace-sub000/internal/engine/pricing"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/broker"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/cache"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/i18n"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/logger"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/middleware"
	"github.com/RandalBristow/pizza-palace-sub000/internal/pkg/postgres"

	cartPubPkg "github.com/RandalBristow/pizza-palace-sub000/internal/cart/publisher"

	catListenerPkg "github.com/RandalBristow/pizza-palace-sub000/internal/catalog/listener"
	catRepoPkg "github.com/RandalBristow/pizza-palace-sub000/internal/catalog/repository"
	catUCPkg "github.com/RandalBristow/pizza-palace-sub000/internal/catalog/usecase"

	"github.com/RandalBristow/pizza-palace-sub000/internal/customizer"
	custH "github.com/RandalBristow/pizza-palace-sub000/internal/customizer/handler"
	custRepoPkg "github.com/RandalBristow/pizza-palace-sub000/internal/customizer/repository"
	custUCPkg "github.com/RandalBristow/pizza-palace-sub000/internal/customizer/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 1.5 Initialize i18n
	translator, err := i18n.New()
	if err != nil {
		log.Fatalf("failed to load locales: %v", err)
	}
	if extra := os.Getenv("I18N_EXTRA_LOCALE"); extra != "" {
		if err := translator.Load(extra); err != nil {
			log.Printf("Failed to load %s: %v", extra, err)
		}
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	var sessionRepo customizer.SessionRepository = custRepoPkg.NewRedisRepository(redisClient, cfg.Session.TTL)
	if cfg.Session.Store == "memory" {
		sessionRepo = custRepoPkg.NewMemoryRepository(cfg.Session.TTL)
	}

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.CatalogTopic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.CatalogTopic))

	// 5.6 Initialize Kafka Producer
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.CartTopic,
	})
	defer kafkaProducer.Close()

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepo, redisClient, cfg.Catalog.SnapshotTTL, translator.Labels(cfg.Catalog.Locale), appLogger)
	custUC := custUCPkg.NewCustomizerUseCase(
		catUC,
		sessionRepo,
		cartPubPkg.NewKafkaPublisher(kafkaProducer),
		pricing.Config{
			SwappableDefaultItems: cfg.Pricing.SwappableDefaultItems,
			HalfPriceToppings:     cfg.Pricing.HalfPriceToppings,
		},
		appLogger,
	)

	// 6.5 Initialize Listeners
	catListener := catListenerPkg.NewCatalogListener(kafkaConsumer, catUC, appLogger)

	// Start Listener
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go catListener.Start(ctx)

	// 7. Initialize Handlers
	custHandler := custH.NewCustomizerHandler(custUC, appLogger)

	// 8. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ContextInterceptor(appLogger)),
	)

	// Register Services
	custH.RegisterCustomizerServiceServer(grpcServer, custHandler)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
