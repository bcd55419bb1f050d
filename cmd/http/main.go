package main

import (
	"context"
	"errors"
	"log"
	"net/http"
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

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	translator, err := i18n.New()
	if err != nil {
		log.Fatalf("failed to load locales: %v", err)
	}

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	} else {
		gin.SetMode(gin.ReleaseMode)
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

	// 4. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	var sessionRepo customizer.SessionRepository = custRepoPkg.NewRedisRepository(redisClient, cfg.Session.TTL)
	if cfg.Session.Store == "memory" {
		sessionRepo = custRepoPkg.NewMemoryRepository(cfg.Session.TTL)
	}

	// 5. Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.CatalogTopic,
		GroupID: cfg.Kafka.HTTPGroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("group_id", cfg.Kafka.HTTPGroupID))

	// 5.1 Initialize Kafka Producer
	kafkaProducer := broker.NewProducer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.CartTopic,
	})
	defer kafkaProducer.Close()

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepoPkg.NewPGRepository(db), redisClient, cfg.Catalog.SnapshotTTL, translator.Labels(cfg.Catalog.Locale), appLogger)
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

	// 6.5 Start Catalog Listener
	listenerCtx, stopListener := context.WithCancel(context.Background())
	defer stopListener()
	go catListenerPkg.NewCatalogListener(kafkaConsumer, catUC, appLogger).Start(listenerCtx)

	// 7. Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(appLogger))
	if cfg.Server.RateLimit > 0 {
		r.Use(middleware.RateLimit(rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateLimitBurst)))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	custH.NewHTTPHandler(custUC, appLogger).RegisterRoutes(r.Group("/api/v1"))

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	srv := &http.Server{
		Addr:    port,
		Handler: r,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	stopListener()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
