package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Pricing  PricingConfig
	Catalog  CatalogConfig
	Session  SessionConfig
}

type ServerConfig struct {
	AppEnv      string
	GRPCPort    string
	HTTPPort    string
	CORSOrigins []string
	// RateLimit is requests per second across the HTTP gateway; 0 disables it.
	RateLimit      float64
	RateLimitBurst int
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers      []string
	CatalogTopic string
	// GroupID is the catalog consumer group of the gRPC server. The HTTP
	// gateway keeps its own snapshot cache, so it consumes as HTTPGroupID.
	GroupID     string
	HTTPGroupID string
	CartTopic   string
}

type PricingConfig struct {
	SwappableDefaultItems bool
	HalfPriceToppings     bool
}

type CatalogConfig struct {
	SnapshotTTL time.Duration
	Locale      string
}

type SessionConfig struct {
	TTL   time.Duration
	Store string // "redis" or "memory"
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:         getEnv("APP_ENV", "dev"),
			GRPCPort:       getEnv("GRPC_PORT", ":8082"),
			HTTPPort:       getEnv("HTTP_PORT", ":8080"),
			CORSOrigins:    getEnvSlice("CORS_ORIGINS", []string{"*"}),
			RateLimit:      getEnvFloat("HTTP_RATE_LIMIT", 50),
			RateLimitBurst: getEnvInt("HTTP_RATE_LIMIT_BURST", 100),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "pizzapalace"),
			Password:        getEnv("POSTGRES_PASSWORD", "pizzapalace"),
			DBName:          getEnv("POSTGRES_DB", "pizzapalace"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:      getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			CatalogTopic: getEnv("KAFKA_TOPIC_CATALOG", "catalog.events"),
			GroupID:      getEnv("KAFKA_GROUP_CUSTOMIZER", "customizer"),
			HTTPGroupID:  getEnv("KAFKA_GROUP_CUSTOMIZER_HTTP", "customizer-http"),
			CartTopic:    getEnv("KAFKA_TOPIC_CART", "cart.events"),
		},
		Pricing: PricingConfig{
			SwappableDefaultItems: getEnvBool("PRICING_SWAPPABLE_DEFAULT_ITEMS", true),
			HalfPriceToppings:     getEnvBool("PRICING_HALF_PRICE_TOPPINGS", true),
		},
		Catalog: CatalogConfig{
			SnapshotTTL: getEnvDuration("CATALOG_SNAPSHOT_TTL", 5*time.Minute),
			Locale:      getEnv("CATALOG_LOCALE", "en"),
		},
		Session: SessionConfig{
			TTL:   getEnvDuration("SESSION_TTL", 30*time.Minute),
			Store: getEnv("SESSION_STORE", "redis"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
