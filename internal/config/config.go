package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration

	// OSRM-compatible routing service
	OSRMBaseURL    string
	RoutingWorkers int
	RoutingTimeout time.Duration

	// Optional Elasticsearch nearby-search index
	ElasticURL   string
	ElasticIndex string

	// Optional Kafka change feed
	KafkaBroker string
	KafkaTopic  string

	// Optional MinIO logo storage
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set directly.")
	}

	return &Config{
		Port:      getEnv("PORT", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/atms.db"),
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		TokenTTL:  getDuration("TOKEN_TTL", 24*time.Hour),

		OSRMBaseURL:    getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
		RoutingWorkers: getInt("ROUTING_WORKERS", 4),
		RoutingTimeout: getDuration("ROUTING_TIMEOUT", 5*time.Second),

		ElasticURL:   os.Getenv("ELASTIC_URL"),
		ElasticIndex: getEnv("ELASTIC_INDEX", "atms"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "atm-state-events"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "atm-logos"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		RateLimit:       getInt("RATE_LIMIT", 120),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default", key, v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using default", key, v)
		return fallback
	}
	return d
}
