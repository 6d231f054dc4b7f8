package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	StoreBackendMongoDB = "mongodb"
	StoreBackendMemory  = "memory"
)

type Config struct {
	ServicePort          string
	MetricsPort          string
	Environment          string
	StoreBackend         string
	MongoDBConfig        MongoDBConfig
	KafkaConfig          KafkaConfig
	TracingConfig        TracingConfig
	RequestTimeout       time.Duration
	CacheRefreshInterval time.Duration
}

type MongoDBConfig struct {
	DBHost string
	DBPort string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress string
	BrokerTopic   string
	GroupID       string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort:  getEnv("SERVICE_PORT", "8080"),
		MetricsPort:  os.Getenv("METRICS_PORT"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		StoreBackend: getEnv("STORE_BACKEND", StoreBackendMongoDB),
		MongoDBConfig: MongoDBConfig{
			DBHost: getEnv("DB_HOST", "localhost"),
			DBPort: getEnv("DB_PORT", "27017"),
			DBName: getEnv("DB_NAME", "bs"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "votings"),
			GroupID:       getEnv("BROKER_GROUP_ID", "food-rater"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		RequestTimeout:       getDuration("REQUEST_TIMEOUT", 5*time.Second),
		CacheRefreshInterval: getDuration("CACHE_REFRESH_INTERVAL", 30*time.Second),
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Warn().Err(err).Str("component", "CreateNewConfig").Str("key", key).Msg("invalid duration, using default")
		return fallback
	}

	return d
}
