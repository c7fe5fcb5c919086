package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"cashflow-router/internal/pkg/logger"
)

// ServerConfig holds server-level config
type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// MongoDB connection config
type MongoConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_minutes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout_seconds"`
}

// Redis connection config
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// Kafka connection config for the booking audit feed
type KafkaConfig struct {
	Server           string `yaml:"server"`
	BookingLogTopic  string `yaml:"booking_log_topic"`
	SecurityProtocol string `yaml:"security_protocol"`
	SASLMechanism    string `yaml:"sasl_mechanism"`
	SASLUsername     string `yaml:"sasl_username"`
	SASLPassword     string `yaml:"sasl_password"`
	SessionTimeoutMs int    `yaml:"session_timeout_ms"`
	ClientID         string `yaml:"client_id"`
}

// PubSub config for the loan failure notice subscription
type PubSubConfig struct {
	ProjectID           string `yaml:"project_id"`
	FailureSubscription string `yaml:"failure_subscription"`
	MaxExtensionSeconds int    `yaml:"max_extension_seconds"`
}

// PredictionConfig points at the upstream collection prediction API
type PredictionConfig struct {
	CollectionPollURL string        `yaml:"collection_poll_url"`
	DueAmountURL      string        `yaml:"due_amount_url"`
	Token             string        `yaml:"token"`
	HTTPTimeout       time.Duration `yaml:"http_timeout_seconds"`
}

// LedgerConfig tunes the capacity ledger cache
type LedgerConfig struct {
	SnapshotTTL   time.Duration `yaml:"snapshot_ttl_minutes"`
	AdjustRetries int           `yaml:"adjust_retries"`
	DefaultOldPct float64       `yaml:"default_old_percentage"`
}

// JobsConfig carries the cron specs for the background jobs
type JobsConfig struct {
	RecomputeSpec  string `yaml:"recompute_spec"`
	SweeperSpec    string `yaml:"sweeper_spec"`
	ProjectionSpec string `yaml:"projection_spec"`
}

// AllocationConfig carries routing-time knobs
type AllocationConfig struct {
	BlockedNbfcs []string `yaml:"blocked_nbfcs"` // static deny-list of NBFC ids
	WorkerPool   int      `yaml:"worker_pool"`
}

type OtelConfig struct {
	ServiceName  string `yaml:"service_name"`
	CollectorURL string `yaml:"collector_url"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LogConfig        `yaml:"logging"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	PubSub     PubSubConfig     `yaml:"pubsub"`
	Prediction PredictionConfig `yaml:"prediction"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Jobs       JobsConfig       `yaml:"jobs"`
	Allocation AllocationConfig `yaml:"allocation"`
	Otel       OtelConfig       `yaml:"otel"`
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", 8080)
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", cfg.Logging.LogLevel)

	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = GetEnvOrDefaultAsString("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = GetEnvOrDefaultAsString("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", cfg.Mongo.MaxPoolSize)
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", cfg.Mongo.MinPoolSize)
	cfg.Mongo.MaxConnIdleTime = time.Duration(GetEnvOrDefaultAsInt("MONGO_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute
	cfg.Mongo.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.EnableTLS = GetEnvOrDefaultAsInt("REDIS_ENABLE_TLS", 0) == 1
	cfg.Redis.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.Redis.CertContent = GetEnvOrDefaultAsString("REDIS_TLS_CERT", "")

	cfg.Kafka.Server = GetEnvOrDefaultAsString("KAFKA_SERVER", cfg.Kafka.Server)
	cfg.Kafka.BookingLogTopic = GetEnvOrDefaultAsString("KAFKA_BOOKING_LOG_TOPIC", cfg.Kafka.BookingLogTopic)
	cfg.Kafka.SecurityProtocol = GetEnvOrDefaultAsString("KAFKA_SECURITY_PROTOCOL", cfg.Kafka.SecurityProtocol)
	cfg.Kafka.SASLMechanism = GetEnvOrDefaultAsString("KAFKA_SASL_MECHANISM", cfg.Kafka.SASLMechanism)
	cfg.Kafka.SASLUsername = GetEnvOrDefaultAsString("KAFKA_SASL_USERNAME", cfg.Kafka.SASLUsername)
	cfg.Kafka.SASLPassword = GetEnvOrDefaultAsString("KAFKA_SASL_PASSWORD", cfg.Kafka.SASLPassword)
	cfg.Kafka.SessionTimeoutMs = GetEnvOrDefaultAsInt("KAFKA_SESSION_TIMEOUT_MS", 15000)
	cfg.Kafka.ClientID = GetEnvOrDefaultAsString("KAFKA_CLIENT_ID", cfg.Kafka.ClientID)

	cfg.PubSub.ProjectID = GetEnvOrDefaultAsString("PROJECT_ID", cfg.PubSub.ProjectID)
	cfg.PubSub.FailureSubscription = GetEnvOrDefaultAsString("PUBSUB_FAILURE_SUBSCRIPTION", cfg.PubSub.FailureSubscription)
	cfg.PubSub.MaxExtensionSeconds = GetEnvOrDefaultAsInt("PUBSUB_MAX_EXTENSION_SECONDS", 60)

	cfg.Prediction.CollectionPollURL = GetEnvOrDefaultAsString("COLLECTION_PREDICTION_POLL_URL", cfg.Prediction.CollectionPollURL)
	cfg.Prediction.DueAmountURL = GetEnvOrDefaultAsString("DUE_AMOUNT_URL", cfg.Prediction.DueAmountURL)
	cfg.Prediction.Token = GetEnvOrDefaultAsString("COLLECTION_PREDICTION_TOKEN", cfg.Prediction.Token)
	cfg.Prediction.HTTPTimeout = time.Duration(GetEnvOrDefaultAsInt("PREDICTION_HTTP_TIMEOUT_SECONDS", 20)) * time.Second

	cfg.Ledger.SnapshotTTL = time.Duration(GetEnvOrDefaultAsInt("LEDGER_SNAPSHOT_TTL_MINUTES", 30)) * time.Minute
	cfg.Ledger.AdjustRetries = GetEnvOrDefaultAsInt("LEDGER_ADJUST_RETRIES", 3)
	cfg.Ledger.DefaultOldPct = GetEnvOrDefaultAsFloat64("LEDGER_DEFAULT_OLD_PERCENTAGE", 50)

	cfg.Jobs.RecomputeSpec = GetEnvOrDefaultAsString("JOBS_RECOMPUTE_SPEC", defaultString(cfg.Jobs.RecomputeSpec, "@every 10m"))
	cfg.Jobs.SweeperSpec = GetEnvOrDefaultAsString("JOBS_SWEEPER_SPEC", defaultString(cfg.Jobs.SweeperSpec, "@every 1h"))
	cfg.Jobs.ProjectionSpec = GetEnvOrDefaultAsString("JOBS_PROJECTION_SPEC", defaultString(cfg.Jobs.ProjectionSpec, "0 2 * * *"))

	cfg.Allocation.WorkerPool = GetEnvOrDefaultAsInt("WORKER_POOL", 5)

	cfg.Otel.ServiceName = GetEnvOrDefaultAsString("SERVICE_NAME", defaultString(cfg.Otel.ServiceName, "cashflow-router"))
	cfg.Otel.CollectorURL = GetEnvOrDefaultAsString("OTEL_URL", cfg.Otel.CollectorURL)

	return cfg
}

// LoadFromConfig loads config.yaml (path overridable via CONFIG_PATH) and
// applies env overrides.
func LoadFromConfig() (*AppConfig, error) {
	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")
	return LoadFromConfigFilePath(configPath)
}

// LoadFromConfigFilePath loads and parses a config file into AppConfig
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, zap.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", zap.String("path", configPath))

	return defaultCfg, nil
}

func validateConfig(cfg *AppConfig) error {
	if cfg.Mongo.URI == "" {
		return fmt.Errorf("mongo uri must be set")
	}
	if cfg.Mongo.DBName == "" {
		return fmt.Errorf("mongo db_name must be set")
	}
	if cfg.Redis.Addr == "" {
		return fmt.Errorf("redis addr must be set")
	}
	if cfg.Ledger.DefaultOldPct < 0 || cfg.Ledger.DefaultOldPct > 100 {
		return fmt.Errorf("ledger default_old_percentage must be within 0..100")
	}
	return nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// GetEnvOrDefaultAsString fetches an env var or falls back.
func GetEnvOrDefaultAsString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func GetEnvOrDefaultAsFloat64(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
