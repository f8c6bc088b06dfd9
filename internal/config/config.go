package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	ServiceName string
	Version     string
	Environment string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	APIKey         string // API key for authentication
	TrustedProxies []string

	// Optional collaborators; empty disables them
	RedisURL          string
	NatsURL           string
	NatsSubjectPrefix string

	HashchainStore           string
	HashchainDir             string
	HashchainLength          int
	HashchainSaveInterval    int
	HashchainExtendThreshold int

	GameConfigPath       string
	GroupRoundDuration   time.Duration // overrides the game file when set
	RTPCacheTTL          time.Duration
	ConfigCacheTTL       time.Duration
	SettlementMaxRetries int

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	WorkerPoolSize        int
	EventLogRetentionDays int
	EventLogCleanupEvery  time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		ServiceName: getEnv("SERVICE_NAME", "provablyfair"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "provablyfair"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),

		RedisURL:          getEnv("REDIS_URL", ""),
		NatsURL:           getEnv("NATS_URL", ""),
		NatsSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", DefaultNatsSubjectPrefix),

		HashchainStore:           strings.ToLower(getEnv("HASHCHAIN_STORE", HashchainStorePostgres)),
		HashchainDir:             getEnv("HASHCHAIN_DIR", "data/hashchain"),
		HashchainLength:          getEnvAsInt("HASHCHAIN_LENGTH", DefaultHashchainLength),
		HashchainSaveInterval:    getEnvAsInt("HASHCHAIN_SAVE_INTERVAL", DefaultHashchainSaveInterval),
		HashchainExtendThreshold: getEnvAsInt("HASHCHAIN_EXTEND_THRESHOLD", DefaultHashchainExtendThreshold),

		GameConfigPath:       getEnv("GAME_CONFIG_PATH", ConfigPathGame),
		GroupRoundDuration:   getEnvAsDuration("GROUP_ROUND_DURATION", 0),
		RTPCacheTTL:          getEnvAsDuration("RTP_CACHE_TTL", DefaultRTPCacheTTL),
		ConfigCacheTTL:       getEnvAsDuration("CONFIG_CACHE_TTL", DefaultConfigCacheTTL),
		SettlementMaxRetries: getEnvAsInt("SETTLEMENT_MAX_RETRIES", DefaultSettlementMaxRetries),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		WorkerPoolSize:        getEnvAsInt("WORKER_POOL_SIZE", DefaultWorkerPoolSize),
		EventLogRetentionDays: getEnvAsInt("EVENT_LOG_RETENTION_DAYS", DefaultEventLogRetentionDays),
		EventLogCleanupEvery:  getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupEvery),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s", ErrMsgAPIKeyRequired)
	}

	switch cfg.HashchainStore {
	case HashchainStorePostgres, HashchainStoreFile:
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgInvalidHashchain, cfg.HashchainStore)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt parses an integer variable, falling back on absence or garbage
func getEnvAsInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration parses a Go duration string such as "30s"
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the connection URL for the settlement database
func (c *Config) GetDBConnString() string {
	return c.DBConnStringFor(c.DBName)
}

// DBConnStringFor returns a connection URL for dbName on the configured
// server. Credentials are escaped.
func (c *Config) DBConnStringFor(dbName string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + dbName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
