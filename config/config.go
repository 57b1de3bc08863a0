package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ErrMissingAPIKey is a fatal configuration error. It is surfaced at startup,
// before any remote call is made.
var ErrMissingAPIKey = errors.New("YOUTUBE_API_KEY is not configured")

const (
	BackendFile     = "file"
	BackendS3       = "s3"
	BackendPostgres = "postgres"
)

// Config is assembled once at process start and passed by value. Nothing
// reads the environment after Load returns.
type Config struct {
	Port string

	YouTubeAPIKey     string
	DefaultChannel    string
	DefaultMaxResults int64
	APIRate           float64

	StorageBackend string
	DataDir        string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDatabase string

	IngestTimeout time.Duration
	FanOutWorkers int
}

func Load() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		DefaultChannel:    getEnv("DEFAULT_CHANNEL", "Isaiah Rivera"),
		DefaultMaxResults: getEnvInt64("DEFAULT_MAX_RESULTS", 10),
		APIRate:           getEnvFloat("YOUTUBE_API_RATE", 5),

		StorageBackend: getEnv("STORAGE_BACKEND", BackendFile),
		DataDir:        getEnv("DATA_DIR", "data"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "videos"),
		S3UseSSL:    getEnvBool("S3_USE_SSL", true),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ytingest"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "ytingest"),
		PostgresDatabase: getEnv("POSTGRES_DB", "ytingest"),

		IngestTimeout: getEnvDuration("INGEST_TIMEOUT", 2*time.Minute),
		FanOutWorkers: int(getEnvInt64("FANOUT_WORKERS", 8)),
	}
}

func (c Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.StorageBackend {
	case BackendFile, BackendPostgres:
	case BackendS3:
		if c.S3Endpoint == "" || c.S3AccessKey == "" || c.S3SecretKey == "" {
			return errors.New("s3 backend requires S3_ENDPOINT, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
	return nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvBool(key string, def bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}
