package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env        string
	ServerPort string
	LogLevel   string

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	Storage StorageConfig
	SMTP    SMTPConfig

	LoginURL string
}

// StorageConfig holds the CDN storage and pull-zone settings. The storage
// credentials authenticate PUT/DELETE/GET against the storage API; the pull
// zone settings produce signed public retrieval URLs.
type StorageConfig struct {
	ZoneName       string
	AccessKey      string
	Region         string
	BasePath       string
	PullZoneHost   string
	PullZoneKey    string
	RequestTimeout time.Duration
	URLExpiry      time.Duration
}

// SMTPConfig holds mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	FromAddr string
	FromName string
	Timeout  time.Duration
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/diligence?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),
		Storage: StorageConfig{
			ZoneName:       os.Getenv("BUNNY_STORAGE_ZONE_NAME"),
			AccessKey:      os.Getenv("BUNNY_API_KEY"),
			Region:         getEnv("BUNNY_STORAGE_REGION", "ny"),
			BasePath:       os.Getenv("BUNNY_BASE_PATH"),
			PullZoneHost:   os.Getenv("BUNNY_PULL_ZONE_URL"),
			PullZoneKey:    os.Getenv("BUNNY_PULL_ZONE_SECURITY_KEY"),
			RequestTimeout: getEnvDuration("BUNNY_REQUEST_TIMEOUT", 60*time.Second),
			URLExpiry:      getEnvDuration("BUNNY_URL_EXPIRY", time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 465),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			FromAddr: getEnv("SMTP_FROM_EMAIL", "noreply@localhost"),
			FromName: os.Getenv("SMTP_FROM_NAME"),
			Timeout:  getEnvDuration("SMTP_TIMEOUT", 30*time.Second),
		},
		LoginURL: getEnv("LOGIN_URL", "http://localhost:3000/"),
	}
}

// Production reports whether the app runs with production error verbosity.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
