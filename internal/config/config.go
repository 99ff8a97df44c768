package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type DB struct {
	DbHOST     string `env:"DB_HOST" envDefault:"localhost"`
	DbPORT     string `env:"DB_PORT" envDefault:"5432"`
	DbUSER     string `env:"DB_USER" envDefault:"postgres"`
	DbPASSWORD string `env:"DB_PASSWORD" envDefault:"password"`
	DbNAME     string `env:"DB_NAME" envDefault:"classifieds"`
	DbSSLMODE  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// DSN is the lib/pq keyword connection string.
func (d DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.DbHOST, d.DbPORT, d.DbUSER, d.DbPASSWORD, d.DbNAME, d.DbSSLMODE,
	)
}

// URL is the postgres:// form used by the migrator.
func (d DB) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.DbUSER, d.DbPASSWORD),
		Host:     d.DbHOST + ":" + d.DbPORT,
		Path:     "/" + d.DbNAME,
		RawQuery: "sslmode=" + url.QueryEscape(d.DbSSLMODE),
	}
	return u.String()
}

type MinIO struct {
	Endpoint   string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey  string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey  string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	BucketName string `env:"MINIO_BUCKET_NAME" envDefault:"listings"`
	UseSSL     bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Region     string `env:"MINIO_REGION" envDefault:"us-east-1"`
	// PublicURL is the base under which stored objects are reachable by browsers.
	PublicURL string `env:"MINIO_PUBLIC_URL" envDefault:"http://localhost:9000"`
}

type Auth struct {
	JWTSecretKey       string        `env:"JWT_SECRET_KEY"`
	PreviousSecretKeys []string      `env:"JWT_PREVIOUS_SECRET_KEYS" envSeparator:","`
	TokenDuration      time.Duration `env:"TOKEN_DURATION" envDefault:"168h"`
	DefaultPassword    string        `env:"DEFAULT_PASSWORD" envDefault:"123456"`
	BcryptCost         int           `env:"BCRYPT_COST" envDefault:"10"`
	AdminEmail         string        `env:"ADMIN_EMAIL" envDefault:"admin@autoslinares.cl"`
	AdminPassword      string        `env:"ADMIN_PASSWORD"`
}

type Listings struct {
	TTL           time.Duration `env:"LISTING_TTL" envDefault:"1440h"`
	MaxImages     int           `env:"MAX_IMAGES" envDefault:"5"`
	PageLimit     int           `env:"LISTING_PAGE_LIMIT" envDefault:"50"`
	MaxUploadSize int64         `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
}

type HTTP struct {
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Config struct {
	ServerPort           int    `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel             string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty            bool   `env:"LOG_PRETTY" envDefault:"false"`
	ExpiryReportSchedule string `env:"EXPIRY_REPORT_SCHEDULE" envDefault:"@hourly"`
	DB                   DB
	MinIO                MinIO
	Auth                 Auth
	Listings             Listings
	HTTP                 HTTP
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	return &cfg, nil
}

// LoadConfig loads .env (if present) and parses the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg(".env file not found, using environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is not set")
	}
	if c.Listings.MaxImages < 0 {
		return fmt.Errorf("MAX_IMAGES must not be negative")
	}
	if c.Listings.PageLimit <= 0 {
		return fmt.Errorf("LISTING_PAGE_LIMIT must be positive")
	}
	if c.Listings.TTL <= 0 {
		return fmt.Errorf("LISTING_TTL must be positive")
	}
	return nil
}
