package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agromopomulo.id/bankpohon/logger"
)

var DB *gorm.DB

// Configuration is read from the environment (and .env when present).
type Configuration struct {
	Port          string `env:"PORT" envDefault:"8080"`
	DSN           string `env:"DB_DSN,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	JWTTTLHours   int    `env:"JWT_TTL_HOURS" envDefault:"24"`
	CORSOrigins   string `env:"CORS_ORIGINS" envDefault:"*"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"` // local, gcs
	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	GCSBucket     string `env:"GCS_BUCKET"`
	MaxUploadMB   int    `env:"MAX_UPLOAD_MB" envDefault:"5"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	SeedDefaults  bool   `env:"SEED_DEFAULTS" envDefault:"true"`
	Timezone      string `env:"TIMEZONE" envDefault:"Asia/Makassar"`

	Log logger.LogConfig
}

// JWTTTL is the lifetime of issued tokens.
func (c *Configuration) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

// MaxUploadBytes is the photo size limit.
func (c *Configuration) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Location is the zone used for export dates and trend buckets.
func (c *Configuration) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("WITA", 8*3600)
	}
	return loc
}

// Load reads .env (optional) and parses the environment.
func Load() (*Configuration, error) {
	envLoaded := godotenv.Load() == nil

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := env.Parse(&cfg.Log); err != nil {
		return nil, fmt.Errorf("parse log config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !envLoaded {
		// logger is not initialised yet; this goes to the default stdout logger
		logger.App().Info("No .env file found, using system environment variables")
	}
	return cfg, nil
}

func (c *Configuration) validate() error {
	switch c.StorageDriver {
	case "local":
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required when STORAGE_DRIVER=gcs")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	if c.JWTTTLHours <= 0 {
		return fmt.Errorf("JWT_TTL_HOURS must be positive")
	}
	return nil
}

// Connect opens the Postgres connection and stores it in DB.
func Connect(cfg *Configuration) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	DB = db
	return nil
}
