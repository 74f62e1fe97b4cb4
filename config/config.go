package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppEnv           string
	Port             string
	Database         DatabaseConfig
	JWT              JWTConfig
	BcryptCost       int
	AllowAdminSignup bool
	Redis            RedisConfig
	RateLimit        RateLimitConfig
	RabbitMQ         RabbitMQConfig
	Mail             MailConfig
	RollbarToken     string
}

type DatabaseConfig struct {
	Driver          string // postgres | sqlite
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

type JWTConfig struct {
	Secret     []byte
	Expiration time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled        bool
	Prefix         string
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

type RabbitMQConfig struct {
	URL   string
	Queue string
}

type MailConfig struct {
	SendgridAPIKey string
	FromName       string
	FromAddress    string
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_SLOW_THRESHOLD", "200ms")
	v.SetDefault("JWT_EXPIRATION", "1h")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("ALLOW_ADMIN_SIGNUP", false)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RATE_LIMIT_ENABLED", true)
	v.SetDefault("RATE_LIMIT_PREFIX", "rl:auth")
	v.SetDefault("RATE_LIMIT_CAPACITY", 10)
	v.SetDefault("RATE_LIMIT_REFILL_TOKENS", 1)
	v.SetDefault("RATE_LIMIT_REFILL_INTERVAL", "6s")
	v.SetDefault("RATE_LIMIT_TTL", "10m")
	v.SetDefault("EVENTS_QUEUE", "microcourses.events")
	v.SetDefault("MAIL_FROM_NAME", "Micro Courses")
	v.SetDefault("MAIL_FROM", "no-reply@microcourses.local")
}

// Load reads the configuration from the environment. Call godotenv.Load
// first to pick up a .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv: v.GetString("APP_ENV"),
		Port:   v.GetString("PORT"),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:             v.GetString("DATABASE_URL"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			SlowThreshold:   v.GetDuration("DB_SLOW_THRESHOLD"),
		},
		JWT: JWTConfig{
			Secret:     []byte(v.GetString("JWT_SECRET")),
			Expiration: v.GetDuration("JWT_EXPIRATION"),
		},
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		AllowAdminSignup: v.GetBool("ALLOW_ADMIN_SIGNUP"),
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:        v.GetBool("RATE_LIMIT_ENABLED"),
			Prefix:         v.GetString("RATE_LIMIT_PREFIX"),
			Capacity:       v.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens:   v.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillInterval: v.GetDuration("RATE_LIMIT_REFILL_INTERVAL"),
			TTL:            v.GetDuration("RATE_LIMIT_TTL"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("EVENTS_QUEUE"),
		},
		Mail: MailConfig{
			SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
			FromName:       v.GetString("MAIL_FROM_NAME"),
			FromAddress:    v.GetString("MAIL_FROM"),
		},
		RollbarToken: v.GetString("ROLLBAR_TOKEN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) == 0 {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.JWT.Expiration <= 0 {
		return errors.New("config: JWT_EXPIRATION must be positive")
	}
	switch c.Database.Driver {
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	case "sqlite":
		if c.Database.DSN == "" {
			c.Database.DSN = "microcourses.db"
		}
	default:
		return errors.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Capacity <= 0 || c.RateLimit.RefillInterval <= 0) {
		return errors.New("config: RATE_LIMIT_CAPACITY and RATE_LIMIT_REFILL_INTERVAL must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return errors.Errorf("config: BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
