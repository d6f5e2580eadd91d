package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type PostgresConfig struct {
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD"`
	DB       string `env:"DB,default=dream_analyzer"`
	SSLMode  string `env:"SSLMODE,default=disable"`
}

// DSN returns the postgres:// connection string used by both sqlx and GORM.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.DB, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool   `env:"ENABLED,default=true"`
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type Config struct {
	AppEnv   string `env:"APP_ENV,default=development"`
	HTTPPort int    `env:"HTTP_PORT,default=8080"`

	// Telegram
	BotToken           string        `env:"BOT_TOKEN"`
	ChannelID          string        `env:"CHANNEL_ID"`
	ChannelURL         string        `env:"CHANNEL_URL"`
	InitDataMaxAge     time.Duration `env:"INIT_DATA_MAX_AGE,default=24h"`
	TelegramAPIBaseURL string        `env:"TELEGRAM_API_BASE_URL,default=https://api.telegram.org"`

	Postgres PostgresConfig `env:",prefix=PG_"`
	Redis    RedisConfig    `env:",prefix=REDIS_"`

	AllowedOrigins     []string      `env:"CORS_ALLOWED_ORIGINS,default=https://*"`
	RateLimitRPS       float64       `env:"RATE_LIMIT_RPS,default=2"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST,default=10"`
	PlanExpirySchedule string        `env:"PLAN_EXPIRY_SCHEDULE,default=@every 1h"`
	HistoryCacheTTL    time.Duration `env:"HISTORY_CACHE_TTL,default=30s"`
	SeedTokens         int           `env:"SEED_TOKENS,default=3"`
}

// Load reads the configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads the configuration from an arbitrary lookuper (tests use envconfig.MapLookuper).
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &cfg, l); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MissingTelegramSettings lists the Telegram settings every reward claim needs but that are not set.
func (c *Config) MissingTelegramSettings() []string {
	var missing []string
	if c.BotToken == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if c.ChannelID == "" {
		missing = append(missing, "CHANNEL_ID")
	}
	return missing
}
