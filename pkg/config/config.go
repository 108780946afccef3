package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
		LogFile   string `env:"LOG_FILE"`
		// Workers bounds how many updates are handled at once.
		Workers   int    `env:"APP_WORKERS" env-default:"16"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
	}
	Pexels struct {
		// APIKey has no default. A blank key disables fetching.
		APIKey  string        `env:"PEXELS_API_KEY"`
		BaseURL string        `env:"PEXELS_BASE_URL" env-default:"https://api.pexels.com/v1"`
		PerPage int           `env:"PEXELS_PER_PAGE" env-default:"30"`
		Timeout time.Duration `env:"PEXELS_TIMEOUT" env-default:"15s"`
		RPS     float64       `env:"PEXELS_RPS" env-default:"3"`
	}
	Session struct {
		IdleTTL             time.Duration `env:"SESSION_IDLE_TTL" env-default:"1h"`
		SelectionClearDelay time.Duration `env:"SESSION_SELECTION_CLEAR_DELAY" env-default:"300ms"`
		DownloadRetention   time.Duration `env:"DOWNLOAD_LOG_RETENTION" env-default:"720h"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, cfg.Validate()
}

// Validate reports settings the bot cannot start without. A missing Pexels
// key is not one of them: the feed reports it to the user instead.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Pexels.PerPage <= 0 {
		return fmt.Errorf("PEXELS_PER_PAGE must be positive, got %d", c.Pexels.PerPage)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == EnvDevelopment
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
