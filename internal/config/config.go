// Package config reads the hub's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/db"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/logger"
)

const EnvProduction = "production"

type Config struct {
	Addr            string        `env:"HUB_ADDR" envDefault:":8080"`
	Env             string        `env:"HUB_ENV" envDefault:"development"`
	DefaultLocale   string        `env:"HUB_DEFAULT_LOCALE" envDefault:"en"`
	TranslationsDir string        `env:"HUB_TRANSLATIONS_DIR"`
	MessagesDir     string        `env:"HUB_MESSAGES_DIR"`
	CacheTTL        time.Duration `env:"HUB_CACHE_TTL" envDefault:"10m"`
	ShutdownTimeout time.Duration `env:"HUB_SHUTDOWN_TIMEOUT" envDefault:"15s"`
	RedisURL        string        `env:"REDIS_URL"`

	DB  db.Config
	Log logger.Config
}

// Production reports whether HUB_ENV is "production". Outside production
// the client polls for dictionary changes.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return parse(env.Options{Environment: env.ToMap(os.Environ())})
}

// FromMap parses settings from vars only. Used by tests and tooling.
func FromMap(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if !i18n.Supported(cfg.DefaultLocale) {
		return Config{}, fmt.Errorf("parse env: HUB_DEFAULT_LOCALE %q: %w", cfg.DefaultLocale, i18n.ErrUnknownLocale)
	}
	return cfg, nil
}
