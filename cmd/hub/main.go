// Command hub serves the launcher's translation dictionaries.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/config"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/dictionaries"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/handlers"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/httperr"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/middleware"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/server"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/store"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/translations"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/cache"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/db"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/logger"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New(cfg.Log, os.Stdout,
		middleware.RequestIDExtractor(),
		middleware.LocaleExtractor(),
	)

	err = run(cfg, log)
	logger.Flush(2 * time.Second)
	if err != nil {
		log.Error("hub stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx := context.Background()

	catalog, err := dictionaries.Load(cfg.TranslationsDir, cfg.MessagesDir)
	if err != nil {
		return err
	}
	for _, locale := range catalog.Locales() {
		if missing := catalog.Missing(i18n.DefaultLocale, locale); len(missing) > 0 {
			log.Warn("locale is missing translations",
				slog.String("locale", locale),
				slog.Int("count", len(missing)),
				slog.Any("paths", missing),
			)
		}
	}

	opts := []server.Option{
		server.WithAddress(cfg.Addr),
		server.WithLogger(log),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	}

	var st store.Store = store.NewMemory()
	if cfg.DB.Enabled() {
		pool, err := db.Connect(ctx, cfg.DB, log)
		if err != nil {
			return err
		}
		if err := db.Migrate(ctx, pool, store.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
			pool.Close()
			return err
		}
		st = store.NewPostgres(pool)
		opts = append(opts,
			server.WithReadinessCheck("postgres", db.Healthcheck(pool)),
			server.WithShutdownHook(db.Shutdown(pool)),
		)
	} else {
		log.Info("DATABASE_URL not set, overrides are kept in memory")
	}

	svcOpts := []translations.Option{translations.WithTTL(cfg.CacheTTL), translations.WithLogger(log)}
	if cfg.RedisURL != "" {
		client, err := redis.Open(ctx, cfg.RedisURL, redis.WithLogger(log))
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, translations.WithCache(
			cache.NewRedis[[]byte](client, cache.Raw{}, cache.WithPrefix("hub:translations"), cache.WithTTL(cfg.CacheTTL)),
		))
		opts = append(opts,
			server.WithReadinessCheck("redis", redis.Healthcheck(client)),
			server.WithShutdownHook(redis.Shutdown(client)),
		)
	}

	svc := translations.New(catalog, st, svcOpts...)
	opts = append(opts,
		server.WithReadinessCheck("catalog", func(ctx context.Context) error {
			_, err := svc.Payload(ctx, cfg.DefaultLocale)
			return err
		}),
		server.WithMiddleware(middlewares(svc, log)...),
		server.WithRoutes(handlers.NewTranslations(svc, log)),
		server.WithNotFoundHandler(func(w http.ResponseWriter, r *http.Request) {
			httperr.Write(w, r, httperr.ErrNotFound)
		}),
		server.WithShutdownHook(func(context.Context) error { return svc.Close() }),
	)

	return server.New(opts...).Run()
}

// middlewares is the request chain. Recover sits before Locale so a panic
// while loading the request dictionary still becomes a 500.
func middlewares(dicts middleware.Dictionaries, log *slog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recover(log),
		middleware.Locale(dicts, log),
		middleware.Timeout(middleware.DefaultTimeout),
	}
}
