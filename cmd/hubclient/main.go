// Command hubclient fetches a dictionary from a running hub and prints
// translations through an i18n.Provider. With -watch it keeps polling the
// hub so edits to overrides show up without restarting.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/config"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/logger"
)

type options struct {
	url      string
	lang     string
	region   string
	level    string
	interval time.Duration
	watch    bool
	keys     []string
}

func main() {
	var o options
	flag.StringVar(&o.url, "url", "http://localhost:8080", "hub base URL")
	flag.StringVar(&o.lang, "lang", i18n.DefaultLocale, "locale to fetch")
	flag.StringVar(&o.region, "region", "", "formatting region (default: first region of the locale)")
	flag.StringVar(&o.level, "log-level", "warn", "log level")
	flag.DurationVar(&o.interval, "interval", i18n.DefaultPollInterval, "poll interval with -watch")
	flag.BoolVar(&o.watch, "watch", false, "keep polling the hub (development only)")
	flag.Parse()
	o.keys = flag.Args()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logger.New(logger.Config{Level: o.level, Format: "text"}, os.Stderr)
	if cfg, err := config.Load(); err == nil && cfg.Production() && o.watch {
		log.Warn("dev reload is disabled when HUB_ENV=production")
		o.watch = false
	}
	if err := run(ctx, o, os.Stdout, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, out io.Writer, log *slog.Logger) error {
	p, err := i18n.NewProvider(o.lang, nil,
		i18n.WithRegion(o.region),
		i18n.WithFetcher(i18n.NewHTTPFetcher(o.url)),
		i18n.WithLogger(log),
		i18n.WithPollInterval(o.interval),
		i18n.WithDevReload(o.watch),
	)
	if err != nil {
		return err
	}
	if err := p.RefreshTranslations(ctx); err != nil {
		return err
	}
	report(out, p, o.keys)

	if !o.watch {
		return nil
	}
	if o.interval <= 0 {
		o.interval = i18n.DefaultPollInterval
	}
	if err := p.Start(ctx); err != nil {
		return err
	}
	defer p.Stop()

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			report(out, p, o.keys)
		}
	}
}

// report writes the requested keys, or a summary of the dictionary.
func report(out io.Writer, p *i18n.Provider, keys []string) {
	if len(keys) == 0 {
		d := p.Dictionary()
		fmt.Fprintf(out, "%s-%s: %d namespaces, %d paths\n", p.Locale(), p.Region(), len(d), len(d.Paths()))
		fmt.Fprintf(out, "  %s\n", p.TPlural("download.progress", 3))
		fmt.Fprintf(out, "  %s  %s  %s\n",
			p.FormatNumber(1234567.891),
			p.FormatCurrency(49.9, ""),
			p.FormatDate(time.Now()),
		)
		return
	}
	for _, key := range keys {
		fmt.Fprintf(out, "%s = %s\n", key, p.T(key))
	}
}
