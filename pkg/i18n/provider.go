package i18n

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/number"
)

// DefaultPollInterval is how often a provider with dev reload enabled
// refreshes its dictionary.
const DefaultPollInterval = 5 * time.Second

// snapshot is the provider state. A snapshot is never modified after it has
// been published; every change stores a new one.
type snapshot struct {
	dict      Dictionary
	formatter *Formatter
	region    string
}

// Provider binds a dictionary, a locale and a region together and exposes
// translation and formatting helpers against them.
//
// The dictionary can be replaced wholesale with RefreshTranslations and the
// region switched with SetRegion. Readers always see a consistent snapshot;
// all methods are safe for concurrent use.
type Provider struct {
	state        atomic.Pointer[snapshot]
	fetcher      Fetcher
	logger       *slog.Logger
	scheduler    *cron.Cron
	done         chan struct{}
	locale       string
	initRegion   string
	pollInterval time.Duration
	mu           sync.Mutex
	devReload    bool
	stopped      bool
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithRegion sets the initial region. It must be listed for the locale.
func WithRegion(region string) ProviderOption {
	return func(p *Provider) {
		p.initRegion = region
	}
}

// WithFetcher sets the source used by RefreshTranslations.
func WithFetcher(f Fetcher) ProviderOption {
	return func(p *Provider) {
		p.fetcher = f
	}
}

// WithLogger sets the logger for refresh failures. Logs are discarded by default.
func WithLogger(l *slog.Logger) ProviderOption {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(d time.Duration) ProviderOption {
	return func(p *Provider) {
		if d > 0 {
			p.pollInterval = d
		}
	}
}

// WithDevReload enables the background refresh started by Start.
// Production builds leave it off.
func WithDevReload(enabled bool) ProviderOption {
	return func(p *Provider) {
		p.devReload = enabled
	}
}

// NewProvider creates a provider for lang seeded with dict.
//
// Without WithRegion the locale's default region is used, so
// NewProvider("en", d) starts in region "US".
func NewProvider(lang string, dict Dictionary, opts ...ProviderOption) (*Provider, error) {
	if lang == "" {
		return nil, ErrEmptyLocale
	}

	p := &Provider{
		locale:       lang,
		logger:       slog.New(slog.DiscardHandler),
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	region := p.initRegion
	if region == "" {
		region = DefaultRegion(lang)
	} else if !p.validRegion(region) {
		return nil, fmt.Errorf("%w: %q for %q", ErrUnknownRegion, region, lang)
	}

	if dict == nil {
		dict = Dictionary{}
	}
	p.state.Store(&snapshot{
		dict:      dict,
		region:    region,
		formatter: NewFormatter(lang, region),
	})
	return p, nil
}

// MustProvider is like NewProvider but panics on error.
func MustProvider(lang string, dict Dictionary, opts ...ProviderOption) *Provider {
	p, err := NewProvider(lang, dict, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// validRegion checks the region table for known locales. Locales outside
// the table accept any well-formed region code.
func (p *Provider) validRegion(region string) bool {
	if Supported(p.locale) {
		return ValidRegion(p.locale, region)
	}
	_, err := language.ParseRegion(region)
	return err == nil
}

func (p *Provider) current() *snapshot {
	return p.state.Load()
}

// Locale returns the provider's locale.
func (p *Provider) Locale() string {
	return p.locale
}

// Region returns the active region.
func (p *Provider) Region() string {
	return p.current().region
}

// Regions lists the regions the active locale can switch to.
func (p *Provider) Regions() []string {
	return RegionsFor(p.locale)
}

// Dictionary returns the active dictionary snapshot. Callers must not
// modify it.
func (p *Provider) Dictionary() Dictionary {
	return p.current().dict
}

// Formatter returns the formatter for the active locale and region.
func (p *Provider) Formatter() *Formatter {
	return p.current().formatter
}

// T translates key against the active dictionary.
func (p *Provider) T(key string, opts ...Option) string {
	return Translate(p.current().dict, key, opts...)
}

// TPlural translates key choosing the plural form of count for the
// provider's locale.
func (p *Provider) TPlural(key string, count int, opts ...Option) string {
	return TranslatePlural(p.current().dict, key, count, p.locale, opts...)
}

// TContext translates key using the contextName branch when it exists.
func (p *Provider) TContext(key, contextName string, opts ...Option) string {
	return TranslateContext(p.current().dict, key, contextName, opts...)
}

func (p *Provider) FormatNumber(n float64, opts ...number.Option) string {
	return p.current().formatter.FormatNumber(n, opts...)
}

func (p *Provider) FormatPercent(n float64, opts ...number.Option) string {
	return p.current().formatter.FormatPercent(n, opts...)
}

func (p *Provider) FormatCurrency(amount float64, code string) string {
	return p.current().formatter.FormatCurrency(amount, code)
}

func (p *Provider) FormatDate(t time.Time) string {
	return p.current().formatter.FormatDate(t)
}

func (p *Provider) FormatTime(t time.Time) string {
	return p.current().formatter.FormatTime(t)
}

func (p *Provider) FormatDateTime(t time.Time) string {
	return p.current().formatter.FormatDateTime(t)
}

// SetRegion switches the formatting region. The dictionary is kept.
func (p *Provider) SetRegion(region string) error {
	if !p.validRegion(region) {
		return fmt.Errorf("%w: %q for %q", ErrUnknownRegion, region, p.locale)
	}
	formatter := NewFormatter(p.locale, region)
	for {
		cur := p.current()
		next := &snapshot{dict: cur.dict, region: region, formatter: formatter}
		if p.state.CompareAndSwap(cur, next) {
			return nil
		}
	}
}

// RefreshTranslations fetches the dictionary for the current locale and
// region and replaces the active one on success.
//
// On failure the error is logged and returned, and the previous dictionary
// stays in place.
func (p *Provider) RefreshTranslations(ctx context.Context) error {
	if p.fetcher == nil {
		return ErrNoFetcher
	}

	region := p.Region()
	dict, err := p.fetcher.Fetch(ctx, p.locale, region)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to refresh translations",
			slog.String("locale", p.locale),
			slog.String("region", region),
			slog.String("error", err.Error()),
		)
		return err
	}
	if dict == nil {
		dict = Dictionary{}
	}

	for {
		cur := p.current()
		next := &snapshot{dict: dict, region: cur.region, formatter: cur.formatter}
		if p.state.CompareAndSwap(cur, next) {
			break
		}
	}
	p.logger.DebugContext(ctx, "translations refreshed",
		slog.String("locale", p.locale),
		slog.Int("namespaces", len(dict)),
	)
	return nil
}

// Start schedules RefreshTranslations every poll interval until ctx is done
// or Stop is called. Without dev reload Start does nothing.
// Calling Start on a running provider is a no-op.
func (p *Provider) Start(ctx context.Context) error {
	if !p.devReload {
		return nil
	}
	if p.fetcher == nil {
		return ErrNoFetcher
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return ErrProviderClosed
	}
	if p.scheduler != nil {
		return nil
	}

	logger := cronLogger{p.logger}
	c := cron.New(cron.WithLogger(logger), cron.WithChain(cron.SkipIfStillRunning(logger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", p.pollInterval), func() {
		refreshCtx, cancel := context.WithTimeout(ctx, p.pollInterval)
		defer cancel()
		_ = p.RefreshTranslations(refreshCtx)
	}); err != nil {
		return fmt.Errorf("schedule translation refresh: %w", err)
	}
	p.scheduler = c
	p.done = make(chan struct{})
	c.Start()

	go func(done <-chan struct{}) {
		select {
		case <-ctx.Done():
			p.Stop()
		case <-done:
		}
	}(p.done)

	p.logger.InfoContext(ctx, "translation dev reload started",
		slog.String("locale", p.locale),
		slog.Duration("interval", p.pollInterval),
	)
	return nil
}

// Stop cancels the background refresh and waits for a running refresh to
// finish. It is safe to call more than once.
func (p *Provider) Stop() {
	p.mu.Lock()
	c := p.scheduler
	p.scheduler = nil
	p.stopped = true
	if p.done != nil {
		close(p.done)
		p.done = nil
	}
	p.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// cronLogger routes scheduler messages to slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error(msg, append(keysAndValues, "error", err)...)
}
