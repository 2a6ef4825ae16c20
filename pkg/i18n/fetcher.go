package i18n

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// TranslationsPath is the endpoint that serves full dictionaries.
const TranslationsPath = "/api/translations/get"

// Fetcher loads the full dictionary for a locale and region.
type Fetcher interface {
	Fetch(ctx context.Context, locale, region string) (Dictionary, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, locale, region string) (Dictionary, error)

// Fetch calls fn.
func (fn FetcherFunc) Fetch(ctx context.Context, locale, region string) (Dictionary, error) {
	return fn(ctx, locale, region)
}

// HTTPFetcher fetches dictionaries from the translations endpoint:
//
//	GET {base}/api/translations/get?lang=<locale>&region=<region>&t=<unix ms>
//
// Any non-2xx status is a failure.
type HTTPFetcher struct {
	client  *http.Client
	now     func() time.Time
	baseURL string
}

// HTTPFetcherOption configures an HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithClock replaces the clock used for the cache-busting parameter.
func WithClock(now func() time.Time) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		if now != nil {
			f.now = now
		}
	}
}

// NewHTTPFetcher returns a fetcher for the hub at baseURL, e.g.
// "http://localhost:8080".
func NewHTTPFetcher(baseURL string, opts ...HTTPFetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch requests and decodes the dictionary for locale and region.
func (f *HTTPFetcher) Fetch(ctx context.Context, locale, region string) (Dictionary, error) {
	q := url.Values{}
	q.Set("lang", locale)
	if region != "" {
		q.Set("region", region)
	}
	q.Set("t", strconv.FormatInt(f.now().UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+TranslationsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	var dict Dictionary
	if err := json.NewDecoder(resp.Body).Decode(&dict); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrFetchFailed, err)
	}
	return dict, nil
}

var _ Fetcher = (*HTTPFetcher)(nil)
