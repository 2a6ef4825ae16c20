package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/httperr"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/middleware"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

type panickingDicts struct{}

func (panickingDicts) Dictionary(context.Context, string) (i18n.Dictionary, error) {
	panic("dictionary decode")
}

func chain(dicts middleware.Dictionaries, h http.Handler) http.Handler {
	mws := middlewares(dicts, slog.New(slog.DiscardHandler))
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestMiddlewares(t *testing.T) {
	t.Parallel()

	t.Run("panic while resolving locale is recovered", func(t *testing.T) {
		t.Parallel()

		called := false
		h := chain(panickingDicts{}, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))

		rec := httptest.NewRecorder()
		require.NotPanics(t, func() {
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/translations/get?lang=en", nil))
		})
		assert.False(t, called)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

		var body httperr.Body
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Error)
	})

	t.Run("handler sees request locale", func(t *testing.T) {
		t.Parallel()

		dicts := dictFunc(func(string) i18n.Dictionary { return i18n.Dictionary{} })
		var locale string
		h := chain(dicts, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			if p, ok := i18n.FromContext(r.Context()); ok {
				locale = p.Locale()
			}
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?lang=zh-CN", nil))
		assert.Equal(t, "zh-CN", locale)
		assert.Equal(t, "zh-CN", rec.Header().Get("Content-Language"))
	})
}

type dictFunc func(locale string) i18n.Dictionary

func (f dictFunc) Dictionary(_ context.Context, locale string) (i18n.Dictionary, error) {
	return f(locale), nil
}
