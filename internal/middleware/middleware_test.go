package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/middleware"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/logger"
)

type dicts map[string]i18n.Dictionary

func (d dicts) Dictionary(_ context.Context, locale string) (i18n.Dictionary, error) {
	if dict, ok := d[locale]; ok {
		return dict, nil
	}
	return nil, errors.New("no dictionary")
}

var testDicts = dicts{
	"en": {"errors": i18n.Nested(map[string]i18n.Value{
		"internal": i18n.Leaf("Something went wrong"),
	})},
	"zh-CN": {"errors": i18n.Nested(map[string]i18n.Value{
		"internal": i18n.Leaf("服务器内部错误"),
	})},
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(middleware.RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.Equal(t, id, seen)
	})

	t.Run("upstream header kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "corr-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "corr-1", rec.Header().Get(middleware.RequestIDHeader))
		require.Equal(t, "corr-1", seen)
	})

	t.Run("custom generator", func(t *testing.T) {
		t.Parallel()
		h := middleware.RequestID(middleware.WithRequestIDGenerator(func() string { return "fixed" }))(http.NotFoundHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, "fixed", rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("missing outside middleware", func(t *testing.T) {
		t.Parallel()
		require.Empty(t, middleware.GetRequestID(context.Background()))
	})
}

func TestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{}, &buf, middleware.RequestIDExtractor())

	h := middleware.RequestID(middleware.WithRequestIDGenerator(func() string { return "req-9" }))(
		middleware.Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("missing"))
		})),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/translations/get", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "/api/translations/get", entry["path"])
	assert.EqualValues(t, 404, entry["status"])
	assert.EqualValues(t, 7, entry["bytes"])
	assert.Equal(t, "req-9", entry["request_id"])
}

func TestRecover(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.Locale(testDicts, logger.Nop())(
		middleware.Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("telescope offline")
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "zh-CN")
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { h.ServeHTTP(rec, req) })

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"error":"服务器内部错误","code":"errors.internal"}`, rec.Body.String())
	require.Contains(t, buf.String(), "telescope offline")
}

func TestRecover_AbortHandler(t *testing.T) {
	t.Parallel()

	h := middleware.Recover(logger.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	require.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLocale(t *testing.T) {
	t.Parallel()

	type seen struct {
		locale, region, text string
	}
	capture := func(out *seen) http.Handler {
		return http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			p, ok := i18n.FromContext(r.Context())
			if !ok {
				return
			}
			out.locale = p.Locale()
			out.region = p.Region()
			out.text = p.T("errors.internal")
		})
	}

	tests := []struct {
		name   string
		target string
		cookie string
		accept string
		want   seen
	}{
		{name: "default", target: "/", want: seen{"en", "US", "Something went wrong"}},
		{name: "accept language", target: "/", accept: "zh-CN,zh;q=0.9", want: seen{"zh-CN", "CN", "服务器内部错误"}},
		{name: "cookie beats header", target: "/", cookie: "zh-CN", accept: "en-GB", want: seen{"zh-CN", "CN", "服务器内部错误"}},
		{name: "query beats cookie", target: "/?lang=en&region=GB", cookie: "zh-CN", want: seen{"en", "GB", "Something went wrong"}},
		{name: "unsupported query ignored", target: "/?lang=fr", accept: "zh-CN", want: seen{"zh-CN", "CN", "服务器内部错误"}},
		{name: "invalid region ignored", target: "/?lang=zh-CN&region=US", want: seen{"zh-CN", "CN", "服务器内部错误"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got seen
			h := middleware.Locale(testDicts, logger.Nop())(capture(&got))

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middleware.LocaleCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.want, got)
			require.Equal(t, tt.want.locale, rec.Header().Get("Content-Language"))
		})
	}

	t.Run("dictionary error falls back", func(t *testing.T) {
		t.Parallel()
		var got seen
		h := middleware.Locale(dicts{}, logger.Nop())(capture(&got))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, "errors.internal", got.text)
	})
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	var deadline time.Time
	h := middleware.Timeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		deadline, _ = r.Context().Deadline()
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}
