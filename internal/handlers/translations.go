// Package handlers exposes the translation service over HTTP.
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/httperr"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/store"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/translations"
	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

// maxBodySize bounds override uploads.
const maxBodySize = 1 << 20

type Translations struct {
	svc *translations.Service
	log *slog.Logger
}

func NewTranslations(svc *translations.Service, log *slog.Logger) *Translations {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Translations{svc: svc, log: log}
}

func (h *Translations) Routes(r chi.Router) {
	r.Route("/api/translations", func(r chi.Router) {
		r.Get("/get", h.get)
		r.Get("/locales", h.locales)
		r.Get("/missing", h.missing)
		r.Put("/overrides/{lang}", h.putOverrides)
		r.Put("/overrides/{lang}/{namespace}", h.putOverride)
		r.Delete("/overrides/{lang}/{namespace}", h.deleteOverride)
	})
}

// get serves GET /api/translations/get?lang=&region=&t=. The t parameter
// only defeats intermediary caches and is ignored.
func (h *Translations) get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lang := q.Get("lang")
	if err := checkLocale(lang, q.Get("region")); err != nil {
		httperr.Write(w, r, err)
		return
	}

	data, err := h.svc.Payload(r.Context(), lang)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Translations) locales(w http.ResponseWriter, _ *http.Request) {
	httperr.JSON(w, http.StatusOK, h.svc.Locales())
}

type missingResponse struct {
	Locale  string   `json:"locale"`
	Base    string   `json:"base"`
	Message string   `json:"message"`
	Missing []string `json:"missing"`
}

func (h *Translations) missing(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if err := checkLocale(lang, ""); err != nil {
		httperr.Write(w, r, err)
		return
	}

	paths, err := h.svc.Missing(r.Context(), lang)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n := len(paths)
	opts := []i18n.Option{i18n.WithDefault("{{Count}} missing"), i18n.WithParams(i18n.Params{"Count": n})}
	msg := i18n.TranslatePlural(nil, "errors.missingPaths", n, i18n.DefaultLocale, opts...)
	if p, ok := i18n.FromContext(r.Context()); ok {
		msg = p.TPlural("errors.missingPaths", n, opts...)
	}

	httperr.JSON(w, http.StatusOK, missingResponse{
		Locale:  lang,
		Base:    i18n.DefaultLocale,
		Message: msg,
		Missing: paths,
	})
}

func (h *Translations) putOverride(w http.ResponseWriter, r *http.Request) {
	lang, ns := chi.URLParam(r, "lang"), chi.URLParam(r, "namespace")

	var raw any
	if err := decodeBody(w, r, &raw); err != nil {
		httperr.Write(w, r, err)
		return
	}
	v, err := i18n.ValueOf(raw)
	if err != nil {
		httperr.Write(w, r, httperr.New(http.StatusBadRequest, httperr.ErrInvalidBody.Key, httperr.ErrInvalidBody.Message, httperr.WithCause(err)))
		return
	}

	if err := h.svc.PutOverride(r.Context(), lang, ns, v); err != nil {
		h.fail(w, r, err, i18n.Params{"Lang": lang, "Namespace": ns})
		return
	}
	h.log.InfoContext(r.Context(), "override stored", slog.String("locale", lang), slog.String("namespace", ns))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Translations) putOverrides(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	var d i18n.Dictionary
	if err := decodeBody(w, r, &d); err != nil {
		httperr.Write(w, r, err)
		return
	}

	if err := h.svc.PutOverrides(r.Context(), lang, d); err != nil {
		h.fail(w, r, err, i18n.Params{"Lang": lang})
		return
	}
	h.log.InfoContext(r.Context(), "overrides stored", slog.String("locale", lang), slog.Any("namespaces", d.Namespaces()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Translations) deleteOverride(w http.ResponseWriter, r *http.Request) {
	lang, ns := chi.URLParam(r, "lang"), chi.URLParam(r, "namespace")

	if err := h.svc.DeleteOverride(r.Context(), lang, ns); err != nil {
		h.fail(w, r, err, i18n.Params{"Lang": lang, "Namespace": ns})
		return
	}
	h.log.InfoContext(r.Context(), "override deleted", slog.String("locale", lang), slog.String("namespace", ns))
	w.WriteHeader(http.StatusNoContent)
}

// fail maps service errors to API errors. Unknown errors are logged and
// reported as 500.
func (h *Translations) fail(w http.ResponseWriter, r *http.Request, err error, params ...i18n.Params) {
	var p i18n.Params
	if len(params) > 0 {
		p = params[0]
	}

	switch {
	case errors.Is(err, i18n.ErrUnknownLocale):
		httperr.Write(w, r, errUnsupportedLang(p["Lang"]))
	case errors.Is(err, store.ErrInvalidOverride):
		httperr.Write(w, r, httperr.New(http.StatusBadRequest, "errors.invalidOverride", "invalid override", httperr.WithCause(err)))
	case errors.Is(err, store.ErrNotFound):
		httperr.Write(w, r, httperr.New(http.StatusNotFound, "errors.overrideNotFound", "override not found", httperr.WithParams(p)))
	default:
		h.log.ErrorContext(r.Context(), "translations request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		httperr.Write(w, r, httperr.ErrInternal)
	}
}

func checkLocale(lang, region string) error {
	switch {
	case lang == "":
		return httperr.New(http.StatusBadRequest, "errors.missingLang", "lang is required")
	case !i18n.Supported(lang):
		return errUnsupportedLang(lang)
	case region != "" && !i18n.ValidRegion(lang, region):
		return httperr.New(http.StatusBadRequest, "errors.invalidRegion", "invalid region",
			httperr.WithParams(i18n.Params{"Lang": lang, "Region": region}))
	}
	return nil
}

func errUnsupportedLang(lang any) *httperr.Error {
	return httperr.New(http.StatusNotFound, "errors.unsupportedLang", "unsupported language",
		httperr.WithParams(i18n.Params{"Lang": lang}))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	data, err := io.ReadAll(body)
	if err != nil {
		return httperr.New(http.StatusRequestEntityTooLarge, httperr.ErrInvalidBody.Key, httperr.ErrInvalidBody.Message, httperr.WithCause(err))
	}
	if err := json.Unmarshal(data, v); err != nil {
		return httperr.New(http.StatusBadRequest, httperr.ErrInvalidBody.Key, httperr.ErrInvalidBody.Message, httperr.WithCause(err))
	}
	return nil
}
