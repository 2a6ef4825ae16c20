// Package httperr renders hub API errors as localized JSON.
package httperr

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/pkg/i18n"
)

// Error is an API failure. Key names a message in the errors namespace of
// the request's dictionary; Message is used when the key is missing.
type Error struct {
	Err     error
	Params  i18n.Params
	Key     string
	Message string
	Code    int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

type Option func(*Error)

func WithParams(p i18n.Params) Option {
	return func(e *Error) { e.Params = p }
}

// WithCause keeps the underlying error for logs. It is never sent to clients.
func WithCause(err error) Option {
	return func(e *Error) { e.Err = err }
}

func New(code int, key, message string, opts ...Option) *Error {
	e := &Error{Code: code, Key: key, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	ErrInternal    = New(http.StatusInternalServerError, "errors.internal", "internal server error")
	ErrNotFound    = New(http.StatusNotFound, "errors.notFound", "not found")
	ErrInvalidBody = New(http.StatusBadRequest, "errors.invalidBody", "request body is not a valid dictionary")
)

// Body is the JSON error shape.
type Body struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Write renders err. Anything that is not an *Error becomes a 500.
// The message is translated with the provider in the request context.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	var he *Error
	if !errors.As(err, &he) {
		he = ErrInternal
	}

	msg := i18n.T(r.Context(), he.Key,
		i18n.WithDefault(he.Message),
		i18n.WithParams(he.Params),
	)
	JSON(w, he.Code, Body{Error: msg, Code: he.Key})
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
