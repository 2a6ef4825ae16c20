package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime"

	"github.com/ElementAstro/hello-element-astro-launcher-sub001/internal/httperr"
)

const stackSize = 4096

// Recover turns a handler panic into a logged 500 JSON error.
// http.ErrAbortHandler is re-panicked so net/http can drop the connection.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := make([]byte, stackSize)
				stack = stack[:runtime.Stack(stack, false)]
				log.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(stack)),
				)
				httperr.Write(w, r, httperr.ErrInternal)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
