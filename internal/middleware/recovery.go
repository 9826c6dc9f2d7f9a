package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicResponder writes the error response after a recovered panic.
type PanicResponder func(w http.ResponseWriter, r *http.Request, cause any)

// Recovery converts handler panics into a logged response instead of letting
// them take down the connection.
func Recovery(logger *slog.Logger, respond PanicResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				cause := recover()
				if cause == nil {
					return
				}
				logger.Error("recovered from handler panic",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("cause", cause),
					slog.String("stack", string(debug.Stack())),
				)
				respond(w, r, cause)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
