package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/argmine/argmine/pkg/ctxutil"
)

// panicBody matches the {"detail": ...} error shape of the REST handlers.
const panicBody = `{"detail":"internal server error"}` + "\n"

// Recovery turns a panic in a handler, for instance a feature extractor
// indexing past its sentence, into a logged 500 response.
func Recovery(logger *slog.Logger) Middleware {
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
				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("path", r.URL.Path),
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
					slog.String("stack", string(debug.Stack())),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(panicBody))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
