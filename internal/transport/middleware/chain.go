package middleware

import (
	"log/slog"
	"net/http"

	"github.com/argmine/argmine/internal/config"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that the first one sees the request first.
// Nil entries are skipped, which lets optional layers such as a disabled
// CORS policy drop out of the stack.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] != nil {
				h = mws[i](h)
			}
		}
		return h
	}
}

// Service is the stack argmined puts in front of its router. The request id
// is assigned before logging so every access line carries it, and recovery
// sits inside the logger so a panicking /predict is still logged as a 500.
func Service(logger *slog.Logger, cors config.CORSConfig) Middleware {
	return Chain(
		RequestID,
		Logger(logger),
		Recovery(logger),
		CORS(cors),
	)
}
