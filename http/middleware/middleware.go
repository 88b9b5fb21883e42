package middleware

import (
	"net/http"
)

// An Adapter wraps an http.Handler with behavior run around it.
type Adapter func(http.Handler) http.Handler

// Chain wraps handler so the adapters run in the order given, the first outermost.
// A nil Adapter is skipped.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	for i := len(adapters) - 1; i >= 0; i-- {
		if adapters[i] == nil {
			continue
		}

		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes the http.Handler through untouched.
// Middleware constructors return it when configured to do nothing.
func NoopAdapter(h http.Handler) http.Handler { return h }
