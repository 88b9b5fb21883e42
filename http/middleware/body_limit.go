package middleware

import "net/http"

// LimitBody caps reading the request body at maxBytes.
// Reading past the cap fails with an *http.MaxBytesError,
// which req.FromHTTP reports as a 422 *req.Error.
//
// If maxBytes is not positive, NoopAdapter returns and this middleware does nothing.
func LimitBody(maxBytes int64) Adapter {
	if maxBytes <= 0 {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			h.ServeHTTP(w, r)
		})
	}
}
