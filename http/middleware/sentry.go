package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/typed"
)

// ReportPanic recovers panics in the next http.Handler, reporting them to Sentry
// and responding with http.StatusInternalServerError.
//
// In development, ReportPanic returns NoopAdapter and panics are not recovered.
func ReportPanic(env typed.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		reporting := sh.Handle(h)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			reporting.ServeHTTP(w, r)
		})
	}
}
