package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed/http/middleware"
)

func TestCORSNoBase(t *testing.T) {
	// Act
	actual := middleware.CORS("")

	// Assert
	require.Equal(t, fmt.Sprintf("%p", middleware.NoopAdapter), fmt.Sprintf("%p", actual))
}

func TestCORS(t *testing.T) {
	base := "https://widgets.example.com"

	tcs := []struct {
		name      string
		method    string
		origin    string
		reqMethod string
		called    bool
		allowed   string
	}{
		{"Same-Origin", http.MethodPost, "", "", true, ""},
		{"Allowed", http.MethodPost, base, "", true, base},
		{"Disallowed", http.MethodPost, "https://evil.example.com", "", true, ""},
		{"Preflight", http.MethodOptions, base, http.MethodPatch, false, base},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var called bool
			h := middleware.CORS(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			r := httptest.NewRequest(tc.method, "/widgets", nil)
			if tc.origin != "" {
				r.Header.Set("Origin", tc.origin)
			}
			if tc.reqMethod != "" {
				r.Header.Set("Access-Control-Request-Method", tc.reqMethod)
			}

			w := httptest.NewRecorder()

			// Act
			h.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.called, called)
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.allowed, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
