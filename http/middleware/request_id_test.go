package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/middleware"
)

func TestRequestID(t *testing.T) {
	upstream := uuid.NewString()

	tcs := []struct {
		name   string
		header string
		reused bool
	}{
		{"Not-Set", "", false},
		{"Not-UUID", "not-a-uuid", false},
		{"Upstream", upstream, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if tc.header != "" {
				r.Header.Set(middleware.RequestIDHeader, tc.header)
			}

			var actual string

			// Act
			middleware.RequestID()(http.HandlerFunc(func(wx http.ResponseWriter, rx *http.Request) {
				val, ok := rx.Context().Value(typed.RequestIDKey).(string)
				require.True(t, ok)
				actual = val
			})).ServeHTTP(w, r)

			// Assert
			_, err := uuid.Parse(actual)
			require.Nil(t, err)
			require.Equal(t, actual, w.Header().Get(middleware.RequestIDHeader))
			if tc.reused {
				require.Equal(t, tc.header, actual)
			} else {
				require.NotEqual(t, tc.header, actual)
			}
		})
	}
}
