package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/typed"
	"github.com/xy-planning-network/typed/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		val      string
		remote   string
		expected string
	}{
		{"No-Match", "", "", "", middleware.UnknownIPAddress},
		{"Remote-Addr", "", "", "203.0.113.9:52100", "203.0.113.9"},
		{"Remote-Addr-No-Port", "", "", "203.0.113.9", "203.0.113.9"},
		{"Only-Private-IP", "X-Forwarded-For", "192.168.0.1", "", middleware.UnknownIPAddress},
		{"Only-Shared-IP", "X-Forwarded-For", "100.64.1.1", "", middleware.UnknownIPAddress},
		{"Only-Public-IP", "X-Forwarded-For", "1.1.1.1", "10.0.0.2:80", "1.1.1.1"},
		{"Garbage", "X-Forwarded-For", "not-an-ip", "", middleware.UnknownIPAddress},
		{"Get-Before-Proxy", "X-Real-Ip", "10.0.0.1, 1.1.1.1", "", "1.1.1.1"},
		{"Get-First-Public", "X-Real-Ip", "10.255.255.255,8.8.8.8,1.1.1.1,172.16.0.0", "", "1.1.1.1"},
		{"IPv6", "X-Forwarded-For", "2606:4700:4700::1111", "", "2606:4700:4700::1111"},
		{"IPv4-Mapped", "X-Forwarded-For", "::ffff:8.8.8.8", "", "8.8.8.8"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tc.remote
			if tc.header != "" {
				r.Header.Set(tc.header, tc.val)
			}

			// Act + Assert
			require.Equal(t, tc.expected, middleware.GetIPAddress(r))
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	// Arrange
	var got any
	h := middleware.InjectIPAddress()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Context().Value(typed.IpAddrKey)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-For", "8.8.8.8")

	// Act
	h.ServeHTTP(httptest.NewRecorder(), r)

	// Assert
	require.Equal(t, "8.8.8.8", got)
}
