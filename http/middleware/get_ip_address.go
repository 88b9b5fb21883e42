package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/typed"
)

// UnknownIPAddress stands in for a client address no header or connection reveals.
const UnknownIPAddress = "0.0.0.0"

// forwardingHeaders lists, in order of preference, the headers proxies set with the client address.
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic are IANA reserved IPv4 ranges netip.Addr.IsPrivate does not cover.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stashes the client IP address GetIPAddress finds
// in the *http.Request.Context under typed.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), typed.IpAddrKey, GetIPAddress(r))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIPAddress finds the client IP address of r.
//
// Forwarding headers are walked from right to left,
// the first public address being the one right before our proxy.
// Without one, GetIPAddress uses the address of the connection,
// falling back to UnknownIPAddress.
func GetIPAddress(r *http.Request) string {
	for _, key := range forwardingHeaders {
		addrs := strings.Split(r.Header.Get(key), ",")
		for i := len(addrs) - 1; i >= 0; i-- {
			if addr, ok := publicAddr(addrs[i]); ok {
				return addr.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}

	return UnknownIPAddress
}

// publicAddr parses s, reporting whether it is a globally routable address.
func publicAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}

	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return netip.Addr{}, false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return netip.Addr{}, false
		}
	}

	return addr, true
}
