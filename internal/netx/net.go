// Package netx holds small networking helpers for the client's local
// listener.
package netx

import (
	"context"
	"fmt"
	"net"
	"net/url"
)

// Listen binds a TCP listener on addr. Port 0 picks a free port; use
// BaseURL to learn the result.
func Listen(ctx context.Context, addr string) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

// BaseURL returns the http:// URL a browser on this host uses to reach ln.
// Wildcard binds are reported as 127.0.0.1.
func BaseURL(ln net.Listener) string {
	host, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		return "http://" + ln.Addr().String()
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host = "127.0.0.1"
	}
	u := url.URL{Scheme: "http", Host: net.JoinHostPort(host, port)}
	return u.String()
}
