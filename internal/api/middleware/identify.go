package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ClientIDHeader lets API consumers name themselves for rate limiting.
const ClientIDHeader = "X-Client-ID"

const maxClientIDLen = 64

// Identify resolves the caller identity from the X-Client-ID header, falling
// back to the remote host, and stores it in the request context.
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
		if id == "" || len(id) > maxClientIDLen {
			id = remoteHost(r.RemoteAddr)
		}
		if id != "" {
			r = r.WithContext(SetClientID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
