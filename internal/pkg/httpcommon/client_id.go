package httpcommon

import (
	"net"
	"net/http"
)

// ClientIDFromRequest identifies the caller for request logs: the
// X-Client-ID header when present, the remote host otherwise.
func ClientIDFromRequest(r *http.Request) string {
	if id := r.Header.Get("X-Client-ID"); id != "" {
		return id
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
