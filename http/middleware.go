package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
)

// FaviconPath is the only request path the favicon stage intercepts.
const FaviconPath = "/favicon.ico"

// faviconMaxAge is the client cache lifetime for icon responses, in seconds.
const faviconMaxAge = 86400

// RequestID assigns a fresh UUID to every request and exposes it in the
// X-Request-Id response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		r.Header.Set("X-Request-Id", id)
		w.Header().Set("X-Request-Id", id)

		next.ServeHTTP(w, r)
	})
}

// Favicon creates middleware that intercepts exactly FaviconPath and serves
// the given icon bytes. Every other request passes through untouched.
// Registered ahead of the access logger, it keeps icon requests out of the
// log entirely.
func Favicon(icon []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != FaviconPath {
				next.ServeHTTP(w, r)
				return
			}

			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				w.Header().Set("Allow", "GET, HEAD")
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}

			w.Header().Set("Content-Type", "image/x-icon")
			w.Header().Set("Content-Length", strconv.Itoa(len(icon)))
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(faviconMaxAge))

			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusOK)
				return
			}

			_, _ = w.Write(icon)
		})
	}
}

// AccessLog creates middleware that appends one line per request to the
// given stream:
//
//	METHOD /path?query status elapsed ms - bytes
//
// Requests intercepted by stages registered ahead of it (favicon hits) are
// never logged.
func AccessLog(out io.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, r)

			_, _ = fmt.Fprintf(out, "%s %s %d %.3f ms - %d\n",
				r.Method,
				r.URL.RequestURI(),
				m.Code,
				float64(m.Duration.Microseconds())/1000.0,
				m.Written,
			)
		})
	}
}
