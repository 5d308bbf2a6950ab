package middleware

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/phrazzld/signup-api/internal/platform/logger"
)

// CORS policy for the browser front end.
const (
	AllowedMethods = "GET,POST,PUT,DELETE,PATCH"
	AllowedHeaders = "Content-Type, Authorization"
	corsMaxAge     = "600"
)

// NewCORSMiddleware answers cross-origin requests from the allowed origins.
// An entry matches either the full origin ("http://localhost:5173") or its
// hostname ("localhost"), case-insensitively; "*" allows any origin.
// Preflight OPTIONS requests are answered with 204 and never reach next.
// Disallowed origins are logged at debug level and onReject, if non-nil, is
// called once per rejected request.
func NewCORSMiddleware(allowed []string, onReject func()) func(http.Handler) http.Handler {
	trim := func(s string) string { return strings.TrimRight(strings.TrimSpace(s), "/") }

	alist := make([]string, 0, len(allowed))
	for _, v := range allowed {
		if v = trim(v); v != "" {
			alist = append(alist, strings.ToLower(v))
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := trim(r.Header.Get("Origin"))

			h := w.Header()
			h.Add("Vary", "Origin")
			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")

			if origin != "" {
				if originAllowed(alist, origin) {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Set("Access-Control-Allow-Methods", AllowedMethods)
					h.Set("Access-Control-Allow-Headers", AllowedHeaders)
					h.Set("Access-Control-Expose-Headers", "X-Trace-ID")
					h.Set("Access-Control-Max-Age", corsMaxAge)
				} else {
					logger.FromContextOrDefault(r.Context(), slog.Default()).
						Debug("cross-origin request rejected", "origin", origin)
					if onReject != nil {
						onReject()
					}
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(alist []string, origin string) bool {
	lower := strings.ToLower(origin)

	host := ""
	if u, err := url.Parse(lower); err == nil {
		host = u.Hostname()
	}

	for _, a := range alist {
		if a == "*" || a == lower || (host != "" && a == host) {
			return true
		}
	}
	return false
}
