package api

import (
	"net/http"
	"strings"

	"github.com/bookstoreapp/bookstore-server/internal/http/response"
)

// limitWrites rate limits state-changing requests per client IP. Reads are
// never limited. A nil limiter disables the check.
func (s *Server) limitWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.writeLimiter == nil || !isWrite(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		key := getClientIP(r)
		if !s.writeLimiter.Allow(key) {
			s.requestLogger(r.Context()).Warn("rate limit exceeded",
				"ip", key,
				"path", r.URL.Path,
			)
			if strings.HasPrefix(r.URL.Path, "/api/") {
				response.TooManyRequests(w, "Too many requests. Please try again later.", s.logger)
				return
			}
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// getClientIP extracts the client IP from the request. chi's RealIP
// middleware has already folded X-Forwarded-For and X-Real-IP into
// RemoteAddr.
func getClientIP(r *http.Request) string {
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i > 0 && !strings.HasSuffix(ip, "]") {
		return ip[:i]
	}
	return ip
}
