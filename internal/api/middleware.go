package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/bookstoreapp/bookstore-server/internal/id"
	"github.com/bookstoreapp/bookstore-server/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const contextKeyRequestID contextKey = "request_id"

// requestID accepts a caller's X-Request-ID or mints one, echoes it on the
// response, and attaches a request-scoped logger to the context.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(RequestIDHeader)
		if rid == "" || len(rid) > 128 {
			rid = id.RequestID()
		}
		w.Header().Set(RequestIDHeader, rid)

		ctx := context.WithValue(r.Context(), contextKeyRequestID, rid)
		ctx = logger.NewContext(ctx, &logger.Logger{Logger: s.logger.With("request_id", rid)})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getRequestID returns the request id, or "" outside a request.
func getRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(contextKeyRequestID).(string); ok {
		return rid
	}
	return ""
}

// requestLogger returns the request-scoped logger.
func (s *Server) requestLogger(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, &logger.Logger{Logger: s.logger}).Logger
}

// accessLog writes one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		s.requestLogger(r.Context()).Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
