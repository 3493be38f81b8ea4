package ioweb

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id of a request in responses.
const RequestIDHeader = "X-Request-Id"

// requestID gives a UUID to requests that come without an id and
// echoes the id back. chi's RequestID, next in the chain, keeps it in
// the context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(middleware.RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// RequestIDFrom returns the id given to the request by the router.
func RequestIDFrom(ctx context.Context) string {
	return middleware.GetReqID(ctx)
}

// logRequests writes one log record per request.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", gnfmt.TimeString(time.Since(start).Seconds()),
			"request_id", RequestIDFrom(r.Context()),
		)
	})
}
