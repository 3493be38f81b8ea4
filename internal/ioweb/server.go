package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/gn"
)

// Run serves the API on port until ctx is canceled, then shuts the
// server down gracefully.
func Run(ctx context.Context, q bosdb.Query, port int) error {
	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(q),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("HTTP server started", "addr", addr)
	gn.Info("Serving catalog API on <em>http://localhost%s</em>", addr)

	select {
	case err := <-errCh:
		return ServerError(addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return ServerError(addr, err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return ServerError(addr, err)
	}
	slog.Info("HTTP server stopped", "addr", addr)
	return nil
}
