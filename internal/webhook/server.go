package webhook

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ServerConfig captures the settings for serving the webhook.
type ServerConfig struct {
	Addr    string
	Handler http.Handler
}

// Serve runs the HTTP server until ctx is canceled, then shuts down
// gracefully so in-flight turns finish.
func Serve(ctx context.Context, cfg ServerConfig) error {
	if ctx == nil {
		return errors.New("webhook: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("webhook: addr is required")
	}
	if cfg.Handler == nil {
		return errors.New("webhook: handler is required")
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cfg.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		err := <-errCh
		if errors.Is(err, http.ErrServerClosed) || err == nil {
			return nil
		}
		return err
	}
}
