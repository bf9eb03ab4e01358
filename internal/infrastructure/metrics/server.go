package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes /metrics on its own port.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	handler         http.Handler
	log             zerolog.Logger
}

// NewServer returns a metrics server for addr. An empty addr disables it.
func NewServer(addr string, shutdownTimeout time.Duration, log zerolog.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		handler:         mux,
		log:             log,
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done. It returns immediately when disabled.
func (s *Server) Run(ctx context.Context) error {
	if s.addr == "" {
		s.log.Info().Msg("metrics server disabled")
		return nil
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
