// Package httpapi exposes the todo service over the JSON/HTTP contract
// consumed by the terminal client.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address string
	logger  logging.Logger
	todos   *services.TodoService
}

func NewServer(address string, l logging.Logger, ts *services.TodoService) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "httpapi"),
		todos:   ts,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully with a bounded timeout.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
