package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPService wraps the API server behind the Service interface.
type HTTPService struct {
	server *http.Server
}

// NewHTTPService creates the HTTP service.
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *HTTPService) Name() string {
	return "http"
}

func (s *HTTPService) Start(_ context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
