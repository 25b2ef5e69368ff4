package worker

import (
	"context"
	"errors"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/queue"

	"github.com/hibiken/asynq"
)

// Service runs the async task consumer.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the consumer until shutdown.
func (s *Service) Start(_ context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	return s.server.Run(s.mux)
}

// Stop shuts the consumer down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}
