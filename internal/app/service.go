package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running unit the app supervises.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner supervises a set of services.
type Runner struct {
	services []Service
}

// NewRunner creates a runner over the given services.
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions runs the services and handles shutdown signals.
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run starts every service and blocks until one exits or the context
// is canceled, then stops the rest.
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(r.services))
	for _, svc := range r.services {
		go r.launch(ctx, svc, errCh, logger)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
	}

	cancel()
	r.stopAll(stopTimeout, logger)

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (r *Runner) launch(ctx context.Context, svc Service, errCh chan<- error, logger *zap.SugaredLogger) {
	if svc == nil {
		errCh <- errors.New("service is nil")
		return
	}
	if logger != nil {
		logger.Infow("service_start", "service", svc.Name())
	}
	errCh <- svc.Start(ctx)
	if logger != nil {
		logger.Infow("service_exit", "service", svc.Name())
	}
}

func (r *Runner) stopAll(timeout time.Duration, logger *zap.SugaredLogger) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, svc := range r.services {
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil && logger != nil {
			logger.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}
