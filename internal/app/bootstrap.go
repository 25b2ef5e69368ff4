package app

import (
	"errors"

	"github.com/tokogitar/tokogitar/internal/config"
	"github.com/tokogitar/tokogitar/internal/provider"
	"github.com/tokogitar/tokogitar/internal/router"
	"github.com/tokogitar/tokogitar/internal/worker"
)

// BuildRunner assembles the services for the requested mode.
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, err
	}

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(container)
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		services = append(services, NewHTTPService(addr, engine))
	}

	if mode == ModeWorker || (mode == ModeAll && cfg.Queue.Enabled) {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run is the application entry point.
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	addr := opts.Config.Server.Host + ":" + opts.Config.Server.Port
	opts.Logger.Infow("app_start", "addr", addr, "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
