// Package monolith provides the application container and module interface.
package monolith

import (
	"context"
	"errors"
	"sync"

	"github.com/comparador/quote-aggregator/internal/config"
	"github.com/comparador/quote-aggregator/internal/di"
	"github.com/comparador/quote-aggregator/internal/logger"
)

// CloseFunc releases a resource during shutdown.
type CloseFunc func(ctx context.Context) error

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Services() di.ServiceRegistry
	OnClose(name string, fn CloseFunc)
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

type closer struct {
	name string
	fn   CloseFunc
}

// App implements the Monolith interface.
type App struct {
	config    *config.Config
	logger    logger.LoggerInterface
	container di.Container

	mu      sync.Mutex
	closers []closer
}

var _ Monolith = (*App)(nil)

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) *App {
	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)

	return &App{
		config:    cfg,
		logger:    log,
		container: container,
	}
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *App) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *App) Container() di.Container {
	return a.container
}

// OnClose registers fn to run on Close. Hooks run in reverse order.
func (a *App) OnClose(name string, fn CloseFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// RegisterModules registers all provided modules.
func (a *App) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *App) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close runs every shutdown hook, even when one fails, and joins the errors.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(ctx); err != nil {
			a.logger.Error(ctx, "shutdown hook failed", "name", c.name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
