package providers

import (
	"go.uber.org/zap"

	"github.com/governa-io/governa/framework/config"
	"github.com/governa-io/governa/framework/container"
	"github.com/governa-io/governa/framework/logging"
	"github.com/governa-io/governa/framework/metrics"
	"github.com/governa-io/governa/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// binds it into the container as "config".
//
// Bound abstracts:
//   - "config" → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(app *container.Container) error {
	envFiles := p.EnvFiles
	return app.Singleton("config", func(r *container.Resolver) (any, error) {
		return config.Load(envFiles...), nil
	})
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the zap logger from the loaded config.
//
// Bound abstracts:
//   - "logger" → *zap.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
}

func (p *LoggingServiceProvider) Register(app *container.Container) error {
	return app.Singleton("logger", func(r *container.Resolver) (any, error) {
		cfg, err := container.Use[*config.Config](r, "config")
		if err != nil {
			return nil, err
		}
		return logging.New(cfg)
	})
}

func (p *LoggingServiceProvider) Boot(app *container.Container) error {
	logger, err := container.Resolve[*zap.Logger](app, "logger")
	if err != nil {
		return err
	}
	cfg, err := container.Resolve[*config.Config](app, "config")
	if err != nil {
		return err
	}
	logger.Debug("logging booted", zap.String("env", cfg.App.Env))
	return nil
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router with the metrics
// middleware attached.
//
// Bound abstracts:
//   - "router" → *routing.Router
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) error {
	return app.Singleton("router", func(r *container.Resolver) (any, error) {
		router := routing.New()
		m, err := container.Use[*metrics.Metrics](r, "metrics")
		if err != nil {
			return nil, err
		}
		router.Middleware(m.Middleware)
		return router, nil
	})
}

// ── MetricsServiceProvider ────────────────────────────────────────────────────

// MetricsServiceProvider registers the prometheus registry and collectors.
//
// Bound abstracts:
//   - "metrics" → *metrics.Metrics
type MetricsServiceProvider struct {
	container.BaseProvider
}

func (p *MetricsServiceProvider) Register(app *container.Container) error {
	return app.Singleton("metrics", func(r *container.Resolver) (any, error) {
		return metrics.New(), nil
	})
}
