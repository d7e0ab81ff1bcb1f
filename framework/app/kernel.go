// Package app holds the application kernel: the top-level object that owns
// the container and drives provider registration, booting, and serving.
package app

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/governa-io/governa/framework/config"
	"github.com/governa-io/governa/framework/container"
	"github.com/governa-io/governa/framework/metrics"
	"github.com/governa-io/governa/framework/providers"
	"github.com/governa-io/governa/framework/routing"
)

// Application is the top-level application kernel. It embeds the container
// so wiring code can call app.Bind(), app.Singleton(), app.Register()
// directly.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application around a fresh container and registers the
// framework core providers. envFiles override the default ".env" lookup.
func New(envFiles ...string) (*Application, error) {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}

	core := []container.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.MetricsServiceProvider{},
		&providers.LoggingServiceProvider{},
		&providers.RoutingServiceProvider{},
	}
	for _, p := range core {
		if err := registry.Register(p); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Logger resolves *zap.Logger from the container.
func (a *Application) Logger() *zap.Logger {
	return container.MustResolve[*zap.Logger](a.Container, "logger")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// Metrics resolves *metrics.Metrics from the container.
func (a *Application) Metrics() *metrics.Metrics {
	return container.MustResolve[*metrics.Metrics](a.Container, "metrics")
}

// Run boots the application (if needed) and starts the HTTP server.
func (a *Application) Run() error {
	if !a.Providers.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}
	cfg := a.Config()
	logger := a.Logger()
	addr := ":" + cfg.App.Port
	logger.Info("server starting",
		zap.String("app", cfg.App.Name),
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env))
	return http.ListenAndServe(addr, a.Router())
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
