// Package providers wires the governance services into the container.
// This is the single place where domain bindings live; services never
// register themselves at import time.
package providers

import (
	"go.uber.org/zap"

	"github.com/governa-io/governa/app/services/audit"
	"github.com/governa-io/governa/app/services/bias"
	"github.com/governa-io/governa/app/services/compliance"
	"github.com/governa-io/governa/framework/config"
	"github.com/governa-io/governa/framework/container"
)

// AppServiceProvider registers the governance domain services.
//
// Bound abstracts:
//   - "audit"     → *audit.Trail          (singleton)
//   - "checklist" → *compliance.Checklist (singleton)
//   - "scorer"    → *bias.Scorer          (transient)
type AppServiceProvider struct {
	container.BaseProvider
}

func (p *AppServiceProvider) Register(app *container.Container) error {
	if err := app.Singleton("audit", func(r *container.Resolver) (any, error) {
		logger, err := container.Use[*zap.Logger](r, "logger")
		if err != nil {
			return nil, err
		}
		cfg, err := container.Use[*config.Config](r, "config")
		if err != nil {
			return nil, err
		}
		return audit.NewTrail(logger, cfg.Audit.Component, cfg.Audit.Capacity), nil
	}); err != nil {
		return err
	}

	if err := app.Singleton("checklist", func(r *container.Resolver) (any, error) {
		logger, err := container.Use[*zap.Logger](r, "logger")
		if err != nil {
			return nil, err
		}
		trail, err := container.Use[*audit.Trail](r, "audit")
		if err != nil {
			return nil, err
		}
		return compliance.NewChecklist(logger, trail), nil
	}); err != nil {
		return err
	}

	return app.BindConcrete("scorer", func(r *container.Resolver) (any, error) {
		trail, err := container.Use[*audit.Trail](r, "audit")
		if err != nil {
			return nil, err
		}
		return bias.NewScorer(trail), nil
	})
}

func (p *AppServiceProvider) Boot(app *container.Container) error {
	logger, err := container.Resolve[*zap.Logger](app, "logger")
	if err != nil {
		return err
	}
	checklist, err := container.Resolve[*compliance.Checklist](app, "checklist")
	if err != nil {
		return err
	}
	logger.Info("governance services booted",
		zap.Strings("frameworks", checklist.Frameworks()))
	return nil
}
