// Package logging builds the application logger. The resolution core never
// logs on its own; everything that wants a logger resolves this one from
// the container.
package logging

import (
	"go.uber.org/zap"

	"github.com/governa-io/governa/framework/config"
)

// New builds a *zap.Logger from the application config: a development
// console logger in local/testing environments, JSON production logging
// otherwise. Debug level follows APP_DEBUG.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.App.Env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.App.Debug {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.Named(cfg.App.Name), nil
}

// NewNop returns a no-op logger for tests.
func NewNop() *zap.Logger { return zap.NewNop() }
