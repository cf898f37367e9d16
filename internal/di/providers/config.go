// Package providers contains dependency injection providers for the Lorekeep server.
package providers

import (
	"flag"
	"os"

	"github.com/samber/do/v2"

	"github.com/lorekeep/lorekeep-server/internal/config"
	"github.com/lorekeep/lorekeep-server/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	return config.Load(fs, os.Args[1:])
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Lorekeep Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Storage.DataPath,
	)

	return log, nil
}
