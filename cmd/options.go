package cmd

import (
	"fmt"

	"data-reconciler/core/config"
	"data-reconciler/core/database"
	"data-reconciler/core/remote"
	"data-reconciler/core/storage"
	"data-reconciler/feature/validation"

	"go.uber.org/zap"
)

// validationOptions wires the collaborators of the validation service from cfg.
// A failed database connection is fatal only when requireDB is set.
func validationOptions(cfg *config.Config, logg *zap.Logger, requireDB bool) (validation.Options, error) {
	opts := validation.Options{
		Config: cfg.Validation,
		API:    cfg.API,
		Auth:   cfg.Auth,
		Bucket: cfg.Storage.Bucket,
		Region: cfg.Storage.Region,
		Logger: logg,
	}

	httpClient, err := remote.NewHTTPClient(cfg.API)
	if err != nil {
		return opts, err
	}
	opts.HTTPClient = httpClient

	db, err := database.Connect(cfg.Database)
	if err != nil {
		if requireDB {
			return opts, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		opts.DB = db
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	if cfg.Storage.Enabled {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return opts, fmt.Errorf("failed to create storage client: %w", err)
		}
		opts.Storage = store
	}

	return opts, nil
}
