package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/adjustly/adjustly/internal/catalog"
	"github.com/adjustly/adjustly/internal/common"
	"github.com/adjustly/adjustly/internal/config"
	"github.com/adjustly/adjustly/internal/service"
	"github.com/adjustly/adjustly/internal/storage"
)

// initStorage initializes the item store with proper path expansion and
// auto-migration.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadCatalog loads the promo catalog from the configured path. The catalog
// is validated whole at load time; a malformed file fails here, never
// per-item during a reconcile pass.
func loadCatalog() (*catalog.Catalog, error) {
	path := viper.GetString("catalog.path")
	if path == "" {
		path = config.DefaultCatalogPath
	}
	path = config.ExpandPath(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, common.NewUserError(
			fmt.Sprintf("no promo catalog at %s; set catalog.path in the config file", path),
			common.ErrMissingConfig)
	}
	return catalog.Load(path)
}
