// Package database handles database connections and loading of the local dataset.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections
// based on the application's configuration, and LoadDataset, which turns the
// result of a profile's SQL query into a reconcile.Dataset keyed by primary key.
//
// # Connect
//
// Connect opens the pool and pings it within the configured timeout. SQLite is
// meant for local runs and tests; the pool is pinned to one connection.
//
// # Dataset loading
//
// The whole result set is held in memory for the duration of a run. Column
// names are normalized with NormalizeColumn, NULL becomes reconcile.NullValue,
// and a duplicate or NULL primary key is a data integrity error.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	ds, err := database.LoadDataset(ctx, db, query, "asset_id", log)
package database
