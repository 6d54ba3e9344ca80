package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/perryhq/roofline/internal/common"
	"github.com/perryhq/roofline/internal/config"
	"github.com/perryhq/roofline/internal/model"
	"github.com/perryhq/roofline/internal/service"
	"github.com/perryhq/roofline/internal/session"
	"github.com/perryhq/roofline/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open database at %s", dbPath), err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// sessionManager builds the session manager from configuration.
func sessionManager(store service.Storage) *session.Manager {
	path := viper.GetString("session.path")
	if path == "" {
		path = config.DefaultSessionPath()
	}
	path = config.ExpandPath(path)

	latency := viper.GetDuration("session.login_latency")
	if !viper.IsSet("session.login_latency") {
		latency = 500 * time.Millisecond
	}

	return session.NewManager(store, path, latency)
}

// currentIdentity returns the logged-in identity, failing when no session
// exists. Commands that mutate team data call this before acting.
func currentIdentity(store service.Storage) (model.SessionUser, error) {
	sess, err := sessionManager(store).Current()
	if err != nil {
		return model.SessionUser{}, fmt.Errorf("this command requires a login (run 'roofline auth login'): %w", err)
	}
	return sess, nil
}
