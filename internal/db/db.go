// Package db opens the configured persistence backend.
package db

import (
	"fmt"

	"github.com/clementchett/Zane-Food-Tracker/internal/adapter/memory"
	"github.com/clementchett/Zane-Food-Tracker/internal/adapter/postgres"
	"github.com/clementchett/Zane-Food-Tracker/internal/adapter/sqlite"
	"github.com/clementchett/Zane-Food-Tracker/internal/config"
	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

// Store is an open backend: the entry blob store plus its sessions.
type Store struct {
	Blobs    domain.BlobStore
	Sessions domain.SessionRepository
	close    func() error
}

// Close releases the backend.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the backend named by cfg.Store.
func Open(cfg config.Config) (*Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		m := memory.New()
		return &Store{Blobs: m, Sessions: m.NewSessionRepo(), close: m.Close}, nil
	case config.StoreSQLite:
		d, err := sqlite.Open(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Store{Blobs: d, Sessions: sqlite.NewSessionRepo(d), close: d.Close}, nil
	case config.StorePostgres:
		d, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Store{Blobs: d, Sessions: postgres.NewSessionRepo(d), close: d.Close}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
