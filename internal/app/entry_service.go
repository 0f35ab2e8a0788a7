// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh, practically collision-free identifier.
type IDGenerator func() string

// EntryService is the single write path to the feeding collection.
type EntryService struct {
	mu    sync.Mutex
	store *entryStore
	newID IDGenerator
	log   *slog.Logger
}

// NewEntryService creates an EntryService persisting to blobs. A nil newID
// falls back to random UUIDs.
func NewEntryService(blobs domain.BlobStore, newID IDGenerator, log *slog.Logger) *EntryService {
	if newID == nil {
		newID = uuid.NewString
	}
	if log == nil {
		log = slog.Default()
	}
	return &EntryService{store: newEntryStore(blobs, log), newID: newID, log: log}
}

// List returns every stored entry in insertion order. A store that cannot
// be read yields an empty collection.
func (s *EntryService) List(ctx context.Context) []domain.FeedingEntry {
	entries, err := s.store.all(ctx)
	if err != nil {
		s.log.Error("list entries", "error", err)
		return []domain.FeedingEntry{}
	}
	return entries
}

// Create assigns a new id to data, appends it and returns the collection.
func (s *EntryService) Create(ctx context.Context, data domain.EntryData) ([]domain.FeedingEntry, error) {
	if data.Feed == nil {
		return nil, fmt.Errorf("%w: feed is required", domain.ErrInvalidEntry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.FeedingEntry{ID: s.newID(), EntryData: data}
	updated, err := s.store.add(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Debug("entry created", "id", entry.ID, "type", entry.Type())
	return updated, nil
}

// Delete removes the entry with id. An unknown id leaves the collection as is.
func (s *EntryService) Delete(ctx context.Context, id string) ([]domain.FeedingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.remove(ctx, id)
}

// Update replaces the entry with the same id in place. An unknown id leaves
// the collection as is.
func (s *EntryService) Update(ctx context.Context, entry domain.FeedingEntry) ([]domain.FeedingEntry, error) {
	if entry.Feed == nil {
		return nil, fmt.Errorf("%w: feed is required", domain.ErrInvalidEntry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.replace(ctx, entry)
}
