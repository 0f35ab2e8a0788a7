package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

// entryStore reads and writes the whole feeding collection as one JSON
// array under a single blob key. Every mutation rewrites the collection.
type entryStore struct {
	blobs domain.BlobStore
	key   string
	log   *slog.Logger
}

func newEntryStore(blobs domain.BlobStore, log *slog.Logger) *entryStore {
	return &entryStore{blobs: blobs, key: domain.EntriesKey, log: log}
}

// all returns the stored collection in insertion order. An absent or
// unparseable blob is an empty collection; only store I/O errors surface.
func (s *entryStore) all(ctx context.Context) ([]domain.FeedingEntry, error) {
	raw, ok, err := s.blobs.Read(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []domain.FeedingEntry{}, nil
	}
	return s.decode(raw), nil
}

// decode parses the array record by record so one bad record does not take
// the rest of the collection with it.
func (s *entryStore) decode(raw string) []domain.FeedingEntry {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.log.Warn("stored entries unreadable, treating as empty", "key", s.key, "error", err)
		return []domain.FeedingEntry{}
	}
	out := make([]domain.FeedingEntry, 0, len(records))
	for i, rec := range records {
		var e domain.FeedingEntry
		if err := json.Unmarshal(rec, &e); err != nil {
			s.log.Warn("dropping unreadable entry", "key", s.key, "index", i, "error", err)
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *entryStore) save(ctx context.Context, entries []domain.FeedingEntry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	if err := s.blobs.Write(ctx, s.key, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

func (s *entryStore) add(ctx context.Context, e domain.FeedingEntry) ([]domain.FeedingEntry, error) {
	current, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	updated := append(current, e)
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *entryStore) remove(ctx context.Context, id string) ([]domain.FeedingEntry, error) {
	current, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	updated := make([]domain.FeedingEntry, 0, len(current))
	for _, e := range current {
		if e.ID != id {
			updated = append(updated, e)
		}
	}
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *entryStore) replace(ctx context.Context, entry domain.FeedingEntry) ([]domain.FeedingEntry, error) {
	current, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	updated := make([]domain.FeedingEntry, len(current))
	for i, e := range current {
		if e.ID == entry.ID {
			e = entry
		}
		updated[i] = e
	}
	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
