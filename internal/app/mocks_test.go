package app_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockBlobStore keeps blobs in a map unless readFn/writeFn override it.
type mockBlobStore struct {
	mu      sync.Mutex
	data    map[string]string
	writes  int
	readFn  func(ctx context.Context, key string) (string, bool, error)
	writeFn func(ctx context.Context, key, value string) error
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{data: make(map[string]string)}
}

func (m *mockBlobStore) Read(ctx context.Context, key string) (string, bool, error) {
	if m.readFn != nil {
		return m.readFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mockBlobStore) Write(ctx context.Context, key, value string) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.data[key] = value
	return nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, s domain.Session) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context, now time.Time) error
}

func (m *mockSessionRepo) Create(ctx context.Context, s domain.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return nil
}

func milkAt(id string, at time.Time, ml int) domain.FeedingEntry {
	return domain.FeedingEntry{ID: id, EntryData: domain.EntryData{Timestamp: at, Feed: domain.Milk{AmountMl: ml}}}
}

func foodAt(id string, at time.Time, name string) domain.FeedingEntry {
	return domain.FeedingEntry{ID: id, EntryData: domain.EntryData{Timestamp: at, Feed: domain.Food{Name: name}}}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + string(rune('0'+n))
	}
}
