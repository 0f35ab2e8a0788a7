// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

// DB implements an in-memory blob and session store.
type DB struct {
	mu       sync.Mutex
	blobs    map[string]string
	sessions map[string]domain.Session
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		blobs:    make(map[string]string),
		sessions: make(map[string]domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.BlobStore = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Close is a no-op; it lets DB stand in for the persistent stores.
func (db *DB) Close() error { return nil }

// --- BlobStore ---

// Read returns the blob stored under key.
func (db *DB) Read(ctx context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.blobs[key]
	return v, ok, nil
}

// Write replaces the blob stored under key.
func (db *DB) Write(ctx context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.blobs[key] = value
	return nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, s domain.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[s.Token] = s
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return &s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all sessions expired at now.
func (r *SessionRepo) DeleteExpired(ctx context.Context, now time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
