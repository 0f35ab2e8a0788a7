package memory

import (
	"context"
	"testing"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/domain"
)

func TestBlobStore(t *testing.T) {
	db := New()
	ctx := context.Background()

	if _, ok, err := db.Read(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := db.Write(ctx, "k", "[1]"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := db.Write(ctx, "k", "[2]"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	v, ok, err := db.Read(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Read: ok=%v err=%v", ok, err)
	}
	if v != "[2]" {
		t.Errorf("expected last write to win, got %q", v)
	}
}

func TestSessionRepository(t *testing.T) {
	db := New()
	repo := db.NewSessionRepo()
	ctx := context.Background()
	now := time.Now()

	err := repo.Create(ctx, domain.Session{Token: "token123", UserAgent: "ua", ExpiresAt: now.Add(time.Hour), CreatedAt: now})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	_ = repo.Create(ctx, domain.Session{Token: "stale", ExpiresAt: now.Add(-time.Hour), CreatedAt: now})

	sess, err := repo.GetByToken(ctx, "token123")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if sess == nil || sess.UserAgent != "ua" {
		t.Fatalf("expected session, got %+v", sess)
	}

	if err := repo.DeleteExpired(ctx, now); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if sess, _ := repo.GetByToken(ctx, "stale"); sess != nil {
		t.Error("expected stale session to be purged")
	}

	_ = repo.Delete(ctx, "token123")
	sess, _ = repo.GetByToken(ctx, "token123")
	if sess != nil {
		t.Error("expected nil (deleted)")
	}
}
