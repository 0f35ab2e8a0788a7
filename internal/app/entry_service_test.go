package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clementchett/Zane-Food-Tracker/internal/app"
	"github.com/clementchett/Zane-Food-Tracker/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestEntryService_ListEmptyStore(t *testing.T) {
	svc := app.NewEntryService(newMockBlobStore(), nil, discardLogger)
	entries := svc.List(context.Background())
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestEntryService_ListCorruptBlob(t *testing.T) {
	blobs := newMockBlobStore()
	blobs.data[domain.EntriesKey] = "{not json"
	svc := app.NewEntryService(blobs, nil, discardLogger)
	require.Empty(t, svc.List(context.Background()))
}

func TestEntryService_ListReadFailure(t *testing.T) {
	blobs := &mockBlobStore{
		readFn: func(context.Context, string) (string, bool, error) {
			return "", false, errors.New("disk unavailable")
		},
	}
	svc := app.NewEntryService(blobs, nil, discardLogger)
	entries := svc.List(context.Background())
	require.NotNil(t, entries)
	require.Empty(t, entries)
}

func TestEntryService_ListDropsUnknownType(t *testing.T) {
	blobs := newMockBlobStore()
	blobs.data[domain.EntriesKey] = `[
		{"id":"a","timestamp":1000,"type":"MILK","amountMl":90},
		{"id":"b","timestamp":2000,"type":"JUICE"},
		{"id":"c","timestamp":3000,"type":"FOOD","foodName":"Pear"}
	]`
	svc := app.NewEntryService(blobs, nil, discardLogger)
	entries := svc.List(context.Background())
	require.Len(t, entries, 2)
	require.Equal(t, "a", entries[0].ID)
	require.Equal(t, "c", entries[1].ID)
}

func TestEntryService_CreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := newMockBlobStore()
	svc := app.NewEntryService(blobs, nil, discardLogger)

	at := time.UnixMilli(1770537600123)
	data := domain.EntryData{Timestamp: at, Feed: domain.Food{Name: "Banana"}, Note: "mashed"}
	updated, err := svc.Create(ctx, data)
	require.NoError(t, err)
	require.Len(t, updated, 1)

	listed := svc.List(ctx)
	require.Len(t, listed, 1)
	got := listed[0]
	require.NotEmpty(t, got.ID)
	require.Equal(t, updated[0].ID, got.ID)
	require.True(t, got.Timestamp.Equal(at))
	require.Equal(t, domain.Feed(domain.Food{Name: "Banana"}), got.Feed)
	require.Equal(t, "mashed", got.Note)
}

func TestEntryService_CreateAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	svc := app.NewEntryService(newMockBlobStore(), sequentialIDs("id-"), discardLogger)

	base := time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC)
	_, err := svc.Create(ctx, domain.EntryData{Timestamp: base.Add(2 * time.Hour), Feed: domain.Milk{AmountMl: 90}})
	require.NoError(t, err)
	updated, err := svc.Create(ctx, domain.EntryData{Timestamp: base, Feed: domain.Milk{AmountMl: 120}})
	require.NoError(t, err)

	require.Len(t, updated, 2)
	require.Equal(t, "id-1", updated[0].ID)
	require.Equal(t, "id-2", updated[1].ID)
}

func TestEntryService_CreateRequiresFeed(t *testing.T) {
	blobs := newMockBlobStore()
	svc := app.NewEntryService(blobs, nil, discardLogger)
	_, err := svc.Create(context.Background(), domain.EntryData{Timestamp: time.Now()})
	require.ErrorIs(t, err, domain.ErrInvalidEntry)
	require.Zero(t, blobs.writes)
}

func TestEntryService_CreateDoesNotClobberOnReadFailure(t *testing.T) {
	written := false
	blobs := &mockBlobStore{
		readFn: func(context.Context, string) (string, bool, error) {
			return "", false, errors.New("disk unavailable")
		},
		writeFn: func(context.Context, string, string) error {
			written = true
			return nil
		},
	}
	svc := app.NewEntryService(blobs, nil, discardLogger)
	_, err := svc.Create(context.Background(), domain.EntryData{Timestamp: time.Now(), Feed: domain.Milk{AmountMl: 60}})
	require.Error(t, err)
	require.False(t, written)
}

func TestEntryService_CreateWriteFailure(t *testing.T) {
	blobs := newMockBlobStore()
	blobs.writeFn = func(context.Context, string, string) error { return errors.New("read-only") }
	svc := app.NewEntryService(blobs, nil, discardLogger)
	_, err := svc.Create(context.Background(), domain.EntryData{Timestamp: time.Now(), Feed: domain.Milk{AmountMl: 60}})
	require.Error(t, err)
}

func TestEntryService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := app.NewEntryService(newMockBlobStore(), sequentialIDs("e"), discardLogger)
	now := time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.EntryData{Timestamp: now, Feed: domain.Milk{AmountMl: 60 + i}})
		require.NoError(t, err)
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		before := svc.List(ctx)
		after, err := svc.Delete(ctx, "missing")
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("existing id removes exactly one", func(t *testing.T) {
		after, err := svc.Delete(ctx, "e2")
		require.NoError(t, err)
		require.Len(t, after, 2)
		for _, e := range after {
			require.NotEqual(t, "e2", e.ID)
		}
		require.Equal(t, after, svc.List(ctx))
	})
}

func TestEntryService_Update(t *testing.T) {
	ctx := context.Background()
	svc := app.NewEntryService(newMockBlobStore(), sequentialIDs("e"), discardLogger)
	now := time.Date(2026, 2, 8, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, domain.EntryData{Timestamp: now, Feed: domain.Milk{AmountMl: 100}})
		require.NoError(t, err)
	}

	replacement := foodAt("e2", now.Add(time.Hour), "Avocado")
	replacement.Note = "green"
	updated, err := svc.Update(ctx, replacement)
	require.NoError(t, err)
	require.Len(t, updated, 3)
	require.Equal(t, []string{"e1", "e2", "e3"}, []string{updated[0].ID, updated[1].ID, updated[2].ID})
	require.Equal(t, domain.EntryFood, updated[1].Type())
	require.Equal(t, "green", updated[1].Note)

	before := svc.List(ctx)
	unchanged, err := svc.Update(ctx, foodAt("nope", now, "Kiwi"))
	require.NoError(t, err)
	require.Equal(t, before, unchanged)
}
