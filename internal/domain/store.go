package domain

import "context"

// EntriesKey is the blob key holding the whole feeding collection.
const EntriesKey = "nurturetrack_entries"

// BlobStore is the port for the opaque string-keyed store the entry
// collection lives in. Writes replace the whole value; last write wins.
type BlobStore interface {
	// Read returns the value under key and whether it exists.
	Read(ctx context.Context, key string) (string, bool, error)
	Write(ctx context.Context, key, value string) error
}
