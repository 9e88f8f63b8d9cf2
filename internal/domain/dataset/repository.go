package dataset

import (
	"context"
	"strconv"
	"time"
)

// Snapshot is one immutable loaded-and-normalized dataset version. Replacing
// it is an atomic swap in the repository; in-flight readers keep whatever
// snapshot they already hold.
type Snapshot struct {
	Table       Table
	Path        string
	ModTime     time.Time
	Size        int64
	DroppedRows int
	LoadedAt    time.Time
}

// Key identifies the dataset version a snapshot was built from.
func (s *Snapshot) Key() string {
	return s.Path + "|" + s.ModTime.UTC().Format(time.RFC3339Nano) + "|" + strconv.FormatInt(s.Size, 10)
}

// Repository loads and caches the normalized dataset.
type Repository interface {
	// Load returns the current snapshot, reusing the cached one while the
	// source file is unchanged.
	Load(ctx context.Context) (*Snapshot, error)
	// Invalidate drops the cached snapshot so the next Load re-reads the
	// source.
	Invalidate(ctx context.Context)
}
