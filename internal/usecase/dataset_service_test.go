package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/cache"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

func TestDatasetStatus(t *testing.T) {
	repo := newStubRepository(statsFixture())
	svc := NewDatasetService(repo, nil, logging.NewNop())

	status, err := svc.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Path != "testdata/matches.csv" {
		t.Fatalf("path = %q", status.Path)
	}
	if status.Rows != 4 || status.Matches != 3 {
		t.Fatalf("rows/matches = %d/%d, want 4/3", status.Rows, status.Matches)
	}
	if len(status.Options.Seasons) != 2 || len(status.Options.Players) != 3 {
		t.Fatalf("options = %+v", status.Options)
	}
	if len(status.Options.Venues) != 2 || len(status.Options.Results) != 3 {
		t.Fatalf("fixed option sets = %+v", status.Options)
	}
}

func TestDatasetReloadFlushesCache(t *testing.T) {
	repo := newStubRepository(statsFixture())
	store := cache.NewStore(time.Minute)
	svc := NewDatasetService(repo, store, logging.NewNop())

	store.Set(context.Background(), "stale-aggregate", 42)

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if repo.invalidated != 1 {
		t.Fatalf("invalidated = %d, want 1", repo.invalidated)
	}
	if _, ok := store.Get(context.Background(), "stale-aggregate"); ok {
		t.Fatalf("cache not flushed on reload")
	}
}

func TestDatasetReloadPropagatesError(t *testing.T) {
	repo := &stubRepository{err: dataset.ErrDataUnavailable}
	svc := NewDatasetService(repo, nil, logging.NewNop())

	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
