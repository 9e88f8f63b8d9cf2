package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/cache"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

// FilterOptions lists the selectable values per filter dimension, for
// populating selection widgets.
type FilterOptions struct {
	Seasons   []string
	Players   []string
	Venues    []string
	Opponents []string
	Results   []string
}

// DatasetStatus describes the currently loaded dataset version.
type DatasetStatus struct {
	Path        string
	LoadedAt    time.Time
	Rows        int
	Matches     int
	DroppedRows int
	Options     FilterOptions
}

type DatasetService struct {
	repo   dataset.Repository
	cache  *cache.Store
	logger *logging.Logger
}

func NewDatasetService(repo dataset.Repository, store *cache.Store, logger *logging.Logger) *DatasetService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DatasetService{
		repo:   repo,
		cache:  store,
		logger: logger,
	}
}

func (s *DatasetService) Status(ctx context.Context) (DatasetStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Status")
	defer span.End()

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return DatasetStatus{}, fmt.Errorf("load dataset: %w", err)
	}

	return snapshotStatus(snapshot), nil
}

// Reload invalidates the cached snapshot, re-reads the source and flushes
// every aggregate computed from the previous version.
func (s *DatasetService) Reload(ctx context.Context) (DatasetStatus, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DatasetService.Reload")
	defer span.End()

	s.repo.Invalidate(ctx)
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return DatasetStatus{}, fmt.Errorf("reload dataset: %w", err)
	}
	if s.cache != nil {
		s.cache.Flush(ctx)
	}

	s.logger.InfoContext(ctx, "dataset reloaded",
		"path", snapshot.Path,
		"rows", snapshot.Table.Len(),
		"dropped_rows", snapshot.DroppedRows,
	)

	return snapshotStatus(snapshot), nil
}

func snapshotStatus(snapshot *dataset.Snapshot) DatasetStatus {
	table := snapshot.Table
	return DatasetStatus{
		Path:        snapshot.Path,
		LoadedAt:    snapshot.LoadedAt,
		Rows:        table.Len(),
		Matches:     table.MatchCount(),
		DroppedRows: snapshot.DroppedRows,
		Options: FilterOptions{
			Seasons:   table.DistinctSeasons(),
			Players:   table.DistinctPlayers(),
			Venues:    []string{dataset.VenueHome, dataset.VenueAway},
			Opponents: table.DistinctOpponents(),
			Results:   []string{dataset.ResultWin, dataset.ResultDraw, dataset.ResultLoss},
		},
	}
}
