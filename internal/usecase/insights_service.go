package usecase

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/cache"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

// defaultCorrelationColumns mirrors the metric picker's preselection.
var defaultCorrelationColumns = []string{
	dataset.ColGoalsFor,
	dataset.ColShots,
	dataset.ColShotsOnTarget,
	dataset.ColPossessionPct,
	dataset.ColXG,
}

// Projection is a least-squares fit of team goals against expected goals,
// evaluated at a caller-supplied xG value.
type Projection struct {
	Alpha          float64
	Beta           float64
	RSquared       float64
	InputXG        float64
	ProjectedGoals float64
	Rows           int
}

type InsightsService struct {
	repo   dataset.Repository
	cache  *cache.Store
	logger *logging.Logger
}

func NewInsightsService(repo dataset.Repository, store *cache.Store, logger *logging.Logger) *InsightsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InsightsService{
		repo:   repo,
		cache:  store,
		logger: logger,
	}
}

// Correlations computes the pairwise Pearson matrix over the requested numeric
// columns, defaulting to the standard metric set when none are given.
func (s *InsightsService) Correlations(ctx context.Context, spec dataset.FilterSpec, columns []string) (dataset.CorrelationMatrix, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsService.Correlations")
	defer span.End()

	if len(columns) == 0 {
		columns = defaultCorrelationColumns
	}

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return dataset.CorrelationMatrix{}, fmt.Errorf("load dataset: %w", err)
	}
	view := snapshot.Table.Filter(spec)

	key := "correlation|" + snapshot.Key() + "|" + spec.Key() + "|" + strings.Join(columns, ",")
	value, err := s.cached(ctx, key, func(context.Context) (any, error) {
		return view.Correlations(columns)
	})
	if err != nil {
		return dataset.CorrelationMatrix{}, err
	}

	return value.(dataset.CorrelationMatrix), nil
}

// Project fits goals_for against xg over the filtered view and evaluates the
// line at inputXG. Fitting needs at least two rows.
func (s *InsightsService) Project(ctx context.Context, spec dataset.FilterSpec, inputXG float64) (Projection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.InsightsService.Project")
	defer span.End()

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("load dataset: %w", err)
	}
	view := snapshot.Table.Filter(spec)
	if view.Len() < 2 {
		return Projection{}, fmt.Errorf("%w: projection needs at least 2 rows, have %d", dataset.ErrInsufficientData, view.Len())
	}

	xs := make([]float64, view.Len())
	ys := make([]float64, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		xs[i] = r.XG
		ys[i] = float64(r.GoalsFor)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	return Projection{
		Alpha:          alpha,
		Beta:           beta,
		RSquared:       stat.RSquared(xs, ys, nil, alpha, beta),
		InputXG:        inputXG,
		ProjectedGoals: alpha + beta*inputXG,
		Rows:           view.Len(),
	}, nil
}

func (s *InsightsService) cached(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, load)
}
