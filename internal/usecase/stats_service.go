package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/cache"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

// Overview is the KPI card block: headline aggregates over the filtered view.
// AvgPossession and AvgXG are nil when the view is empty, since a mean over
// zero rows is undefined and 0 would mislead.
type Overview struct {
	Rows          int
	Matches       int
	GoalsFor      int
	GoalsAgainst  int
	AvgPossession *float64
	AvgXG         *float64
	WinRatePct    float64
}

// PlayerContribution is one leaderboard row: per-player totals over the
// filtered view.
type PlayerContribution struct {
	Player        string
	Matches       int
	Goals         int
	Assists       int
	MinutesPlayed int
	PlayerXG      float64
	PlayerShots   int
}

// SeasonSummary holds per-season averages over the filtered view.
type SeasonSummary struct {
	Season          string
	Rows            int
	Matches         int
	AvgGoalsFor     float64
	AvgGoalsAgainst float64
	AvgXG           float64
	WinRatePct      float64
}

// RoundGoals is one point of the goals-across-rounds series.
type RoundGoals struct {
	Round    string
	GoalsFor int
}

// VenueAverages compares home and away performance.
type VenueAverages struct {
	Venue           string
	Matches         int
	AvgGoalsFor     float64
	AvgGoalsAgainst float64
}

type StatsService struct {
	repo    dataset.Repository
	cache   *cache.Store
	workers int
	logger  *logging.Logger
}

func NewStatsService(repo dataset.Repository, store *cache.Store, workers int, logger *logging.Logger) *StatsService {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		repo:    repo,
		cache:   store,
		workers: workers,
		logger:  logger,
	}
}

func (s *StatsService) Overview(ctx context.Context, spec dataset.FilterSpec) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Overview")
	defer span.End()

	snapshot, view, err := s.view(ctx, spec)
	if err != nil {
		return Overview{}, err
	}

	value, err := s.cached(ctx, "overview|"+snapshot.Key()+"|"+spec.Key(), func(context.Context) (any, error) {
		return Overview{
			Rows:          view.Len(),
			Matches:       view.MatchCount(),
			GoalsFor:      view.SumGoalsFor(),
			GoalsAgainst:  view.SumGoalsAgainst(),
			AvgPossession: optionalMean(view.MeanPossession()),
			AvgXG:         optionalMean(view.MeanXG()),
			WinRatePct:    view.WinRate(),
		}, nil
	})
	if err != nil {
		return Overview{}, err
	}

	return value.(Overview), nil
}

// PlayerContributions returns per-player totals ordered by matches played,
// descending; ties keep first-occurrence order.
func (s *StatsService) PlayerContributions(ctx context.Context, spec dataset.FilterSpec) ([]PlayerContribution, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.PlayerContributions")
	defer span.End()

	_, view, err := s.view(ctx, spec)
	if err != nil {
		return nil, err
	}

	groups, err := view.GroupByPlayer([]dataset.PlayerAggregation{
		{Column: dataset.ColGoals, Op: dataset.OpSum},
		{Column: dataset.ColAssists, Op: dataset.OpSum},
		{Column: dataset.ColMinutesPlayed, Op: dataset.OpSum},
		{Column: dataset.ColPlayerXG, Op: dataset.OpSum},
		{Column: dataset.ColPlayerShots, Op: dataset.OpSum},
	})
	if err != nil {
		return nil, fmt.Errorf("group by player: %w", err)
	}

	out := make([]PlayerContribution, 0, len(groups))
	for _, g := range groups {
		out = append(out, PlayerContribution{
			Player:        g.Player,
			Matches:       g.MatchesPlayed,
			Goals:         int(g.Values[dataset.ColGoals]),
			Assists:       int(g.Values[dataset.ColAssists]),
			MinutesPlayed: int(g.Values[dataset.ColMinutesPlayed]),
			PlayerXG:      g.Values[dataset.ColPlayerXG],
			PlayerShots:   int(g.Values[dataset.ColPlayerShots]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Matches > out[j].Matches
	})

	return out, nil
}

// TopRows returns up to n view rows ranked by column, descending unless
// ascending is set. Ties keep source order.
func (s *StatsService) TopRows(ctx context.Context, spec dataset.FilterSpec, column string, n int, ascending bool) ([]dataset.MatchRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TopRows")
	defer span.End()

	if n < 1 {
		return nil, fmt.Errorf("%w: top-n size must be >= 1", ErrInvalidInput)
	}

	_, view, err := s.view(ctx, spec)
	if err != nil {
		return nil, err
	}

	top, err := view.TopN(column, n, ascending)
	if err != nil {
		return nil, fmt.Errorf("top %d by %s: %w", n, column, err)
	}

	return top.Records(), nil
}

// SeasonSummaries aggregates each season of the filtered view on a bounded
// worker pool. Output is ordered by season label regardless of completion
// order.
func (s *StatsService) SeasonSummaries(ctx context.Context, spec dataset.FilterSpec) ([]SeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.SeasonSummaries")
	defer span.End()

	snapshot, view, err := s.view(ctx, spec)
	if err != nil {
		return nil, err
	}

	value, err := s.cached(ctx, "seasons|"+snapshot.Key()+"|"+spec.Key(), func(context.Context) (any, error) {
		return s.summarizeSeasons(view)
	})
	if err != nil {
		return nil, err
	}

	return value.([]SeasonSummary), nil
}

func (s *StatsService) summarizeSeasons(view dataset.Table) ([]SeasonSummary, error) {
	seasons := view.DistinctSeasons()
	if len(seasons) == 0 {
		return []SeasonSummary{}, nil
	}

	pool, err := ants.NewPool(min(s.workers, len(seasons)))
	if err != nil {
		return nil, fmt.Errorf("create season worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]SeasonSummary, len(seasons))
	var wg sync.WaitGroup
	for i, season := range seasons {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			sub := view.Filter(dataset.FilterSpec{Seasons: []string{season}})
			out[i] = SeasonSummary{
				Season:          season,
				Rows:            sub.Len(),
				Matches:         sub.MatchCount(),
				AvgGoalsFor:     rowMean(sub, func(r dataset.MatchRecord) float64 { return float64(r.GoalsFor) }),
				AvgGoalsAgainst: rowMean(sub, func(r dataset.MatchRecord) float64 { return float64(r.GoalsAgainst) }),
				AvgXG:           rowMean(sub, func(r dataset.MatchRecord) float64 { return r.XG }),
				WinRatePct:      sub.WinRate(),
			}
		}
		if submitErr := pool.Submit(task); submitErr != nil {
			// Pool rejected the task (released or overloaded); compute inline.
			task()
		}
	}
	wg.Wait()

	return out, nil
}

// GoalsByRound sums team goals per round, ordered numerically when round
// labels parse as integers, lexically otherwise.
func (s *StatsService) GoalsByRound(ctx context.Context, spec dataset.FilterSpec) ([]RoundGoals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.GoalsByRound")
	defer span.End()

	_, view, err := s.view(ctx, spec)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	out := make([]RoundGoals, 0)
	for _, r := range view.Records() {
		if r.Round == "" {
			continue
		}
		at, ok := index[r.Round]
		if !ok {
			at = len(out)
			index[r.Round] = at
			out = append(out, RoundGoals{Round: r.Round})
		}
		out[at].GoalsFor += r.GoalsFor
	}

	sort.SliceStable(out, func(i, j int) bool {
		return lessRound(out[i].Round, out[j].Round)
	})

	return out, nil
}

// VenueSplit returns home/away goal averages. Venues absent from the view are
// omitted.
func (s *StatsService) VenueSplit(ctx context.Context, spec dataset.FilterSpec) ([]VenueAverages, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.VenueSplit")
	defer span.End()

	_, view, err := s.view(ctx, spec)
	if err != nil {
		return nil, err
	}

	out := make([]VenueAverages, 0, 2)
	for _, venue := range []string{dataset.VenueHome, dataset.VenueAway} {
		sub := view.Filter(dataset.FilterSpec{Venues: []string{venue}})
		if sub.Len() == 0 {
			continue
		}
		out = append(out, VenueAverages{
			Venue:           venue,
			Matches:         sub.MatchCount(),
			AvgGoalsFor:     rowMean(sub, func(r dataset.MatchRecord) float64 { return float64(r.GoalsFor) }),
			AvgGoalsAgainst: rowMean(sub, func(r dataset.MatchRecord) float64 { return float64(r.GoalsAgainst) }),
		})
	}

	return out, nil
}

func (s *StatsService) view(ctx context.Context, spec dataset.FilterSpec) (*dataset.Snapshot, dataset.Table, error) {
	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return nil, dataset.Table{}, fmt.Errorf("load dataset: %w", err)
	}
	return snapshot, snapshot.Table.Filter(spec), nil
}

func (s *StatsService) cached(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if s.cache == nil {
		return load(ctx)
	}
	return s.cache.GetOrLoad(ctx, key, load)
}

func optionalMean(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func rowMean(view dataset.Table, accessor func(dataset.MatchRecord) float64) float64 {
	if view.Len() == 0 {
		return 0
	}
	total := 0.0
	for i := 0; i < view.Len(); i++ {
		total += accessor(view.At(i))
	}
	return total / float64(view.Len())
}

func lessRound(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	if aErr == nil {
		return true
	}
	if bErr == nil {
		return false
	}
	return a < b
}
