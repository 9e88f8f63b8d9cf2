package dataset

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MatchCount counts distinct matches in the view. Zero on an empty view.
func (t Table) MatchCount() int {
	seen := make(map[string]struct{}, len(t.records))
	for _, r := range t.records {
		seen[r.MatchID] = struct{}{}
	}
	return len(seen)
}

// SumGoalsFor sums the team goals column over rows. The table is at player
// granularity, so match-level values repeat per player row; the sum is a row
// sum by contract, matching the source dashboards.
func (t Table) SumGoalsFor() int {
	total := 0
	for _, r := range t.records {
		total += r.GoalsFor
	}
	return total
}

func (t Table) SumGoalsAgainst() int {
	total := 0
	for _, r := range t.records {
		total += r.GoalsAgainst
	}
	return total
}

// MeanPossession is NaN on an empty view. Callers must check Len first; this
// is the documented empty-input behavior, not a defect.
func (t Table) MeanPossession() float64 {
	return t.meanOf(func(r MatchRecord) float64 { return r.PossessionPct })
}

// MeanXG is NaN on an empty view, same contract as MeanPossession.
func (t Table) MeanXG() float64 {
	return t.meanOf(func(r MatchRecord) float64 { return r.XG })
}

func (t Table) meanOf(accessor func(MatchRecord) float64) float64 {
	if len(t.records) == 0 {
		return math.NaN()
	}
	total := 0.0
	for _, r := range t.records {
		total += accessor(r)
	}
	return total / float64(len(t.records))
}

// WinRate is the percentage of distinct matches won. By convention it is 0,
// not NaN, on an empty view: "0% from zero matches" is the expected display.
func (t Table) WinRate() float64 {
	matches := t.distinctMatches()
	if len(matches) == 0 {
		return 0
	}
	wins := 0
	for _, m := range matches {
		if m.GoalsFor > m.GoalsAgainst {
			wins++
		}
	}
	return float64(wins) / float64(len(matches)) * 100
}

// distinctMatches keeps the first row per match_id, preserving input order.
// Match-level fields are identical across a match's player rows.
func (t Table) distinctMatches() []MatchRecord {
	seen := make(map[string]struct{}, len(t.records))
	out := make([]MatchRecord, 0, len(t.records))
	for _, r := range t.records {
		if _, ok := seen[r.MatchID]; ok {
			continue
		}
		seen[r.MatchID] = struct{}{}
		out = append(out, r)
	}
	return out
}

const (
	OpSum = "sum"
	OpMax = "max"
)

// PlayerAggregation names one per-column reduction for GroupByPlayer.
type PlayerAggregation struct {
	Column string
	Op     string
}

// PlayerGroup is one leaderboard row. Values is keyed by requested column.
type PlayerGroup struct {
	Player        string
	MatchesPlayed int
	Values        map[string]float64
}

// GroupByPlayer reduces the view per distinct player. Groups appear in first
// occurrence order; callers sort explicitly when they need a ranking. Unknown
// columns or ops fail before any computation.
func (t Table) GroupByPlayer(aggregations []PlayerAggregation) ([]PlayerGroup, error) {
	accessors := make([]func(MatchRecord) float64, len(aggregations))
	for i, agg := range aggregations {
		accessor, err := numericAccessor(agg.Column)
		if err != nil {
			return nil, err
		}
		if agg.Op != OpSum && agg.Op != OpMax {
			return nil, fmt.Errorf("%w: unsupported aggregation op %q", ErrUnknownColumn, agg.Op)
		}
		accessors[i] = accessor
	}

	index := make(map[string]int, len(t.records))
	groups := make([]PlayerGroup, 0)
	matchSeen := make(map[string]map[string]struct{})

	for _, r := range t.records {
		at, ok := index[r.Player]
		if !ok {
			at = len(groups)
			index[r.Player] = at
			groups = append(groups, PlayerGroup{
				Player: r.Player,
				Values: make(map[string]float64, len(aggregations)),
			})
			matchSeen[r.Player] = make(map[string]struct{})
		}

		if _, dup := matchSeen[r.Player][r.MatchID]; !dup {
			matchSeen[r.Player][r.MatchID] = struct{}{}
			groups[at].MatchesPlayed++
		}

		for i, agg := range aggregations {
			value := accessors[i](r)
			current, exists := groups[at].Values[agg.Column]
			switch agg.Op {
			case OpSum:
				groups[at].Values[agg.Column] = current + value
			case OpMax:
				if !exists || value > current {
					groups[at].Values[agg.Column] = value
				}
			}
		}
	}

	return groups, nil
}

// TopN returns up to n rows ordered by column, descending unless ascending is
// set. The sort is stable: ties keep original row order.
func (t Table) TopN(column string, n int, ascending bool) (Table, error) {
	accessor, err := numericAccessor(column)
	if err != nil {
		return Table{}, err
	}
	if n < 0 {
		n = 0
	}

	sorted := make([]MatchRecord, len(t.records))
	copy(sorted, t.records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return accessor(sorted[i]) < accessor(sorted[j])
		}
		return accessor(sorted[i]) > accessor(sorted[j])
	})

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return Table{records: sorted}, nil
}

// CorrelationMatrix holds pairwise Pearson correlations, row/column order
// matching Columns.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlations computes the pairwise Pearson matrix over the named numeric
// columns. Correlation is undefined below two rows; that case returns
// ErrInsufficientData rather than NaNs.
func (t Table) Correlations(columns []string) (CorrelationMatrix, error) {
	if len(columns) == 0 {
		return CorrelationMatrix{}, fmt.Errorf("%w: no columns requested", ErrUnknownColumn)
	}
	if len(t.records) < 2 {
		return CorrelationMatrix{}, fmt.Errorf("%w: correlation needs at least 2 rows, have %d", ErrInsufficientData, len(t.records))
	}

	series := make([][]float64, len(columns))
	for i, column := range columns {
		accessor, err := numericAccessor(column)
		if err != nil {
			return CorrelationMatrix{}, err
		}
		values := make([]float64, len(t.records))
		for j, r := range t.records {
			values[j] = accessor(r)
		}
		series[i] = values
	}

	out := CorrelationMatrix{
		Columns: append([]string(nil), columns...),
		Values:  make([][]float64, len(columns)),
	}
	for i := range columns {
		out.Values[i] = make([]float64, len(columns))
		for j := range columns {
			if i == j {
				out.Values[i][j] = 1
				continue
			}
			out.Values[i][j] = stat.Correlation(series[i], series[j], nil)
		}
	}
	return out, nil
}

// DistinctSeasons returns the sorted set of season labels in the view.
func (t Table) DistinctSeasons() []string {
	return t.distinctSorted(func(r MatchRecord) string { return r.Season })
}

func (t Table) DistinctPlayers() []string {
	return t.distinctSorted(func(r MatchRecord) string { return r.Player })
}

func (t Table) DistinctOpponents() []string {
	return t.distinctSorted(func(r MatchRecord) string { return r.Opponent })
}

func (t Table) DistinctRounds() []string {
	return t.distinctSorted(func(r MatchRecord) string { return r.Round })
}

func (t Table) distinctSorted(accessor func(MatchRecord) string) []string {
	seen := make(map[string]struct{}, len(t.records))
	out := make([]string, 0)
	for _, r := range t.records {
		value := accessor(r)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
