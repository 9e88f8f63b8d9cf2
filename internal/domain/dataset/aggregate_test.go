package dataset

import (
	"errors"
	"math"
	"testing"
)

// aggregateFixture is two seasons at player granularity. Match-level values
// repeat across the player rows of a match.
func aggregateFixture() Table {
	return NewTable([]MatchRecord{
		{MatchID: "m1", Season: "2023", Player: "Alba", GoalsFor: 2, GoalsAgainst: 1, PossessionPct: 60, XG: 1.8, Shots: 14, ShotsOnTarget: 6, Goals: 1, Assists: 1, MinutesPlayed: 90, PlayerXG: 0.9, PlayerShots: 4, Result: ResultWin},
		{MatchID: "m1", Season: "2023", Player: "Berg", GoalsFor: 2, GoalsAgainst: 1, PossessionPct: 60, XG: 1.8, Shots: 14, ShotsOnTarget: 6, Goals: 1, Assists: 0, MinutesPlayed: 78, PlayerXG: 0.6, PlayerShots: 3, Result: ResultWin},
		{MatchID: "m2", Season: "2023", Player: "Alba", GoalsFor: 1, GoalsAgainst: 1, PossessionPct: 48, XG: 1.1, Shots: 9, ShotsOnTarget: 3, Goals: 0, Assists: 1, MinutesPlayed: 90, PlayerXG: 0.4, PlayerShots: 2, Result: ResultDraw},
		{MatchID: "m3", Season: "2024", Player: "Cruz", GoalsFor: 0, GoalsAgainst: 2, PossessionPct: 52, XG: 0.7, Shots: 7, ShotsOnTarget: 2, Goals: 0, Assists: 0, MinutesPlayed: 45, PlayerXG: 0.2, PlayerShots: 1, Result: ResultLoss},
	})
}

func TestMatchCountDistinct(t *testing.T) {
	table := aggregateFixture()
	if got := table.MatchCount(); got != 3 {
		t.Fatalf("MatchCount = %d, want 3", got)
	}

	season := table.Filter(FilterSpec{Seasons: []string{"2023"}})
	if got := season.MatchCount(); got != 2 {
		t.Fatalf("season MatchCount = %d, want 2", got)
	}
}

func TestSumGoalsAreRowSums(t *testing.T) {
	season := aggregateFixture().Filter(FilterSpec{Seasons: []string{"2023"}})

	// m1 contributes twice, once per player row.
	if got := season.SumGoalsFor(); got != 5 {
		t.Fatalf("SumGoalsFor = %d, want 5", got)
	}
	if got := season.SumGoalsAgainst(); got != 3 {
		t.Fatalf("SumGoalsAgainst = %d, want 3", got)
	}
}

func TestMeansNaNOnEmpty(t *testing.T) {
	empty := NewTable(nil)
	if got := empty.MeanPossession(); !math.IsNaN(got) {
		t.Fatalf("MeanPossession on empty = %v, want NaN", got)
	}
	if got := empty.MeanXG(); !math.IsNaN(got) {
		t.Fatalf("MeanXG on empty = %v, want NaN", got)
	}

	table := aggregateFixture()
	if got := table.MeanPossession(); got != 55 {
		t.Fatalf("MeanPossession = %v, want 55", got)
	}
}

func TestWinRate(t *testing.T) {
	table := aggregateFixture()

	// One win among three distinct matches; the duplicate m1 row must not
	// double count.
	want := 100.0 / 3.0
	if got := table.WinRate(); math.Abs(got-want) > 1e-9 {
		t.Fatalf("WinRate = %v, want %v", got, want)
	}

	season := table.Filter(FilterSpec{Seasons: []string{"2023"}})
	if got := season.WinRate(); got != 50 {
		t.Fatalf("season WinRate = %v, want 50", got)
	}

	if got := NewTable(nil).WinRate(); got != 0 {
		t.Fatalf("empty WinRate = %v, want 0", got)
	}
}

func TestGroupByPlayer(t *testing.T) {
	table := aggregateFixture()

	groups, err := table.GroupByPlayer([]PlayerAggregation{
		{Column: ColGoals, Op: OpSum},
		{Column: ColMinutesPlayed, Op: OpMax},
	})
	if err != nil {
		t.Fatalf("GroupByPlayer: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	// First occurrence order.
	if groups[0].Player != "Alba" || groups[1].Player != "Berg" || groups[2].Player != "Cruz" {
		t.Fatalf("unexpected group order: %v %v %v", groups[0].Player, groups[1].Player, groups[2].Player)
	}

	alba := groups[0]
	if alba.MatchesPlayed != 2 {
		t.Fatalf("Alba MatchesPlayed = %d, want 2", alba.MatchesPlayed)
	}
	if got := alba.Values[ColGoals]; got != 1 {
		t.Fatalf("Alba goals sum = %v, want 1", got)
	}
	if got := alba.Values[ColMinutesPlayed]; got != 90 {
		t.Fatalf("Alba minutes max = %v, want 90", got)
	}
}

func TestGroupByPlayerRejectsUnknownColumn(t *testing.T) {
	_, err := aggregateFixture().GroupByPlayer([]PlayerAggregation{{Column: "opponent", Op: OpSum}})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn", err)
	}

	_, err = aggregateFixture().GroupByPlayer([]PlayerAggregation{{Column: ColGoals, Op: "median"}})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn for bad op", err)
	}
}

func TestTopNStableOnTies(t *testing.T) {
	table := NewTable([]MatchRecord{
		{MatchID: "m1", Player: "first", Goals: 2},
		{MatchID: "m2", Player: "second", Goals: 2},
		{MatchID: "m3", Player: "third", Goals: 5},
	})

	top, err := table.TopN(ColGoals, 2, false)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if top.Len() != 2 {
		t.Fatalf("rows = %d, want 2", top.Len())
	}
	if top.At(0).Player != "third" {
		t.Fatalf("top row = %q, want third", top.At(0).Player)
	}
	// Among the tied rows the earlier source row wins.
	if top.At(1).Player != "first" {
		t.Fatalf("tie broken against source order: got %q", top.At(1).Player)
	}

	asc, err := table.TopN(ColGoals, 3, true)
	if err != nil {
		t.Fatalf("TopN ascending: %v", err)
	}
	if asc.At(0).Player != "first" || asc.At(2).Player != "third" {
		t.Fatalf("ascending order wrong: %q ... %q", asc.At(0).Player, asc.At(2).Player)
	}
}

func TestTopNLargerThanTable(t *testing.T) {
	table := aggregateFixture()
	top, err := table.TopN(ColXG, 100, false)
	if err != nil {
		t.Fatalf("TopN: %v", err)
	}
	if top.Len() != table.Len() {
		t.Fatalf("rows = %d, want %d", top.Len(), table.Len())
	}
}

func TestCorrelations(t *testing.T) {
	table := NewTable([]MatchRecord{
		{MatchID: "m1", GoalsFor: 1, XG: 1},
		{MatchID: "m2", GoalsFor: 2, XG: 2},
		{MatchID: "m3", GoalsFor: 3, XG: 3},
	})

	matrix, err := table.Correlations([]string{ColGoalsFor, ColXG})
	if err != nil {
		t.Fatalf("Correlations: %v", err)
	}
	if len(matrix.Columns) != 2 || len(matrix.Values) != 2 {
		t.Fatalf("matrix shape = %dx%d, want 2x2", len(matrix.Columns), len(matrix.Values))
	}
	if matrix.Values[0][0] != 1 || matrix.Values[1][1] != 1 {
		t.Fatalf("diagonal not 1: %v", matrix.Values)
	}
	if math.Abs(matrix.Values[0][1]-1) > 1e-9 {
		t.Fatalf("perfectly correlated series = %v, want 1", matrix.Values[0][1])
	}
}

func TestCorrelationsInsufficientData(t *testing.T) {
	table := NewTable([]MatchRecord{{MatchID: "m1", GoalsFor: 1, XG: 1}})
	_, err := table.Correlations([]string{ColGoalsFor, ColXG})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestCorrelationsUnknownColumn(t *testing.T) {
	_, err := aggregateFixture().Correlations([]string{ColGoalsFor, "season"})
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("err = %v, want ErrUnknownColumn", err)
	}
}

func TestDistinctHelpers(t *testing.T) {
	table := aggregateFixture()

	seasons := table.DistinctSeasons()
	if len(seasons) != 2 || seasons[0] != "2023" || seasons[1] != "2024" {
		t.Fatalf("DistinctSeasons = %v", seasons)
	}

	players := table.DistinctPlayers()
	if len(players) != 3 {
		t.Fatalf("DistinctPlayers = %v", players)
	}
}
