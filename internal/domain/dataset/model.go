package dataset

import (
	"strings"
	"time"
)

const (
	VenueHome = "Home"
	VenueAway = "Away"
)

const (
	ResultWin  = "W"
	ResultDraw = "D"
	ResultLoss = "L"
)

// MatchRecord is one row of the normalized dataset: a player appearance in a
// match. Match-level fields (goals, possession, team xG) repeat on every row
// that shares a MatchID.
type MatchRecord struct {
	MatchID       string
	Season        string
	Round         string
	Date          time.Time
	Opponent      string
	Venue         string
	GoalsFor      int
	GoalsAgainst  int
	PossessionPct float64
	XG            float64
	Shots         int
	ShotsOnTarget int
	Player        string
	Goals         int
	Assists       int
	MinutesPlayed int
	PlayerXG      float64
	PlayerShots   int
	Result        string
}

// Table is an immutable, order-preserving view over match records. Filtering
// produces new tables; the underlying records are never mutated.
type Table struct {
	records []MatchRecord
}

func NewTable(records []MatchRecord) Table {
	out := make([]MatchRecord, len(records))
	copy(out, records)
	return Table{records: out}
}

func (t Table) Len() int {
	return len(t.records)
}

func (t Table) At(i int) MatchRecord {
	return t.records[i]
}

// Records returns a copy so callers cannot mutate the shared snapshot.
func (t Table) Records() []MatchRecord {
	out := make([]MatchRecord, len(t.records))
	copy(out, t.records)
	return out
}

func NormalizeVenue(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "home", "h":
		return VenueHome, true
	case "away", "a":
		return VenueAway, true
	default:
		return "", false
	}
}

func NormalizeResult(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "w", "win":
		return ResultWin, true
	case "d", "draw":
		return ResultDraw, true
	case "l", "loss", "lose":
		return ResultLoss, true
	default:
		return "", false
	}
}

// DeriveResult computes the match outcome from the team's perspective when the
// source file carries no result column.
func DeriveResult(goalsFor, goalsAgainst int) string {
	switch {
	case goalsFor > goalsAgainst:
		return ResultWin
	case goalsFor < goalsAgainst:
		return ResultLoss
	default:
		return ResultDraw
	}
}
