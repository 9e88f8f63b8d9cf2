package dataset

import "fmt"

// Canonical column names of the normalized schema. Export writes columns in
// exactly this order.
const (
	ColMatchID       = "match_id"
	ColSeason        = "season"
	ColRound         = "round"
	ColDate          = "date"
	ColOpponent      = "opponent"
	ColHomeAway      = "home_away"
	ColResult        = "result"
	ColGoalsFor      = "goals_for"
	ColGoalsAgainst  = "goals_against"
	ColPossessionPct = "possession_pct"
	ColXG            = "xg"
	ColShots         = "shots"
	ColShotsOnTarget = "shots_on_target"
	ColPlayer        = "player"
	ColGoals         = "goals"
	ColAssists       = "assists"
	ColMinutesPlayed = "minutes_played"
	ColPlayerXG      = "player_xg"
	ColPlayerShots   = "player_shots"
)

// Columns lists the canonical schema in export order.
func Columns() []string {
	return []string{
		ColMatchID, ColSeason, ColRound, ColDate, ColOpponent, ColHomeAway,
		ColResult, ColGoalsFor, ColGoalsAgainst, ColPossessionPct, ColXG,
		ColShots, ColShotsOnTarget, ColPlayer, ColGoals, ColAssists,
		ColMinutesPlayed, ColPlayerXG, ColPlayerShots,
	}
}

var numericAccessors = map[string]func(MatchRecord) float64{
	ColGoalsFor:      func(r MatchRecord) float64 { return float64(r.GoalsFor) },
	ColGoalsAgainst:  func(r MatchRecord) float64 { return float64(r.GoalsAgainst) },
	ColPossessionPct: func(r MatchRecord) float64 { return r.PossessionPct },
	ColXG:            func(r MatchRecord) float64 { return r.XG },
	ColShots:         func(r MatchRecord) float64 { return float64(r.Shots) },
	ColShotsOnTarget: func(r MatchRecord) float64 { return float64(r.ShotsOnTarget) },
	ColGoals:         func(r MatchRecord) float64 { return float64(r.Goals) },
	ColAssists:       func(r MatchRecord) float64 { return float64(r.Assists) },
	ColMinutesPlayed: func(r MatchRecord) float64 { return float64(r.MinutesPlayed) },
	ColPlayerXG:      func(r MatchRecord) float64 { return r.PlayerXG },
	ColPlayerShots:   func(r MatchRecord) float64 { return float64(r.PlayerShots) },
}

// NumericColumns lists every column valid in group-by, top-N and correlation
// queries, in export order.
func NumericColumns() []string {
	out := make([]string, 0, len(numericAccessors))
	for _, name := range Columns() {
		if _, ok := numericAccessors[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

func numericAccessor(column string) (func(MatchRecord) float64, error) {
	accessor, ok := numericAccessors[column]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a numeric column", ErrUnknownColumn, column)
	}
	return accessor, nil
}
