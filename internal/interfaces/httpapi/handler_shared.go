package httpapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/usecase"
)

const dateLayout = "2006-01-02"

type datasetStatusDTO struct {
	Path        string           `json:"path"`
	LoadedAt    string           `json:"loadedAt"`
	Rows        int              `json:"rows"`
	Matches     int              `json:"matches"`
	DroppedRows int              `json:"droppedRows"`
	Options     filterOptionsDTO `json:"filterOptions"`
}

type filterOptionsDTO struct {
	Seasons   []string `json:"seasons"`
	Players   []string `json:"players"`
	Venues    []string `json:"venues"`
	Opponents []string `json:"opponents"`
	Results   []string `json:"results"`
}

type overviewDTO struct {
	Rows          int      `json:"rows"`
	Matches       int      `json:"matches"`
	GoalsFor      int      `json:"goalsFor"`
	GoalsAgainst  int      `json:"goalsAgainst"`
	AvgPossession *float64 `json:"avgPossessionPct,omitempty"`
	AvgXG         *float64 `json:"avgXg,omitempty"`
	WinRatePct    float64  `json:"winRatePct"`
}

type playerContributionDTO struct {
	Player        string  `json:"player"`
	Matches       int     `json:"matches"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	MinutesPlayed int     `json:"minutesPlayed"`
	PlayerXG      float64 `json:"playerXg"`
	PlayerShots   int     `json:"playerShots"`
}

type matchRecordDTO struct {
	MatchID       string  `json:"matchId"`
	Season        string  `json:"season"`
	Round         string  `json:"round"`
	Date          string  `json:"date,omitempty"`
	Opponent      string  `json:"opponent"`
	Venue         string  `json:"venue"`
	Result        string  `json:"result"`
	GoalsFor      int     `json:"goalsFor"`
	GoalsAgainst  int     `json:"goalsAgainst"`
	PossessionPct float64 `json:"possessionPct"`
	XG            float64 `json:"xg"`
	Shots         int     `json:"shots"`
	ShotsOnTarget int     `json:"shotsOnTarget"`
	Player        string  `json:"player"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	MinutesPlayed int     `json:"minutesPlayed"`
	PlayerXG      float64 `json:"playerXg"`
	PlayerShots   int     `json:"playerShots"`
}

type seasonSummaryDTO struct {
	Season          string  `json:"season"`
	Rows            int     `json:"rows"`
	Matches         int     `json:"matches"`
	AvgGoalsFor     float64 `json:"avgGoalsFor"`
	AvgGoalsAgainst float64 `json:"avgGoalsAgainst"`
	AvgXG           float64 `json:"avgXg"`
	WinRatePct      float64 `json:"winRatePct"`
}

type roundGoalsDTO struct {
	Round    string `json:"round"`
	GoalsFor int    `json:"goalsFor"`
}

type venueAveragesDTO struct {
	Venue           string  `json:"venue"`
	Matches         int     `json:"matches"`
	AvgGoalsFor     float64 `json:"avgGoalsFor"`
	AvgGoalsAgainst float64 `json:"avgGoalsAgainst"`
}

type correlationMatrixDTO struct {
	Columns []string    `json:"columns"`
	Values  [][]float64 `json:"values"`
}

type projectionDTO struct {
	Alpha          float64 `json:"alpha"`
	Beta           float64 `json:"beta"`
	RSquared       float64 `json:"rSquared"`
	InputXG        float64 `json:"inputXg"`
	ProjectedGoals float64 `json:"projectedGoals"`
	Rows           int     `json:"rows"`
}

// parseFilterSpec reads the shared filter dimensions from query parameters.
// Each dimension accepts repeated parameters and comma-separated values.
// Venue and result labels are normalized; unrecognized labels are rejected
// rather than silently matching nothing.
func parseFilterSpec(ctx context.Context, query url.Values) (dataset.FilterSpec, error) {
	ctx, span := startSpan(ctx, "httpapi.parseFilterSpec")
	defer span.End()

	spec := dataset.FilterSpec{
		Seasons:   queryList(query, "seasons"),
		Players:   queryList(query, "players"),
		Opponents: queryList(query, "opponents"),
	}

	for _, raw := range queryList(query, "venues") {
		venue, ok := dataset.NormalizeVenue(raw)
		if !ok {
			return dataset.FilterSpec{}, fmt.Errorf("%w: unknown venue %q", usecase.ErrInvalidInput, raw)
		}
		spec.Venues = append(spec.Venues, venue)
	}

	for _, raw := range queryList(query, "results") {
		result, ok := dataset.NormalizeResult(raw)
		if !ok {
			return dataset.FilterSpec{}, fmt.Errorf("%w: unknown result %q", usecase.ErrInvalidInput, raw)
		}
		spec.Results = append(spec.Results, result)
	}

	return spec, nil
}

func queryList(query url.Values, key string) []string {
	out := make([]string, 0)
	for _, raw := range query[key] {
		for _, part := range strings.Split(raw, ",") {
			item := strings.TrimSpace(part)
			if item == "" {
				continue
			}
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func datasetStatusToDTO(ctx context.Context, v usecase.DatasetStatus) datasetStatusDTO {
	ctx, span := startSpan(ctx, "httpapi.datasetStatusToDTO")
	defer span.End()

	return datasetStatusDTO{
		Path:        v.Path,
		LoadedAt:    v.LoadedAt.UTC().Format(time.RFC3339),
		Rows:        v.Rows,
		Matches:     v.Matches,
		DroppedRows: v.DroppedRows,
		Options: filterOptionsDTO{
			Seasons:   v.Options.Seasons,
			Players:   v.Options.Players,
			Venues:    v.Options.Venues,
			Opponents: v.Options.Opponents,
			Results:   v.Options.Results,
		},
	}
}

func overviewToDTO(ctx context.Context, v usecase.Overview) overviewDTO {
	ctx, span := startSpan(ctx, "httpapi.overviewToDTO")
	defer span.End()

	return overviewDTO{
		Rows:          v.Rows,
		Matches:       v.Matches,
		GoalsFor:      v.GoalsFor,
		GoalsAgainst:  v.GoalsAgainst,
		AvgPossession: v.AvgPossession,
		AvgXG:         v.AvgXG,
		WinRatePct:    v.WinRatePct,
	}
}

func matchRecordToDTO(ctx context.Context, v dataset.MatchRecord) matchRecordDTO {
	ctx, span := startSpan(ctx, "httpapi.matchRecordToDTO")
	defer span.End()

	date := ""
	if !v.Date.IsZero() {
		date = v.Date.Format(dateLayout)
	}

	return matchRecordDTO{
		MatchID:       v.MatchID,
		Season:        v.Season,
		Round:         v.Round,
		Date:          date,
		Opponent:      v.Opponent,
		Venue:         v.Venue,
		Result:        v.Result,
		GoalsFor:      v.GoalsFor,
		GoalsAgainst:  v.GoalsAgainst,
		PossessionPct: v.PossessionPct,
		XG:            v.XG,
		Shots:         v.Shots,
		ShotsOnTarget: v.ShotsOnTarget,
		Player:        v.Player,
		Goals:         v.Goals,
		Assists:       v.Assists,
		MinutesPlayed: v.MinutesPlayed,
		PlayerXG:      v.PlayerXG,
		PlayerShots:   v.PlayerShots,
	}
}
