package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/clubstats/matchlens/internal/usecase"
)

type topRowsRequest struct {
	Column    string `validate:"required"`
	N         int    `validate:"required,gt=0,lte=1000"`
	Ascending bool
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.statsService.Overview(ctx, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(ctx, overview))
}

func (h *Handler) ListPlayerContributions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerContributions")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	contributions, err := h.statsService.PlayerContributions(ctx, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "player contributions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerContributionDTO, 0, len(contributions))
	for _, c := range contributions {
		items = append(items, playerContributionDTO{
			Player:        c.Player,
			Matches:       c.Matches,
			Goals:         c.Goals,
			Assists:       c.Assists,
			MinutesPlayed: c.MinutesPlayed,
			PlayerXG:      c.PlayerXG,
			PlayerShots:   c.PlayerShots,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTopRows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopRows")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	req := topRowsRequest{
		Column: strings.TrimSpace(query.Get("column")),
		N:      10,
	}
	if raw := strings.TrimSpace(query.Get("n")); raw != "" {
		n, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid n %q", usecase.ErrInvalidInput, raw))
			return
		}
		req.N = n
	}
	if raw := strings.TrimSpace(query.Get("ascending")); raw != "" {
		ascending, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid ascending %q", usecase.ErrInvalidInput, raw))
			return
		}
		req.Ascending = ascending
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.statsService.TopRows(ctx, spec, req.Column, req.N, req.Ascending)
	if err != nil {
		h.logger.WarnContext(ctx, "top rows failed", "column", req.Column, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchRecordDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, matchRecordToDTO(ctx, row))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListSeasonSummaries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonSummaries")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summaries, err := h.statsService.SeasonSummaries(ctx, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "season summaries failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, seasonSummaryDTO{
			Season:          s.Season,
			Rows:            s.Rows,
			Matches:         s.Matches,
			AvgGoalsFor:     s.AvgGoalsFor,
			AvgGoalsAgainst: s.AvgGoalsAgainst,
			AvgXG:           s.AvgXG,
			WinRatePct:      s.WinRatePct,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListRoundGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundGoals")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds, err := h.statsService.GoalsByRound(ctx, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "round goals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]roundGoalsDTO, 0, len(rounds))
	for _, rg := range rounds {
		items = append(items, roundGoalsDTO{Round: rg.Round, GoalsFor: rg.GoalsFor})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetVenueSplit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVenueSplit")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	split, err := h.statsService.VenueSplit(ctx, spec)
	if err != nil {
		h.logger.WarnContext(ctx, "venue split failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]venueAveragesDTO, 0, len(split))
	for _, v := range split {
		items = append(items, venueAveragesDTO{
			Venue:           v.Venue,
			Matches:         v.Matches,
			AvgGoalsFor:     v.AvgGoalsFor,
			AvgGoalsAgainst: v.AvgGoalsAgainst,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
