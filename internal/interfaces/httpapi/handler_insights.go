package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/clubstats/matchlens/internal/usecase"
)

func (h *Handler) GetCorrelationMatrix(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCorrelationMatrix")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	matrix, err := h.insightsService.Correlations(ctx, spec, queryList(r.URL.Query(), "columns"))
	if err != nil {
		h.logger.WarnContext(ctx, "correlation matrix failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, correlationMatrixDTO{
		Columns: matrix.Columns,
		Values:  matrix.Values,
	})
}

func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProjection")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("xg"))
	if raw == "" {
		writeError(ctx, w, fmt.Errorf("%w: xg query parameter is required", usecase.ErrInvalidInput))
		return
	}
	inputXG, parseErr := strconv.ParseFloat(raw, 64)
	if parseErr != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid xg %q", usecase.ErrInvalidInput, raw))
		return
	}
	if inputXG < 0 {
		writeError(ctx, w, fmt.Errorf("%w: xg must be >= 0", usecase.ErrInvalidInput))
		return
	}

	projection, err := h.insightsService.Project(ctx, spec, inputXG)
	if err != nil {
		h.logger.WarnContext(ctx, "projection failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, projectionDTO{
		Alpha:          projection.Alpha,
		Beta:           projection.Beta,
		RSquared:       projection.RSquared,
		InputXG:        projection.InputXG,
		ProjectedGoals: projection.ProjectedGoals,
		Rows:           projection.Rows,
	})
}
