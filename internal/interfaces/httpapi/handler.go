package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/clubstats/matchlens/internal/platform/logging"
	"github.com/clubstats/matchlens/internal/usecase"
)

type Handler struct {
	datasetService  *usecase.DatasetService
	statsService    *usecase.StatsService
	insightsService *usecase.InsightsService
	exportService   *usecase.ExportService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	datasetService *usecase.DatasetService,
	statsService *usecase.StatsService,
	insightsService *usecase.InsightsService,
	exportService *usecase.ExportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		datasetService:  datasetService,
		statsService:    statsService,
		insightsService: insightsService,
		exportService:   exportService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
