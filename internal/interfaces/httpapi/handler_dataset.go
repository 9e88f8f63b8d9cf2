package httpapi

import (
	"net/http"
)

func (h *Handler) GetDatasetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDatasetStatus")
	defer span.End()

	status, err := h.datasetService.Status(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "dataset status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetStatusToDTO(ctx, status))
}

func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadDataset")
	defer span.End()

	status, err := h.datasetService.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "dataset reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, datasetStatusToDTO(ctx, status))
}
