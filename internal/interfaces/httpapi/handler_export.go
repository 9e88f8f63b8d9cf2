package httpapi

import (
	"net/http"
)

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportCSV")
	defer span.End()

	spec, err := parseFilterSpec(ctx, r.URL.Query())
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_stats.csv"`)

	rows, err := h.exportService.WriteCSV(ctx, spec, w)
	if err != nil {
		// Nothing has hit the wire yet on a serialization failure, so the
		// JSON error envelope is still safe to send.
		w.Header().Del("Content-Disposition")
		h.logger.ErrorContext(ctx, "csv export failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "csv export served", "rows", rows)
}
