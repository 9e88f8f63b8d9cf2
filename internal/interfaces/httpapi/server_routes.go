package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/dataset", handler.GetDatasetStatus)
	mux.HandleFunc("GET /v1/stats/overview", handler.GetOverview)
	mux.HandleFunc("GET /v1/stats/players", handler.ListPlayerContributions)
	mux.HandleFunc("GET /v1/stats/players/top", handler.ListTopRows)
	mux.HandleFunc("GET /v1/stats/seasons", handler.ListSeasonSummaries)
	mux.HandleFunc("GET /v1/stats/rounds", handler.ListRoundGoals)
	mux.HandleFunc("GET /v1/stats/venues", handler.GetVenueSplit)
	mux.HandleFunc("GET /v1/insights/correlation", handler.GetCorrelationMatrix)
	mux.HandleFunc("GET /v1/insights/projection", handler.GetProjection)
	mux.HandleFunc("GET /v1/export.csv", handler.ExportCSV)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/dataset/reload", RequireAdminToken(adminToken, http.HandlerFunc(handler.ReloadDataset)))
}
