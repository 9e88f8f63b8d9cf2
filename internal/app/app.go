package app

import (
	"fmt"
	"net/http"

	"github.com/clubstats/matchlens/internal/config"
	"github.com/clubstats/matchlens/internal/infrastructure/repository/csvfile"
	"github.com/clubstats/matchlens/internal/interfaces/httpapi"
	"github.com/clubstats/matchlens/internal/platform/cache"
	"github.com/clubstats/matchlens/internal/platform/logging"
	"github.com/clubstats/matchlens/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	loader := csvfile.NewLoader(cfg.DatasetPaths, csvfile.Options{
		NormalizeHeaders: cfg.DatasetNormalizeHeaders,
		DateFormat:       cfg.DatasetDateFormat,
	}, logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	datasetSvc := usecase.NewDatasetService(loader, store, logger)
	statsSvc := usecase.NewStatsService(loader, store, cfg.SeasonWorkers, logger)
	insightsSvc := usecase.NewInsightsService(loader, store, logger)
	exportSvc := usecase.NewExportService(loader, cfg.DatasetDateFormat, logger)

	handler := httpapi.NewHandler(datasetSvc, statsSvc, insightsSvc, exportSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
