package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/infrastructure/repository/csvfile"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

type ExportService struct {
	repo       dataset.Repository
	dateFormat string
	logger     *logging.Logger
}

func NewExportService(repo dataset.Repository, dateFormat string, logger *logging.Logger) *ExportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExportService{
		repo:       repo,
		dateFormat: dateFormat,
		logger:     logger,
	}
}

// WriteCSV streams the filtered view as CSV into w and reports the number of
// data rows written. The view is serialized into a pooled buffer first so a
// mid-serialization failure never leaves a truncated body on the wire.
func (s *ExportService) WriteCSV(ctx context.Context, spec dataset.FilterSpec, w io.Writer) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExportService.WriteCSV")
	defer span.End()

	snapshot, err := s.repo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load dataset: %w", err)
	}
	view := snapshot.Table.Filter(spec)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := csvfile.WriteTable(buf, view, s.dateFormat); err != nil {
		return 0, fmt.Errorf("serialize export: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	return view.Len(), nil
}
