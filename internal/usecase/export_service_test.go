package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

func TestExportWriteCSV(t *testing.T) {
	svc := NewExportService(newStubRepository(statsFixture()), "", logging.NewNop())

	var buf bytes.Buffer
	rows, err := svc.WriteCSV(context.Background(), dataset.FilterSpec{Seasons: []string{"2023"}}, &buf)
	require.NoError(t, err)
	require.Equal(t, 3, rows)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// Header plus the filtered rows.
	require.Len(t, records, 4)
	require.Len(t, records[0], len(dataset.Columns()))
}

func TestExportWriteCSVPropagatesLoadError(t *testing.T) {
	svc := NewExportService(&stubRepository{err: dataset.ErrDataUnavailable}, "", logging.NewNop())

	var buf bytes.Buffer
	_, err := svc.WriteCSV(context.Background(), dataset.FilterSpec{}, &buf)
	require.ErrorIs(t, err, dataset.ErrDataUnavailable)
	require.Zero(t, buf.Len(), "no bytes must reach the writer on failure")
}
