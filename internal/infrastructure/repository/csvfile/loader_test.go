package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/clubstats/matchlens/internal/domain/dataset"
	"github.com/clubstats/matchlens/internal/platform/logging"
)

const sampleCSV = `match_id,season_x,round,date,opponent,home_away,result,goals_for,goals_against,possession_pct,xG_x,shots_x,shots_on_target,player,goals,assists,minutes_played,xG_y,shots_y
m1,2023,1,2023-08-12,United,home,W,2,1,60.5,1.8,14,6,Alba,1,1,90,0.9,4
m1,2023,1,2023-08-12,United,home,W,2,1,60.5,1.8,14,6,Berg,1,0,78,0.6,3
m2,2023,2,2023-08-19,City,away,,1,1,48.0,1.1,9,3,Alba,0,1,90,0.4,2
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matches.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func TestLoaderLoadsAndNormalizes(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	loader := NewLoader([]string{path}, Options{NormalizeHeaders: true}, logging.NewNop())

	snapshot, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snapshot.Table.Len() != 3 {
		t.Fatalf("rows = %d, want 3", snapshot.Table.Len())
	}
	if snapshot.DroppedRows != 0 {
		t.Fatalf("dropped = %d, want 0", snapshot.DroppedRows)
	}

	first := snapshot.Table.At(0)
	if first.Season != "2023" {
		t.Fatalf("season_x not renamed: %q", first.Season)
	}
	if first.XG != 1.8 || first.PlayerXG != 0.9 {
		t.Fatalf("xG columns mixed up: team %v player %v", first.XG, first.PlayerXG)
	}
	if first.Venue != dataset.VenueHome {
		t.Fatalf("venue = %q, want %q", first.Venue, dataset.VenueHome)
	}
	if first.Date.Format("2006-01-02") != "2023-08-12" {
		t.Fatalf("date = %v", first.Date)
	}

	// Third row has no result cell; it must be derived from the score.
	third := snapshot.Table.At(2)
	if third.Result != dataset.ResultDraw {
		t.Fatalf("derived result = %q, want %q", third.Result, dataset.ResultDraw)
	}
}

func TestLoaderProbesCandidatePaths(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	missing := filepath.Join(t.TempDir(), "absent.csv")
	loader := NewLoader([]string{missing, path}, Options{NormalizeHeaders: true}, logging.NewNop())

	snapshot, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snapshot.Path != path {
		t.Fatalf("path = %q, want %q", snapshot.Path, path)
	}
}

func TestLoaderMissingFile(t *testing.T) {
	loader := NewLoader([]string{filepath.Join(t.TempDir(), "absent.csv")}, Options{}, logging.NewNop())

	_, err := loader.Load(context.Background())
	if !errors.Is(err, dataset.ErrDataUnavailable) {
		t.Fatalf("err = %v, want ErrDataUnavailable", err)
	}
}

func TestLoaderMissingRequiredColumn(t *testing.T) {
	path := writeDataset(t, "match_id,season\nm1,2023\n")
	loader := NewLoader([]string{path}, Options{NormalizeHeaders: true}, logging.NewNop())

	_, err := loader.Load(context.Background())
	if !errors.Is(err, dataset.ErrSchema) {
		t.Fatalf("err = %v, want ErrSchema", err)
	}
}

func TestLoaderDropsUnparseableRows(t *testing.T) {
	bad := sampleCSV +
		"m3,2023,3,not-a-date,City,home,W,2,0,55.0,1.5,10,5,Alba,1,0,90,0.7,3\n" +
		"m4,2023,4,2023-09-02,City,home,W,abc,0,55.0,1.5,10,5,Alba,1,0,90,0.7,3\n"
	path := writeDataset(t, bad)
	loader := NewLoader([]string{path}, Options{NormalizeHeaders: true}, logging.NewNop())

	snapshot, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snapshot.Table.Len() != 3 {
		t.Fatalf("rows = %d, want 3", snapshot.Table.Len())
	}
	if snapshot.DroppedRows != 2 {
		t.Fatalf("dropped = %d, want 2", snapshot.DroppedRows)
	}
}

func TestLoaderReusesSnapshotUntilFileChanges(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	loader := NewLoader([]string{path}, Options{NormalizeHeaders: true}, logging.NewNop())

	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("first Load: %v", err)
	}
	second, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if first != second {
		t.Fatalf("unchanged file reloaded: snapshots differ")
	}

	// Rewrite with a different mtime and size; the next load must pick it up.
	extended := sampleCSV + "m5,2024,1,2024-08-10,United,away,L,0,1,44.0,0.6,5,1,Cruz,0,0,45,0.1,1\n"
	if err := os.WriteFile(path, []byte(extended), 0o600); err != nil {
		t.Fatalf("rewrite dataset: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	third, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("third Load: %v", err)
	}
	if third == first {
		t.Fatalf("stale snapshot served after file change")
	}
	if third.Table.Len() != 4 {
		t.Fatalf("rows = %d, want 4", third.Table.Len())
	}
}

func TestLoaderInvalidate(t *testing.T) {
	path := writeDataset(t, sampleCSV)
	loader := NewLoader([]string{path}, Options{NormalizeHeaders: true}, logging.NewNop())

	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	loader.Invalidate(context.Background())

	second, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after Invalidate: %v", err)
	}
	if second == first {
		t.Fatalf("Invalidate did not force a reload")
	}
	if second.Table.Len() != first.Table.Len() {
		t.Fatalf("reload changed rows: %d vs %d", second.Table.Len(), first.Table.Len())
	}
}
