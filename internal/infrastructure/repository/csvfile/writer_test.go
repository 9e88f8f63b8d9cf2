package csvfile

import (
	"bytes"
	"encoding/csv"
	"io"
	"testing"
	"time"

	"github.com/clubstats/matchlens/internal/domain/dataset"
)

func TestWriteTableRoundTrip(t *testing.T) {
	date, _ := time.Parse(DefaultDateFormat, "2023-08-12")
	table := dataset.NewTable([]dataset.MatchRecord{
		{
			MatchID: "m1", Season: "2023", Round: "1", Date: date,
			Opponent: "United", Venue: dataset.VenueHome, Result: dataset.ResultWin,
			GoalsFor: 2, GoalsAgainst: 1, PossessionPct: 60.5, XG: 1.8,
			Shots: 14, ShotsOnTarget: 6, Player: "Alba", Goals: 1, Assists: 1,
			MinutesPlayed: 90, PlayerXG: 0.9, PlayerShots: 4,
		},
		{
			MatchID: "m2", Season: "2023", Round: "2",
			Opponent: "City", Venue: dataset.VenueAway, Result: dataset.ResultDraw,
			GoalsFor: 1, GoalsAgainst: 1, PossessionPct: 48.123456789, XG: 1.1,
			Shots: 9, ShotsOnTarget: 3, Player: "Alba", Goals: 0, Assists: 1,
			MinutesPlayed: 90, PlayerXG: 0.4, PlayerShots: 2,
		},
	})

	var buf bytes.Buffer
	if err := WriteTable(&buf, table, ""); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	reader := csv.NewReader(&buf)
	headers, err := reader.Read()
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	// Canonical headers pass canonicalization unchanged, which is what makes
	// the export re-loadable.
	canonical := CanonicalizeHeaders(headers, true)
	for i := range headers {
		if headers[i] != canonical[i] {
			t.Fatalf("header %q not canonical (-> %q)", headers[i], canonical[i])
		}
	}

	parser := newRowParser(canonical, "")
	rows := 0
	for {
		row, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			t.Fatalf("read row: %v", readErr)
		}
		record, ok := parser.parse(row)
		if !ok {
			t.Fatalf("exported row failed to parse: %v", row)
		}
		if record != table.At(rows) {
			t.Fatalf("row %d did not round-trip:\n got %+v\nwant %+v", rows, record, table.At(rows))
		}
		rows++
	}
	if rows != table.Len() {
		t.Fatalf("rows = %d, want %d", rows, table.Len())
	}
}

func TestWriteTableEmptyView(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, dataset.NewTable(nil), ""); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	reader := csv.NewReader(&buf)
	headers, err := reader.Read()
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if len(headers) != len(dataset.Columns()) {
		t.Fatalf("header columns = %d, want %d", len(headers), len(dataset.Columns()))
	}
	if _, err := reader.Read(); err != io.EOF {
		t.Fatalf("expected EOF after header, got %v", err)
	}
}
