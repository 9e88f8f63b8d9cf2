package csvfile

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/clubstats/matchlens/internal/domain/dataset"
)

// WriteTable serializes a view back to CSV: UTF-8, header row, canonical
// column order. Numeric cells round-trip losslessly, and the output re-loads
// through CanonicalizeHeaders unchanged.
func WriteTable(w io.Writer, table dataset.Table, dateFormat string) error {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(dataset.Columns()); err != nil {
		return errors.Wrap(err, "write csv header")
	}

	row := make([]string, len(dataset.Columns()))
	for i := 0; i < table.Len(); i++ {
		r := table.At(i)
		date := ""
		if !r.Date.IsZero() {
			date = r.Date.Format(dateFormat)
		}

		row[0] = r.MatchID
		row[1] = r.Season
		row[2] = r.Round
		row[3] = date
		row[4] = r.Opponent
		row[5] = r.Venue
		row[6] = r.Result
		row[7] = strconv.Itoa(r.GoalsFor)
		row[8] = strconv.Itoa(r.GoalsAgainst)
		row[9] = formatFloat(r.PossessionPct)
		row[10] = formatFloat(r.XG)
		row[11] = strconv.Itoa(r.Shots)
		row[12] = strconv.Itoa(r.ShotsOnTarget)
		row[13] = r.Player
		row[14] = strconv.Itoa(r.Goals)
		row[15] = strconv.Itoa(r.Assists)
		row[16] = strconv.Itoa(r.MinutesPlayed)
		row[17] = formatFloat(r.PlayerXG)
		row[18] = strconv.Itoa(r.PlayerShots)

		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "write csv row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

// formatFloat uses the shortest representation that re-parses to the exact
// same value, the byte-fidelity requirement for export round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
