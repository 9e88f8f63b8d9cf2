package csvfile

import (
	"strconv"
	"strings"
	"time"

	"github.com/clubstats/matchlens/internal/domain/dataset"
)

// rowParser coerces raw CSV cells into typed match records. Coercion failures
// on numeric or date cells drop the row and count it as a parse warning;
// unrecognized venue/result labels are null-filled instead, since the rest of
// the row is still usable.
type rowParser struct {
	index      map[string]int
	dateFormat string
}

func newRowParser(headers []string, dateFormat string) *rowParser {
	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, ok := index[h]; ok {
			// First occurrence wins on residual duplicates.
			continue
		}
		index[h] = i
	}
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &rowParser{index: index, dateFormat: dateFormat}
}

// DefaultDateFormat matches the ISO dates of the source exports.
const DefaultDateFormat = "2006-01-02"

func (p *rowParser) parse(row []string) (dataset.MatchRecord, bool) {
	record := dataset.MatchRecord{
		MatchID:  p.text(row, dataset.ColMatchID),
		Season:   p.text(row, dataset.ColSeason),
		Round:    p.text(row, dataset.ColRound),
		Opponent: p.text(row, dataset.ColOpponent),
		Player:   p.text(row, dataset.ColPlayer),
	}

	ok := true
	record.GoalsFor, ok = p.intCell(row, dataset.ColGoalsFor, ok)
	record.GoalsAgainst, ok = p.intCell(row, dataset.ColGoalsAgainst, ok)
	record.Shots, ok = p.intCell(row, dataset.ColShots, ok)
	record.ShotsOnTarget, ok = p.intCell(row, dataset.ColShotsOnTarget, ok)
	record.Goals, ok = p.intCell(row, dataset.ColGoals, ok)
	record.Assists, ok = p.intCell(row, dataset.ColAssists, ok)
	record.MinutesPlayed, ok = p.intCell(row, dataset.ColMinutesPlayed, ok)
	record.PlayerShots, ok = p.intCell(row, dataset.ColPlayerShots, ok)
	record.PossessionPct, ok = p.floatCell(row, dataset.ColPossessionPct, ok)
	record.XG, ok = p.floatCell(row, dataset.ColXG, ok)
	record.PlayerXG, ok = p.floatCell(row, dataset.ColPlayerXG, ok)
	if !ok {
		return dataset.MatchRecord{}, false
	}

	if raw := p.text(row, dataset.ColDate); raw != "" {
		parsed, err := time.Parse(p.dateFormat, raw)
		if err != nil {
			return dataset.MatchRecord{}, false
		}
		record.Date = parsed
	}

	if raw := p.text(row, dataset.ColHomeAway); raw != "" {
		if venue, valid := dataset.NormalizeVenue(raw); valid {
			record.Venue = venue
		}
	}

	if raw := p.text(row, dataset.ColResult); raw != "" {
		if result, valid := dataset.NormalizeResult(raw); valid {
			record.Result = result
		}
	}
	if record.Result == "" {
		record.Result = dataset.DeriveResult(record.GoalsFor, record.GoalsAgainst)
	}

	return record, true
}

func (p *rowParser) text(row []string, column string) string {
	at, ok := p.index[column]
	if !ok || at >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[at])
}

func (p *rowParser) intCell(row []string, column string, ok bool) (int, bool) {
	if !ok {
		return 0, false
	}
	raw := p.text(row, column)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func (p *rowParser) floatCell(row []string, column string, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	raw := p.text(row, column)
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
