package csvfile

import (
	"strings"

	"github.com/clubstats/matchlens/internal/domain/dataset"
)

// renameTable resolves the upstream join collisions: the source file is a
// join of match-level and player-level exports, which left suffixed duplicate
// columns. Applied to raw (trimmed, pre-normalization) headers so both schema
// spellings resolve before case folding.
var renameTable = map[string]string{
	"season_x": dataset.ColSeason,
	"xG_x":     dataset.ColXG,
	"xG_y":     dataset.ColPlayerXG,
	"shots_x":  dataset.ColShots,
	"shots_y":  dataset.ColPlayerShots,
}

// requiredColumns must all be present after normalization or the load fails
// with a schema error.
var requiredColumns = []string{
	dataset.ColMatchID,
	dataset.ColSeason,
	dataset.ColGoalsFor,
	dataset.ColGoalsAgainst,
	dataset.ColPossessionPct,
}

// NormalizeHeader trims, lower-cases and replaces internal spaces with
// underscores. Idempotent: normalizing an already-normalized header is a
// no-op.
func NormalizeHeader(header string) string {
	header = strings.TrimSpace(header)
	header = strings.ToLower(header)
	return strings.ReplaceAll(header, " ", "_")
}

// CanonicalizeHeaders applies the rename table and, when normalize is set,
// header normalization, in that order.
func CanonicalizeHeaders(raw []string, normalize bool) []string {
	out := make([]string, len(raw))
	for i, header := range raw {
		header = strings.TrimSpace(header)
		if renamed, ok := renameTable[header]; ok {
			header = renamed
		}
		if normalize {
			header = NormalizeHeader(header)
		}
		out[i] = header
	}
	return out
}

func missingRequired(headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	missing := make([]string, 0)
	for _, required := range requiredColumns {
		if _, ok := present[required]; !ok {
			missing = append(missing, required)
		}
	}
	return missing
}
