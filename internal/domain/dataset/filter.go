package dataset

import (
	"sort"
	"strings"
)

// FilterSpec selects rows by set membership per dimension. A nil or empty
// dimension places no restriction on that dimension, so the zero spec selects
// the whole table.
type FilterSpec struct {
	Seasons   []string
	Players   []string
	Venues    []string
	Opponents []string
	Results   []string
}

func (s FilterSpec) IsZero() bool {
	return len(s.Seasons) == 0 && len(s.Players) == 0 && len(s.Venues) == 0 &&
		len(s.Opponents) == 0 && len(s.Results) == 0
}

// Key returns a canonical string for the filter: dimensions in fixed order,
// values sorted and deduplicated. Equal specs always produce equal keys, so
// the key is safe to use for response caching.
func (s FilterSpec) Key() string {
	var b strings.Builder
	writeDim := func(name string, values []string) {
		b.WriteString(name)
		b.WriteByte('=')
		sorted := make([]string, len(values))
		copy(sorted, values)
		sort.Strings(sorted)
		last := ""
		for i, v := range sorted {
			if i > 0 && v == last {
				continue
			}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(v)
			last = v
		}
		b.WriteByte(';')
	}
	writeDim("seasons", s.Seasons)
	writeDim("players", s.Players)
	writeDim("venues", s.Venues)
	writeDim("opponents", s.Opponents)
	writeDim("results", s.Results)
	return b.String()
}

// Filter returns the order-preserving subset of rows matching every supplied
// dimension. The receiver is never mutated.
func (t Table) Filter(spec FilterSpec) Table {
	if spec.IsZero() {
		return t
	}

	seasons := toSet(spec.Seasons)
	players := toSet(spec.Players)
	venues := toSet(spec.Venues)
	opponents := toSet(spec.Opponents)
	results := toSet(spec.Results)

	out := make([]MatchRecord, 0, len(t.records))
	for _, r := range t.records {
		if !matchesDim(seasons, r.Season) {
			continue
		}
		if !matchesDim(players, r.Player) {
			continue
		}
		if !matchesDim(venues, r.Venue) {
			continue
		}
		if !matchesDim(opponents, r.Opponent) {
			continue
		}
		if !matchesDim(results, r.Result) {
			continue
		}
		out = append(out, r)
	}

	return Table{records: out}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func matchesDim(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[value]
	return ok
}
