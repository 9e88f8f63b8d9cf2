package dataset

import (
	"testing"
)

func filterFixture() Table {
	return NewTable([]MatchRecord{
		{MatchID: "m1", Season: "2023", Player: "Alba", Venue: VenueHome, Opponent: "United", Result: ResultWin},
		{MatchID: "m1", Season: "2023", Player: "Berg", Venue: VenueHome, Opponent: "United", Result: ResultWin},
		{MatchID: "m2", Season: "2023", Player: "Alba", Venue: VenueAway, Opponent: "City", Result: ResultLoss},
		{MatchID: "m3", Season: "2024", Player: "Cruz", Venue: VenueHome, Opponent: "City", Result: ResultDraw},
	})
}

func TestFilterZeroSpecIsIdentity(t *testing.T) {
	table := filterFixture()
	got := table.Filter(FilterSpec{})
	if got.Len() != table.Len() {
		t.Fatalf("zero spec filtered rows: got %d, want %d", got.Len(), table.Len())
	}
}

func TestFilterConjunction(t *testing.T) {
	table := filterFixture()

	got := table.Filter(FilterSpec{Seasons: []string{"2023"}, Venues: []string{VenueHome}})
	if got.Len() != 2 {
		t.Fatalf("rows = %d, want 2", got.Len())
	}
	for i := 0; i < got.Len(); i++ {
		r := got.At(i)
		if r.Season != "2023" || r.Venue != VenueHome {
			t.Fatalf("row %d escaped the filter: %+v", i, r)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	table := filterFixture()

	got := table.Filter(FilterSpec{Players: []string{"Alba"}})
	if got.Len() != 2 {
		t.Fatalf("rows = %d, want 2", got.Len())
	}
	if got.At(0).MatchID != "m1" || got.At(1).MatchID != "m2" {
		t.Fatalf("order not preserved: %q then %q", got.At(0).MatchID, got.At(1).MatchID)
	}
}

func TestFilterIdempotent(t *testing.T) {
	table := filterFixture()
	spec := FilterSpec{Seasons: []string{"2023"}}

	once := table.Filter(spec)
	twice := once.Filter(spec)
	if once.Len() != twice.Len() {
		t.Fatalf("second application changed rows: %d vs %d", once.Len(), twice.Len())
	}
}

func TestFilterUnknownValueSelectsNothing(t *testing.T) {
	table := filterFixture()
	got := table.Filter(FilterSpec{Opponents: []string{"Rovers"}})
	if got.Len() != 0 {
		t.Fatalf("rows = %d, want 0", got.Len())
	}
}

func TestFilterSpecKeyCanonical(t *testing.T) {
	a := FilterSpec{Seasons: []string{"2024", "2023", "2023"}, Results: []string{ResultWin}}
	b := FilterSpec{Seasons: []string{"2023", "2024"}, Results: []string{ResultWin}}

	if a.Key() != b.Key() {
		t.Fatalf("equal specs produced different keys:\n%s\n%s", a.Key(), b.Key())
	}

	c := FilterSpec{Seasons: []string{"2023"}}
	if a.Key() == c.Key() {
		t.Fatalf("different specs produced the same key: %s", a.Key())
	}

	if (FilterSpec{}).Key() != (FilterSpec{Seasons: []string{}}).Key() {
		t.Fatalf("nil and empty dimensions should share a key")
	}
}
