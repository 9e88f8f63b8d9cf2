package csvfile

import (
	"testing"

	"github.com/clubstats/matchlens/internal/domain/dataset"
)

func TestNormalizeHeaderIdempotent(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Match ID", "match_id"},
		{"  Possession Pct ", "possession_pct"},
		{"goals_for", "goals_for"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := NormalizeHeader(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeHeader(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if again := NormalizeHeader(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestCanonicalizeHeadersRenamesJoinCollisions(t *testing.T) {
	raw := []string{"match_id", "season_x", "xG_x", "xG_y", "shots_x", "shots_y", "Player"}
	got := CanonicalizeHeaders(raw, true)

	want := []string{
		dataset.ColMatchID,
		dataset.ColSeason,
		dataset.ColXG,
		dataset.ColPlayerXG,
		dataset.ColShots,
		dataset.ColPlayerShots,
		dataset.ColPlayer,
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("header %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCanonicalizeHeadersWithoutNormalization(t *testing.T) {
	got := CanonicalizeHeaders([]string{"xG_x", "Match ID"}, false)
	if got[0] != dataset.ColXG {
		t.Fatalf("rename table skipped: %q", got[0])
	}
	// Case folding is off; only the rename table applies.
	if got[1] != "Match ID" {
		t.Fatalf("header normalized despite normalize=false: %q", got[1])
	}
}

func TestMissingRequired(t *testing.T) {
	missing := missingRequired([]string{dataset.ColMatchID, dataset.ColSeason})
	if len(missing) != 3 {
		t.Fatalf("missing = %v, want 3 columns", missing)
	}

	missing = missingRequired(CanonicalizeHeaders([]string{
		"match_id", "season_x", "goals_for", "goals_against", "possession_pct",
	}, true))
	if len(missing) != 0 {
		t.Fatalf("missing = %v, want none", missing)
	}
}
