package schedule

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanonicalize(t *testing.T) {
	t.Run("dedupes case-insensitively and sorts", func(t *testing.T) {
		got := Canonicalize([]Team{
			{ID: "Cubs", Name: "Cubs"},
			{ID: "angels", Name: "Angels"},
			{ID: "CUBS", Name: "Chicago"},
			{ID: " astros ", Name: "Astros"},
		})
		want := []Team{
			{ID: "angels", Name: "Angels"},
			{ID: "astros", Name: "Astros"},
			{ID: "cubs", Name: "Chicago"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Canonicalize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("drops placeholder identities", func(t *testing.T) {
		got := Canonicalize([]Team{
			{ID: ""},
			{ID: "   "},
			{ID: "0x0000000000000000000000000000000000000000"},
			{ID: "0x00ab", Name: "Real"},
		})
		want := []Team{{ID: "0x00ab", Name: "Real"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Canonicalize() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("falls back to identity when no name is given", func(t *testing.T) {
		got := Canonicalize([]Team{{ID: "Royals"}})
		if got[0].Name != "royals" {
			t.Errorf("name = %q, want %q", got[0].Name, "royals")
		}
	})

	t.Run("named record beats unnamed duplicate", func(t *testing.T) {
		got := Canonicalize([]Team{{ID: "royals"}, {ID: "ROYALS", Name: "KC"}})
		if len(got) != 1 || got[0].Name != "KC" {
			t.Errorf("got %v, want single royals named KC", got)
		}
	})

	t.Run("independent of input order", func(t *testing.T) {
		a := Canonicalize([]Team{{ID: "b", Name: "Bee"}, {ID: "A", Name: "x"}, {ID: "a", Name: "Ay"}})
		b := Canonicalize([]Team{{ID: "a", Name: "Ay"}, {ID: "B", Name: "Bee"}, {ID: "A", Name: "x"}})
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("order changed result (-a +b):\n%s", diff)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		once := Canonicalize([]Team{{ID: "Z"}, {ID: "y", Name: "Why"}, {ID: "Y"}})
		twice := Canonicalize(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("second pass changed result (-once +twice):\n%s", diff)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Canonicalize(nil); len(got) != 0 {
			t.Errorf("Canonicalize(nil) = %v, want empty", got)
		}
	})
}

func TestTeamKeyLowercases(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"0xAbC", "0xabc", true},
		{"ÄRGER", "ärger", true},
		{"Straße", "STRASSE", false},
		{"straße", "STRASSE", false},
	}
	for _, tt := range tests {
		got := Team{ID: tt.a}.Key() == Team{ID: tt.b}.Key()
		if got != tt.same {
			t.Errorf("Key(%q) == Key(%q) is %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}

	if got := Canonicalize([]Team{{ID: "Straße"}, {ID: "STRASSE"}}); len(got) != 2 {
		t.Errorf("Canonicalize() = %v, want two distinct teams", got)
	}
}
