package schedule

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWeekJSON(t *testing.T) {
	week := Week{
		Match{Home: Team{ID: "0xAb", Name: "Angels"}, Away: Team{ID: "cubs", Name: "Cubs"}},
		Bye{Team: Team{ID: "royals", Name: "Royals"}},
	}

	data, err := json.Marshal(week)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"type":"match"`) || !strings.Contains(string(data), `"type":"bye"`) {
		t.Errorf("encoded week missing type tags: %s", data)
	}

	var got Week
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(week, got); diff != "" {
		t.Errorf("decoded week mismatch (-want +got):\n%s", diff)
	}
}

func TestWeekJSONRejectsBadPairings(t *testing.T) {
	tests := map[string]string{
		"unknown type":     `[{"type":"forfeit","team":{"id":"a"}}]`,
		"match no away":    `[{"type":"match","home":{"id":"a"}}]`,
		"bye without team": `[{"type":"bye"}]`,
		"not a list":       `{"type":"bye"}`,
		"bye with home":    `[{"type":"bye","team":{"id":"a"},"home":{"id":"b"}}]`,
		"match with team":  `[{"type":"match","home":{"id":"a"},"away":{"id":"b"},"team":{"id":"c"}}]`,
		"misspelled key":   `[{"type":"match","home":{"id":"a"},"awya":{"id":"b"},"away":{"id":"c"}}]`,
		"unknown team key": `[{"type":"bye","team":{"id":"a","nick":"x"}}]`,
		"null pairing":     `[null]`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var w Week
			if err := json.Unmarshal([]byte(input), &w); err == nil {
				t.Errorf("Unmarshal(%s) succeeded, want error", input)
			}
		})
	}
}

func TestSeasonJSON(t *testing.T) {
	season := GenerateSeason(teamsNamed("a", "b", "c"), 4)
	data, err := json.Marshal(season)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	var got Season
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(season, got); diff != "" {
		t.Errorf("decoded season mismatch (-want +got):\n%s", diff)
	}
}
