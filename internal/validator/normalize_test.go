package validator

import (
	"path/filepath"
	"testing"

	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/schedule"
)

func TestNormalizeFile(t *testing.T) {
	cfg := fullTestConfig()
	cfg.Season.TotalWeeks = 3
	path := filepath.Join(t.TempDir(), "schedule.xlsx")

	season := schedule.GenerateSeason(cfg.Roster(), 3)
	// Week 2 loses a pairing, week 3 disappears, week 5 is extra.
	season[2] = season[2][1:]
	delete(season, 3)
	season[5] = schedule.Week{schedule.Match{Home: team("angels"), Away: team("angels")}}
	if err := excel.Save(cfg, season, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	problems, err := NormalizeFile(cfg, path)
	if err != nil {
		t.Fatalf("NormalizeFile() error: %v", err)
	}

	t.Run("reports broken weeks only", func(t *testing.T) {
		if _, ok := problems[1]; ok {
			t.Errorf("week 1 was valid, got %v", problems[1])
		}
		for _, wk := range []int{2, 3, 5} {
			if len(problems[wk]) == 0 {
				t.Errorf("expected problems for week %d", wk)
			}
		}
	})

	t.Run("every week is valid afterwards", func(t *testing.T) {
		repaired, err := excel.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error: %v", err)
		}
		for _, wk := range []int{1, 2, 3, 5} {
			if msgs := ValidateWeek(repaired[wk], cfg.Roster()); len(msgs) != 0 {
				t.Errorf("week %d still invalid: %v", wk, msgs)
			}
		}
	})

	t.Run("second pass finds nothing", func(t *testing.T) {
		again, err := NormalizeFile(cfg, path)
		if err != nil {
			t.Fatalf("NormalizeFile() error: %v", err)
		}
		if len(again) != 0 {
			t.Errorf("expected no problems, got %v", again)
		}
	})
}

func TestNormalizeFileMissing(t *testing.T) {
	if _, err := NormalizeFile(fullTestConfig(), filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
}
