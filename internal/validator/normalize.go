package validator

import (
	"fmt"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/schedule"
)

// NormalizeFile repairs every week of a schedule workbook in place. Weeks
// 1..total_weeks are always written, along with any extra weeks the workbook
// already had. It returns the problems each week had before the repair, keyed
// by week; weeks that were already valid are absent.
func NormalizeFile(cfg *config.Config, path string) (map[int][]string, error) {
	season, err := excel.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	roster := cfg.Roster()
	out := make(schedule.Season)
	for wk := 1; wk <= cfg.Season.TotalWeeks; wk++ {
		out[wk] = nil
	}
	for _, wk := range season.Weeks() {
		out[wk] = nil
	}

	problems := make(map[int][]string)
	for _, wk := range out.Weeks() {
		if msgs := ValidateWeek(season[wk], roster); len(msgs) > 0 {
			problems[wk] = msgs
		}
		out[wk] = schedule.NormalizeWeek(season[wk], roster)
	}

	if err := excel.Save(cfg, out, path); err != nil {
		return nil, err
	}
	return problems, nil
}
