package validator

import (
	"fmt"
	"sort"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/schedule"
)

// Violation represents a problem found during validation.
type Violation struct {
	Week    int    // 0 for season-wide problems
	Type    string // "error" or "warning"
	Message string
	Gap     int // for rematch warnings: weeks between meetings (0 = not applicable)
}

// Validate reads a schedule workbook and checks it against the config.
func Validate(cfg *config.Config, path string) ([]Violation, error) {
	season, err := excel.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}
	return ValidateSeason(cfg, season), nil
}

// ValidateSeason checks every week of a season plus season-wide rules.
func ValidateSeason(cfg *config.Config, season schedule.Season) []Violation {
	roster := cfg.Roster()
	var violations []Violation

	violations = append(violations, checkWeekCoverage(cfg, season)...)

	for _, wk := range season.Weeks() {
		for _, msg := range ValidateWeek(season[wk], roster) {
			violations = append(violations, Violation{
				Week:    wk,
				Type:    "error",
				Message: fmt.Sprintf("week %d: %s", wk, msg),
			})
		}
	}

	violations = append(violations, checkRematchProximity(roster, season)...)

	return violations
}

func checkWeekCoverage(cfg *config.Config, season schedule.Season) []Violation {
	var violations []Violation
	for wk := 1; wk <= cfg.Season.TotalWeeks; wk++ {
		if _, ok := season[wk]; !ok {
			violations = append(violations, Violation{
				Week:    wk,
				Type:    "error",
				Message: fmt.Sprintf("week %d has no pairings", wk),
			})
		}
	}
	for _, wk := range season.Weeks() {
		if wk > cfg.Season.TotalWeeks {
			violations = append(violations, Violation{
				Week:    wk,
				Type:    "warning",
				Message: fmt.Sprintf("week %d is beyond the season length of %d weeks", wk, cfg.Season.TotalWeeks),
			})
		}
	}
	return violations
}

// checkRematchProximity warns when two teams meet again before everyone
// else has had a chance to play them.
func checkRematchProximity(roster []schedule.Team, season schedule.Season) []Violation {
	if len(roster) < 3 {
		return nil
	}
	size := len(roster) + len(roster)%2
	minGap := size - 1

	type matchup struct{ a, b string }
	meetings := make(map[matchup][]int)
	for _, wk := range season.Weeks() {
		for _, p := range season[wk] {
			m, ok := p.(schedule.Match)
			if !ok {
				continue
			}
			a, b := m.Home.Key(), m.Away.Key()
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			meetings[matchup{a, b}] = append(meetings[matchup{a, b}], wk)
		}
	}

	var violations []Violation
	for mk, weeks := range meetings {
		for i := 1; i < len(weeks); i++ {
			gap := weeks[i] - weeks[i-1]
			if gap < minGap {
				violations = append(violations, Violation{
					Week: weeks[i],
					Type: "warning",
					Gap:  gap,
					Message: fmt.Sprintf("%s vs %s rematch after %d weeks (min %d): weeks %d and %d",
						mk.a, mk.b, gap, minGap, weeks[i-1], weeks[i]),
				})
			}
		}
	}
	// Sort by severity: smallest gap (worst) first
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Gap != violations[j].Gap {
			return violations[i].Gap < violations[j].Gap
		}
		return violations[i].Message < violations[j].Message
	})
	return violations
}
