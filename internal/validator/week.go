package validator

import (
	"fmt"

	"github.com/derekprior/roundrobin/internal/schedule"
)

// ValidateWeek checks a single week against the roster and returns every
// problem it finds. An empty result means the week is valid.
func ValidateWeek(week schedule.Week, roster []schedule.Team) []string {
	roster = schedule.Canonicalize(roster)
	onRoster := make(map[string]bool, len(roster))
	for _, t := range roster {
		onRoster[t.ID] = true
	}

	var problems []string
	seen := make(map[string]bool)

	for i, p := range week {
		label := fmt.Sprintf("pairing %d", i+1)
		if p == nil {
			problems = append(problems, fmt.Sprintf("%s: empty pairing", label))
			continue
		}
		if m, ok := p.(schedule.Match); ok && m.Home.Key() == m.Away.Key() {
			problems = append(problems, fmt.Sprintf("%s: %s is paired against itself", label, m.Home.ID))
			// A self-match still counts as one appearance.
			p = schedule.Bye{Team: m.Home}
		}
		for _, t := range p.Teams() {
			key := t.Key()
			if !onRoster[key] {
				problems = append(problems, fmt.Sprintf("%s: %s is not on the roster", label, t.ID))
				continue
			}
			if seen[key] {
				problems = append(problems, fmt.Sprintf("%s: %s already appears in an earlier pairing", label, t.ID))
				continue
			}
			seen[key] = true
		}
	}

	for _, t := range roster {
		if !seen[t.ID] {
			problems = append(problems, fmt.Sprintf("%s has no pairing this week", t.ID))
		}
	}
	return problems
}
