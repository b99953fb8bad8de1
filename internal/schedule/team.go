package schedule

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Team is a league participant. ID is compared case-insensitively.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Key returns the canonical form of the team's identity.
func (t Team) Key() string {
	return canonicalID(t.ID)
}

// DisplayName falls back to the identity when no name is set.
func (t Team) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// canonicalID lower-cases an identity. Lowering is not full case folding:
// "Straße" and "STRASSE" stay distinct.
func canonicalID(id string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(id))
}

// isPlaceholder reports whether an identity is empty or the all-zero address.
func isPlaceholder(id string) bool {
	if id == "" {
		return true
	}
	if strings.HasPrefix(id, "0x") && len(id) > 2 {
		return strings.Trim(id[2:], "0") == ""
	}
	return false
}

// Canonicalize returns each identity once, case-folded and sorted ascending.
// Placeholder identities are dropped. When records disagree on the display name
// the smallest non-empty name wins, so the result does not depend on input order.
func Canonicalize(teams []Team) []Team {
	names := make(map[string]string)
	for _, t := range teams {
		id := canonicalID(t.ID)
		if isPlaceholder(id) {
			continue
		}
		name := strings.TrimSpace(t.Name)
		prev, seen := names[id]
		switch {
		case !seen:
			names[id] = name
		case prev == "" || (name != "" && name < prev):
			names[id] = name
		}
	}

	out := make([]Team, 0, len(names))
	for id, name := range names {
		if name == "" {
			name = id
		}
		out = append(out, Team{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// rosterIndex maps canonical identities to the roster's Team values.
func rosterIndex(roster []Team) map[string]Team {
	idx := make(map[string]Team, len(roster))
	for _, t := range roster {
		idx[t.Key()] = t
	}
	return idx
}
