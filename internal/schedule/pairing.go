package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Pairing is one entry of a week: either a Match or a Bye.
type Pairing interface {
	Teams() []Team
	isPairing()
}

// Match is a game between two different teams.
type Match struct {
	Home Team
	Away Team
}

// Bye is a week off for a single team.
type Bye struct {
	Team Team
}

func (Match) isPairing() {}
func (Bye) isPairing()   {}

func (m Match) Teams() []Team { return []Team{m.Home, m.Away} }
func (b Bye) Teams() []Team   { return []Team{b.Team} }

func (m Match) String() string { return fmt.Sprintf("%s @ %s", m.Away.ID, m.Home.ID) }
func (b Bye) String() string   { return fmt.Sprintf("%s (bye)", b.Team.ID) }

// Week is one week's full set of pairings.
type Week []Pairing

// Season maps 1-based week numbers to weeks.
type Season map[int]Week

// Weeks returns the season's week numbers in ascending order.
func (s Season) Weeks() []int {
	nums := make([]int, 0, len(s))
	for n := range s {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

const (
	kindMatch = "match"
	kindBye   = "bye"
)

type wirePairing struct {
	Type string `json:"type"`
	Home *Team  `json:"home,omitempty"`
	Away *Team  `json:"away,omitempty"`
	Team *Team  `json:"team,omitempty"`
}

func (m Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePairing{Type: kindMatch, Home: &m.Home, Away: &m.Away})
}

func (b Bye) MarshalJSON() ([]byte, error) {
	return json.Marshal(wirePairing{Type: kindBye, Team: &b.Team})
}

// UnmarshalJSON decodes pairings by their type tag. Unknown keys and keys
// that do not belong to the tag are rejected.
func (w *Week) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	week := make(Week, 0, len(raw))
	for i, msg := range raw {
		var p wirePairing
		dec := json.NewDecoder(bytes.NewReader(msg))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("pairing %d: %w", i, err)
		}
		switch p.Type {
		case kindMatch:
			if p.Home == nil || p.Away == nil {
				return fmt.Errorf("pairing %d: match needs home and away", i)
			}
			if p.Team != nil {
				return fmt.Errorf("pairing %d: match does not take a team", i)
			}
			week = append(week, Match{Home: *p.Home, Away: *p.Away})
		case kindBye:
			if p.Team == nil {
				return fmt.Errorf("pairing %d: bye needs a team", i)
			}
			if p.Home != nil || p.Away != nil {
				return fmt.Errorf("pairing %d: bye does not take home or away", i)
			}
			week = append(week, Bye{Team: *p.Team})
		default:
			return fmt.Errorf("pairing %d: unknown type %q", i, p.Type)
		}
	}
	*w = week
	return nil
}
