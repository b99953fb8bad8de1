package schedule

import "sort"

// NormalizeWeek repairs a hand-edited week so that every roster team appears
// exactly once.
//
// Pairings are resolved in input order and the first claim on a team wins.
// Pairings naming unknown teams and self-matches are dropped. A match that
// collides with an earlier claim is dropped too, but its unclaimed side (if
// any) gets a bye. Roster teams left over at the end also get a bye.
//
// The result lists matches ordered by home then away identity, followed by
// byes ordered by identity, using the roster's Team values.
func NormalizeWeek(week Week, roster []Team) Week {
	index := rosterIndex(Canonicalize(roster))
	used := make(map[string]bool, len(index))

	var matches []Match
	var byes []Bye

	for _, p := range week {
		switch p := p.(type) {
		case Match:
			home, okHome := index[p.Home.Key()]
			away, okAway := index[p.Away.Key()]
			if !okHome || !okAway || home.ID == away.ID {
				continue
			}
			switch {
			case used[home.ID] && used[away.ID]:
			case used[home.ID]:
				used[away.ID] = true
				byes = append(byes, Bye{Team: away})
			case used[away.ID]:
				used[home.ID] = true
				byes = append(byes, Bye{Team: home})
			default:
				used[home.ID] = true
				used[away.ID] = true
				matches = append(matches, Match{Home: home, Away: away})
			}
		case Bye:
			team, ok := index[p.Team.Key()]
			if !ok || used[team.ID] {
				continue
			}
			used[team.ID] = true
			byes = append(byes, Bye{Team: team})
		}
	}

	for id, team := range index {
		if !used[id] {
			byes = append(byes, Bye{Team: team})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Home.ID != matches[j].Home.ID {
			return matches[i].Home.ID < matches[j].Home.ID
		}
		return matches[i].Away.ID < matches[j].Away.ID
	})
	sort.Slice(byes, func(i, j int) bool {
		return byes[i].Team.ID < byes[j].Team.ID
	})

	out := make(Week, 0, len(matches)+len(byes))
	for _, m := range matches {
		out = append(out, m)
	}
	for _, b := range byes {
		out = append(out, b)
	}
	return out
}
