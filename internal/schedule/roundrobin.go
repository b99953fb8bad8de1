package schedule

// GenerateSeason builds totalWeeks weeks of pairings with the circle method.
//
// The roster is canonicalized first, so the result depends only on the set of
// identities. An odd roster is padded with a bye seat; whoever faces that seat
// sits the week out. Seasons longer than one cycle keep rotating, and every
// odd-numbered cycle swaps home and away.
//
// An empty roster or a non-positive totalWeeks yields an empty Season.
func GenerateSeason(teams []Team, totalWeeks int) Season {
	roster := Canonicalize(teams)
	season := make(Season)
	if len(roster) == 0 || totalWeeks <= 0 {
		return season
	}

	size := len(roster) + len(roster)%2
	byeSeat := len(roster) // only reachable when the roster is odd
	perCycle := size - 1

	for week := 1; week <= totalWeeks; week++ {
		cycle := (week - 1) / perCycle
		round := (week - 1) % perCycle

		pairings := make(Week, 0, size/2)
		for j := 0; j < size/2; j++ {
			a := seat(j, round, perCycle)
			b := seat(size-1-j, round, perCycle)
			switch {
			case a == byeSeat:
				pairings = append(pairings, Bye{Team: roster[b]})
			case b == byeSeat:
				pairings = append(pairings, Bye{Team: roster[a]})
			default:
				pairings = append(pairings, orient(roster[a], roster[b], cycle))
			}
		}
		season[week] = pairings
	}
	return season
}

// seat returns the canonical index sitting at pos after round rotations.
// Position 0 never moves; everyone else shifts one place per round and the
// last seat wraps around to position 1.
func seat(pos, round, perCycle int) int {
	if pos == 0 {
		return 0
	}
	return 1 + ((pos-1-round)%perCycle+perCycle)%perCycle
}

// orient gives home to the lower identity, flipped on odd cycles.
func orient(a, b Team, cycle int) Match {
	lo, hi := a, b
	if hi.ID < lo.ID {
		lo, hi = hi, lo
	}
	if cycle%2 == 1 {
		return Match{Home: hi, Away: lo}
	}
	return Match{Home: lo, Away: hi}
}
