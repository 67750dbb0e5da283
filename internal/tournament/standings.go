package tournament

import "sort"

// Rank orders players by points, highest first. Players sharing a point total
// are ordered by tie-break: the summed current points of every opponent they
// beat in a decisive match. A player alone on their point total gets no
// tie-break. Equal tie-breaks keep the input order.
func Rank(players []Player, matches []Match) []Standing {
	standings := make([]Standing, len(players))
	points := make(map[int64]int, len(players))
	for i, p := range players {
		standings[i] = Standing{
			ID:            p.ID,
			Name:          p.Name,
			Points:        p.Points,
			MatchesPlayed: p.MatchesPlayed(),
			HadBye:        p.HadBye,
		}
		points[p.ID] = p.Points
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})

	var beaten map[int64]int
	for start := 0; start < len(standings); {
		end := start + 1
		for end < len(standings) && standings[end].Points == standings[start].Points {
			end++
		}
		if end-start > 1 {
			if beaten == nil {
				beaten = defeatedOpponentPoints(matches, points)
			}
			group := standings[start:end]
			for i := range group {
				group[i].TieBreak = beaten[group[i].ID]
			}
			sort.SliceStable(group, func(i, j int) bool {
				return group[i].TieBreak > group[j].TieBreak
			})
		}
		start = end
	}
	return standings
}

func defeatedOpponentPoints(matches []Match, points map[int64]int) map[int64]int {
	beaten := make(map[int64]int)
	for _, m := range matches {
		if !m.Decisive() {
			continue
		}
		beaten[m.Winner] += points[m.Loser]
	}
	return beaten
}

// Pair pairs adjacent standings two at a time. With an odd number of players
// the lowest-ranked player without a bye sits out and is returned last, paired
// with themselves.
func Pair(standings []Standing) ([]Pairing, error) {
	pool := standings
	var bye *Pairing

	if len(pool)%2 == 1 {
		idx := -1
		for i := len(pool) - 1; i >= 0; i-- {
			if !pool[i].HadBye {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, ErrNoByeCandidate
		}
		p := pool[idx]
		bye = &Pairing{ID1: p.ID, Name1: p.Name, ID2: p.ID, Name2: p.Name}

		pool = make([]Standing, 0, len(standings)-1)
		pool = append(pool, standings[:idx]...)
		pool = append(pool, standings[idx+1:]...)
	}

	pairings := make([]Pairing, 0, len(standings)/2+1)
	for i := 0; i+1 < len(pool); i += 2 {
		pairings = append(pairings, Pairing{
			ID1:   pool[i].ID,
			Name1: pool[i].Name,
			ID2:   pool[i+1].ID,
			Name2: pool[i+1].Name,
		})
	}
	if bye != nil {
		pairings = append(pairings, *bye)
	}
	return pairings, nil
}
