package scheduler

import (
	"math/rand"

	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// AmericanoRounds pre-generates the full classic Americano schedule: a
// round-robin built with the circle method (fix one player, rotate the rest),
// slicing each rotation into courts from both ends of the ordering. For every
// court the 2v2 split with the fewest repeated partnerships so far wins.
func AmericanoRounds(players []tournament.Player, courts int, gen tournament.IDGenerator, rng *rand.Rand) []tournament.Round {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	ids = shuffle(ids, rng)

	if len(ids) < 2 {
		return nil
	}

	partnerCount := make(map[string]int)
	fixed := ids[0]
	rotating := ids[1:]
	totalRounds := len(ids) - 1

	var rounds []tournament.Round
	for r := 0; r < totalRounds; r++ {
		order := append([]string{fixed}, rotate(rotating, r)...)
		used := make(map[string]bool)
		var matches []tournament.Match
		roundIdx := len(rounds)

		for c := 0; c < courts; c++ {
			// Positions from both ends of the rotation mix the ordering.
			idx1 := c * 2
			idx2 := len(order) - 1 - c*2
			idx3 := c*2 + 1
			idx4 := len(order) - 2 - c*2
			if idx3 >= idx4 || idx1 >= len(order) || idx2 < 0 || idx3 >= len(order) || idx4 < 0 {
				break
			}

			four := [4]string{order[idx1], order[idx2], order[idx3], order[idx4]}
			if !distinct(four) || used[four[0]] || used[four[1]] || used[four[2]] || used[four[3]] {
				break
			}

			// Splits are evaluated as (p1,p3)/(p2,p4), (p1,p2)/(p3,p4),
			// (p1,p4)/(p2,p3); the first minimum wins.
			chosen := bestPartnerSplit([4]string{four[0], four[2], four[1], four[3]}, partnerCount)
			partnerCount[pairKey(chosen.team1[0], chosen.team1[1])]++
			partnerCount[pairKey(chosen.team2[0], chosen.team2[1])]++

			for _, id := range four {
				used[id] = true
			}

			matches = append(matches, tournament.Match{
				ID:     gen("match"),
				Round:  roundIdx,
				Court:  c + 1,
				Team1:  tournament.Side{PlayerIDs: chosen.team1[:]},
				Team2:  tournament.Side{PlayerIDs: chosen.team2[:]},
				Status: tournament.MatchUpcoming,
			})
		}

		if len(matches) == 0 {
			continue
		}

		rounds = append(rounds, tournament.Round{
			ID:      gen("round"),
			Number:  len(rounds) + 1,
			Matches: matches,
			Sitting: sittingFrom(ids, used),
		})
	}

	return rounds
}

func distinct(four [4]string) bool {
	for i := 0; i < len(four); i++ {
		for j := i + 1; j < len(four); j++ {
			if four[i] == four[j] {
				return false
			}
		}
	}
	return true
}
