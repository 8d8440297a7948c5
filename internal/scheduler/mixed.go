package scheduler

import (
	"math/rand"

	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// MixedAmericanoRounds pre-generates rounds where every pair is one male and
// one female player. A fixed male ordering is crossed with a cyclically
// rotated female ordering, min(males, females)-1 rounds in total.
func MixedAmericanoRounds(players []tournament.Player, courts int, gen tournament.IDGenerator, rng *rand.Rand) []tournament.Round {
	var maleIDs, femaleIDs []string
	allIDs := make([]string, len(players))
	for i, p := range players {
		allIDs[i] = p.ID
		switch p.Gender {
		case tournament.Male:
			maleIDs = append(maleIDs, p.ID)
		case tournament.Female:
			femaleIDs = append(femaleIDs, p.ID)
		}
	}

	n := min(len(maleIDs), len(femaleIDs))
	if n < 2 {
		return nil
	}

	males := shuffle(maleIDs, rng)
	females := shuffle(femaleIDs, rng)

	var rounds []tournament.Round
	for r := 0; r < n-1; r++ {
		rotated := rotate(females, r%n)
		used := make(map[string]bool)
		var matches []tournament.Match

		for c := 0; c < courts; c++ {
			idx1 := c * 2
			idx2 := c*2 + 1
			if idx2 >= n {
				break
			}

			team1 := []string{males[idx1], rotated[idx1]}
			team2 := []string{males[idx2], rotated[idx2]}
			for _, id := range team1 {
				used[id] = true
			}
			for _, id := range team2 {
				used[id] = true
			}

			matches = append(matches, tournament.Match{
				ID:     gen("match"),
				Round:  r,
				Court:  c + 1,
				Team1:  tournament.Side{PlayerIDs: team1},
				Team2:  tournament.Side{PlayerIDs: team2},
				Status: tournament.MatchUpcoming,
			})
		}

		rounds = append(rounds, tournament.Round{
			ID:      gen("round"),
			Number:  r + 1,
			Matches: matches,
			Sitting: sittingFrom(allIDs, used),
		})
	}

	return rounds
}
