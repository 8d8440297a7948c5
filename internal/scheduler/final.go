package scheduler

import (
	"github.com/mzaleski/padel-mixer/internal/scoring"
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// FinalAmericanoRound builds the decider round from current standings: per
// block of four consecutive ranks, 1st+4th play 2nd+3rd. The caller assigns
// the round number and match round indices before appending.
func FinalAmericanoRound(players []tournament.Player, standings []scoring.PlayerStats, courts int, gen tournament.IDGenerator) tournament.Round {
	ordered := rankedPlayerIDs(standings)

	used := make(map[string]bool)
	var matches []tournament.Match

	for c := 0; c < courts; c++ {
		base := c * 4
		if base+3 >= len(ordered) {
			break
		}

		team1 := []string{ordered[base], ordered[base+3]}
		team2 := []string{ordered[base+1], ordered[base+2]}
		for _, id := range team1 {
			used[id] = true
		}
		for _, id := range team2 {
			used[id] = true
		}

		matches = append(matches, tournament.Match{
			ID:     gen("match"),
			Court:  c + 1,
			Team1:  tournament.Side{PlayerIDs: team1},
			Team2:  tournament.Side{PlayerIDs: team2},
			Status: tournament.MatchUpcoming,
		})
	}

	allIDs := make([]string, len(players))
	for i, p := range players {
		allIDs[i] = p.ID
	}

	return tournament.Round{
		ID:      gen("round"),
		Matches: matches,
		Sitting: sittingFrom(allIDs, used),
	}
}
