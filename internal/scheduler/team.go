package scheduler

import (
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// TeamAmericanoRounds pre-generates a round-robin for fixed two-player teams
// using the circle method at team granularity: teams-1 rounds, each pairing
// teams from opposite ends of the rotated ordering.
func TeamAmericanoRounds(teams []tournament.Team, players []tournament.Player, courts int, gen tournament.IDGenerator) []tournament.Round {
	if len(teams) < 2 {
		return nil
	}

	byID := make(map[string]tournament.Team, len(teams))
	teamIDs := make([]string, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
		byID[team.ID] = team
	}
	allIDs := make([]string, len(players))
	for i, p := range players {
		allIDs[i] = p.ID
	}

	fixed := teamIDs[0]
	rotating := teamIDs[1:]

	var rounds []tournament.Round
	for r := 0; r < len(teams)-1; r++ {
		order := append([]string{fixed}, rotate(rotating, r)...)
		used := make(map[string]bool)
		var matches []tournament.Match

		for c := 0; c < courts; c++ {
			idx1 := c
			idx2 := len(order) - 1 - c
			if idx1 >= idx2 {
				break
			}

			team1 := byID[order[idx1]]
			team2 := byID[order[idx2]]
			for _, id := range team1.PlayerIDs {
				used[id] = true
			}
			for _, id := range team2.PlayerIDs {
				used[id] = true
			}

			matches = append(matches, tournament.Match{
				ID:     gen("match"),
				Round:  r,
				Court:  c + 1,
				Team1:  tournament.Side{PlayerIDs: append([]string(nil), team1.PlayerIDs...)},
				Team2:  tournament.Side{PlayerIDs: append([]string(nil), team2.PlayerIDs...)},
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
