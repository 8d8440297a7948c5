package scheduler

import (
	"math/rand"
	"sort"

	"github.com/mzaleski/padel-mixer/internal/scoring"
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// MexicanoRound generates a single round on demand. Round 1 draws a random
// order; later rounds order players by current standings and fill each court
// with a block of four consecutive ranks, split 1st+3rd vs 2nd+4th.
func MexicanoRound(players []tournament.Player, standings []scoring.PlayerStats, roundNumber, courts int, gen tournament.IDGenerator, rng *rand.Rand) tournament.Round {
	allIDs := make([]string, len(players))
	for i, p := range players {
		allIDs[i] = p.ID
	}

	var ordered []string
	if roundNumber == 1 {
		ordered = shuffle(allIDs, rng)
	} else {
		ordered = rankedPlayerIDs(standings)
	}

	used := make(map[string]bool)
	var matches []tournament.Match

	for c := 0; c < courts; c++ {
		base := c * 4
		if base+3 >= len(ordered) {
			break
		}

		team1 := []string{ordered[base], ordered[base+2]}
		team2 := []string{ordered[base+1], ordered[base+3]}
		for _, id := range team1 {
			used[id] = true
		}
		for _, id := range team2 {
			used[id] = true
		}

		matches = append(matches, tournament.Match{
			ID:     gen("match"),
			Round:  roundNumber - 1,
			Court:  c + 1,
			Team1:  tournament.Side{PlayerIDs: team1},
			Team2:  tournament.Side{PlayerIDs: team2},
			Status: tournament.MatchUpcoming,
		})
	}

	return tournament.Round{
		ID:      gen("round"),
		Number:  roundNumber,
		Matches: matches,
		Sitting: sittingFrom(allIDs, used),
	}
}

// TeamMexicanoRound is the same idea at team granularity: teams ordered by
// team standings (random in round 1), then paired sequentially two per court.
func TeamMexicanoRound(teams []tournament.Team, players []tournament.Player, standings []scoring.TeamStats, roundNumber, courts int, gen tournament.IDGenerator, rng *rand.Rand) tournament.Round {
	allIDs := make([]string, len(players))
	for i, p := range players {
		allIDs[i] = p.ID
	}

	byID := make(map[string]tournament.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}

	var ordered []tournament.Team
	if roundNumber == 1 {
		teamIDs := make([]string, len(teams))
		for i, team := range teams {
			teamIDs[i] = team.ID
		}
		for _, id := range shuffle(teamIDs, rng) {
			ordered = append(ordered, byID[id])
		}
	} else {
		sorted := append([]scoring.TeamStats(nil), standings...)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].TotalPoints != sorted[j].TotalPoints {
				return sorted[i].TotalPoints > sorted[j].TotalPoints
			}
			return sorted[i].PointDifference > sorted[j].PointDifference
		})
		for _, s := range sorted {
			if team, ok := byID[s.TeamID]; ok {
				ordered = append(ordered, team)
			}
		}
	}

	used := make(map[string]bool)
	var matches []tournament.Match

	for c := 0; c < courts; c++ {
		idx1 := c * 2
		idx2 := c*2 + 1
		if idx2 >= len(ordered) {
			break
		}

		team1 := ordered[idx1]
		team2 := ordered[idx2]
		for _, id := range team1.PlayerIDs {
			used[id] = true
		}
		for _, id := range team2.PlayerIDs {
			used[id] = true
		}

		matches = append(matches, tournament.Match{
			ID:     gen("match"),
			Round:  roundNumber - 1,
			Court:  c + 1,
			Team1:  tournament.Side{PlayerIDs: append([]string(nil), team1.PlayerIDs...)},
			Team2:  tournament.Side{PlayerIDs: append([]string(nil), team2.PlayerIDs...)},
			Status: tournament.MatchUpcoming,
		})
	}

	return tournament.Round{
		ID:      gen("round"),
		Number:  roundNumber,
		Matches: matches,
		Sitting: sittingFrom(allIDs, used),
	}
}
