package scheduler

import (
	"math/rand"
	"sort"

	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// NextAmericanoRound generates one more round for unlimited-mode Americano
// play. It walks the existing rounds to tally partnerships, opponents and
// sit-outs, puts the players who have sat out the most on court, and splits
// each block of four to minimize partnerPenalty*3 + opponentPenalty.
func NextAmericanoRound(players []tournament.Player, existing []tournament.Round, courts int, gen tournament.IDGenerator, rng *rand.Rand) tournament.Round {
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	perRound := courts * 4
	roundNumber := len(existing) + 1

	partnerCount := make(map[string]int)
	opponentCount := make(map[string]int)
	sitOutCount := make(map[string]int, len(ids))
	for _, id := range ids {
		sitOutCount[id] = 0
	}

	for ri := range existing {
		round := &existing[ri]
		for mi := range round.Matches {
			match := &round.Matches[mi]
			countPartners(partnerCount, match.Team1.PlayerIDs)
			countPartners(partnerCount, match.Team2.PlayerIDs)
			for _, a := range match.Team1.PlayerIDs {
				for _, b := range match.Team2.PlayerIDs {
					opponentCount[pairKey(a, b)]++
				}
			}
		}
		for _, pid := range round.Sitting {
			sitOutCount[pid]++
		}
	}

	// Players who sat out the most play next. The stable sort keeps roster
	// order among equals, so tie-breaking is deterministic.
	bySitOut := append([]string(nil), ids...)
	sort.SliceStable(bySitOut, func(i, j int) bool {
		return sitOutCount[bySitOut[i]] > sitOutCount[bySitOut[j]]
	})

	active := bySitOut[:min(perRound, len(bySitOut))]
	shuffled := shuffle(active, rng)

	used := make(map[string]bool)
	var matches []tournament.Match

	for c := 0; c < courts; c++ {
		base := c * 4
		if base+3 >= len(shuffled) {
			break
		}

		four := [4]string{shuffled[base], shuffled[base+1], shuffled[base+2], shuffled[base+3]}
		chosen := bestWeightedSplit(four, partnerCount, opponentCount)

		for _, id := range four {
			used[id] = true
		}

		matches = append(matches, tournament.Match{
			ID:     gen("match"),
			Round:  roundNumber - 1,
			Court:  c + 1,
			Team1:  tournament.Side{PlayerIDs: chosen.team1[:]},
			Team2:  tournament.Side{PlayerIDs: chosen.team2[:]},
			Status: tournament.MatchUpcoming,
		})
	}

	// Selected-but-unassigned players sit too, not just the unselected ones.
	return tournament.Round{
		ID:      gen("round"),
		Number:  roundNumber,
		Matches: matches,
		Sitting: sittingFrom(ids, used),
	}
}

func countPartners(partnerCount map[string]int, side []string) {
	for i := 0; i < len(side); i++ {
		for j := i + 1; j < len(side); j++ {
			partnerCount[pairKey(side[i], side[j])]++
		}
	}
}
