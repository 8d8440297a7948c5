package scheduler

import (
	"math/rand"
	"sort"

	"github.com/mzaleski/padel-mixer/internal/scoring"
)

// pairKey normalizes an unordered player pair into a map key.
func pairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}

// rotate returns a copy of ids cyclically shifted left by count.
func rotate(ids []string, count int) []string {
	n := len(ids)
	if n == 0 {
		return nil
	}
	shift := count % n
	out := make([]string, 0, n)
	out = append(out, ids[shift:]...)
	out = append(out, ids[:shift]...)
	return out
}

// shuffle returns a Fisher-Yates shuffled copy of ids.
func shuffle(ids []string, rng *rand.Rand) []string {
	out := append([]string(nil), ids...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// split is one of the three ways four players can form two doubles pairs.
type split struct {
	team1 [2]string
	team2 [2]string
}

// splitOptions enumerates the 2v2 splits of four players. The order matters:
// ties in the penalty scoring fall back to the earlier option.
func splitOptions(four [4]string) [3]split {
	return [3]split{
		{team1: [2]string{four[0], four[1]}, team2: [2]string{four[2], four[3]}},
		{team1: [2]string{four[0], four[2]}, team2: [2]string{four[1], four[3]}},
		{team1: [2]string{four[0], four[3]}, team2: [2]string{four[1], four[2]}},
	}
}

// bestPartnerSplit picks the split with the fewest repeated partnerships.
func bestPartnerSplit(four [4]string, partnerCount map[string]int) split {
	options := splitOptions(four)
	best := options[0]
	bestScore := -1
	for _, opt := range options {
		score := partnerCount[pairKey(opt.team1[0], opt.team1[1])] +
			partnerCount[pairKey(opt.team2[0], opt.team2[1])]
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = opt
		}
	}
	return best
}

// bestWeightedSplit also penalizes repeated opponents. Partner repetition
// weighs three times as much as facing the same opponent again.
func bestWeightedSplit(four [4]string, partnerCount, opponentCount map[string]int) split {
	options := splitOptions(four)
	best := options[0]
	bestScore := -1
	for _, opt := range options {
		partnerPenalty := partnerCount[pairKey(opt.team1[0], opt.team1[1])] +
			partnerCount[pairKey(opt.team2[0], opt.team2[1])]
		opponentPenalty := 0
		for _, a := range opt.team1 {
			for _, b := range opt.team2 {
				opponentPenalty += opponentCount[pairKey(a, b)]
			}
		}
		score := partnerPenalty*3 + opponentPenalty
		if bestScore < 0 || score < bestScore {
			bestScore = score
			best = opt
		}
	}
	return best
}

// rankedPlayerIDs orders player ids by points then point difference,
// regardless of the tournament's display ranking strategy. This is the
// ordering the standings-driven generators seed courts from.
func rankedPlayerIDs(standings []scoring.PlayerStats) []string {
	sorted := append([]scoring.PlayerStats(nil), standings...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return sorted[i].PointDifference > sorted[j].PointDifference
	})
	ids := make([]string, len(sorted))
	for i, s := range sorted {
		ids[i] = s.PlayerID
	}
	return ids
}

// sittingFrom lists every id not used in the round, preserving roster order.
func sittingFrom(ids []string, used map[string]bool) []string {
	sitting := make([]string, 0)
	for _, id := range ids {
		if !used[id] {
			sitting = append(sitting, id)
		}
	}
	return sitting
}
