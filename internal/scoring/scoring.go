package scoring

import (
	"slices"
	"sort"

	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// ByePoints is the fixed bonus a sitting player receives once the round they
// sat out is completed. It deliberately does not scale with the scoring
// system.
const ByePoints = 11

type PlayerStats struct {
	PlayerID        string   `json:"playerId"`
	PlayerName      string   `json:"playerName"`
	TotalPoints     int      `json:"totalPoints"`
	MatchesPlayed   int      `json:"matchesPlayed"`
	MatchesWon      int      `json:"matchesWon"`
	MatchesLost     int      `json:"matchesLost"`
	Partners        []string `json:"partners"`
	PointDifference int      `json:"pointDifference"`
}

type TeamStats struct {
	TeamID          string `json:"teamId"`
	TeamName        string `json:"teamName"`
	TotalPoints     int    `json:"totalPoints"`
	MatchesPlayed   int    `json:"matchesPlayed"`
	MatchesWon      int    `json:"matchesWon"`
	PointDifference int    `json:"pointDifference"`
}

// ComputeStandings aggregates every completed match in every round into
// per-player stats, ordered by the tournament's ranking strategy. It is a
// full pass over the rounds each time, so repeated calls on the same
// snapshot yield identical results.
func ComputeStandings(t *tournament.Tournament) []PlayerStats {
	stats := make(map[string]*PlayerStats, len(t.Players))
	for _, p := range t.Players {
		stats[p.ID] = &PlayerStats{PlayerID: p.ID, PlayerName: p.Name}
	}

	for ri := range t.Rounds {
		round := &t.Rounds[ri]
		for mi := range round.Matches {
			match := &round.Matches[mi]
			if !match.Completed() {
				continue
			}
			creditSide(stats, match.Team1.PlayerIDs, *match.Score1, *match.Score2)
			creditSide(stats, match.Team2.PlayerIDs, *match.Score2, *match.Score1)
		}

		// Sitting out a completed round must not cost standing.
		if round.Completed {
			for _, pid := range round.Sitting {
				if s, ok := stats[pid]; ok {
					s.TotalPoints += ByePoints
				}
			}
		}
	}

	out := make([]PlayerStats, 0, len(stats))
	for _, p := range t.Players {
		out = append(out, *stats[p.ID])
	}
	sortStandings(out, t.RankingStrategy)
	return out
}

func creditSide(stats map[string]*PlayerStats, side []string, own, against int) {
	for _, pid := range side {
		s, ok := stats[pid]
		if !ok {
			continue
		}
		s.TotalPoints += own
		s.MatchesPlayed++
		s.PointDifference += own - against
		if own > against {
			s.MatchesWon++
		} else if own < against {
			s.MatchesLost++
		}
		for _, partner := range side {
			if partner != pid && !slices.Contains(s.Partners, partner) {
				s.Partners = append(s.Partners, partner)
			}
		}
	}
}

func sortStandings(standings []PlayerStats, strategy tournament.RankingStrategy) {
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if strategy == tournament.RankByWins {
			if a.MatchesWon != b.MatchesWon {
				return a.MatchesWon > b.MatchesWon
			}
			if a.TotalPoints != b.TotalPoints {
				return a.TotalPoints > b.TotalPoints
			}
			return a.PointDifference > b.PointDifference
		}
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.PointDifference != b.PointDifference {
			return a.PointDifference > b.PointDifference
		}
		return a.MatchesWon > b.MatchesWon
	})
}

// ComputeTeamStandings aggregates completed matches per fixed team. A team is
// credited only when its full roster makes up one side of the match. Sitting
// teams receive no bye bonus.
func ComputeTeamStandings(t *tournament.Tournament) []TeamStats {
	stats := make(map[string]*TeamStats, len(t.Teams))
	for _, team := range t.Teams {
		stats[team.ID] = &TeamStats{TeamID: team.ID, TeamName: team.Name}
	}

	for ri := range t.Rounds {
		for mi := range t.Rounds[ri].Matches {
			match := &t.Rounds[ri].Matches[mi]
			if !match.Completed() {
				continue
			}
			if team := teamOnSide(t.Teams, match.Team1.PlayerIDs); team != "" {
				creditTeam(stats[team], *match.Score1, *match.Score2)
			}
			if team := teamOnSide(t.Teams, match.Team2.PlayerIDs); team != "" {
				creditTeam(stats[team], *match.Score2, *match.Score1)
			}
		}
	}

	out := make([]TeamStats, 0, len(stats))
	for _, team := range t.Teams {
		out = append(out, *stats[team.ID])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].PointDifference > out[j].PointDifference
	})
	return out
}

func teamOnSide(teams []tournament.Team, side []string) string {
	for _, team := range teams {
		all := true
		for _, pid := range team.PlayerIDs {
			if !slices.Contains(side, pid) {
				all = false
				break
			}
		}
		if all && len(team.PlayerIDs) > 0 {
			return team.ID
		}
	}
	return ""
}

func creditTeam(s *TeamStats, own, against int) {
	if s == nil {
		return
	}
	s.TotalPoints += own
	s.MatchesPlayed++
	s.PointDifference += own - against
	if own > against {
		s.MatchesWon++
	}
}

// PlayerStatsFor returns a single player's stats, or nil for an unknown id.
func PlayerStatsFor(t *tournament.Tournament, playerID string) *PlayerStats {
	for _, s := range ComputeStandings(t) {
		if s.PlayerID == playerID {
			return &s
		}
	}
	return nil
}

// IsScoreValid reports whether a result may be recorded: both scores
// non-negative and summing to the scoring system.
func IsScoreValid(score1, score2 int, system tournament.ScoringSystem) bool {
	if score1 < 0 || score2 < 0 {
		return false
	}
	return score1+score2 == int(system)
}
