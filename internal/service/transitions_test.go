package service

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzaleski/padel-mixer/internal/tournament"
	"github.com/mzaleski/padel-mixer/internal/utils"
)

func testPlayers(count int) []tournament.Player {
	names := []string{"Ana", "Bea", "Cyd", "Dag", "Eva", "Fil", "Gus", "Hal", "Ida", "Jon"}
	players := make([]tournament.Player, count)
	for i := 0; i < count; i++ {
		players[i] = tournament.Player{ID: "p" + names[i], Name: names[i]}
	}
	return players
}

func americanoSettings(players, courts int) tournament.Settings {
	return tournament.Settings{
		Name:          "Test Tournament",
		Format:        tournament.Americano,
		ScoringSystem: tournament.Scoring21,
		Courts:        courts,
		Players:       testPlayers(players),
	}
}

func newTestTournament(t *testing.T, settings tournament.Settings) *tournament.Tournament {
	t.Helper()
	trn, err := NewTournament(settings, tournament.NewSequenceGenerator(), rand.New(rand.NewSource(17)))
	require.NoError(t, err)
	return trn
}

// completeRound enters a 13:8 result on every open match of the current round.
func completeRound(t *testing.T, trn *tournament.Tournament) *tournament.Tournament {
	t.Helper()
	current := trn.Current()
	require.NotNil(t, current)
	for _, match := range current.Matches {
		if match.Completed() {
			continue
		}
		next, err := ApplyScore(trn, match.ID, 13, 8)
		require.NoError(t, err)
		trn = next
	}
	return trn
}

func TestNewTournamentFixedAmericano(t *testing.T) {
	trn := newTestTournament(t, americanoSettings(4, 1))

	assert.Equal(t, tournament.StatusActive, trn.Status)
	assert.Equal(t, 1, trn.CurrentRound)
	assert.Equal(t, tournament.RoundsFixed, trn.RoundMode)
	assert.Equal(t, tournament.RankByPoints, trn.RankingStrategy)
	require.Len(t, trn.Rounds, 3, "full round-robin is pre-generated")
	for i, round := range trn.Rounds {
		assert.Equal(t, i+1, round.Number)
	}
}

func TestNewTournamentRoundTargets(t *testing.T) {
	t.Run("trims the rotation", func(t *testing.T) {
		settings := americanoSettings(4, 1)
		settings.TotalRounds = utils.Ptr(2)
		trn := newTestTournament(t, settings)
		require.Len(t, trn.Rounds, 2)
	})

	t.Run("tops up with dynamic rounds", func(t *testing.T) {
		settings := americanoSettings(4, 1)
		settings.TotalRounds = utils.Ptr(5)
		trn := newTestTournament(t, settings)
		require.Len(t, trn.Rounds, 5)
		for i, round := range trn.Rounds {
			assert.Equal(t, i+1, round.Number)
			assert.Len(t, round.Matches, 1)
		}
	})
}

func TestNewTournamentUnlimitedGeneratesOneRound(t *testing.T) {
	settings := americanoSettings(8, 2)
	settings.RoundMode = tournament.RoundsUnlimited
	trn := newTestTournament(t, settings)

	require.Len(t, trn.Rounds, 1)
	assert.Len(t, trn.Rounds[0].Matches, 2)
}

func TestNewTournamentMexicanoGeneratesOneRound(t *testing.T) {
	settings := americanoSettings(8, 2)
	settings.Format = tournament.Mexicano
	trn := newTestTournament(t, settings)

	require.Len(t, trn.Rounds, 1)
	assert.Len(t, trn.Rounds[0].Matches, 2)
	assert.Empty(t, trn.Rounds[0].Sitting)
}

func TestNewTournamentRejectsInvalidSettings(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*tournament.Settings)
	}{
		{name: "too few players", mutate: func(s *tournament.Settings) { s.Players = testPlayers(3) }},
		{name: "missing name", mutate: func(s *tournament.Settings) { s.Name = "" }},
		{name: "unknown format", mutate: func(s *tournament.Settings) { s.Format = "swissAmericano" }},
		{name: "unknown scoring system", mutate: func(s *tournament.Settings) { s.ScoringSystem = 20 }},
		{name: "no courts", mutate: func(s *tournament.Settings) { s.Courts = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			settings := americanoSettings(4, 1)
			tc.mutate(&settings)
			_, err := NewTournament(settings, tournament.NewSequenceGenerator(), rand.New(rand.NewSource(1)))
			assert.Error(t, err)
		})
	}
}

func TestNewTournamentMixedNeedsBothGenders(t *testing.T) {
	settings := americanoSettings(4, 1)
	settings.Format = tournament.MixedAmericano
	for i := range settings.Players {
		settings.Players[i].Gender = tournament.Male
	}
	settings.Players[3].Gender = tournament.Female

	_, err := NewTournament(settings, tournament.NewSequenceGenerator(), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, tournament.ErrGenderImbalance)
}

func TestApplyScore(t *testing.T) {
	trn := newTestTournament(t, americanoSettings(4, 1))
	matchID := trn.Rounds[0].Matches[0].ID

	t.Run("rejects invalid sum", func(t *testing.T) {
		same, err := ApplyScore(trn, matchID, 10, 5)
		assert.ErrorIs(t, err, ErrInvalidScore)
		assert.Same(t, trn, same, "failed transitions return the input snapshot")
	})

	t.Run("rejects negative scores", func(t *testing.T) {
		_, err := ApplyScore(trn, matchID, -1, 22)
		assert.ErrorIs(t, err, ErrInvalidScore)
	})

	t.Run("rejects unknown match", func(t *testing.T) {
		_, err := ApplyScore(trn, "match_nope", 13, 8)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})

	t.Run("records result without mutating the input", func(t *testing.T) {
		next, err := ApplyScore(trn, matchID, 13, 8)
		require.NoError(t, err)

		match, _ := next.FindMatch(matchID)
		require.NotNil(t, match)
		assert.Equal(t, 13, utils.OrZero(match.Score1))
		assert.Equal(t, 8, utils.OrZero(match.Score2))
		assert.Equal(t, tournament.MatchCompleted, match.Status)
		assert.True(t, next.Rounds[0].Completed, "single-match round completes with its match")

		original, _ := trn.FindMatch(matchID)
		assert.Nil(t, original.Score1, "input snapshot stays untouched")
		assert.False(t, trn.Rounds[0].Completed)
	})
}

func TestApplyScoreCompletesRoundOnLastEntry(t *testing.T) {
	trn := newTestTournament(t, americanoSettings(8, 2))
	first := trn.Rounds[0].Matches[0].ID
	second := trn.Rounds[0].Matches[1].ID

	trn, err := ApplyScore(trn, first, 21, 0)
	require.NoError(t, err)
	assert.False(t, trn.Rounds[0].Completed, "one open match keeps the round open")

	trn, err = ApplyScore(trn, second, 11, 10)
	require.NoError(t, err)
	assert.True(t, trn.Rounds[0].Completed)
}

func TestNextRoundFixedMode(t *testing.T) {
	gen := tournament.NewSequenceGenerator()
	rng := rand.New(rand.NewSource(23))
	trn := newTestTournament(t, americanoSettings(4, 1))

	t.Run("requires a completed round", func(t *testing.T) {
		same, err := NextRound(trn, gen, rng)
		assert.ErrorIs(t, err, ErrRoundIncomplete)
		assert.Same(t, trn, same)
	})

	trn = completeRound(t, trn)

	t.Run("advances the pointer", func(t *testing.T) {
		next, err := NextRound(trn, gen, rng)
		require.NoError(t, err)
		assert.Equal(t, 2, next.CurrentRound)
		assert.Len(t, next.Rounds, 3, "fixed mode never appends")
		trn = next
	})

	trn = completeRound(t, trn)
	next, err := NextRound(trn, gen, rng)
	require.NoError(t, err)
	trn = completeRound(t, next)

	t.Run("no-ops when exhausted", func(t *testing.T) {
		same, err := NextRound(trn, gen, rng)
		assert.ErrorIs(t, err, ErrNoMoreRounds)
		assert.Same(t, trn, same)
		assert.Equal(t, 3, trn.CurrentRound)
	})
}

func TestNextRoundMexicanoSeedsFromStandings(t *testing.T) {
	gen := tournament.NewSequenceGenerator()
	rng := rand.New(rand.NewSource(29))
	settings := americanoSettings(8, 2)
	settings.Format = tournament.Mexicano
	trn := newTestTournament(t, settings)

	// Court 1 blows out, court 2 is tight.
	trn, err := ApplyScore(trn, trn.Rounds[0].Matches[0].ID, 21, 0)
	require.NoError(t, err)
	trn, err = ApplyScore(trn, trn.Rounds[0].Matches[1].ID, 11, 10)
	require.NoError(t, err)

	next, err := NextRound(trn, gen, rng)
	require.NoError(t, err)
	require.Len(t, next.Rounds, 2)
	assert.Equal(t, 2, next.CurrentRound)
	assert.Equal(t, 2, next.Rounds[1].Number)

	// Rank order after round 1: the 21-0 winners (diff +21), then the 11-10
	// winners, then 10-11, then 0-21. Court 1 pairs ranks 1+3 vs 2+4.
	round1 := next.Rounds[0]
	winners := round1.Matches[0].Team1.PlayerIDs
	losers := round1.Matches[0].Team2.PlayerIDs
	closeWinners := round1.Matches[1].Team1.PlayerIDs
	closeLosers := round1.Matches[1].Team2.PlayerIDs

	court1 := next.Rounds[1].Matches[0]
	onCourt1 := append(append([]string{}, court1.Team1.PlayerIDs...), court1.Team2.PlayerIDs...)
	assert.ElementsMatch(t, append(append([]string{}, winners...), closeWinners...), onCourt1,
		"the four highest-ranked players meet on court 1")

	court2 := next.Rounds[1].Matches[1]
	onCourt2 := append(append([]string{}, court2.Team1.PlayerIDs...), court2.Team2.PlayerIDs...)
	assert.ElementsMatch(t, append(append([]string{}, closeLosers...), losers...), onCourt2)
}

func TestNextRoundUnlimitedAppendsDynamicRound(t *testing.T) {
	gen := tournament.NewSequenceGenerator()
	rng := rand.New(rand.NewSource(31))
	settings := americanoSettings(5, 1)
	settings.RoundMode = tournament.RoundsUnlimited
	trn := newTestTournament(t, settings)
	require.Len(t, trn.Rounds, 1)
	require.Len(t, trn.Rounds[0].Sitting, 1)

	trn = completeRound(t, trn)
	next, err := NextRound(trn, gen, rng)
	require.NoError(t, err)

	require.Len(t, next.Rounds, 2)
	assert.Equal(t, 2, next.CurrentRound)
	assert.Equal(t, 2, next.Rounds[1].Number)

	// The round 1 sitter must be back on court in round 2.
	sitter := trn.Rounds[0].Sitting[0]
	match := next.Rounds[1].Matches[0]
	onCourt := append(append([]string{}, match.Team1.PlayerIDs...), match.Team2.PlayerIDs...)
	assert.Contains(t, onCourt, sitter)
}

func TestAppendFinalRound(t *testing.T) {
	gen := tournament.NewSequenceGenerator()
	settings := americanoSettings(4, 1)
	settings.TotalRounds = utils.Ptr(1)
	trn := newTestTournament(t, settings)
	require.Len(t, trn.Rounds, 1)

	t.Run("requires a completed round", func(t *testing.T) {
		same, err := AppendFinalRound(trn, gen)
		assert.ErrorIs(t, err, ErrRoundIncomplete)
		assert.Same(t, trn, same)
	})

	trn = completeRound(t, trn)

	t.Run("appends the decider", func(t *testing.T) {
		next, err := AppendFinalRound(trn, gen)
		require.NoError(t, err)
		require.Len(t, next.Rounds, 2)
		assert.Equal(t, 2, next.CurrentRound)

		final := next.Rounds[1]
		assert.Equal(t, 2, final.Number)
		require.Len(t, final.Matches, 1)
		assert.Equal(t, 1, final.Matches[0].Round)

		// 13:8 in round 1: winners rank 1-2, losers rank 3-4. Within a tied
		// side the standings keep roster order, and the decider pairs
		// 1st+4th vs 2nd+3rd.
		rosterIndex := make(map[string]int, len(trn.Players))
		for i, p := range trn.Players {
			rosterIndex[p.ID] = i
		}
		byRoster := func(ids []string) []string {
			sorted := append([]string(nil), ids...)
			sort.Slice(sorted, func(i, j int) bool { return rosterIndex[sorted[i]] < rosterIndex[sorted[j]] })
			return sorted
		}
		winners := byRoster(trn.Rounds[0].Matches[0].Team1.PlayerIDs)
		losers := byRoster(trn.Rounds[0].Matches[0].Team2.PlayerIDs)
		assert.ElementsMatch(t, []string{winners[0], losers[1]}, final.Matches[0].Team1.PlayerIDs)
		assert.ElementsMatch(t, []string{winners[1], losers[0]}, final.Matches[0].Team2.PlayerIDs)
	})

	t.Run("rejected for other formats", func(t *testing.T) {
		settings := americanoSettings(8, 2)
		settings.Format = tournament.Mexicano
		mex := newTestTournament(t, settings)
		_, err := AppendFinalRound(mex, gen)
		assert.ErrorIs(t, err, ErrFinalRoundUnsupported)
	})
}

func TestAppendFinalRoundOnlyAfterLastRound(t *testing.T) {
	trn := newTestTournament(t, americanoSettings(4, 1))
	require.Len(t, trn.Rounds, 3)
	trn = completeRound(t, trn)

	same, err := AppendFinalRound(trn, tournament.NewSequenceGenerator())
	assert.ErrorIs(t, err, ErrRoundsRemaining)
	assert.Same(t, trn, same)
}

func TestFinishMakesTournamentReadOnly(t *testing.T) {
	gen := tournament.NewSequenceGenerator()
	rng := rand.New(rand.NewSource(37))
	trn := newTestTournament(t, americanoSettings(4, 1))

	finished := Finish(trn)
	assert.Equal(t, tournament.StatusFinished, finished.Status)
	assert.Equal(t, tournament.StatusActive, trn.Status, "input snapshot untouched")

	_, err := ApplyScore(finished, finished.Rounds[0].Matches[0].ID, 13, 8)
	assert.ErrorIs(t, err, ErrTournamentFinished)

	_, err = NextRound(finished, gen, rng)
	assert.ErrorIs(t, err, ErrTournamentFinished)

	_, err = AppendFinalRound(finished, gen)
	assert.ErrorIs(t, err, ErrTournamentFinished)
}
