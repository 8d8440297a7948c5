package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/mzaleski/padel-mixer/internal/scheduler"
	"github.com/mzaleski/padel-mixer/internal/scoring"
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

var (
	ErrTournamentFinished    = errors.New("tournament is finished")
	ErrRoundIncomplete       = errors.New("current round is not completed")
	ErrNoMoreRounds          = errors.New("no more rounds to advance to")
	ErrRoundsRemaining       = errors.New("pre-generated rounds remain")
	ErrInvalidScore          = errors.New("score is invalid for the scoring system")
	ErrMatchNotFound         = errors.New("match not found")
	ErrFinalRoundUnsupported = errors.New("final round is only available for classic americano")
)

// NewTournament builds the initial snapshot from settings. Fixed-mode
// Americano-family formats pre-generate their full schedule; everything else
// starts with round one only.
func NewTournament(settings tournament.Settings, gen tournament.IDGenerator, rng *rand.Rand) (*tournament.Tournament, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	var rounds []tournament.Round

	if settings.RoundMode == tournament.RoundsUnlimited && settings.Format.IsAmericanoFamily() {
		rounds = []tournament.Round{
			scheduler.NextAmericanoRound(settings.Players, nil, settings.Courts, gen, rng),
		}
	} else {
		switch settings.Format {
		case tournament.Americano:
			rounds = scheduler.AmericanoRounds(settings.Players, settings.Courts, gen, rng)
		case tournament.MixedAmericano:
			rounds = scheduler.MixedAmericanoRounds(settings.Players, settings.Courts, gen, rng)
		case tournament.TeamAmericano:
			rounds = scheduler.TeamAmericanoRounds(settings.Teams, settings.Players, settings.Courts, gen)
		case tournament.Mexicano:
			rounds = []tournament.Round{
				scheduler.MexicanoRound(settings.Players, nil, 1, settings.Courts, gen, rng),
			}
		case tournament.TeamMexicano:
			rounds = []tournament.Round{
				scheduler.TeamMexicanoRound(settings.Teams, settings.Players, nil, 1, settings.Courts, gen, rng),
			}
		}

		// Fixed mode with an explicit round target: trim the rotation, or top
		// it up with dynamically generated rounds.
		if settings.RoundMode == tournament.RoundsFixed && settings.TotalRounds != nil && settings.Format.IsAmericanoFamily() {
			target := *settings.TotalRounds
			if len(rounds) > target {
				rounds = rounds[:target]
			}
			for len(rounds) < target {
				rounds = append(rounds, scheduler.NextAmericanoRound(settings.Players, rounds, settings.Courts, gen, rng))
			}
		}
	}

	if len(rounds) == 0 {
		return nil, tournament.ErrNotEnoughPlayers
	}

	now := time.Now().UTC()
	return &tournament.Tournament{
		ID:              gen("t"),
		Name:            settings.Name,
		Format:          settings.Format,
		ScoringSystem:   settings.ScoringSystem,
		Players:         settings.Players,
		Teams:           settings.Teams,
		Courts:          settings.Courts,
		Rounds:          rounds,
		CurrentRound:    1,
		RoundMode:       settings.RoundMode,
		TotalRounds:     settings.TotalRounds,
		RankingStrategy: settings.RankingStrategy,
		Status:          tournament.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ApplyScore records a result on one match and refreshes the owning round's
// completion flag. The input snapshot is never mutated; on any precondition
// failure it is returned unchanged alongside the sentinel error.
func ApplyScore(t *tournament.Tournament, matchID string, score1, score2 int) (*tournament.Tournament, error) {
	if t.Status == tournament.StatusFinished {
		return t, ErrTournamentFinished
	}
	if !scoring.IsScoreValid(score1, score2, t.ScoringSystem) {
		return t, ErrInvalidScore
	}

	next := t.Clone()
	match, roundIdx := next.FindMatch(matchID)
	if match == nil {
		return t, ErrMatchNotFound
	}

	s1, s2 := score1, score2
	match.Score1 = &s1
	match.Score2 = &s2
	match.Status = tournament.MatchCompleted
	next.Rounds[roundIdx].Completed = next.Rounds[roundIdx].AllMatchesCompleted()
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// NextRound advances the current-round pointer. Mexicano formats and
// unlimited-mode Americano play generate the upcoming round first; fixed
// pre-generated schedules just move the pointer, or no-op when exhausted.
func NextRound(t *tournament.Tournament, gen tournament.IDGenerator, rng *rand.Rand) (*tournament.Tournament, error) {
	if t.Status == tournament.StatusFinished {
		return t, ErrTournamentFinished
	}
	current := t.Current()
	if current == nil || !current.AllMatchesCompleted() {
		return t, ErrRoundIncomplete
	}

	next := t.Clone()
	nextNumber := next.CurrentRound + 1

	switch {
	case next.Format == tournament.Mexicano:
		standings := scoring.ComputeStandings(next)
		next.Rounds = append(next.Rounds, scheduler.MexicanoRound(next.Players, standings, nextNumber, next.Courts, gen, rng))
	case next.Format == tournament.TeamMexicano:
		standings := scoring.ComputeTeamStandings(next)
		next.Rounds = append(next.Rounds, scheduler.TeamMexicanoRound(next.Teams, next.Players, standings, nextNumber, next.Courts, gen, rng))
	case next.RoundMode == tournament.RoundsUnlimited:
		next.Rounds = append(next.Rounds, scheduler.NextAmericanoRound(next.Players, next.Rounds, next.Courts, gen, rng))
	}

	if nextNumber > len(next.Rounds) {
		return t, ErrNoMoreRounds
	}

	next.CurrentRound = nextNumber
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// AppendFinalRound adds the standings-based decider round and advances to it.
func AppendFinalRound(t *tournament.Tournament, gen tournament.IDGenerator) (*tournament.Tournament, error) {
	if t.Status == tournament.StatusFinished {
		return t, ErrTournamentFinished
	}
	if t.Format != tournament.Americano {
		return t, ErrFinalRoundUnsupported
	}
	// Appending mid-schedule would break the round numbering; the decider
	// only makes sense after the last pre-generated round.
	if t.CurrentRound != len(t.Rounds) {
		return t, ErrRoundsRemaining
	}
	current := t.Current()
	if current == nil || !current.AllMatchesCompleted() {
		return t, ErrRoundIncomplete
	}

	next := t.Clone()
	standings := scoring.ComputeStandings(next)
	final := scheduler.FinalAmericanoRound(next.Players, standings, next.Courts, gen)

	nextNumber := next.CurrentRound + 1
	final.Number = nextNumber
	for i := range final.Matches {
		final.Matches[i].Round = nextNumber - 1
	}

	next.Rounds = append(next.Rounds, final)
	next.CurrentRound = nextNumber
	next.UpdatedAt = time.Now().UTC()
	return next, nil
}

// Finish marks the tournament read-only. Finishing twice is harmless.
func Finish(t *tournament.Tournament) *tournament.Tournament {
	next := t.Clone()
	next.Status = tournament.StatusFinished
	next.UpdatedAt = time.Now().UTC()
	return next
}
