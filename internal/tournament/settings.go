package tournament

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotEnoughPlayers = errors.New("not enough players for format")
	ErrNotEnoughTeams   = errors.New("team formats need at least two teams of two")
	ErrGenderImbalance  = errors.New("mixed americano needs at least two male and two female players")
)

// MinPlayers is the format-independent floor: one full court.
const MinPlayers = 4

var validate = validator.New()

// Settings carries everything needed to create a tournament.
type Settings struct {
	Name            string          `validate:"required,max=100"`
	Format          Format          `validate:"required,oneof=americano mixedAmericano teamAmericano mexicano teamMexicano"`
	ScoringSystem   ScoringSystem   `validate:"required,oneof=16 21 24 32"`
	Courts          int             `validate:"required,min=1"`
	Players         []Player        `validate:"required,min=4"`
	Teams           []Team          `validate:"-"`
	RoundMode       RoundMode       `validate:"omitempty,oneof=fixed unlimited"`
	TotalRounds     *int            `validate:"omitempty,min=1"`
	RankingStrategy RankingStrategy `validate:"omitempty,oneof=points wins"`
}

// Normalize fills in the defaults the UI leaves blank.
func (s *Settings) Normalize() {
	if s.RoundMode == "" {
		s.RoundMode = RoundsFixed
	}
	if s.RankingStrategy == "" {
		s.RankingStrategy = RankByPoints
	}
}

// Validate checks field constraints, then the format-specific minimums.
func (s *Settings) Validate() error {
	s.Normalize()
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	switch s.Format {
	case MixedAmericano:
		males, females := 0, 0
		for _, p := range s.Players {
			switch p.Gender {
			case Male:
				males++
			case Female:
				females++
			}
		}
		if males < 2 || females < 2 {
			return ErrGenderImbalance
		}
	case TeamAmericano, TeamMexicano:
		if len(s.Teams) < 2 {
			return ErrNotEnoughTeams
		}
		assigned := make(map[string]string)
		for _, team := range s.Teams {
			if len(team.PlayerIDs) != 2 {
				return ErrNotEnoughTeams
			}
			for _, pid := range team.PlayerIDs {
				if other, ok := assigned[pid]; ok && other != team.ID {
					return fmt.Errorf("player %s assigned to multiple teams", pid)
				}
				assigned[pid] = team.ID
			}
		}
	}

	if len(s.Players) < MinPlayers {
		return ErrNotEnoughPlayers
	}
	return nil
}
