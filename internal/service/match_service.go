package service

import (
	"context"
	"fmt"

	"github.com/mzaleski/padel-mixer/internal/store"
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

type MatchService struct {
	store *store.TournamentStore
}

func NewMatchService(store *store.TournamentStore) *MatchService {
	return &MatchService{store: store}
}

// UpdateScore records a match result and persists the new snapshot. Callers
// are expected to pre-validate scores; an invalid score still comes back as
// ErrInvalidScore without touching the store.
func (s *MatchService) UpdateScore(ctx context.Context, tournamentID, matchID string, score1, score2 int) (*tournament.Tournament, error) {
	t, err := s.store.Load(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	next, err := ApplyScore(t, matchID, score1, score2)
	if err != nil {
		return t, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	return next, nil
}
