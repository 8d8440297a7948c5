package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mzaleski/padel-mixer/internal/store"
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// TournamentService orchestrates the state-machine transitions against the
// store: load snapshot, apply transition, persist the replacement.
type TournamentService struct {
	store *store.TournamentStore
	gen   tournament.IDGenerator
	rng   *rand.Rand
}

func NewTournamentService(store *store.TournamentStore) *TournamentService {
	return &TournamentService{
		store: store,
		gen:   tournament.NewUUIDGenerator(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *TournamentService) Create(ctx context.Context, settings tournament.Settings) (*tournament.Tournament, error) {
	t, err := NewTournament(settings, s.gen, s.rng)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	return t, nil
}

func (s *TournamentService) Get(ctx context.Context, id string) (*tournament.Tournament, error) {
	return s.store.Load(ctx, id)
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	return s.store.List(ctx)
}

func (s *TournamentService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// NextRound applies the round-advance transition. Precondition failures
// return the unchanged snapshot together with the sentinel error so callers
// can treat them as no-ops.
func (s *TournamentService) NextRound(ctx context.Context, id string) (*tournament.Tournament, error) {
	t, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := NextRound(t, s.gen, s.rng)
	if err != nil {
		return t, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	return next, nil
}

func (s *TournamentService) GenerateFinalRound(ctx context.Context, id string) (*tournament.Tournament, error) {
	t, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := AppendFinalRound(t, s.gen)
	if err != nil {
		return t, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	return next, nil
}

func (s *TournamentService) Finish(ctx context.Context, id string) (*tournament.Tournament, error) {
	t, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	next := Finish(t)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to save tournament: %w", err)
	}
	return next, nil
}
