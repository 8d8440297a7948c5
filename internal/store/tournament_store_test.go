package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzaleski/padel-mixer/internal/tournament"
	"github.com/mzaleski/padel-mixer/internal/utils"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	require.NoError(t, err)

	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "sqlite3", driver)
	require.NoError(t, err)
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func sampleTournament(id, name string, createdAt time.Time) *tournament.Tournament {
	return &tournament.Tournament{
		ID:            id,
		Name:          name,
		Format:        tournament.Americano,
		ScoringSystem: tournament.Scoring21,
		Players: []tournament.Player{
			{ID: "ana", Name: "Ana"},
			{ID: "bea", Name: "Bea"},
			{ID: "cyd", Name: "Cyd"},
			{ID: "dag", Name: "Dag"},
		},
		Courts: 1,
		Rounds: []tournament.Round{
			{
				ID:     "r1",
				Number: 1,
				Matches: []tournament.Match{
					{
						ID:     "m1",
						Court:  1,
						Team1:  tournament.Side{PlayerIDs: []string{"ana", "bea"}},
						Team2:  tournament.Side{PlayerIDs: []string{"cyd", "dag"}},
						Status: tournament.MatchUpcoming,
					},
				},
			},
		},
		CurrentRound:    1,
		RoundMode:       tournament.RoundsFixed,
		RankingStrategy: tournament.RankByPoints,
		Status:          tournament.StatusActive,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
}

func TestTournamentStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := NewTournamentStore(setupTestDB(t))

	created := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	original := sampleTournament("t1", "Friday Night", created)
	require.NoError(t, s.Save(ctx, original))

	loaded, err := s.Load(ctx, "t1")
	require.NoError(t, err)

	assert.Equal(t, original.ID, loaded.ID)
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Format, loaded.Format)
	assert.Equal(t, original.Players, loaded.Players)
	assert.Equal(t, original.Rounds, loaded.Rounds)
	assert.True(t, original.CreatedAt.Equal(loaded.CreatedAt))
}

func TestTournamentStoreLoadMissing(t *testing.T) {
	s := NewTournamentStore(setupTestDB(t))

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTournamentStoreSaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewTournamentStore(setupTestDB(t))

	created := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	trn := sampleTournament("t1", "Friday Night", created)
	require.NoError(t, s.Save(ctx, trn))

	trn.Status = tournament.StatusFinished
	trn.Rounds[0].Matches[0].Score1 = utils.Ptr(13)
	trn.Rounds[0].Matches[0].Score2 = utils.Ptr(8)
	trn.Rounds[0].Matches[0].Status = tournament.MatchCompleted
	require.NoError(t, s.Save(ctx, trn))

	loaded, err := s.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, tournament.StatusFinished, loaded.Status)
	assert.Equal(t, 13, utils.OrZero(loaded.Rounds[0].Matches[0].Score1))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "saving twice must not duplicate the row")
}

func TestTournamentStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewTournamentStore(setupTestDB(t))

	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, sampleTournament("t_old", "Old", base)))
	require.NoError(t, s.Save(ctx, sampleTournament("t_new", "New", base.Add(time.Hour))))
	require.NoError(t, s.Save(ctx, sampleTournament("t_mid", "Mid", base.Add(30*time.Minute))))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "t_new", list[0].ID)
	assert.Equal(t, "t_mid", list[1].ID)
	assert.Equal(t, "t_old", list[2].ID)
}

func TestTournamentStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewTournamentStore(setupTestDB(t))

	created := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save(ctx, sampleTournament("t1", "Friday Night", created)))
	require.NoError(t, s.Delete(ctx, "t1"))

	_, err := s.Load(ctx, "t1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	// Deleting a missing row is a no-op, matching SQL semantics.
	assert.NoError(t, s.Delete(ctx, "t1"))
}
