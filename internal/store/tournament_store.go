package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mzaleski/padel-mixer/internal/tournament"
)

// TournamentStore persists whole Tournament aggregates. The snapshot is an
// opaque JSON blob keyed by id; name, status and created_at are mirrored into
// columns for listing.
type TournamentStore struct {
	db *sqlx.DB
}

func NewTournamentStore(db *sqlx.DB) *TournamentStore {
	return &TournamentStore{db: db}
}

type tournamentRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	Data      []byte    `db:"data"`
}

// Save upserts the full aggregate. Writes are replace-on-write: the caller
// always hands over the complete new snapshot.
func (s *TournamentStore) Save(ctx context.Context, t *tournament.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tournament %s: %w", t.ID, err)
	}

	row := tournamentRow{
		ID:        t.ID,
		Name:      t.Name,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		Data:      data,
	}
	_, err = s.db.NamedExecContext(ctx, `INSERT INTO tournaments (id, name, status, created_at, data)
		VALUES (:id, :name, :status, :created_at, :data)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, status = excluded.status, data = excluded.data`, row)
	return err
}

func (s *TournamentStore) Load(ctx context.Context, id string) (*tournament.Tournament, error) {
	var row tournamentRow
	if err := s.db.GetContext(ctx, &row, "SELECT * FROM tournaments WHERE id = ?", id); err != nil {
		return nil, err
	}

	var t tournament.Tournament
	if err := json.Unmarshal(row.Data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode tournament %s: %w", id, err)
	}
	return &t, nil
}

func (s *TournamentStore) List(ctx context.Context) ([]tournament.Tournament, error) {
	var rows []tournamentRow
	if err := s.db.SelectContext(ctx, &rows, "SELECT * FROM tournaments ORDER BY created_at DESC"); err != nil {
		return nil, err
	}

	tournaments := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		var t tournament.Tournament
		if err := json.Unmarshal(row.Data, &t); err != nil {
			return nil, fmt.Errorf("failed to decode tournament %s: %w", row.ID, err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, nil
}

func (s *TournamentStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM tournaments WHERE id = ?", id)
	return err
}
