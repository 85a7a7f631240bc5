package display

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores both records as JSONB rows in kiosk_state.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) LoadState(ctx context.Context) (*State, error) {
	s := NewState()
	if err := r.load(ctx, StateKey, s); err != nil {
		return nil, err
	}
	if s.RoastsToday == nil {
		s.RoastsToday = []string{}
	}
	if s.BakeItems == nil {
		s.BakeItems = []string{}
	}
	return s, nil
}

func (r *PostgresRepository) SaveState(ctx context.Context, s *State) error {
	return r.save(ctx, StateKey, s)
}

func (r *PostgresRepository) LoadMailState(ctx context.Context) (*MailState, error) {
	m := &MailState{}
	if err := r.load(ctx, MailStateKey, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *PostgresRepository) SaveMailState(ctx context.Context, m *MailState) error {
	return r.save(ctx, MailStateKey, m)
}

func (r *PostgresRepository) load(ctx context.Context, key string, out any) error {
	var data []byte
	err := r.db.QueryRow(ctx, `
		SELECT value
		FROM kiosk_state
		WHERE key = $1
	`, key).Scan(&data)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// First read: the caller keeps its defaults.
			return nil
		}
		return err
	}

	return json.Unmarshal(data, out)
}

func (r *PostgresRepository) save(ctx context.Context, key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO kiosk_state (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key)
		DO UPDATE SET value = $2, updated_at = now()
	`, key, data)
	return err
}
