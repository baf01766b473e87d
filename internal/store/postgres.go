package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_states (
	id          UUID PRIMARY KEY,
	player_name TEXT NOT NULL,
	turn        INTEGER NOT NULL,
	seed        TEXT NOT NULL,
	game_data   JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS game_states_player_idx ON game_states (player_name, created_at DESC);
`

// Postgres stores games in a single jsonb-backed table.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 20
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Create(ctx context.Context, playerName string, state game.GameState) (*Record, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal game state: %w", err)
	}
	rec := &Record{
		ID:         uuid.NewString(),
		PlayerName: playerName,
		Turn:       state.Turn,
		Seed:       state.Seed,
		GameData:   state,
	}
	row := p.pool.QueryRow(ctx, `
		INSERT INTO game_states (id, player_name, turn, seed, game_data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING created_at, updated_at`,
		rec.ID, rec.PlayerName, rec.Turn, rec.Seed, data)
	if err := row.Scan(&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert game: %w", err)
	}
	return rec, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*Record, error) {
	return p.scanOne(p.pool.QueryRow(ctx, `
		SELECT id, player_name, turn, seed, game_data, created_at, updated_at
		FROM game_states WHERE id = $1`, id))
}

func (p *Postgres) GetByPlayer(ctx context.Context, playerName string) (*Record, error) {
	return p.scanOne(p.pool.QueryRow(ctx, `
		SELECT id, player_name, turn, seed, game_data, created_at, updated_at
		FROM game_states WHERE player_name = $1
		ORDER BY created_at DESC LIMIT 1`, playerName))
}

// Update writes the new state only when the stored turn is exactly one
// behind, so two concurrent turn submissions cannot both land.
func (p *Postgres) Update(ctx context.Context, id string, state game.GameState) (*Record, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("marshal game state: %w", err)
	}
	rec, err := p.scanOne(p.pool.QueryRow(ctx, `
		UPDATE game_states
		SET turn = $2, seed = $3, game_data = $4, updated_at = now()
		WHERE id = $1 AND turn = $2 - 1
		RETURNING id, player_name, turn, seed, game_data, created_at, updated_at`,
		id, state.Turn, state.Seed, data))
	if errors.Is(err, ErrNotFound) {
		// Distinguish a missing game from a stale turn.
		var turn int
		probeErr := p.pool.QueryRow(ctx, `SELECT turn FROM game_states WHERE id = $1`, id).Scan(&turn)
		if errors.Is(probeErr, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if probeErr != nil {
			return nil, fmt.Errorf("probe game turn: %w", probeErr)
		}
		return nil, fmt.Errorf("%w: stored turn %d, incoming turn %d", ErrTurnConflict, turn, state.Turn)
	}
	return rec, err
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM game_states WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]*Record, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, player_name, turn, seed, game_data, created_at, updated_at
		FROM game_states ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (p *Postgres) Close() {
	p.pool.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (p *Postgres) scanOne(row pgx.Row) (*Record, error) {
	rec, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var data []byte
	if err := row.Scan(&rec.ID, &rec.PlayerName, &rec.Turn, &rec.Seed, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &rec.GameData); err != nil {
		return nil, fmt.Errorf("unmarshal game state: %w", err)
	}
	return &rec, nil
}
