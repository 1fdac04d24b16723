package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdesk/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a journal backed by the sale_submissions table.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Save(ctx context.Context, entry Entry) error {
	items, err := json.Marshal(entry.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	const q = `
INSERT INTO sale_submissions (session_id, sale_code, state, items, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, now())
ON CONFLICT (session_id) DO UPDATE
SET sale_code = EXCLUDED.sale_code,
    state = EXCLUDED.state,
    items = EXCLUDED.items,
    updated_at = now()
`
	_, err = r.pool.Exec(ctx, q, entry.SessionID, entry.SaleCode, string(entry.State), items, entry.CreatedAt)
	return err
}

func (r *postgresRepo) Open(ctx context.Context, sessionID string) (*Entry, error) {
	const q = `
SELECT session_id, sale_code, state, items, created_at, updated_at
FROM sale_submissions
WHERE session_id = $1 AND state <> 'completed'
`
	var (
		entry Entry
		state string
		items []byte
	)
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(
		&entry.SessionID,
		&entry.SaleCode,
		&state,
		&items,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	entry.State = State(state)
	if err := json.Unmarshal(items, &entry.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &entry, nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	const q = `DELETE FROM sale_submissions WHERE session_id = $1`
	_, err := r.pool.Exec(ctx, q, sessionID)
	return err
}
