package capability

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Has(ctx context.Context, userID int64, capability string) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM capabilities WHERE user_id = $1 AND capability = $2
)
`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, userID, capability).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *postgresRepo) Grant(ctx context.Context, userID int64, capability string) error {
	const q = `
INSERT INTO capabilities (user_id, capability)
VALUES ($1, $2)
`
	_, err := r.pool.Exec(ctx, q, userID, capability)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}
	return nil
}
