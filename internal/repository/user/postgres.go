package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"customer-panel/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const selectUser = `
SELECT id, display_name, email,
       COALESCE(phone, ''), COALESCE(address_1, ''), COALESCE(address_2, ''),
       COALESCE(city, ''), COALESCE(state, ''), COALESCE(postcode, ''), COALESCE(country, ''),
       registered, last_login
FROM users
`

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := r.pool.QueryRow(ctx, selectUser+`WHERE id = $1 LIMIT 1`, id)
	rec, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Warn("user repo: scan user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &rec, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []int64) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, selectUser+`WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]Record, len(ids))
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		byID[rec.ID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Callers rely on discovery order, which ANY() does not preserve.
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func scanUser(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID,
		&rec.DisplayName,
		&rec.Email,
		&rec.Phone,
		&rec.Address1,
		&rec.Address2,
		&rec.City,
		&rec.State,
		&rec.Postcode,
		&rec.Country,
		&rec.Registered,
		&rec.LastLogin,
	)
	return rec, err
}
