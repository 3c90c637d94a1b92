package enrollment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
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

func (r *postgresRepo) HasAccess(ctx context.Context, courseID, userID int64) (bool, error) {
	const q = `
SELECT EXISTS (
    SELECT 1 FROM enrollments WHERE course_id = $1 AND user_id = $2
)
`
	var ok bool
	if err := r.pool.QueryRow(ctx, q, courseID, userID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *postgresRepo) Progress(ctx context.Context, userID, courseID int64) (Progress, error) {
	const q = `
SELECT lessons_total, lessons_completed, percentage, status
FROM enrollments
WHERE user_id = $1 AND course_id = $2
LIMIT 1
`
	var p Progress
	err := r.pool.QueryRow(ctx, q, userID, courseID).Scan(&p.Total, &p.Completed, &p.Percentage, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Progress{}, nil
		}
		return Progress{}, err
	}
	return p, nil
}

func (r *postgresRepo) CompletionDate(ctx context.Context, userID, courseID int64) (*time.Time, error) {
	const q = `
SELECT completed_at
FROM enrollments
WHERE user_id = $1 AND course_id = $2
LIMIT 1
`
	var completed *time.Time
	err := r.pool.QueryRow(ctx, q, userID, courseID).Scan(&completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return completed, nil
}

func (r *postgresRepo) EnrolledDate(ctx context.Context, userID, courseID int64) (time.Time, error) {
	const q = `
SELECT enrolled_at
FROM enrollments
WHERE user_id = $1 AND course_id = $2
LIMIT 1
`
	var enrolled time.Time
	err := r.pool.QueryRow(ctx, q, userID, courseID).Scan(&enrolled)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}
	return enrolled, nil
}

func (r *postgresRepo) CertificateLink(ctx context.Context, courseID, userID int64) (string, error) {
	const q = `
SELECT COALESCE(certificate_link, '')
FROM enrollments
WHERE course_id = $1 AND user_id = $2
LIMIT 1
`
	var link string
	err := r.pool.QueryRow(ctx, q, courseID, userID).Scan(&link)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return link, nil
}

func (r *postgresRepo) LastActivity(ctx context.Context, userID, courseID int64) (*time.Time, error) {
	const q = `
SELECT last_activity
FROM enrollments
WHERE user_id = $1 AND course_id = $2
LIMIT 1
`
	var last *time.Time
	err := r.pool.QueryRow(ctx, q, userID, courseID).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return last, nil
}

func (r *postgresRepo) UsersForCourse(ctx context.Context, courseID int64) ([]int64, error) {
	const q = `
SELECT user_id
FROM enrollments
WHERE course_id = $1
ORDER BY enrolled_at, user_id
`
	rows, err := r.pool.Query(ctx, q, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
