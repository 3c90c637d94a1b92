package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

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

func (r *postgresRepo) ProductIDsByVendor(ctx context.Context, vendorID int64) ([]int64, error) {
	const q = `
SELECT id
FROM products
WHERE vendor_id = $1
ORDER BY id
`
	return r.queryIDs(ctx, q, vendorID)
}

func (r *postgresRepo) CoursesForProduct(ctx context.Context, productID int64) ([]int64, error) {
	// The relation value is legacy meta: either a single course id or a JSON
	// list of ids, depending on which integration wrote it.
	const q = `
SELECT course_ref
FROM product_courses
WHERE product_id = $1 AND course_ref <> ''
ORDER BY id
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		ids, err := parseCourseRef(ref)
		if err != nil {
			r.logger.Warn("catalog repo: bad course ref",
				zap.Int64("product_id", productID), zap.String("ref", ref), zap.Error(err))
			continue
		}
		out = append(out, ids...)
	}
	return out, rows.Err()
}

func (r *postgresRepo) GroupsForProduct(ctx context.Context, productID int64) ([]int64, error) {
	const q = `
SELECT group_id
FROM product_groups
WHERE product_id = $1
ORDER BY group_id
`
	return r.queryIDs(ctx, q, productID)
}

func (r *postgresRepo) CoursesInGroup(ctx context.Context, groupID int64) ([]int64, error) {
	const q = `
SELECT course_id
FROM group_courses
WHERE group_id = $1
ORDER BY course_id
`
	return r.queryIDs(ctx, q, groupID)
}

func (r *postgresRepo) CourseTitle(ctx context.Context, courseID int64) (string, error) {
	const q = `
SELECT title
FROM courses
WHERE id = $1
LIMIT 1
`
	var title string
	if err := r.pool.QueryRow(ctx, q, courseID).Scan(&title); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return title, nil
}

func (r *postgresRepo) queryIDs(ctx context.Context, q string, arg int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx, q, arg)
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

// parseCourseRef flattens a relation value that is either a bare course id
// ("42") or a JSON array of ids ([42, "43"]).
func parseCourseRef(ref string) ([]int64, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return []int64{id}, nil
	}

	// Arrays may hold bare numbers, quoted ids, or a mix of both.
	var raw []interface{}
	dec := json.NewDecoder(strings.NewReader(ref))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		var s string
		switch v := item.(type) {
		case json.Number:
			s = v.String()
		case string:
			s = v
		default:
			return nil, errors.New("course ref element is not an id")
		}
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
