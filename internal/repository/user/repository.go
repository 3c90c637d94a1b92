package user

import (
	"context"
	"strings"
	"time"
)

// Record is a platform user row with the profile meta the panel reads.
type Record struct {
	ID          int64
	DisplayName string
	Email       string
	Phone       string
	Address1    string
	Address2    string
	City        string
	State       string
	Postcode    string
	Country     string
	Registered  time.Time
	LastLogin   *time.Time
}

// Address joins the stored address parts into one display string, dropping
// empty fields.
func (r Record) Address() string {
	parts := []string{r.Address1, r.Address2, r.City, r.State, r.Postcode, r.Country}
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// Repository reads the platform's user store.
type Repository interface {
	// GetByID resolves one user. Returns domain.ErrNotFound when missing.
	GetByID(ctx context.Context, id int64) (*Record, error)
	// GetByIDs resolves users preserving the order of ids; missing ids are
	// silently dropped.
	GetByIDs(ctx context.Context, ids []int64) ([]Record, error)
}
