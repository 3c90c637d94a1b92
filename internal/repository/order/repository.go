package order

import (
	"context"
	"time"
)

// ItemRecord is one stored order line.
type ItemRecord struct {
	Name       string
	Quantity   int
	TotalCents int64
}

// Record is a raw order row as the commerce store keeps it. Totals are in
// cents; formatting happens in the aggregator.
type Record struct {
	ID         int64
	SellerID   int64
	CustomerID int64
	Status     string
	TotalCents int64
	Currency   string
	CreatedAt  time.Time
	Items      []ItemRecord
}

// Repository reads the commerce platform's order store.
type Repository interface {
	// IDsBySellerCustomer lists order ids for a seller/customer pair, newest
	// first. limit <= 0 means no limit.
	IDsBySellerCustomer(ctx context.Context, sellerID, customerID int64, limit int) ([]int64, error)
	// GetByID resolves a full order. Returns domain.ErrNotFound for deleted orders.
	GetByID(ctx context.Context, id int64) (*Record, error)
	// CustomerIDsBySeller lists distinct customers who ordered from the seller,
	// in order of first purchase.
	CustomerIDsBySeller(ctx context.Context, sellerID int64) ([]int64, error)
}
