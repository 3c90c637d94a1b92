package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"customer-panel/internal/domain"
	"customer-panel/internal/repository/order"
)

type fakeOrders struct {
	ids     []int64
	records map[int64]*order.Record
}

func (f *fakeOrders) IDsBySellerCustomer(_ context.Context, _, _ int64, limit int) ([]int64, error) {
	ids := f.ids
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeOrders) GetByID(_ context.Context, id int64) (*order.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (f *fakeOrders) CustomerIDsBySeller(context.Context, int64) ([]int64, error) {
	return nil, nil
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "$49.00", FormatTotal(4900, "USD"))
	assert.Equal(t, "$123.45", FormatTotal(12345, "USD"))
	assert.Equal(t, "$0.00", FormatTotal(0, "USD"))
	// Unknown currency codes fall back to USD.
	assert.Equal(t, "$10.00", FormatTotal(1000, "not-a-code"))
	// The symbol sits flush against the amount, no separator.
	assert.NotContains(t, FormatTotal(4900, "USD"), " ")
	assert.Equal(t, "€10.00", FormatTotal(1000, "EUR"))
}

func TestCustomerOrdersFormatsAndSkipsMissing(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeOrders{
		ids: []int64{902, 901, 900},
		records: map[int64]*order.Record{
			902: {
				ID: 902, Status: domain.OrderStatusCompleted, TotalCents: 4900, Currency: "USD", CreatedAt: created,
				Items: []order.ItemRecord{{Name: "Developer Bundle", Quantity: 1, TotalCents: 4900}},
			},
			900: {ID: 900, Status: domain.OrderStatusRefunded, TotalCents: 1999, Currency: "USD", CreatedAt: created.AddDate(0, -1, 0)},
			// 901 was deleted in the store.
		},
	}
	agg := New(repo, zap.NewNop())

	got, err := agg.CustomerOrders(context.Background(), 5, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, int64(902), got[0].ID)
	assert.Equal(t, "$49.00", got[0].Total)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "$49.00", got[0].Items[0].Total)
	assert.Equal(t, int64(900), got[1].ID)
	assert.Equal(t, "$19.99", got[1].Total)
}

func TestCustomerOrdersEmptyHistory(t *testing.T) {
	agg := New(&fakeOrders{}, zap.NewNop())
	got, err := agg.CustomerOrders(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
