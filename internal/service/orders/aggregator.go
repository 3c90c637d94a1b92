// Package orders builds a customer's formatted order history for one vendor.
package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"customer-panel/internal/domain"
	"customer-panel/internal/repository/order"
)

// Aggregator reads the commerce order store and formats order rows.
type Aggregator struct {
	orders order.Repository
	logger *zap.Logger
}

// New creates an Aggregator.
func New(orders order.Repository, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{orders: orders, logger: logger}
}

// CustomerOrders lists the customer's orders from the vendor, newest first.
// Orders that no longer resolve (deleted in the store) are skipped silently.
func (a *Aggregator) CustomerOrders(ctx context.Context, customerID, vendorID int64) ([]domain.Order, error) {
	ids, err := a.orders.IDsBySellerCustomer(ctx, vendorID, customerID, 0)
	if err != nil {
		return nil, fmt.Errorf("customer orders: %w", err)
	}

	out := make([]domain.Order, 0, len(ids))
	for _, id := range ids {
		rec, err := a.orders.GetByID(ctx, id)
		if err != nil {
			a.logger.Debug("order skipped", zap.Int64("order_id", id), zap.Error(err))
			continue
		}

		items := make([]domain.OrderItem, 0, len(rec.Items))
		for _, item := range rec.Items {
			items = append(items, domain.OrderItem{
				Name:     item.Name,
				Quantity: item.Quantity,
				Total:    FormatTotal(item.TotalCents, rec.Currency),
			})
		}
		out = append(out, domain.Order{
			ID:     rec.ID,
			Date:   rec.CreatedAt,
			Total:  FormatTotal(rec.TotalCents, rec.Currency),
			Status: rec.Status,
			Items:  items,
		})
	}
	return out, nil
}

var totalPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatTotal renders a cent amount as the store's locale-aware currency
// string, e.g. "$49.00" for 4900 USD cents. The symbol and amount are printed
// separately; formatting the amount through the currency formatter inserts a
// separator the storefront does not use.
func FormatTotal(cents int64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}
	amount, _ := decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).Float64()
	return totalPrinter.Sprintf("%v%.2f", currency.Symbol(unit), amount)
}
