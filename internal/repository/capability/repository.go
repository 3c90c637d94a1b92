package capability

import "context"

// ViewCustomers is the capability gating the customer panel. It is granted to
// vendor and shop-manager accounts at setup time.
const ViewCustomers = "panel_view_customers"

// Repository reads and grants named capabilities for platform users.
type Repository interface {
	Has(ctx context.Context, userID int64, capability string) (bool, error)
	Grant(ctx context.Context, userID int64, capability string) error
}
