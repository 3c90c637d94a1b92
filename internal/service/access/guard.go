// Package access decides whether an actor may view a customer's data.
package access

import (
	"context"

	"go.uber.org/zap"

	"customer-panel/internal/repository/capability"
	"customer-panel/internal/repository/order"
)

// CourseAccessChecker answers whether a customer can reach any of the vendor's
// courses. Satisfied by the courses aggregator.
type CourseAccessChecker interface {
	CustomerHasVendorCourseAccess(ctx context.Context, customerID, vendorID int64) (bool, error)
}

// Guard is the access-control check in front of every customer read.
type Guard struct {
	orders       order.Repository
	courseAccess CourseAccessChecker
	caps         capability.Repository
	logger       *zap.Logger
}

// New creates a Guard.
func New(orders order.Repository, courseAccess CourseAccessChecker, caps capability.Repository, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{orders: orders, courseAccess: courseAccess, caps: caps, logger: logger}
}

// CanView reports whether the actor may view the customer. It fails closed: an
// actor may only view their own customers, must hold the view-customers
// capability, and any store failure counts as a denial.
func (g *Guard) CanView(ctx context.Context, actorID, vendorID, customerID int64) bool {
	if actorID != vendorID {
		return false
	}

	ok, err := g.caps.Has(ctx, actorID, capability.ViewCustomers)
	if err != nil {
		g.logger.Warn("access guard: capability check failed", zap.Int64("actor_id", actorID), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}

	return g.BelongsToVendor(ctx, vendorID, customerID)
}

// BelongsToVendor reports whether the customer has at least one order from the
// vendor or access to at least one vendor course. Orders are checked first
// since that lookup is cheaper, and the check stops at the first hit.
func (g *Guard) BelongsToVendor(ctx context.Context, vendorID, customerID int64) bool {
	ids, err := g.orders.IDsBySellerCustomer(ctx, vendorID, customerID, 1)
	if err != nil {
		g.logger.Warn("access guard: order lookup failed",
			zap.Int64("vendor_id", vendorID), zap.Int64("customer_id", customerID), zap.Error(err))
	} else if len(ids) > 0 {
		return true
	}

	ok, err := g.courseAccess.CustomerHasVendorCourseAccess(ctx, customerID, vendorID)
	if err != nil {
		g.logger.Warn("access guard: course access lookup failed",
			zap.Int64("vendor_id", vendorID), zap.Int64("customer_id", customerID), zap.Error(err))
		return false
	}
	return ok
}
