package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"customer-panel/internal/repository/capability"
	"customer-panel/internal/repository/order"
)

type fakeOrders struct {
	idsBySellerCustomer map[[2]int64][]int64
	err                 error
}

func (f *fakeOrders) IDsBySellerCustomer(_ context.Context, sellerID, customerID int64, limit int) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	ids := f.idsBySellerCustomer[[2]int64{sellerID, customerID}]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeOrders) GetByID(context.Context, int64) (*order.Record, error) {
	return nil, errors.New("not used")
}

func (f *fakeOrders) CustomerIDsBySeller(context.Context, int64) ([]int64, error) {
	return nil, errors.New("not used")
}

type fakeCourseAccess struct {
	allowed map[[2]int64]bool
	err     error
	calls   int
}

func (f *fakeCourseAccess) CustomerHasVendorCourseAccess(_ context.Context, customerID, vendorID int64) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.allowed[[2]int64{customerID, vendorID}], nil
}

type fakeCaps struct {
	granted map[int64]bool
	err     error
}

func (f *fakeCaps) Has(_ context.Context, userID int64, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.granted[userID] && name == capability.ViewCustomers, nil
}

func (f *fakeCaps) Grant(context.Context, int64, string) error { return nil }

func TestCanViewDeniesOtherVendors(t *testing.T) {
	g := New(&fakeOrders{}, &fakeCourseAccess{}, &fakeCaps{granted: map[int64]bool{1: true}}, zap.NewNop())
	assert.False(t, g.CanView(context.Background(), 1, 2, 5))
}

func TestCanViewRequiresCapability(t *testing.T) {
	orders := &fakeOrders{idsBySellerCustomer: map[[2]int64][]int64{{1, 5}: {900}}}
	g := New(orders, &fakeCourseAccess{}, &fakeCaps{}, zap.NewNop())
	assert.False(t, g.CanView(context.Background(), 1, 1, 5))
}

func TestCanViewCapabilityErrorFailsClosed(t *testing.T) {
	orders := &fakeOrders{idsBySellerCustomer: map[[2]int64][]int64{{1, 5}: {900}}}
	g := New(orders, &fakeCourseAccess{}, &fakeCaps{err: errors.New("db down")}, zap.NewNop())
	assert.False(t, g.CanView(context.Background(), 1, 1, 5))
}

func TestBelongsToVendorOrderShortCircuits(t *testing.T) {
	orders := &fakeOrders{idsBySellerCustomer: map[[2]int64][]int64{{1, 5}: {900}}}
	courses := &fakeCourseAccess{}
	g := New(orders, courses, &fakeCaps{granted: map[int64]bool{1: true}}, zap.NewNop())

	assert.True(t, g.CanView(context.Background(), 1, 1, 5))
	assert.Zero(t, courses.calls, "course lookup should not run when an order exists")
}

func TestBelongsToVendorFallsBackToCourseAccess(t *testing.T) {
	courses := &fakeCourseAccess{allowed: map[[2]int64]bool{{5, 1}: true}}
	g := New(&fakeOrders{}, courses, &fakeCaps{granted: map[int64]bool{1: true}}, zap.NewNop())
	assert.True(t, g.CanView(context.Background(), 1, 1, 5))
}

func TestBelongsToVendorOrderErrorStillChecksCourses(t *testing.T) {
	orders := &fakeOrders{err: errors.New("store down")}
	courses := &fakeCourseAccess{allowed: map[[2]int64]bool{{5, 1}: true}}
	g := New(orders, courses, &fakeCaps{granted: map[int64]bool{1: true}}, zap.NewNop())
	assert.True(t, g.CanView(context.Background(), 1, 1, 5))
}

func TestBelongsToVendorAllFailuresDeny(t *testing.T) {
	orders := &fakeOrders{err: errors.New("store down")}
	courses := &fakeCourseAccess{err: errors.New("lms down")}
	g := New(orders, courses, &fakeCaps{granted: map[int64]bool{1: true}}, zap.NewNop())
	assert.False(t, g.CanView(context.Background(), 1, 1, 5))
}

func TestCanViewDeniesUnrelatedCustomer(t *testing.T) {
	g := New(&fakeOrders{}, &fakeCourseAccess{}, &fakeCaps{granted: map[int64]bool{1: true}}, zap.NewNop())
	assert.False(t, g.CanView(context.Background(), 1, 1, 42))
}
