package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"customer-panel/internal/domain"
)

type panelHandler struct {
	deps   Deps
	logger *zap.Logger
}

type detailsRequest struct {
	CustomerID int64  `json:"customer_id" binding:"required"`
	Tab        string `json:"tab"`
	AuthToken  string `json:"auth_token"`
	// VendorID defaults to the acting user; the guard rejects any other value.
	VendorID int64 `json:"vendor_id"`
}

type filterRequest struct {
	Search    string                 `json:"search"`
	Filters   map[string]interface{} `json:"filters"`
	AuthToken string                 `json:"auth_token"`
	VendorID  int64                  `json:"vendor_id"`
}

type searchRequest struct {
	Search    string `json:"search"`
	AuthToken string `json:"auth_token"`
	VendorID  int64  `json:"vendor_id"`
}

// getCustomerDetails returns the full detail payload for one customer. The
// anti-forgery check runs before any other work and a failure aborts the
// request outright.
func (h *panelHandler) getCustomerDetails(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, codeInvalidInput, "Invalid request")
		return
	}

	ctx := c.Request.Context()
	actorID, err := h.deps.Sessions.Verify(ctx, req.AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	vendorID := req.VendorID
	if vendorID == 0 {
		vendorID = actorID
	}

	if !validTab(req.Tab) {
		respondFail(c, http.StatusBadRequest, codeInvalidInput, "Unknown tab")
		return
	}

	if !h.deps.Guard.CanView(ctx, actorID, vendorID, req.CustomerID) {
		respondError(c, domain.ErrAccessDenied)
		return
	}

	rec, err := h.deps.Users.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(c, domain.ErrNotFound)
			return
		}
		h.logger.Error("customer details: load user", zap.Int64("customer_id", req.CustomerID), zap.Error(err))
		respondError(c, domain.ErrUpstreamUnavailable)
		return
	}

	courseData, err := h.deps.Courses.CustomerCourseData(ctx, req.CustomerID, vendorID)
	if err != nil {
		h.logger.Error("customer details: course data", zap.Int64("customer_id", req.CustomerID), zap.Error(err))
		respondError(c, domain.ErrUpstreamUnavailable)
		return
	}
	orderRows, err := h.deps.Orders.CustomerOrders(ctx, req.CustomerID, vendorID)
	if err != nil {
		h.logger.Error("customer details: orders", zap.Int64("customer_id", req.CustomerID), zap.Error(err))
		respondError(c, domain.ErrUpstreamUnavailable)
		return
	}

	respondOK(c, domain.DetailPayload{
		BasicInfo: domain.Customer{
			ID:          rec.ID,
			DisplayName: rec.DisplayName,
			Email:       rec.Email,
			Phone:       rec.Phone,
			Address:     rec.Address(),
			Registered:  rec.Registered,
			LastLogin:   rec.LastLogin,
		},
		Courses:      courseData.Courses,
		Certificates: courseData.Certificates,
		Orders:       orderRows,
	})
}

// filterCustomers returns the filtered, searched customer list.
func (h *panelHandler) filterCustomers(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, codeInvalidInput, "Invalid request")
		return
	}

	ctx := c.Request.Context()
	actorID, err := h.deps.Sessions.Verify(ctx, req.AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	vendorID := req.VendorID
	if vendorID == 0 {
		vendorID = actorID
	}
	if vendorID != actorID {
		respondError(c, domain.ErrAccessDenied)
		return
	}

	criteria := sanitizeFilters(req.Filters)
	search := sanitizeSearchTerm(req.Search)

	list, err := h.deps.Filter.Customers(ctx, vendorID, search, criteria)
	if err != nil {
		h.logger.Error("filter customers", zap.Int64("vendor_id", vendorID), zap.Error(err))
		respondError(c, domain.ErrUpstreamUnavailable)
		return
	}
	respondOK(c, list)
}

// searchCustomers is filterCustomers with an empty structured filter set.
func (h *panelHandler) searchCustomers(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFail(c, http.StatusBadRequest, codeInvalidInput, "Invalid request")
		return
	}

	ctx := c.Request.Context()
	actorID, err := h.deps.Sessions.Verify(ctx, req.AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	vendorID := req.VendorID
	if vendorID == 0 {
		vendorID = actorID
	}
	if vendorID != actorID {
		respondError(c, domain.ErrAccessDenied)
		return
	}

	list, err := h.deps.Filter.Customers(ctx, vendorID, sanitizeSearchTerm(req.Search), domain.FilterCriteria{})
	if err != nil {
		h.logger.Error("search customers", zap.Int64("vendor_id", vendorID), zap.Error(err))
		respondError(c, domain.ErrUpstreamUnavailable)
		return
	}
	respondOK(c, list)
}
