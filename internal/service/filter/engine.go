// Package filter implements the vendor customer list: candidate discovery,
// free-text search, structured filtering and summary projection.
package filter

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"customer-panel/internal/domain"
	"customer-panel/internal/repository/enrollment"
	"customer-panel/internal/repository/order"
	"customer-panel/internal/repository/user"
	"customer-panel/internal/service/courses"
)

// CourseDataProvider supplies per-customer course data and the vendor's course
// set. Satisfied by the courses aggregator.
type CourseDataProvider interface {
	CustomerCourseData(ctx context.Context, customerID, vendorID int64) (courses.Data, error)
	VendorCourses(ctx context.Context, vendorID int64) ([]int64, error)
}

// Engine runs a single synchronous pass over the vendor's customer set.
type Engine struct {
	orders  order.Repository
	lms     enrollment.Repository
	users   user.Repository
	courses CourseDataProvider
	logger  *zap.Logger
	now     func() time.Time
}

// New creates an Engine.
func New(orders order.Repository, lms enrollment.Repository, users user.Repository, provider CourseDataProvider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		orders:  orders,
		lms:     lms,
		users:   users,
		courses: provider,
		logger:  logger,
		now:     time.Now,
	}
}

// Customers returns the vendor's customers matching the search term and the
// filter set, in discovery order. All active filters are ANDed; the per-course
// tests inside a filter are ORed across the candidate's courses. A candidate
// whose course lookup fails is dropped from the result, never aborting the
// whole pass.
func (e *Engine) Customers(ctx context.Context, vendorID int64, search string, criteria domain.FilterCriteria) ([]domain.CustomerSummary, error) {
	candidates, err := e.CandidateIDs(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	records, err := e.users.GetByIDs(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	out := []domain.CustomerSummary{}
	for _, rec := range records {
		if !matchesSearch(rec, search) {
			continue
		}

		// One course-data computation per candidate, shared by every filter.
		data, err := e.courses.CustomerCourseData(ctx, rec.ID, vendorID)
		if err != nil {
			e.logger.Warn("filter: candidate skipped",
				zap.Int64("customer_id", rec.ID), zap.Int64("vendor_id", vendorID), zap.Error(err))
			continue
		}

		if criteria.HasCourseStatus() && !matchesCourseStatus(data.Courses, criteria.CourseStatus) {
			continue
		}
		if criteria.HasCourseID() && !enrolledIn(data.Courses, criteria.CourseID) {
			continue
		}
		if criteria.HasCertificateStatus() && !matchesCertificateStatus(len(data.Certificates), criteria.CertificateStatus) {
			continue
		}
		if criteria.HasEnrollmentDate() && !enrolledOn(data.Courses, criteria.EnrollmentDate) {
			continue
		}

		out = append(out, domain.CustomerSummary{
			ID:               rec.ID,
			DisplayName:      rec.DisplayName,
			Email:            rec.Email,
			Phone:            rec.Phone,
			CourseCount:      len(data.Courses),
			AverageProgress:  AverageProgress(data.Courses),
			CertificateCount: len(data.Certificates),
			LastActivity:     humanTimeDiff(rec.Registered, e.now()),
		})
	}
	return out, nil
}

// CandidateIDs unions the vendor's order customers with the users enrolled in
// the vendor's courses, deduplicated, order customers first.
func (e *Engine) CandidateIDs(ctx context.Context, vendorID int64) ([]int64, error) {
	orderCustomers, err := e.orders.CustomerIDsBySeller(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("order customers: %w", err)
	}

	seen := make(map[int64]bool, len(orderCustomers))
	out := append([]int64(nil), orderCustomers...)
	for _, id := range orderCustomers {
		seen[id] = true
	}

	courseIDs, err := e.courses.VendorCourses(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	for _, courseID := range courseIDs {
		userIDs, err := e.lms.UsersForCourse(ctx, courseID)
		if err != nil {
			return nil, fmt.Errorf("course users %d: %w", courseID, err)
		}
		for _, id := range userIDs {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out, nil
}

// ListCustomers returns one page of the vendor's customer set for the
// dashboard table, without filters. Pages start at 1.
func (e *Engine) ListCustomers(ctx context.Context, vendorID int64, page, perPage int) ([]domain.Customer, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	candidates, err := e.CandidateIDs(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * perPage
	if offset >= len(candidates) {
		return []domain.Customer{}, nil
	}
	end := offset + perPage
	if end > len(candidates) {
		end = len(candidates)
	}

	records, err := e.users.GetByIDs(ctx, candidates[offset:end])
	if err != nil {
		return nil, fmt.Errorf("load page: %w", err)
	}
	out := make([]domain.Customer, 0, len(records))
	for _, rec := range records {
		out = append(out, toCustomer(rec))
	}
	return out, nil
}

// CustomerCount returns the size of the vendor's full customer set.
func (e *Engine) CustomerCount(ctx context.Context, vendorID int64) (int, error) {
	candidates, err := e.CandidateIDs(ctx, vendorID)
	if err != nil {
		return 0, err
	}
	return len(candidates), nil
}

func toCustomer(rec user.Record) domain.Customer {
	return domain.Customer{
		ID:          rec.ID,
		DisplayName: rec.DisplayName,
		Email:       rec.Email,
		Phone:       rec.Phone,
		Address:     rec.Address(),
		Registered:  rec.Registered,
		LastLogin:   rec.LastLogin,
	}
}

func matchesSearch(rec user.Record, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, field := range []string{rec.DisplayName, rec.Email, rec.Phone} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesCourseStatus(list []domain.CourseEnrollment, status string) bool {
	for _, c := range list {
		switch status {
		case domain.CourseStatusCompleted:
			if c.Progress == 100 {
				return true
			}
		case domain.CourseStatusInProgress:
			if c.Progress > 0 && c.Progress < 100 {
				return true
			}
		case domain.CourseStatusNotStarted:
			if c.Progress == 0 {
				return true
			}
		}
	}
	return false
}

func enrolledIn(list []domain.CourseEnrollment, courseID int64) bool {
	for _, c := range list {
		if c.ID == courseID {
			return true
		}
	}
	return false
}

func matchesCertificateStatus(count int, status string) bool {
	switch status {
	case domain.CertStatusHas:
		return count > 0
	case domain.CertStatusNone:
		return count == 0
	}
	return false
}

// enrolledOn compares by calendar day, not by range.
func enrolledOn(list []domain.CourseEnrollment, day time.Time) bool {
	want := day.UTC()
	wy, wm, wd := want.Date()
	for _, c := range list {
		if c.EnrolledDate.IsZero() {
			continue
		}
		y, m, d := c.EnrolledDate.UTC().Date()
		if y == wy && m == wm && d == wd {
			return true
		}
	}
	return false
}

// AverageProgress is the mean of per-course progress over the customer's
// enrolled courses, zero when there are none. Progress already carries the
// forced-100 rule for status-completed courses.
func AverageProgress(list []domain.CourseEnrollment) float64 {
	if len(list) == 0 {
		return 0
	}
	var total float64
	for _, c := range list {
		total += c.Progress
	}
	return math.Round(total/float64(len(list))*100) / 100
}
