// Package courses aggregates a vendor's course offering with a customer's
// enrollment, progress and certificate state.
package courses

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"customer-panel/internal/cache"
	"customer-panel/internal/domain"
	"customer-panel/internal/repository/catalog"
	"customer-panel/internal/repository/enrollment"
)

// Data is the per-customer course view for one vendor.
type Data struct {
	Courses      []domain.CourseEnrollment `json:"courses"`
	Certificates []domain.Certificate      `json:"certificates"`
}

// Aggregator joins the relation store and the enrollment store into Data.
type Aggregator struct {
	catalog catalog.Repository
	lms     enrollment.Repository
	certIDs cache.CertificateIDStore
	logger  *zap.Logger
}

// New creates an Aggregator.
func New(catalogRepo catalog.Repository, lms enrollment.Repository, certIDs cache.CertificateIDStore, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{catalog: catalogRepo, lms: lms, certIDs: certIDs, logger: logger}
}

// VendorCourses resolves the vendor's course set: courses linked to the
// vendor's products, plus courses reachable through groups attached to those
// products. Duplicates are dropped; discovery order is preserved.
func (a *Aggregator) VendorCourses(ctx context.Context, vendorID int64) ([]int64, error) {
	products, err := a.catalog.ProductIDsByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("vendor products: %w", err)
	}

	seen := make(map[int64]bool)
	var out []int64
	add := func(ids []int64) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	for _, productID := range products {
		courseIDs, err := a.catalog.CoursesForProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("courses for product %d: %w", productID, err)
		}
		add(courseIDs)

		groupIDs, err := a.catalog.GroupsForProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("groups for product %d: %w", productID, err)
		}
		for _, groupID := range groupIDs {
			groupCourses, err := a.catalog.CoursesInGroup(ctx, groupID)
			if err != nil {
				return nil, fmt.Errorf("courses in group %d: %w", groupID, err)
			}
			add(groupCourses)
		}
	}
	return out, nil
}

// CustomerCourseData builds the course and certificate lists for one customer
// as seen by one vendor. A customer enrolled in none of the vendor's courses
// gets empty lists, not an error. Courses keep discovery order.
func (a *Aggregator) CustomerCourseData(ctx context.Context, customerID, vendorID int64) (Data, error) {
	courseIDs, err := a.VendorCourses(ctx, vendorID)
	if err != nil {
		return Data{}, err
	}

	data := Data{
		Courses:      []domain.CourseEnrollment{},
		Certificates: []domain.Certificate{},
	}
	for _, courseID := range courseIDs {
		ok, err := a.lms.HasAccess(ctx, courseID, customerID)
		if err != nil {
			return Data{}, fmt.Errorf("course access %d: %w", courseID, err)
		}
		if !ok {
			continue
		}

		progress, err := a.lms.Progress(ctx, customerID, courseID)
		if err != nil {
			return Data{}, fmt.Errorf("course progress %d: %w", courseID, err)
		}
		completionDate, err := a.lms.CompletionDate(ctx, customerID, courseID)
		if err != nil {
			return Data{}, fmt.Errorf("completion date %d: %w", courseID, err)
		}
		enrolledDate, err := a.lms.EnrolledDate(ctx, customerID, courseID)
		if err != nil {
			return Data{}, fmt.Errorf("enrolled date %d: %w", courseID, err)
		}
		lastActivity, err := a.lms.LastActivity(ctx, customerID, courseID)
		if err != nil {
			return Data{}, fmt.Errorf("last activity %d: %w", courseID, err)
		}

		title, err := a.courseTitle(ctx, courseID)
		if err != nil {
			return Data{}, err
		}

		data.Courses = append(data.Courses, domain.CourseEnrollment{
			ID:               courseID,
			Title:            title,
			Progress:         effectiveProgress(progress),
			Completed:        completionDate != nil,
			CompletionDate:   completionDate,
			EnrolledDate:     enrolledDate,
			LessonsCompleted: progress.Completed,
			TotalLessons:     progress.Total,
			LastActivity:     lastActivity,
		})

		if completionDate == nil {
			continue
		}
		link, err := a.lms.CertificateLink(ctx, courseID, customerID)
		if err != nil {
			return Data{}, fmt.Errorf("certificate link %d: %w", courseID, err)
		}
		if link == "" {
			continue
		}
		certID, err := a.CertificateID(ctx, customerID, courseID)
		if err != nil {
			return Data{}, err
		}
		data.Certificates = append(data.Certificates, domain.Certificate{
			CourseID:        courseID,
			CourseTitle:     title,
			CertificateLink: link,
			EarnedDate:      *completionDate,
			CertificateID:   certID,
		})
	}
	return data, nil
}

// CustomerHasVendorCourseAccess reports whether the customer can access at
// least one of the vendor's courses, stopping at the first hit.
func (a *Aggregator) CustomerHasVendorCourseAccess(ctx context.Context, customerID, vendorID int64) (bool, error) {
	courseIDs, err := a.VendorCourses(ctx, vendorID)
	if err != nil {
		return false, err
	}
	for _, courseID := range courseIDs {
		ok, err := a.lms.HasAccess(ctx, courseID, customerID)
		if err != nil {
			return false, fmt.Errorf("course access %d: %w", courseID, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// CertificateID returns the stable certificate id for a customer+course pair,
// generating and caching it on first request. The cached value always wins, so
// the id never changes once handed out.
func (a *Aggregator) CertificateID(ctx context.Context, customerID, courseID int64) (string, error) {
	id, ok, err := a.certIDs.Get(ctx, customerID, courseID)
	if err != nil {
		return "", fmt.Errorf("certificate id lookup: %w", err)
	}
	if ok {
		return id, nil
	}

	id = fmt.Sprintf("CERT-%d-%d-%s", courseID, customerID, uuid.NewString())
	if err := a.certIDs.Put(ctx, customerID, courseID, id); err != nil {
		// The id is still usable this request; the next one regenerates.
		a.logger.Warn("certificate id cache write failed",
			zap.Int64("customer_id", customerID), zap.Int64("course_id", courseID), zap.Error(err))
	}
	return id, nil
}

func (a *Aggregator) courseTitle(ctx context.Context, courseID int64) (string, error) {
	title, err := a.catalog.CourseTitle(ctx, courseID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("course title %d: %w", courseID, err)
	}
	return title, nil
}

// effectiveProgress applies the forced-100 rule: a progress record with a
// completed status counts as 100 even when its stored percentage lags.
func effectiveProgress(p enrollment.Progress) float64 {
	if p.Status == enrollment.StatusCompleted {
		return 100
	}
	return math.Round(p.Percentage*100) / 100
}
