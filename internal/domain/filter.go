package domain

import "time"

// Course status filter values.
const (
	CourseStatusCompleted  = "completed"
	CourseStatusInProgress = "in-progress"
	CourseStatusNotStarted = "not-started"
)

// Certificate status filter values.
const (
	CertStatusHas  = "has-certificates"
	CertStatusNone = "no-certificates"
)

// FilterCriteria is the validated structured-filter set for the customer list.
// Zero values mean "filter not active". EnrollmentDate is compared by calendar
// day, not as a range.
type FilterCriteria struct {
	CourseStatus      string
	CourseID          int64
	EnrollmentDate    time.Time
	CertificateStatus string
}

// HasCourseStatus reports whether the course-status filter is active.
func (f FilterCriteria) HasCourseStatus() bool { return f.CourseStatus != "" }

// HasCourseID reports whether the course-id filter is active.
func (f FilterCriteria) HasCourseID() bool { return f.CourseID != 0 }

// HasEnrollmentDate reports whether the enrollment-date filter is active.
func (f FilterCriteria) HasEnrollmentDate() bool { return !f.EnrollmentDate.IsZero() }

// HasCertificateStatus reports whether the certificate-status filter is active.
func (f FilterCriteria) HasCertificateStatus() bool { return f.CertificateStatus != "" }
