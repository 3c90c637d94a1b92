package enrollment

import (
	"context"
	"time"
)

// StatusCompleted is the progress-record status the LMS reports once it
// considers a course finished. The stored percentage may lag behind it.
const StatusCompleted = "completed"

// Progress is the raw per-course progress record from the LMS.
type Progress struct {
	Total      int
	Completed  int
	Percentage float64
	Status     string
}

// Repository reads the learning platform's enrollment and progress store.
// One implementation exists per platform version; aggregators depend only on
// this interface.
type Repository interface {
	// HasAccess reports whether the user is enrolled in / can access the course.
	HasAccess(ctx context.Context, courseID, userID int64) (bool, error)
	// Progress returns the user's progress record for the course. A user with
	// access but no recorded progress gets a zero Progress, not an error.
	Progress(ctx context.Context, userID, courseID int64) (Progress, error)
	// CompletionDate returns the completion timestamp, or nil when the course
	// has not been completed.
	CompletionDate(ctx context.Context, userID, courseID int64) (*time.Time, error)
	// EnrolledDate returns when access to the course started.
	EnrolledDate(ctx context.Context, userID, courseID int64) (time.Time, error)
	// CertificateLink returns the external certificate URL, or "" when the
	// course carries no certificate for this user.
	CertificateLink(ctx context.Context, courseID, userID int64) (string, error)
	// LastActivity returns the most recent activity timestamp for the user in
	// the course, or nil when none is recorded.
	LastActivity(ctx context.Context, userID, courseID int64) (*time.Time, error)
	// UsersForCourse lists users with access to the course, in enrollment order.
	UsersForCourse(ctx context.Context, courseID int64) ([]int64, error)
}
