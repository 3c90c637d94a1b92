package domain

import "time"

// CourseEnrollment describes one course a customer can access, with progress.
//
// Progress and Completed are derived from independent signals and may disagree:
// Progress is forced to 100 when the progress record reports a completed status,
// while Completed reflects only the presence of a completion date. Both are kept
// as-is; callers pick the signal they need.
type CourseEnrollment struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Progress         float64    `json:"progress"`
	Completed        bool       `json:"completed"`
	CompletionDate   *time.Time `json:"completion_date,omitempty"`
	EnrolledDate     time.Time  `json:"enrolled_date"`
	LessonsCompleted int        `json:"lessons_completed"`
	TotalLessons     int        `json:"total_lessons"`
	LastActivity     *time.Time `json:"last_activity,omitempty"`
}

// Certificate is a proof-of-completion record for a course.
type Certificate struct {
	CourseID        int64     `json:"course_id"`
	CourseTitle     string    `json:"course_title"`
	CertificateLink string    `json:"certificate_link,omitempty"`
	EarnedDate      time.Time `json:"earned_date"`
	CertificateID   string    `json:"certificate_id"`
}
