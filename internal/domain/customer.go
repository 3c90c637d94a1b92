package domain

import "time"

// Customer is a read-only projection of a platform user as seen by a vendor.
type Customer struct {
	ID          int64      `json:"id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	Registered  time.Time  `json:"registered"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// CustomerSummary is a Customer row in the filtered list view, with the
// aggregates the dashboard table shows.
type CustomerSummary struct {
	ID               int64   `json:"id"`
	DisplayName      string  `json:"display_name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone,omitempty"`
	CourseCount      int     `json:"course_count"`
	AverageProgress  float64 `json:"avg_progress"`
	CertificateCount int     `json:"certificate_count"`
	LastActivity     string  `json:"last_activity"`
}

// DetailPayload is the full per-customer view returned by the details endpoint.
type DetailPayload struct {
	BasicInfo    Customer           `json:"basic_info"`
	Courses      []CourseEnrollment `json:"courses"`
	Certificates []Certificate      `json:"certificates"`
	Orders       []Order            `json:"orders"`
}
