package httpserver

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"customer-panel/internal/domain"
)

func TestSanitizeSearchTerm(t *testing.T) {
	assert.Equal(t, "john smith", sanitizeSearchTerm("  john \t\n smith  "))
	assert.Equal(t, "", sanitizeSearchTerm("   "))

	long := strings.Repeat("a", 150)
	assert.Len(t, sanitizeSearchTerm(long), 100)
}

func TestSanitizeFiltersAllowLists(t *testing.T) {
	got := sanitizeFilters(map[string]interface{}{
		"course_status":      "completed",
		"certificate_status": "has-certificates",
		"course_id":          float64(100),
		"enrollment_date":    "2026-01-10",
		"drop_tables":        "1; DROP TABLE users",
	})

	assert.Equal(t, domain.CourseStatusCompleted, got.CourseStatus)
	assert.Equal(t, domain.CertStatusHas, got.CertificateStatus)
	assert.Equal(t, int64(100), got.CourseID)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), got.EnrollmentDate)
}

func TestSanitizeFiltersRejectsUnknownValues(t *testing.T) {
	got := sanitizeFilters(map[string]interface{}{
		"course_status":      "hacked",
		"certificate_status": "everything",
		"course_id":          float64(-3),
		"enrollment_date":    "not a date",
	})

	assert.False(t, got.HasCourseStatus())
	assert.False(t, got.HasCertificateStatus())
	assert.False(t, got.HasCourseID())
	assert.False(t, got.HasEnrollmentDate())
}

func TestSanitizeFiltersCoercesStringIDs(t *testing.T) {
	got := sanitizeFilters(map[string]interface{}{"course_id": " 42 "})
	assert.Equal(t, int64(42), got.CourseID)

	got = sanitizeFilters(map[string]interface{}{"course_id": "zero"})
	assert.False(t, got.HasCourseID())
}

func TestSanitizeFiltersNilMap(t *testing.T) {
	got := sanitizeFilters(nil)
	assert.Equal(t, domain.FilterCriteria{}, got)
}

func TestValidTab(t *testing.T) {
	for _, tab := range []string{"", "basic-info", "courses", "certificates", "orders"} {
		assert.True(t, validTab(tab), tab)
	}
	assert.False(t, validTab("secrets"))
}
