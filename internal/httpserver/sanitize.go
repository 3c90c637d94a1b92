package httpserver

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"customer-panel/internal/domain"
)

// Tabs the detail modal knows about. An empty tab means the default view.
var validTabs = map[string]bool{
	"":             true,
	"basic-info":   true,
	"courses":      true,
	"certificates": true,
	"orders":       true,
}

func validTab(tab string) bool {
	return validTabs[tab]
}

var whitespaceRun = regexp.MustCompile(`\s+`)

const maxSearchLen = 100

// sanitizeSearchTerm collapses whitespace runs, trims, and caps the length.
func sanitizeSearchTerm(term string) string {
	term = whitespaceRun.ReplaceAllString(term, " ")
	term = strings.TrimSpace(term)
	if len(term) > maxSearchLen {
		term = term[:maxSearchLen]
	}
	return term
}

// sanitizeFilters reduces a raw filter payload to the known filter shape:
// unknown keys are dropped, enumerated values are checked against their
// allow-lists, and numeric fields are coerced from whatever JSON delivered.
func sanitizeFilters(raw map[string]interface{}) domain.FilterCriteria {
	var out domain.FilterCriteria
	if raw == nil {
		return out
	}

	if v, ok := raw["course_status"].(string); ok {
		switch v {
		case domain.CourseStatusCompleted, domain.CourseStatusInProgress, domain.CourseStatusNotStarted:
			out.CourseStatus = v
		}
	}

	if v, ok := raw["certificate_status"].(string); ok {
		switch v {
		case domain.CertStatusHas, domain.CertStatusNone:
			out.CertificateStatus = v
		}
	}

	if id, ok := coerceID(raw["course_id"]); ok {
		out.CourseID = id
	}

	if v, ok := raw["enrollment_date"].(string); ok {
		if day, err := time.Parse("2006-01-02", strings.TrimSpace(v)); err == nil {
			out.EnrollmentDate = day
		}
	}

	return out
}

func coerceID(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return int64(n), true
		}
	case string:
		if id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}
