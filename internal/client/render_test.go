package client

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-panel/internal/domain"
)

func TestHighlightWrapsMatches(t *testing.T) {
	got := string(highlight("John Smith", "joh"))
	assert.Equal(t, "<mark>Joh</mark>n Smith", got)

	got = string(highlight("john john", "john"))
	assert.Equal(t, "<mark>john</mark> <mark>john</mark>", got)
}

func TestHighlightHandlesMultibyteRunes(t *testing.T) {
	// 'Ⱥ' (U+023A) lowercases to 'ⱥ' (U+2C65), which is one byte longer, and
	// 'İ' (U+0130) lowercases to a different byte length too. Matching must
	// stay aligned to the original runes for such text.
	got := string(highlight("ȺȺȺȺa", "a"))
	assert.Equal(t, "ȺȺȺȺ<mark>a</mark>", got)
	assert.True(t, utf8.ValidString(got))

	got = string(highlight("İİİİa", "a"))
	assert.Equal(t, "İİİİ<mark>a</mark>", got)
	assert.True(t, utf8.ValidString(got))

	got = string(highlight("Ærøskøbing", "ærø"))
	assert.Equal(t, "<mark>Ærø</mark>skøbing", got)
}

func TestHighlightEscapesBothSides(t *testing.T) {
	got := string(highlight(`<script>alert("x")</script>`, ""))
	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "&lt;script&gt;")

	// A markup term cannot smuggle tags in; it matches the escaped text.
	got = string(highlight("a<b", "<"))
	assert.Equal(t, "a<mark>&lt;</mark>b", got)

	got = string(highlight("safe", "<img src=x>"))
	assert.Equal(t, "safe", got)
}

func TestRenderCustomerRows(t *testing.T) {
	list := []domain.CustomerSummary{
		{
			ID:               5,
			DisplayName:      "John <b>Smith</b>",
			Email:            "john@example.com",
			CourseCount:      2,
			AverageProgress:  66.67,
			CertificateCount: 1,
			LastActivity:     "2 weeks",
		},
	}
	got := RenderCustomerRows(list, "john", DefaultStrings())

	assert.Contains(t, got, `data-customer-id="5"`)
	assert.Contains(t, got, "&lt;b&gt;Smith&lt;/b&gt;")
	assert.NotContains(t, got, "<b>Smith</b>")
	assert.Contains(t, got, "<mark>John</mark>")
	assert.Contains(t, got, "66.67%")
	assert.Contains(t, got, "2 weeks")
}

func TestRenderCustomerRowsEmpty(t *testing.T) {
	got := RenderCustomerRows(nil, "", DefaultStrings())
	assert.Contains(t, got, DefaultStrings().NoData)
	assert.Contains(t, got, `colspan="7"`)
}

func TestRenderTabBasicInfoEscapes(t *testing.T) {
	payload := &domain.DetailPayload{
		BasicInfo: domain.Customer{
			DisplayName: `Eve <img src=x onerror=alert(1)>`,
			Email:       "eve@example.com",
			Registered:  time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	got, err := renderTab("basic-info", payload, DefaultStrings())
	require.NoError(t, err)
	assert.NotContains(t, got, "<img")
	assert.Contains(t, got, "eve@example.com")
	assert.Contains(t, got, "2025-12-01")
}

func TestRenderTabCourses(t *testing.T) {
	done := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	payload := &domain.DetailPayload{
		Courses: []domain.CourseEnrollment{
			{
				Title: "Intro to Go", Progress: 100, Completed: true, CompletionDate: &done,
				LessonsCompleted: 12, TotalLessons: 12,
				EnrolledDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
			},
			{Title: "Practical SQL", Progress: 33.33, LessonsCompleted: 4, TotalLessons: 12,
				EnrolledDate: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
		},
	}
	got, err := renderTab("courses", payload, DefaultStrings())
	require.NoError(t, err)
	assert.Contains(t, got, "Intro to Go")
	assert.Contains(t, got, "Completed 2026-03-01")
	assert.Contains(t, got, "33.33%")
	assert.Contains(t, got, "12/12 lessons")
	assert.Contains(t, got, "In progress")
}

func TestRenderTabCertificatesLink(t *testing.T) {
	payload := &domain.DetailPayload{
		Certificates: []domain.Certificate{
			{
				CourseTitle:     "Intro to Go",
				CertificateID:   "CERT-100-5-abc",
				CertificateLink: "https://certs.example.com/go/5",
				EarnedDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	got, err := renderTab("certificates", payload, DefaultStrings())
	require.NoError(t, err)
	assert.Contains(t, got, `href="https://certs.example.com/go/5"`)
	assert.Contains(t, got, "CERT-100-5-abc")
}

func TestRenderTabOrders(t *testing.T) {
	payload := &domain.DetailPayload{
		Orders: []domain.Order{
			{
				ID: 900, Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				Total: "$49.00", Status: domain.OrderStatusCompleted,
				Items: []domain.OrderItem{{Name: "Developer Bundle", Quantity: 1, Total: "$49.00"}},
			},
		},
	}
	got, err := renderTab("orders", payload, DefaultStrings())
	require.NoError(t, err)
	assert.Contains(t, got, "#900")
	assert.Contains(t, got, "$49.00")
	assert.Contains(t, got, "Developer Bundle")
}

func TestRenderTabNilPayload(t *testing.T) {
	got, err := renderTab("courses", nil, DefaultStrings())
	require.NoError(t, err)
	assert.Contains(t, got, DefaultStrings().NoData)
}

func TestTrimFloat(t *testing.T) {
	assert.Equal(t, "100", trimFloat(100))
	assert.Equal(t, "66.67", trimFloat(66.67))
	assert.Equal(t, "0", trimFloat(0))
	assert.Equal(t, "33.3", trimFloat(33.30))
}
