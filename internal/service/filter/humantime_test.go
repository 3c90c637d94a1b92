package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHumanTimeDiff(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		from time.Time
		want string
	}{
		{"seconds round up to a minute", now.Add(-30 * time.Second), "1 min"},
		{"minutes", now.Add(-5 * time.Minute), "5 mins"},
		{"one hour", now.Add(-90 * time.Minute), "1 hour"},
		{"hours", now.Add(-5 * time.Hour), "5 hours"},
		{"days", now.AddDate(0, 0, -3), "3 days"},
		{"weeks", now.AddDate(0, 0, -15), "2 weeks"},
		{"months", now.AddDate(0, 0, -70), "2 months"},
		{"years", now.AddDate(-2, 0, -10), "2 years"},
		{"future clamps to a minute", now.Add(time.Hour), "1 min"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, humanTimeDiff(tc.from, now))
		})
	}
}
