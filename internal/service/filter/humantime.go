package filter

import (
	"fmt"
	"time"
)

// humanTimeDiff renders the gap between two times the way the dashboard shows
// it: "1 min", "3 hours", "2 weeks". The smallest answer is one minute.
func humanTimeDiff(from, to time.Time) string {
	diff := to.Sub(from)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Hour:
		return plural(int(diff/time.Minute), "min", "mins")
	case diff < 24*time.Hour:
		return plural(int(diff/time.Hour), "hour", "hours")
	case diff < 7*24*time.Hour:
		return plural(int(diff/(24*time.Hour)), "day", "days")
	case diff < 30*24*time.Hour:
		return plural(int(diff/(7*24*time.Hour)), "week", "weeks")
	case diff < 365*24*time.Hour:
		return plural(int(diff/(30*24*time.Hour)), "month", "months")
	default:
		return plural(int(diff/(365*24*time.Hour)), "year", "years")
	}
}

func plural(n int, one, many string) string {
	if n < 1 {
		n = 1
	}
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
