// utils/dates.go
package utils

import "time"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// AddMonths advances t by n calendar months, clamping the day to the last
// day of the target month (Jan 31 + 1 month = Feb 28/29, not Mar 2).
// time.AddDate does not clamp, which would drift billing anchors.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// Due-date display statuses. Pure derivation from (dueDate, today); carries
// no billing state.
const (
	DueStatusOverdue  = "overdue"
	DueStatusDueToday = "due_today"
	DueStatusDueSoon  = "due_soon"
	DueStatusUpcoming = "upcoming"
)

// DueSoonWindowDays is how many days ahead a due date counts as "due soon".
const DueSoonWindowDays = 3

func DueStatus(dueDate, today time.Time) string {
	days := DaysBetween(today, dueDate)
	switch {
	case days < 0:
		return DueStatusOverdue
	case days == 0:
		return DueStatusDueToday
	case days <= DueSoonWindowDays:
		return DueStatusDueSoon
	default:
		return DueStatusUpcoming
	}
}
