package utils_test

import (
	"testing"
	"time"

	"boardinghouse-backend/utils"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"plain month", day(2025, time.March, 10), 1, day(2025, time.April, 10)},
		{"jan 31 clamps to feb 28", day(2025, time.January, 31), 1, day(2025, time.February, 28)},
		{"jan 31 clamps to feb 29 in leap years", day(2024, time.January, 31), 1, day(2024, time.February, 29)},
		{"mar 31 clamps to apr 30", day(2025, time.March, 31), 1, day(2025, time.April, 30)},
		{"dec rolls into next year", day(2025, time.December, 15), 1, day(2026, time.January, 15)},
		{"multiple months", day(2025, time.January, 31), 3, day(2025, time.April, 30)},
		{"zero months", day(2025, time.March, 10), 0, day(2025, time.March, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := utils.AddMonths(tc.start, tc.n)
			assert.True(t, tc.want.Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestAddMonthsKeepsTimeOfDay(t *testing.T) {
	start := time.Date(2025, time.January, 31, 14, 30, 45, 0, time.UTC)
	got := utils.AddMonths(start, 1)
	assert.Equal(t, 14, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 28, got.Day())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, utils.DaysBetween(day(2025, time.March, 10), day(2025, time.March, 10)))
	assert.Equal(t, 5, utils.DaysBetween(day(2025, time.March, 10), day(2025, time.March, 15)))
	assert.Equal(t, -5, utils.DaysBetween(day(2025, time.March, 15), day(2025, time.March, 10)))

	// Time of day must not affect the count
	late := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	early := time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, utils.DaysBetween(late, early))
}

func TestDueStatus(t *testing.T) {
	today := day(2025, time.March, 10)

	cases := []struct {
		name    string
		dueDate time.Time
		want    string
	}{
		{"past due date", day(2025, time.March, 9), utils.DueStatusOverdue},
		{"long past", day(2025, time.February, 1), utils.DueStatusOverdue},
		{"today", today, utils.DueStatusDueToday},
		{"tomorrow", day(2025, time.March, 11), utils.DueStatusDueSoon},
		{"edge of the window", day(2025, time.March, 13), utils.DueStatusDueSoon},
		{"just past the window", day(2025, time.March, 14), utils.DueStatusUpcoming},
		{"far ahead", day(2025, time.April, 10), utils.DueStatusUpcoming},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, utils.DueStatus(tc.dueDate, today))
		})
	}
}
