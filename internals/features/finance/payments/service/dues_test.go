package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-08", MonthKey(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))
}

func TestMonthsBetween(t *testing.T) {
	from := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2026-01", "2026-02", "2026-03"}, MonthsBetween(from, to))
}

func TestMonthsBetweenSameMonth(t *testing.T) {
	d := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2026-08"}, MonthsBetween(d, d))
}

func TestMonthsBetweenYearBoundary(t *testing.T) {
	from := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"}, MonthsBetween(from, to))
}

func TestMonthsBetweenReversed(t *testing.T) {
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, MonthsBetween(from, to))
}

func TestUnpaidMonths(t *testing.T) {
	owed := []string{"2026-01", "2026-02", "2026-03", "2026-04"}
	paid := []string{"2026-02", "2026-04"}
	assert.Equal(t, []string{"2026-01", "2026-03"}, UnpaidMonths(owed, paid))

	assert.Nil(t, UnpaidMonths(owed, owed))
	assert.Equal(t, owed, UnpaidMonths(owed, nil))
}
