package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSummaryWindows(t *testing.T) {
	now := time.Date(2026, 8, 27, 15, 42, 10, 0, time.UTC)

	today, weekAgo, monthAgo, yearStart := summaryWindows(now)

	assert.Equal(t, time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), weekAgo)
	assert.Equal(t, time.Date(2026, 7, 28, 0, 0, 0, 0, time.UTC), monthAgo)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), yearStart)
}

func TestSummaryWindows_YearBoundary(t *testing.T) {
	now := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)

	today, weekAgo, _, yearStart := summaryWindows(now)

	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), today)
	assert.Equal(t, time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC), weekAgo)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), yearStart)
}
