package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStartOf(t *testing.T) {
	// 2024-06-05 是周三，所在周的周一是 2024-06-03
	wednesday := time.Date(2024, 6, 5, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), WeekStartOf(wednesday))

	// 周一落在自己身上，周日落在同一周的周一
	monday := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStartOf(monday))
	sunday := time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStartOf(sunday))
}

func TestDefaultWeeklyAvailability(t *testing.T) {
	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	availability := DefaultWeeklyAvailability(42, weekStart)

	// 默认时间表：周一到周五可用，周末不可用，状态为 not_submitted
	assert.Equal(t, int64(42), availability.StaffID)
	assert.Equal(t, weekStart, availability.WeekStartDate)
	assert.Equal(t, weekStart.AddDate(0, 0, 6), availability.WeekEndDate)
	assert.True(t, availability.Monday)
	assert.True(t, availability.Tuesday)
	assert.True(t, availability.Wednesday)
	assert.True(t, availability.Thursday)
	assert.True(t, availability.Friday)
	assert.False(t, availability.Saturday)
	assert.False(t, availability.Sunday)
	assert.Equal(t, AvailabilityNotSubmitted, availability.Status)
	assert.Equal(t, 5, availability.AvailableDaysCount())
}

func TestAvailableOn(t *testing.T) {
	availability := DefaultWeeklyAvailability(1, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	availability.Wednesday = false
	availability.Sunday = true

	assert.True(t, availability.AvailableOn(time.Monday))
	assert.False(t, availability.AvailableOn(time.Wednesday))
	assert.False(t, availability.AvailableOn(time.Saturday))
	assert.True(t, availability.AvailableOn(time.Sunday))
}
