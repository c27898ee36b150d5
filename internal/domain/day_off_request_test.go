package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDayOffRequestID(t *testing.T) {
	assert.Equal(t, "DOR-2024-00001", FormatDayOffRequestID(2024, 1))
	assert.Equal(t, "DOR-2025-00042", FormatDayOffRequestID(2025, 42))
	assert.Equal(t, "DOR-2024-12345", FormatDayOffRequestID(2024, 12345))
}

func TestFallbackDayOffRequestID(t *testing.T) {
	now := time.Date(2024, 6, 3, 12, 0, 0, 123456000, time.UTC)
	id := FallbackDayOffRequestID(now)

	// 退化编号保持同样的前缀和位数，只是序号来源不同
	assert.Regexp(t, `^DOR-2024-\d{5}$`, id)
}

func TestIsTerminal(t *testing.T) {
	req := &DayOffRequest{Status: DayOffPending}
	assert.False(t, req.IsTerminal())

	for _, status := range []DayOffStatus{DayOffApproved, DayOffRejected, DayOffCancelled} {
		req.Status = status
		assert.True(t, req.IsTerminal())
	}
}
