package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func TestBuildOverview(t *testing.T) {
	// 2024-06-08 是周六
	saturday := time.Date(2024, 6, 8, 10, 0, 0, 0, time.UTC)
	weekStart := domain.WeekStartOf(saturday)

	weekendWorker := domain.DefaultWeeklyAvailability(1, weekStart)
	weekendWorker.Saturday = true
	weekendWorker.Status = domain.AvailabilitySubmitted

	staff := []*domain.User{
		{ID: 1, Role: domain.RoleStaff, IsActive: true, Departments: []string{"水电"}},
		{ID: 2, Role: domain.RoleStaff, IsActive: true, Departments: []string{"水电", "暖通"}},
		{ID: 3, Role: domain.RoleStaff, IsActive: true},
	}
	availabilities := map[int64]*domain.StaffAvailability{1: weekendWorker}
	statuses := map[int64]*domain.StaffRealTimeStatus{
		2: {StaffID: 2, CurrentStatus: domain.StaffStatusOnBreak},
	}

	overview := BuildOverview(staff, availabilities, statuses, 4, saturday)

	assert.Equal(t, 3, overview.TotalStaff)
	// 周六只有提交了周末可用的员工算在岗，其余按默认时间表周末不可用
	assert.Equal(t, 1, overview.AvailableThisWeek)
	assert.Equal(t, 2, overview.UnavailableCount)
	assert.Equal(t, 4, overview.PendingDayOffRequests)

	assert.Equal(t, 2, overview.StaffByStatus["available"])
	assert.Equal(t, 1, overview.StaffByStatus["on_break"])

	assert.Equal(t, 2, overview.StaffByDepartment["水电"])
	assert.Equal(t, 1, overview.StaffByDepartment["暖通"])
	assert.Equal(t, 1, overview.StaffByDepartment["未分配"])
}
