package scheduler

import (
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

// BuildOverview 汇总后台看板需要的排班总览。
// 纯读侧计算，对缺失数据宽容：没有时间表的员工按默认时间表统计，
// 没有状态记录的员工按默认状态统计。
func BuildOverview(
	staff []*domain.User,
	availabilities map[int64]*domain.StaffAvailability,
	statuses map[int64]*domain.StaffRealTimeStatus,
	pendingDayOffRequests int,
	today time.Time,
) *domain.ScheduleOverview {
	overview := &domain.ScheduleOverview{
		TotalStaff:            len(staff),
		PendingDayOffRequests: pendingDayOffRequests,
		StaffByStatus:         make(map[string]int),
		StaffByDepartment:     make(map[string]int),
	}

	for _, u := range staff {
		availability, exists := availabilities[u.ID]
		if !exists {
			availability = domain.DefaultWeeklyAvailability(u.ID, domain.WeekStartOf(today))
		}

		if availability.AvailableOn(today.Weekday()) {
			overview.AvailableThisWeek++
		} else {
			overview.UnavailableCount++
		}

		status, exists := statuses[u.ID]
		if !exists {
			status = domain.DefaultRealTimeStatus(u.ID)
		}
		overview.StaffByStatus[string(status.CurrentStatus)]++

		if len(u.Departments) == 0 {
			overview.StaffByDepartment["未分配"]++
			continue
		}
		for _, dept := range u.Departments {
			overview.StaffByDepartment[dept]++
		}
	}

	return overview
}
