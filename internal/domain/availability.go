package domain

import "time"

type AvailabilityStatus string

const (
	AvailabilityActive       AvailabilityStatus = "active"
	AvailabilityInactive     AvailabilityStatus = "inactive"
	AvailabilitySubmitted    AvailabilityStatus = "submitted"
	AvailabilityNotSubmitted AvailabilityStatus = "not_submitted"
)

// StaffAvailability 表示某个员工某一周的可用时间表，以 (staff_id, week_start_date) 为唯一键
type StaffAvailability struct {
	ID            int64     `json:"id"`
	StaffID       int64     `json:"staffID"`
	WeekStartDate time.Time `json:"weekStartDate"`
	WeekEndDate   time.Time `json:"weekEndDate"`

	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`

	// 各天的具体时段（可选，形如 "09:00-18:00"，暂时只做存储）
	MondayHours    *string `json:"mondayHours"`
	TuesdayHours   *string `json:"tuesdayHours"`
	WednesdayHours *string `json:"wednesdayHours"`
	ThursdayHours  *string `json:"thursdayHours"`
	FridayHours    *string `json:"fridayHours"`
	SaturdayHours  *string `json:"saturdayHours"`
	SundayHours    *string `json:"sundayHours"`

	Status      AvailabilityStatus `json:"status"`
	SubmittedAt *time.Time         `json:"submittedAt"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	Version     int32              `json:"-"`
}

// WeekStartOf 返回 t 所在周的周一（零点，保留 t 的时区）
func WeekStartOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // 周一为一周的第一天
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// DefaultWeeklyAvailability 在员工没有提交过某周的时间表时合成默认记录：
// 周一到周五可用，周末不可用，状态为 not_submitted。
// 调用方不应把"没有记录"当作错误，而应当使用这里的默认时间表。
func DefaultWeeklyAvailability(staffID int64, weekStart time.Time) *StaffAvailability {
	return &StaffAvailability{
		StaffID:       staffID,
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 6),
		Monday:        true,
		Tuesday:       true,
		Wednesday:     true,
		Thursday:      true,
		Friday:        true,
		Saturday:      false,
		Sunday:        false,
		Status:        AvailabilityNotSubmitted,
	}
}

// AvailableOn 返回该周时间表在指定星期几是否可用
func (a *StaffAvailability) AvailableOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return a.Monday
	case time.Tuesday:
		return a.Tuesday
	case time.Wednesday:
		return a.Wednesday
	case time.Thursday:
		return a.Thursday
	case time.Friday:
		return a.Friday
	case time.Saturday:
		return a.Saturday
	default:
		return a.Sunday
	}
}

// AvailableDaysCount 返回该周可用的天数
func (a *StaffAvailability) AvailableDaysCount() int {
	count := 0
	for _, flag := range []bool{a.Monday, a.Tuesday, a.Wednesday, a.Thursday, a.Friday, a.Saturday, a.Sunday} {
		if flag {
			count++
		}
	}
	return count
}
