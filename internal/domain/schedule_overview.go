package domain

// ScheduleOverview 是后台看板的排班总览，纯读侧汇总
type ScheduleOverview struct {
	TotalStaff            int            `json:"totalStaff"`
	AvailableThisWeek     int            `json:"availableThisWeek"`
	UnavailableCount      int            `json:"unavailableCount"`
	PendingDayOffRequests int            `json:"pendingDayOffRequests"`
	StaffByStatus         map[string]int `json:"staffByStatus"`
	StaffByDepartment     map[string]int `json:"staffByDepartment"`
}
