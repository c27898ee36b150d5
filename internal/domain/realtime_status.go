package domain

import "time"

type StaffStatus string

const (
	StaffStatusAvailable   StaffStatus = "available"
	StaffStatusUnavailable StaffStatus = "unavailable"
	StaffStatusOnBreak     StaffStatus = "on_break"
	StaffStatusBusy        StaffStatus = "busy"
	StaffStatusOffDuty     StaffStatus = "off_duty"
)

type WorkloadLevel string

const (
	WorkloadLow        WorkloadLevel = "low"
	WorkloadMedium     WorkloadLevel = "medium"
	WorkloadHigh       WorkloadLevel = "high"
	WorkloadOverloaded WorkloadLevel = "overloaded"
)

// Rank 返回负载等级的序号，用于排序比较（low < medium < high < overloaded）
func (l WorkloadLevel) Rank() int {
	switch l {
	case WorkloadLow:
		return 0
	case WorkloadMedium:
		return 1
	case WorkloadHigh:
		return 2
	default:
		return 3
	}
}

// StaffRealTimeStatus 表示员工当前的实时状态，每个员工只有一条记录。
// WorkloadLevel、IsScheduledOnDuty、IsCurrentlyAvailable 和 AutoAssignEligible
// 都是派生字段，只能由状态更新和派单回写这两个入口计算，调用方不允许直接设置。
type StaffRealTimeStatus struct {
	StaffID         int64         `json:"staffID"`
	CurrentStatus   StaffStatus   `json:"currentStatus"`
	WorkloadLevel   WorkloadLevel `json:"workloadLevel"`
	ActiveTaskCount int           `json:"activeTaskCount"`
	ActiveTaskIDs   []int64       `json:"activeTaskIDs"`

	CurrentLocation *string `json:"currentLocation"`

	BreakStartTime *time.Time `json:"breakStartTime"`
	DutyStartTime  *time.Time `json:"dutyStartTime"`
	DutyEndTime    *time.Time `json:"dutyEndTime"`

	IsScheduledOnDuty    bool `json:"isScheduledOnDuty"`
	IsCurrentlyAvailable bool `json:"isCurrentlyAvailable"`
	AutoAssignEligible   bool `json:"autoAssignEligible"`

	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
	LastActivityAt  time.Time `json:"lastActivityAt"`
	Version         int32     `json:"-"`
}

// DefaultRealTimeStatus 在员工还没有任何状态记录时合成默认状态：
// 空闲、无任务、按排班在岗、可被自动派单。
func DefaultRealTimeStatus(staffID int64) *StaffRealTimeStatus {
	return &StaffRealTimeStatus{
		StaffID:              staffID,
		CurrentStatus:        StaffStatusAvailable,
		WorkloadLevel:        WorkloadLow,
		ActiveTaskCount:      0,
		ActiveTaskIDs:        []int64{},
		IsScheduledOnDuty:    true,
		IsCurrentlyAvailable: true,
		AutoAssignEligible:   true,
	}
}
