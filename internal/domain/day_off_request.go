package domain

import (
	"fmt"
	"time"
)

type DayOffStatus string

const (
	DayOffPending   DayOffStatus = "pending"
	DayOffApproved  DayOffStatus = "approved"
	DayOffRejected  DayOffStatus = "rejected"
	DayOffCancelled DayOffStatus = "cancelled"
)

type DayOffType string

const (
	DayOffTypeDayOff    DayOffType = "day_off"
	DayOffTypeSickLeave DayOffType = "sick_leave"
	DayOffTypeVacation  DayOffType = "vacation"
	DayOffTypeEmergency DayOffType = "emergency"
)

// DayOffRequest 表示一条请假申请。
// 状态机：pending 是初始状态，approved / rejected / cancelled 都是终态，
// 终态之后不允许任何转移（本设计不支持重新打开申请）。
type DayOffRequest struct {
	ID          int64        `json:"id"`
	FormattedID string       `json:"formattedID"`
	StaffID     int64        `json:"staffID"`
	RequestDate time.Time    `json:"requestDate"`
	Reason      string       `json:"reason"`
	Description *string      `json:"description"`
	RequestType DayOffType   `json:"requestType"`
	Status      DayOffStatus `json:"status"`
	RequestedAt time.Time    `json:"requestedAt"`

	ApprovedBy      *int64     `json:"approvedBy"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectionReason *string    `json:"rejectionReason"`
	AdminNotes      *string    `json:"adminNotes"`

	AffectsCriticalTasks bool    `json:"affectsCriticalTasks"`
	ReplacementStaffID   *int64  `json:"replacementStaffID"`
	ImpactAssessment     *string `json:"impactAssessment"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Version   int32     `json:"-"`
}

// IsTerminal 返回该申请是否已经处于终态
func (r *DayOffRequest) IsTerminal() bool {
	return r.Status != DayOffPending
}

// FormatDayOffRequestID 生成形如 DOR-2024-00001 的业务编号，序号按年递增
func FormatDayOffRequestID(year int, seq int64) string {
	return fmt.Sprintf("DOR-%d-%05d", year, seq)
}

// FallbackDayOffRequestID 在计数器不可用时退化为基于时间戳的编号，
// 保证提交操作本身不因编号生成失败而失败
func FallbackDayOffRequestID(now time.Time) string {
	return fmt.Sprintf("DOR-%d-%05d", now.Year(), now.Nanosecond()/1000%100000)
}
