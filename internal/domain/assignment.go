package domain

import "time"

// EligibleStaff 是派单候选人视图，由员工信息、本周时间表和实时状态按需拼装，不落库
type EligibleStaff struct {
	StaffID              int64         `json:"staffID"`
	FullName             string        `json:"fullName"`
	Departments          []string      `json:"departments"`
	CurrentStatus        StaffStatus   `json:"currentStatus"`
	WorkloadLevel        WorkloadLevel `json:"workloadLevel"`
	ActiveTaskCount      int           `json:"activeTaskCount"`
	IsScheduledOnDuty    bool          `json:"isScheduledOnDuty"`
	IsCurrentlyAvailable bool          `json:"isCurrentlyAvailable"`
	AutoAssignEligible   bool          `json:"autoAssignEligible"`
	CurrentLocation      *string       `json:"currentLocation"`
	LastActivityAt       *time.Time    `json:"lastActivityAt"`
}

// AssignmentResult 是一次智能派单的结果。
// 无论派单成败，调用方都会得到一个结构完整的结果，而不是错误。
type AssignmentResult struct {
	AssignedStaffID      *int64           `json:"assignedStaffID"`
	AssignmentReason     string           `json:"assignmentReason"`
	EligibleStaffCount   int              `json:"eligibleStaffCount"`
	AlternativeStaff     []*EligibleStaff `json:"alternativeStaff"`
	AssignmentSuccessful bool             `json:"assignmentSuccessful"`
}
