package scheduler

import "github.com/unibase-dev/facility-manager/backend/internal/domain"

// CalcWorkloadLevel 根据进行中的任务数量计算负载等级。
// 阈值固定：0 -> low，1-2 -> medium，3-4 -> high，>=5 -> overloaded。
// 负载等级只能由这里派生，不允许调用方直接设置，
// 否则会和 active_task_count 产生不一致。
func CalcWorkloadLevel(activeTaskCount int) domain.WorkloadLevel {
	switch {
	case activeTaskCount == 0:
		return domain.WorkloadLow
	case activeTaskCount <= 2:
		return domain.WorkloadMedium
	case activeTaskCount <= 4:
		return domain.WorkloadHigh
	default:
		return domain.WorkloadOverloaded
	}
}

// CalcAutoAssignEligible 计算员工是否可以被自动派单：
// 必须按排班在岗、当前状态为空闲、且负载没有过载。
func CalcAutoAssignEligible(isScheduledOnDuty bool, isCurrentlyAvailable bool, workload domain.WorkloadLevel) bool {
	return isScheduledOnDuty && isCurrentlyAvailable && workload != domain.WorkloadOverloaded
}
