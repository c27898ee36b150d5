package scheduler

import (
	"sort"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

// FilterEligible 从在职员工中筛出当前可以被派单的候选人并排序。
//
// 筛选规则：
//  1. 员工所属部门与所需部门有交集（任意一个命中即可，不要求全部命中）；
//  2. 实时状态的 auto_assign_eligible 为 true（没有状态记录时使用默认状态）；
//  3. 紧急优先级下额外排除 high / overloaded 负载的员工。
//
// 排序规则即派单的平票策略：负载等级升序，进行中任务数升序，最近活跃时间降序。
//
// location 参数目前不参与过滤，预留给将来的地理围栏，保持签名稳定。
// 没有任何候选人时返回空切片而不是错误。
func FilterEligible(
	staff []*domain.User,
	statuses map[int64]*domain.StaffRealTimeStatus,
	requiredDepartments []string,
	location *string,
	priority domain.TaskPriority,
) []*domain.EligibleStaff {
	_ = location

	eligible := make([]*domain.EligibleStaff, 0)

	for _, u := range staff {
		if !u.HasAnyDepartment(requiredDepartments) {
			continue
		}

		status, exists := statuses[u.ID]
		if !exists {
			status = domain.DefaultRealTimeStatus(u.ID)
		}

		if !status.AutoAssignEligible {
			continue
		}

		if priority == domain.PriorityCritical &&
			(status.WorkloadLevel == domain.WorkloadHigh || status.WorkloadLevel == domain.WorkloadOverloaded) {
			continue
		}

		var lastActivityAt *time.Time
		if !status.LastActivityAt.IsZero() {
			t := status.LastActivityAt
			lastActivityAt = &t
		}

		eligible = append(eligible, &domain.EligibleStaff{
			StaffID:              u.ID,
			FullName:             u.FullName,
			Departments:          u.Departments,
			CurrentStatus:        status.CurrentStatus,
			WorkloadLevel:        status.WorkloadLevel,
			ActiveTaskCount:      status.ActiveTaskCount,
			IsScheduledOnDuty:    status.IsScheduledOnDuty,
			IsCurrentlyAvailable: status.IsCurrentlyAvailable,
			AutoAssignEligible:   status.AutoAssignEligible,
			CurrentLocation:      status.CurrentLocation,
			LastActivityAt:       lastActivityAt,
		})
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].WorkloadLevel.Rank() != eligible[j].WorkloadLevel.Rank() {
			return eligible[i].WorkloadLevel.Rank() < eligible[j].WorkloadLevel.Rank()
		}
		if eligible[i].ActiveTaskCount != eligible[j].ActiveTaskCount {
			return eligible[i].ActiveTaskCount < eligible[j].ActiveTaskCount
		}
		ti, tj := int64(0), int64(0)
		if eligible[i].LastActivityAt != nil {
			ti = eligible[i].LastActivityAt.UnixNano()
		}
		if eligible[j].LastActivityAt != nil {
			tj = eligible[j].LastActivityAt.UnixNano()
		}
		return ti > tj
	})

	return eligible
}
