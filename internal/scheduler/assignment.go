package scheduler

import "github.com/unibase-dev/facility-manager/backend/internal/domain"

const (
	ReasonNoEligibleStaff = "No eligible staff available"
	ReasonPreferredStaff  = "Assigned to preferred staff member"
	ReasonLowestWorkload  = "Assigned to staff with lowest workload (critical priority)"
	ReasonBalanced        = "Assigned using balanced workload distribution"
)

// SelectAssignee 在已排序的候选人列表中选出一个人，返回人选和派单理由。
//
// 选择规则：
//  1. 指定了 preferredStaffID 且对方在候选人列表中时直接选中，
//     这是硬性覆盖；指定的人不合格时静默忽略，绝不强制派给不合格的人；
//  2. 紧急优先级选全局任务数最少的候选人（平票取列表中靠前的）；
//  3. 其余优先级直接取排序后的第一个（候选人列表已按平票策略排好）。
//
// 列表为空时返回 nil。
func SelectAssignee(eligible []*domain.EligibleStaff, priority domain.TaskPriority, preferredStaffID *int64) (*domain.EligibleStaff, string) {
	if len(eligible) == 0 {
		return nil, ReasonNoEligibleStaff
	}

	if preferredStaffID != nil {
		for _, candidate := range eligible {
			if candidate.StaffID == *preferredStaffID {
				return candidate, ReasonPreferredStaff
			}
		}
	}

	if priority == domain.PriorityCritical {
		selected := eligible[0]
		for _, candidate := range eligible[1:] {
			if candidate.ActiveTaskCount < selected.ActiveTaskCount {
				selected = candidate
			}
		}
		return selected, ReasonLowestWorkload
	}

	return eligible[0], ReasonBalanced
}

// Alternatives 返回除人选外最靠前的候选人，用于审计和前端展示，最多 limit 个
func Alternatives(eligible []*domain.EligibleStaff, selected *domain.EligibleStaff, limit int) []*domain.EligibleStaff {
	alternatives := make([]*domain.EligibleStaff, 0, limit)
	for _, candidate := range eligible {
		if len(alternatives) >= limit {
			break
		}
		if selected != nil && candidate.StaffID == selected.StaffID {
			continue
		}
		alternatives = append(alternatives, candidate)
	}
	return alternatives
}
