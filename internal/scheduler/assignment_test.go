package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func candidate(staffID int64, workload domain.WorkloadLevel, count int) *domain.EligibleStaff {
	return &domain.EligibleStaff{
		StaffID:            staffID,
		WorkloadLevel:      workload,
		ActiveTaskCount:    count,
		AutoAssignEligible: true,
	}
}

func TestSelectAssigneeEmpty(t *testing.T) {
	selected, reason := SelectAssignee(nil, domain.PriorityMedium, nil)
	assert.Nil(t, selected)
	assert.Equal(t, ReasonNoEligibleStaff, reason)
}

func TestSelectAssigneePreferredOverride(t *testing.T) {
	eligible := []*domain.EligibleStaff{
		candidate(1, domain.WorkloadLow, 0),
		candidate(2, domain.WorkloadMedium, 2),
	}

	// 指定的员工在候选人列表中时优先于排序结果
	preferred := int64(2)
	selected, reason := SelectAssignee(eligible, domain.PriorityMedium, &preferred)
	require.NotNil(t, selected)
	assert.Equal(t, int64(2), selected.StaffID)
	assert.Equal(t, ReasonPreferredStaff, reason)
}

func TestSelectAssigneePreferredNotEligibleIgnored(t *testing.T) {
	eligible := []*domain.EligibleStaff{candidate(1, domain.WorkloadLow, 0)}

	// 指定的员工不在候选人列表中时静默忽略，不会强制派给不合格的人
	preferred := int64(99)
	selected, reason := SelectAssignee(eligible, domain.PriorityMedium, &preferred)
	require.NotNil(t, selected)
	assert.Equal(t, int64(1), selected.StaffID)
	assert.Equal(t, ReasonBalanced, reason)
}

func TestSelectAssigneeCriticalLowestTaskCount(t *testing.T) {
	eligible := []*domain.EligibleStaff{
		candidate(1, domain.WorkloadLow, 1),
		candidate(2, domain.WorkloadLow, 0),
		candidate(3, domain.WorkloadMedium, 2),
	}

	selected, reason := SelectAssignee(eligible, domain.PriorityCritical, nil)
	require.NotNil(t, selected)
	assert.Equal(t, int64(2), selected.StaffID)
	assert.Equal(t, ReasonLowestWorkload, reason)
}

func TestSelectAssigneeBalancedTakesFirst(t *testing.T) {
	// 候选人列表已按平票策略排序，普通优先级直接取第一个：
	// 同为 low 负载时任务数更少的 S2 排在前面
	eligible := []*domain.EligibleStaff{
		candidate(2, domain.WorkloadLow, 0),
		candidate(1, domain.WorkloadLow, 1),
	}

	selected, reason := SelectAssignee(eligible, domain.PriorityMedium, nil)
	require.NotNil(t, selected)
	assert.Equal(t, int64(2), selected.StaffID)
	assert.Equal(t, ReasonBalanced, reason)
}

func TestAlternativesExcludesSelection(t *testing.T) {
	eligible := []*domain.EligibleStaff{
		candidate(1, domain.WorkloadLow, 0),
		candidate(2, domain.WorkloadLow, 1),
		candidate(3, domain.WorkloadMedium, 2),
	}

	alternatives := Alternatives(eligible, eligible[0], 5)
	require.Len(t, alternatives, 2)
	assert.Equal(t, int64(2), alternatives[0].StaffID)
	assert.Equal(t, int64(3), alternatives[1].StaffID)
}

func TestAlternativesLimit(t *testing.T) {
	eligible := make([]*domain.EligibleStaff, 0, 8)
	for i := int64(1); i <= 8; i++ {
		eligible = append(eligible, candidate(i, domain.WorkloadLow, 0))
	}

	alternatives := Alternatives(eligible, eligible[0], 5)
	assert.Len(t, alternatives, 5)
}
