package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func newStaff(id int64, departments ...string) *domain.User {
	return &domain.User{
		ID:          id,
		FullName:    "测试员工",
		Role:        domain.RoleStaff,
		Departments: departments,
		IsActive:    true,
	}
}

func newStatus(staffID int64, count int, lastActivity time.Time) *domain.StaffRealTimeStatus {
	workload := CalcWorkloadLevel(count)
	return &domain.StaffRealTimeStatus{
		StaffID:              staffID,
		CurrentStatus:        domain.StaffStatusAvailable,
		WorkloadLevel:        workload,
		ActiveTaskCount:      count,
		IsScheduledOnDuty:    true,
		IsCurrentlyAvailable: true,
		AutoAssignEligible:   CalcAutoAssignEligible(true, true, workload),
		LastActivityAt:       lastActivity,
	}
}

func TestFilterEligibleDepartmentIntersection(t *testing.T) {
	staff := []*domain.User{
		newStaff(1, "水电", "暖通"),
		newStaff(2, "保洁"),
		newStaff(3),
	}
	statuses := map[int64]*domain.StaffRealTimeStatus{}

	// 部门匹配是"或"语义：任意一个所属部门命中任意一个所需部门即可
	eligible := FilterEligible(staff, statuses, []string{"暖通", "木工"}, nil, domain.PriorityMedium)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(1), eligible[0].StaffID)
}

func TestFilterEligibleDropsIneligibleStatus(t *testing.T) {
	staff := []*domain.User{newStaff(1, "水电"), newStaff(2, "水电")}

	busy := newStatus(1, 1, time.Now())
	busy.CurrentStatus = domain.StaffStatusBusy
	busy.IsCurrentlyAvailable = false
	busy.AutoAssignEligible = false

	statuses := map[int64]*domain.StaffRealTimeStatus{1: busy}

	eligible := FilterEligible(staff, statuses, []string{"水电"}, nil, domain.PriorityMedium)
	require.Len(t, eligible, 1)
	assert.Equal(t, int64(2), eligible[0].StaffID)

	// 返回的候选人必须全部是可自动派单的
	for _, candidate := range eligible {
		assert.True(t, candidate.AutoAssignEligible)
	}
}

func TestFilterEligibleCriticalPriorityStricter(t *testing.T) {
	staff := []*domain.User{newStaff(1, "水电"), newStaff(2, "水电"), newStaff(3, "水电")}
	statuses := map[int64]*domain.StaffRealTimeStatus{
		1: newStatus(1, 0, time.Now()),
		2: newStatus(2, 3, time.Now()), // high，普通优先级可用
		3: newStatus(3, 1, time.Now()),
	}

	normal := FilterEligible(staff, statuses, []string{"水电"}, nil, domain.PriorityMedium)
	assert.Len(t, normal, 3)

	// 紧急优先级下 high / overloaded 负载的员工被排除
	critical := FilterEligible(staff, statuses, []string{"水电"}, nil, domain.PriorityCritical)
	require.Len(t, critical, 2)
	for _, candidate := range critical {
		assert.NotEqual(t, domain.WorkloadHigh, candidate.WorkloadLevel)
		assert.NotEqual(t, domain.WorkloadOverloaded, candidate.WorkloadLevel)
	}
}

func TestFilterEligibleOrdering(t *testing.T) {
	now := time.Now()
	staff := []*domain.User{newStaff(1, "水电"), newStaff(2, "水电"), newStaff(3, "水电"), newStaff(4, "水电")}
	statuses := map[int64]*domain.StaffRealTimeStatus{
		1: newStatus(1, 1, now),                    // medium
		2: newStatus(2, 0, now),                    // low, 0 个任务
		3: newStatus(3, 3, now),                    // high
		4: newStatus(4, 0, now.Add(-2*time.Hour)), // low, 0 个任务，但活跃时间更早
	}

	eligible := FilterEligible(staff, statuses, []string{"水电"}, nil, domain.PriorityMedium)
	require.Len(t, eligible, 4)

	// 负载升序，同负载按任务数升序，再按最近活跃时间降序
	assert.Equal(t, int64(2), eligible[0].StaffID)
	assert.Equal(t, int64(4), eligible[1].StaffID)
	assert.Equal(t, int64(1), eligible[2].StaffID)
	assert.Equal(t, int64(3), eligible[3].StaffID)
}

func TestFilterEligibleDefaultStatusWhenMissing(t *testing.T) {
	staff := []*domain.User{newStaff(1, "水电")}

	// 没有状态记录的员工按默认状态参与筛选（空闲、在岗、可派单）
	eligible := FilterEligible(staff, map[int64]*domain.StaffRealTimeStatus{}, []string{"水电"}, nil, domain.PriorityMedium)
	require.Len(t, eligible, 1)
	assert.Equal(t, domain.WorkloadLow, eligible[0].WorkloadLevel)
	assert.Zero(t, eligible[0].ActiveTaskCount)
	assert.Nil(t, eligible[0].LastActivityAt)
}

func TestFilterEligibleEmptyResultIsNotError(t *testing.T) {
	eligible := FilterEligible(nil, nil, []string{"水电"}, nil, domain.PriorityMedium)
	assert.NotNil(t, eligible)
	assert.Empty(t, eligible)
}
