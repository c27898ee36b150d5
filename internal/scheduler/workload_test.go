package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func TestCalcWorkloadLevel(t *testing.T) {
	cases := []struct {
		count    int
		expected domain.WorkloadLevel
	}{
		{0, domain.WorkloadLow},
		{1, domain.WorkloadMedium},
		{2, domain.WorkloadMedium},
		{3, domain.WorkloadHigh},
		{4, domain.WorkloadHigh},
		{5, domain.WorkloadOverloaded},
		{12, domain.WorkloadOverloaded},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, CalcWorkloadLevel(c.count), "active_task_count=%d", c.count)
	}
}

func TestCalcAutoAssignEligible(t *testing.T) {
	// 不在岗时无论状态和负载如何都不允许自动派单
	assert.False(t, CalcAutoAssignEligible(false, true, domain.WorkloadLow))
	assert.False(t, CalcAutoAssignEligible(false, false, domain.WorkloadOverloaded))

	// 在岗但当前不空闲
	assert.False(t, CalcAutoAssignEligible(true, false, domain.WorkloadLow))

	// 在岗且空闲但过载
	assert.False(t, CalcAutoAssignEligible(true, true, domain.WorkloadOverloaded))

	assert.True(t, CalcAutoAssignEligible(true, true, domain.WorkloadLow))
	assert.True(t, CalcAutoAssignEligible(true, true, domain.WorkloadHigh))
}

func TestWorkloadLevelRank(t *testing.T) {
	assert.Less(t, domain.WorkloadLow.Rank(), domain.WorkloadMedium.Rank())
	assert.Less(t, domain.WorkloadMedium.Rank(), domain.WorkloadHigh.Rank())
	assert.Less(t, domain.WorkloadHigh.Rank(), domain.WorkloadOverloaded.Rank())
}
