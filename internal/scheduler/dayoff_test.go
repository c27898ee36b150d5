package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func pendingRequest(formattedID string, staffID int64) *domain.DayOffRequest {
	return &domain.DayOffRequest{
		FormattedID: formattedID,
		StaffID:     staffID,
		RequestDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Reason:      "家中有事",
		RequestType: domain.DayOffTypeDayOff,
		Status:      domain.DayOffPending,
	}
}

func TestApproveRequest(t *testing.T) {
	req := pendingRequest("DOR-2024-00001", 7)
	now := time.Now()
	notes := "已安排替班"

	require.NoError(t, ApproveRequest(req, 1, &notes, now))
	assert.Equal(t, domain.DayOffApproved, req.Status)
	require.NotNil(t, req.ApprovedBy)
	assert.Equal(t, int64(1), *req.ApprovedBy)
	require.NotNil(t, req.ApprovedAt)
	assert.Equal(t, now, *req.ApprovedAt)
	require.NotNil(t, req.AdminNotes)
	assert.Equal(t, "已安排替班", *req.AdminNotes)
}

func TestRejectRequestRequiresReason(t *testing.T) {
	req := pendingRequest("DOR-2024-00001", 7)

	assert.ErrorIs(t, RejectRequest(req, 1, "  ", time.Now()), ErrEmptyRejectReason)
	assert.Equal(t, domain.DayOffPending, req.Status)

	require.NoError(t, RejectRequest(req, 1, "当天人手不足", time.Now()))
	assert.Equal(t, domain.DayOffRejected, req.Status)
	require.NotNil(t, req.RejectionReason)
	assert.Equal(t, "当天人手不足", *req.RejectionReason)
}

func TestDecideTerminalRequestRejected(t *testing.T) {
	// 终态之后任何再次审批都被确定性拒绝
	for _, status := range []domain.DayOffStatus{domain.DayOffApproved, domain.DayOffRejected, domain.DayOffCancelled} {
		req := pendingRequest("DOR-2024-00001", 7)
		req.Status = status

		assert.ErrorIs(t, ApproveRequest(req, 1, nil, time.Now()), ErrRequestDecided)
		assert.ErrorIs(t, RejectRequest(req, 1, "重复审批", time.Now()), ErrRequestDecided)
		assert.Equal(t, status, req.Status)
	}
}

func TestCancelRequest(t *testing.T) {
	req := pendingRequest("DOR-2024-00001", 7)

	// 不能取消别人的申请
	assert.ErrorIs(t, CancelRequest(req, 8, time.Now()), ErrNotRequestOwner)

	require.NoError(t, CancelRequest(req, 7, time.Now()))
	assert.Equal(t, domain.DayOffCancelled, req.Status)

	// 已取消的申请不能再次取消
	assert.ErrorIs(t, CancelRequest(req, 7, time.Now()), ErrRequestDecided)
}

func TestBulkDecideMixedBatch(t *testing.T) {
	valid := pendingRequest("DOR-2024-00001", 7)
	resolved := map[string]*domain.DayOffRequest{"DOR-2024-00001": valid}

	outcome := BulkDecide(
		[]string{"DOR-2024-00001", "DOR-2024-99999"},
		resolved,
		DecisionApprove,
		1,
		nil,
		"",
		time.Now(),
	)

	// 有效编号全部成功，无效编号逐条记错误，互不影响
	assert.Len(t, outcome.Decided, 1)
	assert.Equal(t, []string{"DOR-2024-00001"}, outcome.DecidedIDs)
	assert.Equal(t, 1, outcome.FailedCount)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "DOR-2024-99999")
	assert.Equal(t, domain.DayOffApproved, valid.Status)
}

func TestBulkDecideRejectTerminalCountedAsFailed(t *testing.T) {
	decided := pendingRequest("DOR-2024-00002", 7)
	decided.Status = domain.DayOffApproved

	outcome := BulkDecide(
		[]string{"DOR-2024-00002"},
		map[string]*domain.DayOffRequest{"DOR-2024-00002": decided},
		DecisionReject,
		1,
		nil,
		"当天人手不足",
		time.Now(),
	)

	assert.Empty(t, outcome.Decided)
	assert.Equal(t, 1, outcome.FailedCount)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "DOR-2024-00002")
}
