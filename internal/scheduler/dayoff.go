package scheduler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

var (
	ErrRequestDecided    = errors.New("该请假申请已处理，不允许再次操作")
	ErrEmptyRejectReason = errors.New("驳回请假申请必须填写驳回原因")
	ErrNotRequestOwner   = errors.New("只能取消自己提交的请假申请")
)

// ApproveRequest 将待审批的请假申请置为已批准，终态之后不允许再次审批
func ApproveRequest(req *domain.DayOffRequest, adminID int64, adminNotes *string, now time.Time) error {
	if req.IsTerminal() {
		return ErrRequestDecided
	}

	req.Status = domain.DayOffApproved
	req.ApprovedBy = &adminID
	req.ApprovedAt = &now
	req.AdminNotes = adminNotes

	return nil
}

// RejectRequest 将待审批的请假申请置为已驳回，驳回原因不能为空
func RejectRequest(req *domain.DayOffRequest, adminID int64, rejectionReason string, now time.Time) error {
	if strings.TrimSpace(rejectionReason) == "" {
		return ErrEmptyRejectReason
	}
	if req.IsTerminal() {
		return ErrRequestDecided
	}

	req.Status = domain.DayOffRejected
	req.ApprovedBy = &adminID
	req.ApprovedAt = &now
	req.RejectionReason = &rejectionReason

	return nil
}

// CancelRequest 员工取消自己的待审批申请
func CancelRequest(req *domain.DayOffRequest, staffID int64, now time.Time) error {
	if req.StaffID != staffID {
		return ErrNotRequestOwner
	}
	if req.IsTerminal() {
		return ErrRequestDecided
	}

	req.Status = domain.DayOffCancelled

	return nil
}

type Decision string

const (
	DecisionApprove Decision = "approved"
	DecisionReject  Decision = "rejected"
)

// BulkOutcome 是批量审批的结果汇总。
// 单条失败只计入 Errors，不会中断其余申请的处理，部分成功是这里的正常契约。
type BulkOutcome struct {
	Decided     []*domain.DayOffRequest
	DecidedIDs  []string
	FailedCount int
	Errors      []string
}

// BulkDecide 按业务编号批量审批请假申请。
// requestIDs 里的每个编号独立解析：resolved 中不存在的编号
// 记一条错误后继续处理后面的编号。通过校验的申请在内存中完成状态转移，
// 由调用方负责落库和通知。
func BulkDecide(
	requestIDs []string,
	resolved map[string]*domain.DayOffRequest,
	decision Decision,
	adminID int64,
	adminNotes *string,
	rejectionReason string,
	now time.Time,
) *BulkOutcome {
	outcome := &BulkOutcome{
		Decided:    make([]*domain.DayOffRequest, 0, len(requestIDs)),
		DecidedIDs: make([]string, 0, len(requestIDs)),
		Errors:     make([]string, 0),
	}

	for _, requestID := range requestIDs {
		req, exists := resolved[requestID]
		if !exists || req == nil {
			outcome.FailedCount++
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("申请 %s：未找到对应记录", requestID))
			continue
		}

		var err error
		switch decision {
		case DecisionApprove:
			err = ApproveRequest(req, adminID, adminNotes, now)
		case DecisionReject:
			err = RejectRequest(req, adminID, rejectionReason, now)
		default:
			err = fmt.Errorf("不支持的审批操作: %s", decision)
		}

		if err != nil {
			outcome.FailedCount++
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("申请 %s：%s", requestID, err.Error()))
			continue
		}

		outcome.Decided = append(outcome.Decided, req)
		outcome.DecidedIDs = append(outcome.DecidedIDs, requestID)
	}

	return outcome
}
