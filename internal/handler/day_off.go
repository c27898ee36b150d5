package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"github.com/unibase-dev/facility-manager/backend/internal/scheduler"
)

func (h *Handler) SubmitDayOffRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequestDate string  `json:"requestDate" validate:"required,datetime=2006-01-02"`
		Reason      string  `json:"reason" validate:"required"`
		Description *string `json:"description"`
		RequestType string  `json:"requestType" validate:"omitempty,oneof=day_off sick_leave vacation emergency"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	requestDate, err := time.Parse("2006-01-02", req.RequestDate)
	if err != nil {
		h.errorResponse(w, r, "请假日期格式无效，应为 YYYY-MM-DD")
		return
	}

	requestType := domain.DayOffTypeDayOff
	if req.RequestType != "" {
		requestType = domain.DayOffType(req.RequestType)
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	now := time.Now()

	// 按年递增的业务编号，计数器不可用时退化为时间戳编号，提交本身不失败
	var formattedID string
	seq, err := h.repository.NextDayOffSequence(now.Year())
	if err != nil {
		slog.Warn("请假申请编号计数器不可用，使用时间戳编号", "error", err)
		formattedID = domain.FallbackDayOffRequestID(now)
	} else {
		formattedID = domain.FormatDayOffRequestID(now.Year(), seq)
	}

	// 请假当天有高优先级任务只做标记提示管理员，不阻止提交
	affectsCritical, err := h.repository.HasCriticalTasksOn(myInfo.ID, requestDate)
	if err != nil {
		slog.Warn("检查请假日期的关键任务失败，默认标记为不受影响", "staffID", myInfo.ID, "error", err)
		affectsCritical = false
	}

	dayOffRequest := &domain.DayOffRequest{
		FormattedID:          formattedID,
		StaffID:              myInfo.ID,
		RequestDate:          requestDate,
		Reason:               req.Reason,
		Description:          req.Description,
		RequestType:          requestType,
		Status:               domain.DayOffPending,
		RequestedAt:          now,
		AffectsCriticalTasks: affectsCritical,
	}

	if err := h.repository.CreateDayOffRequest(dayOffRequest); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交请假申请成功", dayOffRequest)
}

type dayOffRequestView struct {
	*domain.DayOffRequest
	StaffName   string   `json:"staffName"`
	Departments []string `json:"departments"`
}

func (h *Handler) GetDayOffRequests(w http.ResponseWriter, r *http.Request) {
	staffIDFilter := sql.NullInt64{}
	statusFilter := sql.NullString{}

	role := domain.Role(r.Context().Value(RoleCtxKey).(string))
	if role == domain.RoleAdmin {
		if staffIDParam := r.URL.Query().Get("staffID"); staffIDParam != "" {
			staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
			if err != nil {
				h.errorResponse(w, r, "员工ID无效")
				return
			}
			staffIDFilter = sql.NullInt64{Int64: staffID, Valid: true}
		}
	} else {
		// 员工只能看到自己的申请
		myID, err := h.currentUserID(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		staffIDFilter = sql.NullInt64{Int64: myID, Valid: true}
	}

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		switch domain.DayOffStatus(statusParam) {
		case domain.DayOffPending, domain.DayOffApproved, domain.DayOffRejected, domain.DayOffCancelled:
			statusFilter = sql.NullString{String: statusParam, Valid: true}
		default:
			h.errorResponse(w, r, "申请状态无效")
			return
		}
	}

	requests, err := h.repository.GetDayOffRequests(staffIDFilter, statusFilter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 补上员工姓名和部门，方便管理端展示
	users, err := h.repository.GetAllUsers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	usersByID := make(map[int64]*domain.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	views := make([]*dayOffRequestView, 0, len(requests))
	for _, request := range requests {
		view := &dayOffRequestView{DayOffRequest: request}
		if u, exists := usersByID[request.StaffID]; exists {
			view.StaffName = u.FullName
			view.Departments = u.Departments
		}
		views = append(views, view)
	}

	h.successResponse(w, r, "获取请假申请列表成功", views)
}

func (h *Handler) ApproveDayOffRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminNotes *string `json:"adminNotes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	adminID, err := h.currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dayOffRequest := r.Context().Value(DayOffRequestCtx).(*domain.DayOffRequest)

	if err := scheduler.ApproveRequest(dayOffRequest, adminID, req.AdminNotes, time.Now()); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateDayOffDecision(dayOffRequest); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该申请刚刚被其他人处理，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyDayOffDecision(dayOffRequest)

	h.successResponse(w, r, "批准请假申请成功", dayOffRequest)
}

func (h *Handler) RejectDayOffRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RejectionReason string `json:"rejectionReason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	adminID, err := h.currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dayOffRequest := r.Context().Value(DayOffRequestCtx).(*domain.DayOffRequest)

	if err := scheduler.RejectRequest(dayOffRequest, adminID, req.RejectionReason, time.Now()); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateDayOffDecision(dayOffRequest); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该申请刚刚被其他人处理，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyDayOffDecision(dayOffRequest)

	h.successResponse(w, r, "驳回请假申请成功", dayOffRequest)
}

func (h *Handler) CancelDayOffRequest(w http.ResponseWriter, r *http.Request) {
	staffID, err := h.currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	dayOffRequest := r.Context().Value(DayOffRequestCtx).(*domain.DayOffRequest)

	if err := scheduler.CancelRequest(dayOffRequest, staffID, time.Now()); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdateDayOffDecision(dayOffRequest); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "该申请刚刚被其他人处理，请刷新后重试")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "取消请假申请成功", dayOffRequest)
}

func (h *Handler) BulkApproveDayOffRequests(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequestIDs []string `json:"requestIDs" validate:"required,min=1"`
		AdminNotes *string  `json:"adminNotes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.bulkDecideDayOffRequests(w, r, req.RequestIDs, scheduler.DecisionApprove, req.AdminNotes, "")
}

func (h *Handler) BulkRejectDayOffRequests(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequestIDs      []string `json:"requestIDs" validate:"required,min=1"`
		RejectionReason string   `json:"rejectionReason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	h.bulkDecideDayOffRequests(w, r, req.RequestIDs, scheduler.DecisionReject, nil, req.RejectionReason)
}

// bulkDecideDayOffRequests 对一批申请逐条审批并落库。
// 单条失败（编号不存在、已处理、落库冲突）只计入错误列表，不影响其余申请，
// 部分成功是这个接口的正常返回。
func (h *Handler) bulkDecideDayOffRequests(
	w http.ResponseWriter,
	r *http.Request,
	requestIDs []string,
	decision scheduler.Decision,
	adminNotes *string,
	rejectionReason string,
) {
	adminID, err := h.currentUserID(r)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	resolved := make(map[string]*domain.DayOffRequest, len(requestIDs))
	for _, requestID := range requestIDs {
		request, err := h.repository.GetDayOffRequestByFormattedID(requestID)
		if err != nil {
			// 查不到的编号交给 BulkDecide 统一计入错误
			if !errors.Is(err, sql.ErrNoRows) {
				slog.Warn("批量审批时查询请假申请失败", "formattedID", requestID, "error", err)
			}
			continue
		}
		resolved[requestID] = request
	}

	outcome := scheduler.BulkDecide(requestIDs, resolved, decision, adminID, adminNotes, rejectionReason, time.Now())

	decidedCount := 0
	for _, request := range outcome.Decided {
		if err := h.repository.UpdateDayOffDecision(request); err != nil {
			outcome.FailedCount++
			outcome.Errors = append(outcome.Errors, "申请 "+request.FormattedID+"：保存审批结果失败")
			continue
		}
		decidedCount++
		h.notifyDayOffDecision(request)
	}

	data := map[string]any{
		"failedCount": outcome.FailedCount,
		"errors":      outcome.Errors,
	}
	if decision == scheduler.DecisionApprove {
		data["approvedCount"] = decidedCount
	} else {
		data["rejectedCount"] = decidedCount
	}

	h.successResponse(w, r, "批量审批完成", data)
}
