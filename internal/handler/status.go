package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"github.com/unibase-dev/facility-manager/backend/internal/scheduler"
)

func (h *Handler) UpdateRealTimeStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status   string  `json:"status" validate:"required,oneof=available unavailable on_break busy off_duty"`
		Location *string `json:"location"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	now := time.Now()

	// 进行中任务数以任务库为准，负载等级由任务数推导
	activeTaskCount, err := h.repository.CountActiveTasks(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	workload := scheduler.CalcWorkloadLevel(activeTaskCount)

	// 在岗标志来自本周时间表，没提交过按默认时间表算
	availability, err := h.repository.GetAvailability(myInfo.ID, domain.WeekStartOf(now))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			availability = domain.DefaultWeeklyAvailability(myInfo.ID, domain.WeekStartOf(now))
		default:
			h.internalServerError(w, r, err)
			return
		}
	}
	isScheduledOnDuty := availability.AvailableOn(now.Weekday())

	status, err := h.repository.GetRealTimeStatus(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			status = domain.DefaultRealTimeStatus(myInfo.ID)
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	status.CurrentStatus = domain.StaffStatus(req.Status)
	status.ActiveTaskCount = activeTaskCount
	status.WorkloadLevel = workload
	status.IsScheduledOnDuty = isScheduledOnDuty
	status.IsCurrentlyAvailable = status.CurrentStatus == domain.StaffStatusAvailable
	status.AutoAssignEligible = scheduler.CalcAutoAssignEligible(isScheduledOnDuty, status.IsCurrentlyAvailable, workload)
	status.StatusUpdatedAt = now
	status.LastActivityAt = now
	if req.Location != nil {
		status.CurrentLocation = req.Location
	}

	// 开始休息时记录休息开始时间，回到空闲时清掉
	switch status.CurrentStatus {
	case domain.StaffStatusOnBreak:
		status.BreakStartTime = &now
	case domain.StaffStatusAvailable:
		status.BreakStartTime = nil
	}

	if err := h.repository.UpsertRealTimeStatus(status); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新实时状态成功", status)
}

func (h *Handler) GetRealTimeStatus(w http.ResponseWriter, r *http.Request) {
	staffIDParam := chi.URLParam(r, "staffID")
	staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "员工ID无效")
		return
	}

	// 员工只能查自己的状态，管理员可以查任何人的
	role := domain.Role(r.Context().Value(RoleCtxKey).(string))
	if role != domain.RoleAdmin {
		myID, err := h.currentUserID(r)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if staffID != myID {
			h.errorResponse(w, r, "权限不足")
			return
		}
	}

	status, err := h.repository.GetRealTimeStatus(staffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 没有状态记录不算错误，返回默认状态
			status = domain.DefaultRealTimeStatus(staffID)
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "获取实时状态成功", status)
}
