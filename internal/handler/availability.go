package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func (h *Handler) SubmitWeeklyAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID       *int64 `json:"staffID"` // 管理员可以代员工提交
		WeekStartDate string `json:"weekStartDate" validate:"required,datetime=2006-01-02"`

		Monday    *bool `json:"monday"`
		Tuesday   *bool `json:"tuesday"`
		Wednesday *bool `json:"wednesday"`
		Thursday  *bool `json:"thursday"`
		Friday    *bool `json:"friday"`
		Saturday  *bool `json:"saturday"`
		Sunday    *bool `json:"sunday"`

		MondayHours    *string `json:"mondayHours"`
		TuesdayHours   *string `json:"tuesdayHours"`
		WednesdayHours *string `json:"wednesdayHours"`
		ThursdayHours  *string `json:"thursdayHours"`
		FridayHours    *string `json:"fridayHours"`
		SaturdayHours  *string `json:"saturdayHours"`
		SundayHours    *string `json:"sundayHours"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	weekStart, err := time.Parse("2006-01-02", req.WeekStartDate)
	if err != nil {
		h.errorResponse(w, r, "周开始日期格式无效，应为 YYYY-MM-DD")
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)
	staffID := myInfo.ID
	if req.StaffID != nil && myInfo.Role == domain.RoleAdmin {
		staffID = *req.StaffID
	}

	// 请求中省略的天沿用默认时间表：周一到周五可用，周末不可用
	now := time.Now()
	availability := domain.DefaultWeeklyAvailability(staffID, weekStart)
	availability.Status = domain.AvailabilitySubmitted
	availability.SubmittedAt = &now

	fillDay := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	fillDay(&availability.Monday, req.Monday)
	fillDay(&availability.Tuesday, req.Tuesday)
	fillDay(&availability.Wednesday, req.Wednesday)
	fillDay(&availability.Thursday, req.Thursday)
	fillDay(&availability.Friday, req.Friday)
	fillDay(&availability.Saturday, req.Saturday)
	fillDay(&availability.Sunday, req.Sunday)

	availability.MondayHours = req.MondayHours
	availability.TuesdayHours = req.TuesdayHours
	availability.WednesdayHours = req.WednesdayHours
	availability.ThursdayHours = req.ThursdayHours
	availability.FridayHours = req.FridayHours
	availability.SaturdayHours = req.SaturdayHours
	availability.SundayHours = req.SundayHours

	// 同一员工同一周重复提交时覆盖旧时间表
	if err := h.repository.UpsertAvailability(availability); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "提交每周时间表成功", availability)
}

func (h *Handler) GetStaffAvailability(w http.ResponseWriter, r *http.Request) {
	staffIDParam := chi.URLParam(r, "staffID")
	staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "员工ID无效")
		return
	}

	// 员工只能查自己的时间表，管理员可以查任何人的
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

	weekStart := domain.WeekStartOf(time.Now())
	if weekStartParam := r.URL.Query().Get("weekStartDate"); weekStartParam != "" {
		weekStart, err = time.Parse("2006-01-02", weekStartParam)
		if err != nil {
			h.errorResponse(w, r, "周开始日期格式无效，应为 YYYY-MM-DD")
			return
		}
	}

	availability, err := h.repository.GetAvailability(staffID, weekStart)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 没提交过不算错误，返回默认时间表
			availability = domain.DefaultWeeklyAvailability(staffID, weekStart)
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "获取每周时间表成功", availability)
}
