package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"github.com/unibase-dev/facility-manager/backend/internal/scheduler"
)

func (h *Handler) GetScheduleOverview(w http.ResponseWriter, r *http.Request) {
	building := r.URL.Query().Get("building")
	cacheKey := "schedule_overview"
	if building != "" {
		cacheKey = fmt.Sprintf("schedule_overview:%s", building)
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.ConnectTimeout)*time.Second)
	defer cancel()

	// 缓存只是加速，redis 不可用时直接回源计算
	if cached, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		overview := &domain.ScheduleOverview{}
		if err := json.Unmarshal([]byte(cached), overview); err == nil {
			h.successResponse(w, r, "获取排班总览成功", overview)
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("读取排班总览缓存失败", "error", err)
	}

	now := time.Now()

	staff, err := h.repository.GetActiveStaff(building)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	availabilityList, err := h.repository.GetAvailabilitiesForWeek(domain.WeekStartOf(now))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	availabilities := make(map[int64]*domain.StaffAvailability, len(availabilityList))
	for _, availability := range availabilityList {
		availabilities[availability.StaffID] = availability
	}

	statusList, err := h.repository.GetAllRealTimeStatuses()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	statuses := make(map[int64]*domain.StaffRealTimeStatus, len(statusList))
	for _, status := range statusList {
		statuses[status.StaffID] = status
	}

	pendingCount, err := h.repository.CountPendingDayOffRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	overview := scheduler.BuildOverview(staff, availabilities, statuses, pendingCount, now)

	if data, err := json.Marshal(overview); err == nil {
		ttl := time.Duration(h.config.Redis.OverviewCacheTTL) * time.Second
		if err := h.redisClient.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
			slog.Warn("写入排班总览缓存失败", "error", err)
		}
	}

	h.successResponse(w, r, "获取排班总览成功", overview)
}

type staffListEntry struct {
	StaffID               int64      `json:"staffID"`
	FullName              string     `json:"fullName"`
	Email                 string     `json:"email"`
	Departments           []string   `json:"departments"`
	Building              string     `json:"building"`
	IsAvailableToday      bool       `json:"isAvailableToday"`
	DaysAvailableThisWeek string     `json:"daysAvailableThisWeek"`
	AvailabilityStatus    string     `json:"availabilityStatus"`
	CurrentStatus         string     `json:"currentStatus"`
	WorkloadLevel         string     `json:"workloadLevel"`
	ActiveTaskCount       int        `json:"activeTaskCount"`
	CurrentLocation       *string    `json:"currentLocation"`
	LastActivityAt        *time.Time `json:"lastActivityAt"`
	AutoAssignEligible    bool       `json:"autoAssignEligible"`
	OverallStatus         string     `json:"overallStatus"`
}

// GetStaffListWithStatus 返回供管理端排班页使用的员工清单，
// 把每个员工的本周时间表和实时状态拼在一行里
func (h *Handler) GetStaffListWithStatus(w http.ResponseWriter, r *http.Request) {
	departmentFilter := r.URL.Query().Get("department")
	statusFilter := r.URL.Query().Get("status")

	now := time.Now()

	staff, err := h.repository.GetActiveStaff(r.URL.Query().Get("building"))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	availabilityList, err := h.repository.GetAvailabilitiesForWeek(domain.WeekStartOf(now))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	availabilities := make(map[int64]*domain.StaffAvailability, len(availabilityList))
	for _, availability := range availabilityList {
		availabilities[availability.StaffID] = availability
	}

	statusList, err := h.repository.GetAllRealTimeStatuses()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	statuses := make(map[int64]*domain.StaffRealTimeStatus, len(statusList))
	for _, status := range statusList {
		statuses[status.StaffID] = status
	}

	entries := make([]*staffListEntry, 0, len(staff))
	for _, u := range staff {
		if departmentFilter != "" && !slices.Contains(u.Departments, departmentFilter) {
			continue
		}

		availability, exists := availabilities[u.ID]
		if !exists {
			availability = domain.DefaultWeeklyAvailability(u.ID, domain.WeekStartOf(now))
		}
		status, exists := statuses[u.ID]
		if !exists {
			status = domain.DefaultRealTimeStatus(u.ID)
		}

		entry := &staffListEntry{
			StaffID:               u.ID,
			FullName:              u.FullName,
			Email:                 u.Email,
			Departments:           u.Departments,
			Building:              u.Building,
			IsAvailableToday:      availability.AvailableOn(now.Weekday()),
			DaysAvailableThisWeek: fmt.Sprintf("%d/7", availability.AvailableDaysCount()),
			AvailabilityStatus:    string(availability.Status),
			CurrentStatus:         string(status.CurrentStatus),
			WorkloadLevel:         string(status.WorkloadLevel),
			ActiveTaskCount:       status.ActiveTaskCount,
			CurrentLocation:       status.CurrentLocation,
			AutoAssignEligible:    status.AutoAssignEligible,
		}
		if !status.LastActivityAt.IsZero() {
			t := status.LastActivityAt
			entry.LastActivityAt = &t
		}

		if entry.IsAvailableToday && status.CurrentStatus == domain.StaffStatusAvailable {
			entry.OverallStatus = "available"
		} else {
			entry.OverallStatus = "unavailable"
		}

		if statusFilter != "" && entry.OverallStatus != statusFilter {
			continue
		}

		entries = append(entries, entry)
	}

	h.successResponse(w, r, "获取员工排班清单成功", map[string]any{
		"staff":      entries,
		"totalCount": len(entries),
	})
}
