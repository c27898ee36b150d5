package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
	"github.com/unibase-dev/facility-manager/backend/internal/scheduler"
)

const maxAlternativeStaff = 5

func (h *Handler) GetEligibleStaff(w http.ResponseWriter, r *http.Request) {
	departments := parseDepartmentsParam(r)
	if len(departments) == 0 {
		h.errorResponse(w, r, "必须指定至少一个所需部门")
		return
	}

	priority := domain.PriorityMedium
	if priorityParam := r.URL.Query().Get("priority"); priorityParam != "" {
		switch domain.TaskPriority(priorityParam) {
		case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical:
			priority = domain.TaskPriority(priorityParam)
		default:
			h.errorResponse(w, r, "任务优先级无效")
			return
		}
	}

	var location *string
	if locationParam := r.URL.Query().Get("location"); locationParam != "" {
		location = &locationParam
	}

	staff, statuses, err := h.loadStaffAndStatuses()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	eligible := scheduler.FilterEligible(staff, statuses, departments, location, priority)

	h.successResponse(w, r, "获取可派单员工成功", map[string]any{
		"eligibleStaff": eligible,
		"totalCount":    len(eligible),
		"departments":   departments,
		"priority":      priority,
	})
}

func (h *Handler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID              int64    `json:"taskID" validate:"required"`
		TaskType            string   `json:"taskType" validate:"required,oneof=maintenance_task job_service"`
		RequiredDepartments []string `json:"requiredDepartments" validate:"required,min=1"`
		Priority            string   `json:"priority" validate:"omitempty,oneof=low medium high critical"`
		PreferredStaffID    *int64   `json:"preferredStaffID"`
		Location            *string  `json:"location"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.TaskPriority(req.Priority)
	}

	// 派单只会失败不会报错：任何一步出问题都转成一个不成功的派单结果返回
	staff, statuses, err := h.loadStaffAndStatuses()
	if err != nil {
		h.logInternalServerError(r, err)
		h.assignmentFailed(w, r, fmt.Sprintf("Assignment failed: %s", err), 0)
		return
	}

	eligible := scheduler.FilterEligible(staff, statuses, req.RequiredDepartments, req.Location, priority)
	if len(eligible) == 0 {
		h.assignmentFailed(w, r, scheduler.ReasonNoEligibleStaff, 0)
		return
	}

	selected, reason := scheduler.SelectAssignee(eligible, priority, req.PreferredStaffID)

	// 先写任务归属，再回写人选的负载，任何一步失败都算派单失败
	if err := h.repository.SetTaskAssignment(req.TaskID, domain.TaskType(req.TaskType), selected.StaffID); err != nil {
		h.logInternalServerError(r, err)
		h.assignmentFailed(w, r, fmt.Sprintf("Assignment failed: %s", err), len(eligible))
		return
	}

	if err := h.applyAssignmentWorkload(statuses, selected.StaffID, req.TaskID); err != nil {
		h.logInternalServerError(r, err)
		h.assignmentFailed(w, r, fmt.Sprintf("Assignment failed: %s", err), len(eligible))
		return
	}

	result := &domain.AssignmentResult{
		AssignedStaffID:      &selected.StaffID,
		AssignmentReason:     reason,
		EligibleStaffCount:   len(eligible),
		AlternativeStaff:     scheduler.Alternatives(eligible, selected, maxAlternativeStaff),
		AssignmentSuccessful: true,
	}

	h.successResponse(w, r, "智能派单完成", result)
}

func (h *Handler) assignmentFailed(w http.ResponseWriter, r *http.Request, reason string, eligibleCount int) {
	h.successResponse(w, r, "智能派单完成", &domain.AssignmentResult{
		AssignedStaffID:      nil,
		AssignmentReason:     reason,
		EligibleStaffCount:   eligibleCount,
		AlternativeStaff:     []*domain.EligibleStaff{},
		AssignmentSuccessful: false,
	})
}

// applyAssignmentWorkload 派单成功后把任务挂到人选的实时状态上并重算负载
func (h *Handler) applyAssignmentWorkload(statuses map[int64]*domain.StaffRealTimeStatus, staffID int64, taskID int64) error {
	now := time.Now()

	status, exists := statuses[staffID]
	if !exists {
		status = domain.DefaultRealTimeStatus(staffID)
	}

	status.ActiveTaskIDs = append(status.ActiveTaskIDs, taskID)
	status.ActiveTaskCount = len(status.ActiveTaskIDs)
	status.WorkloadLevel = scheduler.CalcWorkloadLevel(status.ActiveTaskCount)
	status.AutoAssignEligible = scheduler.CalcAutoAssignEligible(status.IsScheduledOnDuty, status.IsCurrentlyAvailable, status.WorkloadLevel)
	status.LastActivityAt = now

	if !exists {
		status.StatusUpdatedAt = now
		return h.repository.UpsertRealTimeStatus(status)
	}
	return h.repository.UpdateWorkload(status)
}

// loadStaffAndStatuses 一次性取出全部在职员工和他们的实时状态
func (h *Handler) loadStaffAndStatuses() ([]*domain.User, map[int64]*domain.StaffRealTimeStatus, error) {
	staff, err := h.repository.GetActiveStaff("")
	if err != nil {
		return nil, nil, err
	}

	statusList, err := h.repository.GetAllRealTimeStatuses()
	if err != nil {
		return nil, nil, err
	}
	statuses := make(map[int64]*domain.StaffRealTimeStatus, len(statusList))
	for _, status := range statusList {
		statuses[status.StaffID] = status
	}

	return staff, statuses, nil
}

// parseDepartmentsParam 支持重复的 departments 参数和逗号分隔两种写法
func parseDepartmentsParam(r *http.Request) []string {
	departments := make([]string, 0)
	for _, raw := range r.URL.Query()["departments"] {
		for _, dept := range strings.Split(raw, ",") {
			if dept = strings.TrimSpace(dept); dept != "" {
				departments = append(departments, dept)
			}
		}
	}
	return departments
}
