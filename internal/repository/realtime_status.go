package repository

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

// GetRealTimeStatus 查询员工的实时状态，不存在时返回 sql.ErrNoRows，
// 由调用方决定是否合成默认状态
func (r *Repository) GetRealTimeStatus(staffID int64) (*domain.StaffRealTimeStatus, error) {
	query := `
		SELECT current_status, workload_level, active_task_count, active_task_ids,
			current_location, break_start_time, duty_start_time, duty_end_time,
			is_scheduled_on_duty, is_currently_available, auto_assign_eligible,
			status_updated_at, last_activity_at, version
		FROM staff_realtime_status
		WHERE staff_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	status := &domain.StaffRealTimeStatus{
		StaffID: staffID,
	}

	dst := []any{
		&status.CurrentStatus, &status.WorkloadLevel, &status.ActiveTaskCount, pq.Array(&status.ActiveTaskIDs),
		&status.CurrentLocation, &status.BreakStartTime, &status.DutyStartTime, &status.DutyEndTime,
		&status.IsScheduledOnDuty, &status.IsCurrentlyAvailable, &status.AutoAssignEligible,
		&status.StatusUpdatedAt, &status.LastActivityAt, &status.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, staffID).Scan(dst...); err != nil {
		return nil, err
	}

	return status, nil
}

func (r *Repository) GetAllRealTimeStatuses() ([]*domain.StaffRealTimeStatus, error) {
	query := `
		SELECT staff_id, current_status, workload_level, active_task_count, active_task_ids,
			current_location, break_start_time, duty_start_time, duty_end_time,
			is_scheduled_on_duty, is_currently_available, auto_assign_eligible,
			status_updated_at, last_activity_at, version
		FROM staff_realtime_status
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]*domain.StaffRealTimeStatus, 0)
	for rows.Next() {
		status := &domain.StaffRealTimeStatus{}
		dst := []any{
			&status.StaffID, &status.CurrentStatus, &status.WorkloadLevel, &status.ActiveTaskCount, pq.Array(&status.ActiveTaskIDs),
			&status.CurrentLocation, &status.BreakStartTime, &status.DutyStartTime, &status.DutyEndTime,
			&status.IsScheduledOnDuty, &status.IsCurrentlyAvailable, &status.AutoAssignEligible,
			&status.StatusUpdatedAt, &status.LastActivityAt, &status.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return statuses, nil
}

// UpsertRealTimeStatus 写入员工的实时状态单例记录。
// 第一次状态更新时插入，之后整条覆盖，所有派生字段由调用方在写入前算好。
func (r *Repository) UpsertRealTimeStatus(status *domain.StaffRealTimeStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO staff_realtime_status (
			staff_id, current_status, workload_level, active_task_count, active_task_ids,
			current_location, break_start_time, duty_start_time, duty_end_time,
			is_scheduled_on_duty, is_currently_available, auto_assign_eligible,
			status_updated_at, last_activity_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (staff_id) DO UPDATE SET
			current_status = EXCLUDED.current_status,
			workload_level = EXCLUDED.workload_level,
			active_task_count = EXCLUDED.active_task_count,
			active_task_ids = EXCLUDED.active_task_ids,
			current_location = EXCLUDED.current_location,
			break_start_time = EXCLUDED.break_start_time,
			duty_start_time = EXCLUDED.duty_start_time,
			duty_end_time = EXCLUDED.duty_end_time,
			is_scheduled_on_duty = EXCLUDED.is_scheduled_on_duty,
			is_currently_available = EXCLUDED.is_currently_available,
			auto_assign_eligible = EXCLUDED.auto_assign_eligible,
			status_updated_at = EXCLUDED.status_updated_at,
			last_activity_at = EXCLUDED.last_activity_at,
			version = staff_realtime_status.version + 1
		RETURNING version
	`

	args := []any{
		status.StaffID, status.CurrentStatus, status.WorkloadLevel, status.ActiveTaskCount, pq.Array(status.ActiveTaskIDs),
		status.CurrentLocation, status.BreakStartTime, status.DutyStartTime, status.DutyEndTime,
		status.IsScheduledOnDuty, status.IsCurrentlyAvailable, status.AutoAssignEligible,
		status.StatusUpdatedAt, status.LastActivityAt,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&status.Version); err != nil {
		return err
	}

	return nil
}

// UpdateWorkload 是派单回写的入口：追加任务、更新任务数和派生字段。
// 带乐观锁检查，并发派单抢到同一个员工时后写的一方会得到 sql.ErrNoRows，
// 由调用方把它作为派单失败返回。
func (r *Repository) UpdateWorkload(status *domain.StaffRealTimeStatus) error {
	query := `
		UPDATE staff_realtime_status
		SET
			active_task_ids = $1,
			active_task_count = $2,
			workload_level = $3,
			auto_assign_eligible = $4,
			last_activity_at = $5,
			version = version + 1
		WHERE staff_id = $6 AND version = $7
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		pq.Array(status.ActiveTaskIDs), status.ActiveTaskCount, status.WorkloadLevel,
		status.AutoAssignEligible, status.LastActivityAt, status.StaffID, status.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&status.Version); err != nil {
		return err
	}

	return nil
}
