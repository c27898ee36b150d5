package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

// 维修工单和物业服务单这两张表由其他子系统负责写入，
// 这里只做派单相关的读计数和 assigned_to / status 回写。

// CountActiveTasks 统计员工名下进行中的任务总数（跨两张任务表）
func (r *Repository) CountActiveTasks(staffID int64) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM maintenance_tasks WHERE assigned_to = $1 AND status IN ('assigned', 'in_progress')) +
			(SELECT COUNT(*) FROM job_services WHERE assigned_to = $1 AND status IN ('assigned', 'in_progress'))
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	count := 0
	if err := r.dbpool.QueryRowContext(ctx, query, staffID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// HasCriticalTasksOn 判断员工在指定日期是否有高优先级或紧急的维修工单，
// 用于请假申请的影响评估
func (r *Repository) HasCriticalTasksOn(staffID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM maintenance_tasks
			WHERE assigned_to = $1
			  AND scheduled_date = $2::date
			  AND priority IN ('high', 'critical')
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, date).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// SetTaskAssignment 把任务派给指定员工并把任务状态置为 assigned。
// 这次写入是派单链路的关键一步，任务不存在时返回 sql.ErrNoRows，
// 调用方必须把失败作为派单失败上报，而不能吞掉。
func (r *Repository) SetTaskAssignment(taskID int64, taskType domain.TaskType, staffID int64) error {
	table := "maintenance_tasks"
	if taskType == domain.TaskTypeJobService {
		table = "job_services"
	}

	query := `
		UPDATE ` + table + `
		SET assigned_to = $1, status = 'assigned', updated_at = now()
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, staffID, taskID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
