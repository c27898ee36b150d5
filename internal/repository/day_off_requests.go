package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

// NextDayOffSequence 原子地递增并返回指定年份的请假申请序号。
// 计数器按年独立，第一次调用时创建。
func (r *Repository) NextDayOffSequence(year int) (int64, error) {
	query := `
		INSERT INTO day_off_request_counters (year, counter)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET
			counter = day_off_request_counters.counter + 1,
			last_updated = now()
		RETURNING counter
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var seq int64
	if err := r.dbpool.QueryRowContext(ctx, query, year).Scan(&seq); err != nil {
		return 0, err
	}

	return seq, nil
}

func (r *Repository) CreateDayOffRequest(req *domain.DayOffRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO day_off_requests (
			formatted_id, staff_id, request_date, reason, description, request_type,
			status, requested_at, affects_critical_tasks
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at, version
	`

	args := []any{
		req.FormattedID, req.StaffID, req.RequestDate, req.Reason, req.Description, req.RequestType,
		req.Status, req.RequestedAt, req.AffectsCriticalTasks,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDayOffRequestByFormattedID(formattedID string) (*domain.DayOffRequest, error) {
	query := `
		SELECT id, staff_id, request_date, reason, description, request_type,
			status, requested_at, approved_by, approved_at, rejection_reason, admin_notes,
			affects_critical_tasks, replacement_staff_id, impact_assessment,
			created_at, updated_at, version
		FROM day_off_requests
		WHERE formatted_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	req := &domain.DayOffRequest{
		FormattedID: formattedID,
	}

	dst := []any{
		&req.ID, &req.StaffID, &req.RequestDate, &req.Reason, &req.Description, &req.RequestType,
		&req.Status, &req.RequestedAt, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason, &req.AdminNotes,
		&req.AffectsCriticalTasks, &req.ReplacementStaffID, &req.ImpactAssessment,
		&req.CreatedAt, &req.UpdatedAt, &req.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, formattedID).Scan(dst...); err != nil {
		return nil, err
	}

	return req, nil
}

// GetDayOffRequests 查询请假申请列表，staffID 和 status 都是可选过滤条件
func (r *Repository) GetDayOffRequests(staffID sql.NullInt64, status sql.NullString) ([]*domain.DayOffRequest, error) {
	query := `
		SELECT id, formatted_id, staff_id, request_date, reason, description, request_type,
			status, requested_at, approved_by, approved_at, rejection_reason, admin_notes,
			affects_critical_tasks, replacement_staff_id, impact_assessment,
			created_at, updated_at, version
		FROM day_off_requests
		WHERE ($1::bigint IS NULL OR staff_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY requested_at DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.DayOffRequest, 0)
	for rows.Next() {
		req := &domain.DayOffRequest{}
		dst := []any{
			&req.ID, &req.FormattedID, &req.StaffID, &req.RequestDate, &req.Reason, &req.Description, &req.RequestType,
			&req.Status, &req.RequestedAt, &req.ApprovedBy, &req.ApprovedAt, &req.RejectionReason, &req.AdminNotes,
			&req.AffectsCriticalTasks, &req.ReplacementStaffID, &req.ImpactAssessment,
			&req.CreatedAt, &req.UpdatedAt, &req.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *Repository) CountPendingDayOffRequests() (int, error) {
	query := `
		SELECT COUNT(*) FROM day_off_requests WHERE status = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	count := 0
	if err := r.dbpool.QueryRowContext(ctx, query, domain.DayOffPending).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// UpdateDayOffDecision 落库一次审批结果（批准 / 驳回 / 取消）。
// 带乐观锁检查，记录已被他人修改时返回 sql.ErrNoRows。
func (r *Repository) UpdateDayOffDecision(req *domain.DayOffRequest) error {
	query := `
		UPDATE day_off_requests
		SET
			status = $1,
			approved_by = $2,
			approved_at = $3,
			rejection_reason = $4,
			admin_notes = $5,
			updated_at = now(),
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectionReason, req.AdminNotes, req.ID, req.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&req.UpdatedAt, &req.Version); err != nil {
		return err
	}

	return nil
}
