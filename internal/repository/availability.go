package repository

import (
	"context"
	"time"

	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

// UpsertAvailability 以 (staff_id, week_start_date) 为键写入某周的时间表。
// 同一周已有记录时整条覆盖（不做字段合并），否则插入新记录。
func (r *Repository) UpsertAvailability(availability *domain.StaffAvailability) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO staff_availability (
			staff_id, week_start_date, week_end_date,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			monday_hours, tuesday_hours, wednesday_hours, thursday_hours, friday_hours, saturday_hours, sunday_hours,
			status, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (staff_id, week_start_date) DO UPDATE SET
			week_end_date = EXCLUDED.week_end_date,
			monday = EXCLUDED.monday,
			tuesday = EXCLUDED.tuesday,
			wednesday = EXCLUDED.wednesday,
			thursday = EXCLUDED.thursday,
			friday = EXCLUDED.friday,
			saturday = EXCLUDED.saturday,
			sunday = EXCLUDED.sunday,
			monday_hours = EXCLUDED.monday_hours,
			tuesday_hours = EXCLUDED.tuesday_hours,
			wednesday_hours = EXCLUDED.wednesday_hours,
			thursday_hours = EXCLUDED.thursday_hours,
			friday_hours = EXCLUDED.friday_hours,
			saturday_hours = EXCLUDED.saturday_hours,
			sunday_hours = EXCLUDED.sunday_hours,
			status = EXCLUDED.status,
			submitted_at = EXCLUDED.submitted_at,
			updated_at = now(),
			version = staff_availability.version + 1
		RETURNING id, created_at, updated_at, version
	`

	args := []any{
		availability.StaffID, availability.WeekStartDate, availability.WeekEndDate,
		availability.Monday, availability.Tuesday, availability.Wednesday, availability.Thursday,
		availability.Friday, availability.Saturday, availability.Sunday,
		availability.MondayHours, availability.TuesdayHours, availability.WednesdayHours,
		availability.ThursdayHours, availability.FridayHours, availability.SaturdayHours, availability.SundayHours,
		availability.Status, availability.SubmittedAt,
	}
	dst := []any{&availability.ID, &availability.CreatedAt, &availability.UpdatedAt, &availability.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// GetAvailability 查询某个员工某一周的时间表，不存在时返回 sql.ErrNoRows，
// 由调用方决定是否合成默认时间表
func (r *Repository) GetAvailability(staffID int64, weekStart time.Time) (*domain.StaffAvailability, error) {
	query := `
		SELECT id, week_end_date,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			monday_hours, tuesday_hours, wednesday_hours, thursday_hours, friday_hours, saturday_hours, sunday_hours,
			status, submitted_at, created_at, updated_at, version
		FROM staff_availability
		WHERE staff_id = $1 AND week_start_date = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	availability := &domain.StaffAvailability{
		StaffID:       staffID,
		WeekStartDate: weekStart,
	}

	dst := []any{
		&availability.ID, &availability.WeekEndDate,
		&availability.Monday, &availability.Tuesday, &availability.Wednesday, &availability.Thursday,
		&availability.Friday, &availability.Saturday, &availability.Sunday,
		&availability.MondayHours, &availability.TuesdayHours, &availability.WednesdayHours,
		&availability.ThursdayHours, &availability.FridayHours, &availability.SaturdayHours, &availability.SundayHours,
		&availability.Status, &availability.SubmittedAt, &availability.CreatedAt, &availability.UpdatedAt, &availability.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, weekStart).Scan(dst...); err != nil {
		return nil, err
	}

	return availability, nil
}

// GetAvailabilitiesForWeek 查询某一周所有员工的时间表，用于看板汇总
func (r *Repository) GetAvailabilitiesForWeek(weekStart time.Time) ([]*domain.StaffAvailability, error) {
	query := `
		SELECT id, staff_id, week_end_date,
			monday, tuesday, wednesday, thursday, friday, saturday, sunday,
			monday_hours, tuesday_hours, wednesday_hours, thursday_hours, friday_hours, saturday_hours, sunday_hours,
			status, submitted_at, created_at, updated_at, version
		FROM staff_availability
		WHERE week_start_date = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, weekStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availabilities := make([]*domain.StaffAvailability, 0)
	for rows.Next() {
		availability := &domain.StaffAvailability{
			WeekStartDate: weekStart,
		}
		dst := []any{
			&availability.ID, &availability.StaffID, &availability.WeekEndDate,
			&availability.Monday, &availability.Tuesday, &availability.Wednesday, &availability.Thursday,
			&availability.Friday, &availability.Saturday, &availability.Sunday,
			&availability.MondayHours, &availability.TuesdayHours, &availability.WednesdayHours,
			&availability.ThursdayHours, &availability.FridayHours, &availability.SaturdayHours, &availability.SundayHours,
			&availability.Status, &availability.SubmittedAt, &availability.CreatedAt, &availability.UpdatedAt, &availability.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return availabilities, nil
}
