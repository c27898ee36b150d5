package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

var availabilityColumns = []string{
	"id", "week_end_date",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"monday_hours", "tuesday_hours", "wednesday_hours", "thursday_hours", "friday_hours", "saturday_hours", "sunday_hours",
	"status", "submitted_at", "created_at", "updated_at", "version",
}

// 提交后立刻查询，拿回的必须就是提交的那份日标志和时段，
// 列顺序或扫描顺序错位都会在这里翻车
func TestUpsertThenGetAvailabilityRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(testConfig(), db)

	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	hours := "09:00-18:00"

	availability := domain.DefaultWeeklyAvailability(7, weekStart)
	availability.Wednesday = false
	availability.Saturday = true
	availability.MondayHours = &hours
	availability.Status = domain.AvailabilitySubmitted
	availability.SubmittedAt = &now

	mock.ExpectQuery("INSERT INTO staff_availability").
		WithArgs(
			int64(7), weekStart, weekEnd,
			true, true, false, true, true, true, false,
			"09:00-18:00", nil, nil, nil, nil, nil, nil,
			"submitted", now,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version"}).
			AddRow(int64(11), now, now, int32(1)))

	require.NoError(t, repo.UpsertAvailability(availability))
	assert.Equal(t, int64(11), availability.ID)
	assert.Equal(t, int32(1), availability.Version)

	mock.ExpectQuery("SELECT (.+) FROM staff_availability").
		WithArgs(int64(7), weekStart).
		WillReturnRows(sqlmock.NewRows(availabilityColumns).
			AddRow(
				int64(11), weekEnd,
				true, true, false, true, true, true, false,
				"09:00-18:00", nil, nil, nil, nil, nil, nil,
				"submitted", now, now, now, int32(1),
			))

	got, err := repo.GetAvailability(7, weekStart)
	require.NoError(t, err)

	assert.Equal(t, availability.Monday, got.Monday)
	assert.Equal(t, availability.Tuesday, got.Tuesday)
	assert.Equal(t, availability.Wednesday, got.Wednesday)
	assert.Equal(t, availability.Thursday, got.Thursday)
	assert.Equal(t, availability.Friday, got.Friday)
	assert.Equal(t, availability.Saturday, got.Saturday)
	assert.Equal(t, availability.Sunday, got.Sunday)
	require.NotNil(t, got.MondayHours)
	assert.Equal(t, hours, *got.MondayHours)
	assert.Nil(t, got.TuesdayHours)
	assert.Equal(t, domain.AvailabilitySubmitted, got.Status)
	require.NotNil(t, got.SubmittedAt)
	assert.Equal(t, now, *got.SubmittedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// 同一员工同一周再次提交时整条覆盖：第二次写入携带完整的列值，版本号递增
func TestResubmitSameWeekOverwrites(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(testConfig(), db)

	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	weekEnd := weekStart.AddDate(0, 0, 6)
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	first := domain.DefaultWeeklyAvailability(7, weekStart)
	first.Status = domain.AvailabilitySubmitted
	first.SubmittedAt = &now

	mock.ExpectQuery("INSERT INTO staff_availability").
		WithArgs(
			int64(7), weekStart, weekEnd,
			true, true, true, true, true, false, false,
			nil, nil, nil, nil, nil, nil, nil,
			"submitted", now,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version"}).
			AddRow(int64(11), now, now, int32(1)))

	require.NoError(t, repo.UpsertAvailability(first))
	assert.Equal(t, int32(1), first.Version)

	// 第二次提交只上周一到周三，其余天都覆盖成不可用
	second := domain.DefaultWeeklyAvailability(7, weekStart)
	second.Thursday = false
	second.Friday = false
	second.Status = domain.AvailabilitySubmitted
	second.SubmittedAt = &now

	mock.ExpectQuery("INSERT INTO staff_availability").
		WithArgs(
			int64(7), weekStart, weekEnd,
			true, true, true, false, false, false, false,
			nil, nil, nil, nil, nil, nil, nil,
			"submitted", now,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version"}).
			AddRow(int64(11), now, now, int32(2)))

	require.NoError(t, repo.UpsertAvailability(second))
	assert.Equal(t, int64(11), second.ID)
	assert.Equal(t, int32(2), second.Version)

	assert.NoError(t, mock.ExpectationsWereMet())
}
