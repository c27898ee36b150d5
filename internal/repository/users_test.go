package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unibase-dev/facility-manager/backend/internal/config"
	"github.com/unibase-dev/facility-manager/backend/internal/domain"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	return cfg
}

func TestDepartmentsParamNilBecomesEmptyArray(t *testing.T) {
	// nil 部门列表不能以 SQL NULL 写入，否则会覆盖列默认值并违反 NOT NULL 约束
	value, err := departmentsParam(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", value)

	value, err = departmentsParam([]string{"水电", "暖通"}).Value()
	require.NoError(t, err)
	assert.Equal(t, `{"水电","暖通"}`, value)
}

func TestCreateUserWithoutDepartments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(testConfig(), db)

	// 初始管理员引导就是走这条路径：Departments 未设置（nil）
	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "hash", "物业管理员", "admin@example.com", "admin", "{}", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_active", "created_at", "version"}).
			AddRow(int64(1), true, time.Now(), int32(1)))

	user := &domain.User{
		Username:     "admin",
		PasswordHash: "hash",
		FullName:     "物业管理员",
		Email:        "admin@example.com",
		Role:         domain.RoleAdmin,
	}

	require.NoError(t, repo.CreateUser(user))
	assert.Equal(t, int64(1), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
