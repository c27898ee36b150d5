package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDepartmentsParam(t *testing.T) {
	// 重复参数和逗号分隔两种写法都要支持
	r := httptest.NewRequest("GET", "/staff-scheduling/eligible-staff?departments=水电,暖通&departments=保洁", nil)
	assert.Equal(t, []string{"水电", "暖通", "保洁"}, parseDepartmentsParam(r))

	r = httptest.NewRequest("GET", "/staff-scheduling/eligible-staff?departments=%20水电%20,,", nil)
	assert.Equal(t, []string{"水电"}, parseDepartmentsParam(r))

	r = httptest.NewRequest("GET", "/staff-scheduling/eligible-staff", nil)
	assert.Empty(t, parseDepartmentsParam(r))
}
