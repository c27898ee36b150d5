package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponseEnvelope(t *testing.T) {
	h := &Handler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	h.successResponse(w, r, "操作成功", map[string]any{"id": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	resp := Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "操作成功", resp.Message)
	assert.NotNil(t, resp.Data)
}

// 业务错误走 HTTP 200，由 success 字段区分，只有服务器内部错误才返回 500
func TestBusinessErrorKeepsHTTP200(t *testing.T) {
	h := &Handler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	h.errorResponse(w, r, "权限不足")

	assert.Equal(t, http.StatusOK, w.Code)

	resp := Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "权限不足", resp.Message)
	assert.Nil(t, resp.Data)
}

func TestInternalServerErrorReturns500(t *testing.T) {
	h := &Handler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	h.internalServerError(w, r, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := Response{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	// 内部错误细节不能泄露给客户端
	assert.Equal(t, "服务器内部错误", resp.Message)
}
