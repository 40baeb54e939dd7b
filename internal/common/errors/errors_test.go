package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	// WithMessage 副本仍与原错误匹配
	err := ErrInvalidParams.WithMessage("era 必须为整数年份")
	assert.True(t, stderrors.Is(err, ErrInvalidParams))
	assert.False(t, stderrors.Is(err, ErrNotFound))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := ErrDatabaseError.WithError(cause)

	assert.True(t, stderrors.Is(err, ErrDatabaseError))
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetAppError(t *testing.T) {
	appErr := GetAppError(ErrPerformerNotFound)
	assert.Equal(t, http.StatusNotFound, appErr.Status)

	// 非应用错误归为未知错误
	appErr = GetAppError(stderrors.New("boom"))
	assert.Equal(t, ErrUnknown.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := map[*AppError]int{
		ErrPerformerNotFound:     http.StatusNotFound,
		ErrPerformerNameRequired: http.StatusBadRequest,
		ErrPerformerNameTooLong:  http.StatusBadRequest,
		ErrPerformerReferenced:   http.StatusConflict,
		ErrLyricNotFound:         http.StatusNotFound,
		ErrLyricWordsTooLong:     http.StatusBadRequest,
		ErrLyricPerformerRef:     http.StatusConflict,
		ErrImportLineMalformed:   http.StatusBadRequest,
	}
	for err, status := range cases {
		assert.Equal(t, status, err.Status, err.Message)
	}
}
