// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
	"net/http"
)

// AppError 应用错误
// Code 为业务错误码，Status 为对应的 HTTP 状态码
type AppError struct {
	Code    int    `json:"code"`
	Status  int    `json:"-"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 支持 errors.Is，按业务错误码比较
// WithMessage / WithError 返回的副本仍与原错误匹配
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New 创建新的应用错误
func New(code, status int, message string) *AppError {
	return &AppError{
		Code:    code,
		Status:  status,
		Message: message,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Status:  e.Status,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Status:  e.Status,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown       = New(1000, http.StatusInternalServerError, "未知错误")
	ErrInvalidParams = New(1001, http.StatusBadRequest, "参数错误")
	ErrNotFound      = New(1002, http.StatusNotFound, "资源不存在")
	ErrAlreadyExists = New(1003, http.StatusConflict, "资源已存在")
	ErrDatabaseError = New(1004, http.StatusInternalServerError, "数据库错误")
	ErrInternalError = New(1005, http.StatusInternalServerError, "内部错误")
)

// 歌手错误码 (2000-2999)
var (
	ErrPerformerNotFound     = New(2000, http.StatusNotFound, "歌手不存在")
	ErrPerformerNameRequired = New(2001, http.StatusBadRequest, "歌手名不能为空")
	ErrPerformerNameTooLong  = New(2002, http.StatusBadRequest, "歌手名过长（最多 100 字符）")
	ErrPerformerNameTaken    = New(2003, http.StatusConflict, "歌手名已存在")
	ErrPerformerReferenced   = New(2004, http.StatusConflict, "歌手仍被歌词引用，无法删除")
)

// 歌词错误码 (3000-3999)
var (
	ErrLyricNotFound         = New(3000, http.StatusNotFound, "歌词不存在")
	ErrLyricTitleRequired    = New(3001, http.StatusBadRequest, "歌名不能为空")
	ErrLyricTitleTooLong     = New(3002, http.StatusBadRequest, "歌名过长（最多 100 字符）")
	ErrLyricWordsRequired    = New(3003, http.StatusBadRequest, "歌词内容不能为空")
	ErrLyricWordsTooLong     = New(3004, http.StatusBadRequest, "歌词内容过长（最多 500 字符）")
	ErrLyricLanguageRequired = New(3005, http.StatusBadRequest, "语言不能为空")
	ErrLyricPerformerRef     = New(3006, http.StatusConflict, "歌词引用的歌手不存在或已被删除")
	ErrLyricLanguageTooLong  = New(3007, http.StatusBadRequest, "语言标签过长（最多 10 字符）")
)

// 维护接口错误码 (4000-4999)
var (
	ErrImportLineMalformed = New(4000, http.StatusBadRequest, "导入数据格式错误")
	ErrImportEmptyPayload  = New(4001, http.StatusBadRequest, "导入数据为空")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
