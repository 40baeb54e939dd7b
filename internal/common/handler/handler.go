// Package handler 提供 API Handler 的通用辅助函数
// 用于减少 Handler 层的代码重复，统一错误处理和参数解析
package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/verselab/lyrics-backend/internal/common/errors"
	"github.com/verselab/lyrics-backend/internal/common/response"
)

// HandleError 处理错误并发送适当的响应
// err 为 nil 时返回 false；否则发送错误响应并返回 true（调用方应 return）
//
// 使用示例:
//
//	result, err := service.DoSomething()
//	if HandleError(c, err) {
//	    return
//	}
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	if appErr, ok := err.(*errors.AppError); ok {
		// 被包装的原始错误只进日志，不出响应
		if appErr.Err != nil {
			_ = c.Error(appErr.Err)
		}
		response.Error(c, appErr.Status, appErr.Message)
		return true
	}
	_ = c.Error(err)
	response.InternalError(c, "")
	return true
}

// MustSucceed 便捷封装：有错误则返回错误响应，否则返回 200
func MustSucceed(c *gin.Context, err error, data interface{}) {
	if HandleError(c, err) {
		return
	}
	response.OK(c, data)
}

// ParseID 解析路径参数 "id" 为 int64
// 非整数或非正数返回 (0, false)（已发送 400 响应，调用方应 return）
//
// 使用示例:
//
//	id, ok := handler.ParseID(c, "歌手")
//	if !ok {
//	    return
//	}
func ParseID(c *gin.Context, resourceName string) (int64, bool) {
	return ParseParamID(c, "id", resourceName)
}

// ParseParamID 解析指定路径参数为 int64，要求为正整数
func ParseParamID(c *gin.Context, paramName, resourceName string) (int64, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的"+resourceName+"ID")
		return 0, false
	}
	return id, true
}

// ParseBoolToken 宽松解析布尔值
// 接受原生 bool 以及大小写不敏感的 "true"/"false" 字符串；
// 其他值不视为错误，原样忽略（返回 nil, false）
func ParseBoolToken(v interface{}) (*bool, bool) {
	switch t := v.(type) {
	case bool:
		b := t
		return &b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			b := true
			return &b, true
		case "false":
			b := false
			return &b, true
		}
	}
	return nil, false
}
