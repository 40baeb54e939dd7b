// Package admin 提供数据管理相关的 HTTP 接口
package admin

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/verselab/lyrics-backend/internal/common/handler"
	"github.com/verselab/lyrics-backend/internal/common/response"
	"github.com/verselab/lyrics-backend/internal/middleware"
	adminsvc "github.com/verselab/lyrics-backend/internal/service/admin"
)

// maxImportBody 批量导入请求体上限（1MB）
const maxImportBody = 1 << 20

// Handler 数据管理接口处理器
type Handler struct {
	service *adminsvc.AdminService
}

// NewHandler 创建数据管理接口处理器
func NewHandler(service *adminsvc.AdminService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes 注册数据管理路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/admin")
	{
		group.POST("/lyrics/import", middleware.RequestSizeLimiter(maxImportBody), h.ImportLyrics)
		group.POST("/reset", h.Reset)
		group.POST("/seed", h.Seed)
	}
}

// ImportLyrics 批量导入歌词
// @Summary 批量导入歌词
// @Description 请求体为纯文本，每行 performer;songTitle;language;words，整体一个事务
// @Tags 数据管理
// @Accept plain
// @Produce json
// @Param payload body string true "导入数据"
// @Success 200 {object} admin.ImportResult
// @Failure 400 {object} response.ErrorBody
// @Router /api/admin/lyrics/import [post]
func (h *Handler) ImportLyrics(c *gin.Context) {
	// 请求体上限由路由上的 RequestSizeLimiter 保证
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, "读取请求体失败")
		return
	}

	result, err := h.service.ImportLyrics(c.Request.Context(), string(body))
	handler.MustSucceed(c, err, result)
}

// Reset 清空全部数据
// @Summary 清空全部数据
// @Tags 数据管理
// @Success 204
// @Router /api/admin/reset [post]
func (h *Handler) Reset(c *gin.Context) {
	if handler.HandleError(c, h.service.Reset(c.Request.Context())) {
		return
	}
	response.NoContent(c)
}

// Seed 写入内置示例数据
// @Summary 写入内置示例数据
// @Description 库中已有数据时跳过，接口幂等
// @Tags 数据管理
// @Produce json
// @Success 200 {object} admin.SeedResult
// @Router /api/admin/seed [post]
func (h *Handler) Seed(c *gin.Context) {
	result, err := h.service.Seed(c.Request.Context())
	handler.MustSucceed(c, err, result)
}
