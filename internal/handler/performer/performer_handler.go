// Package performer 提供歌手相关的 HTTP 接口
package performer

import (
	"github.com/gin-gonic/gin"

	"github.com/verselab/lyrics-backend/internal/common/handler"
	"github.com/verselab/lyrics-backend/internal/common/response"
	performersvc "github.com/verselab/lyrics-backend/internal/service/performer"
)

// Handler 歌手接口处理器
type Handler struct {
	service *performersvc.PerformerService
}

// NewHandler 创建歌手接口处理器
func NewHandler(service *performersvc.PerformerService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes 注册歌手路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/performers")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.GET("/:id/lyrics", h.ListLyrics)
	}
}

// Create 创建歌手
// @Summary 创建歌手
// @Description 创建歌手；名称已存在时按部署策略更新或返回已有记录
// @Tags 歌手
// @Accept json
// @Produce json
// @Param request body performer.CreatePerformerRequest true "歌手信息"
// @Success 201 {object} models.Performer
// @Success 200 {object} models.Performer "名称已存在，返回已有记录"
// @Failure 400 {object} response.ErrorBody
// @Router /api/performers [post]
func (h *Handler) Create(c *gin.Context) {
	var req performersvc.CreatePerformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	performer, created, err := h.service.Create(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}
	if created {
		response.Created(c, performer)
		return
	}
	response.OK(c, performer)
}

// List 获取歌手列表
// @Summary 获取歌手列表
// @Tags 歌手
// @Produce json
// @Success 200 {array} models.Performer
// @Router /api/performers [get]
func (h *Handler) List(c *gin.Context) {
	performers, err := h.service.List(c.Request.Context())
	if handler.HandleError(c, err) {
		return
	}
	response.OK(c, performers)
}

// Get 获取歌手详情
// @Summary 获取歌手详情
// @Tags 歌手
// @Produce json
// @Param id path int true "歌手ID"
// @Success 200 {object} models.Performer
// @Failure 404 {object} response.ErrorBody
// @Router /api/performers/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌手")
	if !ok {
		return
	}

	performer, err := h.service.Get(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}
	response.OK(c, performer)
}

// Update 更新歌手
// @Summary 更新歌手
// @Description 整体替换歌手字段
// @Tags 歌手
// @Accept json
// @Produce json
// @Param id path int true "歌手ID"
// @Param request body performer.UpdatePerformerRequest true "歌手信息"
// @Success 200 {object} models.Performer
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /api/performers/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌手")
	if !ok {
		return
	}

	var req performersvc.UpdatePerformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	performer, err := h.service.Update(c.Request.Context(), id, &req)
	if handler.HandleError(c, err) {
		return
	}
	response.OK(c, performer)
}

// Delete 删除歌手
// @Summary 删除歌手
// @Description 默认策略下仍有歌词引用的歌手不可删除
// @Tags 歌手
// @Param id path int true "歌手ID"
// @Success 204
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /api/performers/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌手")
	if !ok {
		return
	}

	if handler.HandleError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}
	response.NoContent(c)
}

// ListLyrics 获取歌手的全部歌词
// @Summary 获取歌手的全部歌词
// @Tags 歌手
// @Produce json
// @Param id path int true "歌手ID"
// @Success 200 {array} models.Lyric
// @Failure 404 {object} response.ErrorBody
// @Router /api/performers/{id}/lyrics [get]
func (h *Handler) ListLyrics(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌手")
	if !ok {
		return
	}

	lyrics, err := h.service.ListLyrics(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}
	response.OK(c, lyrics)
}
