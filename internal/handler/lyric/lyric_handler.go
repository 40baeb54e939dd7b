// Package lyric 提供歌词相关的 HTTP 接口
package lyric

import (
	"github.com/gin-gonic/gin"

	"github.com/verselab/lyrics-backend/internal/common/handler"
	"github.com/verselab/lyrics-backend/internal/common/response"
	lyricsvc "github.com/verselab/lyrics-backend/internal/service/lyric"
)

// Handler 歌词接口处理器
type Handler struct {
	service *lyricsvc.LyricService
}

// NewHandler 创建歌词接口处理器
func NewHandler(service *lyricsvc.LyricService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes 注册歌词路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/lyrics")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

// Create 创建歌词
// @Summary 创建歌词
// @Description 创建歌词，performerId 必须指向已存在的歌手
// @Tags 歌词
// @Accept json
// @Produce json
// @Param request body lyric.CreateLyricRequest true "歌词信息"
// @Success 201 {object} models.Lyric
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody "歌手不存在"
// @Failure 409 {object} response.ErrorBody
// @Router /api/lyrics [post]
func (h *Handler) Create(c *gin.Context) {
	var req lyricsvc.CreateLyricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	lyric, err := h.service.Create(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}
	response.Created(c, lyric)
}

// List 分页查询歌词
// @Summary 分页查询歌词
// @Description 支持按语言、年代（era，兼容 releaseDate）与全文关键字（text，兼容 songTitle）过滤
// @Tags 歌词
// @Produce json
// @Param language query string false "语言"
// @Param era query int false "发行年份"
// @Param text query string false "关键字，匹配标题、歌词正文与歌手名"
// @Param page query int false "页码，从 1 开始"
// @Param pageSize query int false "每页条数，默认 50，最大 100"
// @Success 200 {object} response.PageData
// @Failure 400 {object} response.ErrorBody
// @Router /api/lyrics [get]
func (h *Handler) List(c *gin.Context) {
	var query lyricsvc.ListLyricsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "查询参数格式错误")
		return
	}

	lyrics, total, page, pageSize, err := h.service.List(c.Request.Context(), &query)
	if handler.HandleError(c, err) {
		return
	}
	response.Page(c, lyrics, total, page, pageSize)
}

// Get 获取歌词详情
// @Summary 获取歌词详情
// @Tags 歌词
// @Produce json
// @Param id path int true "歌词ID"
// @Success 200 {object} models.Lyric
// @Failure 404 {object} response.ErrorBody
// @Router /api/lyrics/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌词")
	if !ok {
		return
	}

	lyric, err := h.service.Get(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}
	response.OK(c, lyric)
}

// Update 更新歌词
// @Summary 更新歌词
// @Description 部分更新，未出现的字段保持原值
// @Tags 歌词
// @Accept json
// @Produce json
// @Param id path int true "歌词ID"
// @Param request body lyric.UpdateLyricRequest true "歌词信息"
// @Success 200 {object} models.Lyric
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /api/lyrics/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌词")
	if !ok {
		return
	}

	var req lyricsvc.UpdateLyricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求体格式错误")
		return
	}

	lyric, err := h.service.Update(c.Request.Context(), id, &req)
	if handler.HandleError(c, err) {
		return
	}
	response.OK(c, lyric)
}

// Delete 删除歌词
// @Summary 删除歌词
// @Tags 歌词
// @Param id path int true "歌词ID"
// @Success 204
// @Failure 404 {object} response.ErrorBody
// @Router /api/lyrics/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c, "歌词")
	if !ok {
		return
	}

	if handler.HandleError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}
	response.NoContent(c)
}
