// Package lyric 提供歌词业务服务
package lyric

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/verselab/lyrics-backend/internal/common/config"
	apperrors "github.com/verselab/lyrics-backend/internal/common/errors"
	"github.com/verselab/lyrics-backend/internal/common/handler"
	"github.com/verselab/lyrics-backend/internal/common/tracing"
	"github.com/verselab/lyrics-backend/internal/models"
	"github.com/verselab/lyrics-backend/internal/repository"
)

// LyricService 歌词服务
type LyricService struct {
	lyricRepo     *repository.LyricRepository
	performerRepo *repository.PerformerRepository
	catalog       *config.CatalogConfig
}

// NewLyricService 创建歌词服务
func NewLyricService(
	lyricRepo *repository.LyricRepository,
	performerRepo *repository.PerformerRepository,
	catalog *config.CatalogConfig,
) *LyricService {
	return &LyricService{
		lyricRepo:     lyricRepo,
		performerRepo: performerRepo,
		catalog:       catalog,
	}
}

// CreateLyricRequest 创建歌词请求
type CreateLyricRequest struct {
	PerformerID int64       `json:"performerId" binding:"required"`
	SongTitle   string      `json:"songTitle" binding:"required"`
	Words       string      `json:"words" binding:"required"`
	Language    string      `json:"language" binding:"required"`
	Link        *string     `json:"link"`
	ImageLink   *string     `json:"imageLink"`
	PreviewLink *string     `json:"previewLink"`
	Popularity  *int        `json:"popularity"`
	Year        *int        `json:"year"`
	Classic     interface{} `json:"classic"`
}

// UpdateLyricRequest 更新歌词请求，未出现的字段保持原值
type UpdateLyricRequest struct {
	PerformerID *int64      `json:"performerId"`
	SongTitle   *string     `json:"songTitle"`
	Words       *string     `json:"words"`
	Language    *string     `json:"language"`
	Link        *string     `json:"link"`
	ImageLink   *string     `json:"imageLink"`
	PreviewLink *string     `json:"previewLink"`
	Popularity  *int        `json:"popularity"`
	Year        *int        `json:"year"`
	Classic     interface{} `json:"classic"`
}

// ListLyricsQuery 歌词列表查询参数
// releaseDate 与 songTitle 是旧版客户端的参数名，分别等价于 era 与 text
type ListLyricsQuery struct {
	Language    string `form:"language"`
	Era         string `form:"era"`
	ReleaseDate string `form:"releaseDate"`
	Text        string `form:"text"`
	SongTitle   string `form:"songTitle"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.ErrLyricTitleRequired
	}
	if utf8.RuneCountInString(title) > models.LyricTitleMaxLen {
		return "", apperrors.ErrLyricTitleTooLong
	}
	return title, nil
}

func validateWords(words string) (string, error) {
	words = strings.TrimSpace(words)
	if words == "" {
		return "", apperrors.ErrLyricWordsRequired
	}
	if utf8.RuneCountInString(words) > models.LyricWordsMaxLen {
		return "", apperrors.ErrLyricWordsTooLong
	}
	return words, nil
}

func validateLanguage(language string) (string, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return "", apperrors.ErrLyricLanguageRequired
	}
	if utf8.RuneCountInString(language) > models.LyricLanguageMaxLen {
		return "", apperrors.ErrLyricLanguageTooLong
	}
	return language, nil
}

// Create 创建歌词，歌手必须已存在
func (s *LyricService) Create(ctx context.Context, req *CreateLyricRequest) (*models.Lyric, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "LyricService.Create")
	defer span.End()
	span.SetAttributes(tracing.WithPerformerID(req.PerformerID))

	if req.PerformerID <= 0 {
		return nil, apperrors.ErrInvalidParams.WithMessage("performerId 必须为正整数")
	}

	title, err := validateTitle(req.SongTitle)
	if err != nil {
		return nil, err
	}
	words, err := validateWords(req.Words)
	if err != nil {
		return nil, err
	}
	language, err := validateLanguage(req.Language)
	if err != nil {
		return nil, err
	}

	// 先查歌手，存储层外键约束只作兜底
	if _, err := s.performerRepo.GetByID(ctx, req.PerformerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPerformerNotFound
		}
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}

	lyric := &models.Lyric{
		PerformerID: req.PerformerID,
		SongTitle:   title,
		Words:       words,
		Language:    language,
		Link:        req.Link,
		ImageLink:   req.ImageLink,
		PreviewLink: req.PreviewLink,
		Popularity:  req.Popularity,
		Year:        req.Year,
	}
	if b, ok := handler.ParseBoolToken(req.Classic); ok {
		lyric.Classic = b
	}

	if err := s.lyricRepo.Create(ctx, lyric); err != nil {
		return nil, classifyLyricErr(err)
	}
	created, err := s.lyricRepo.GetByIDWithPerformer(ctx, lyric.ID)
	if err != nil {
		return nil, classifyLyricErr(err)
	}
	return created, nil
}

// Get 获取歌词详情（携带歌手）
func (s *LyricService) Get(ctx context.Context, id int64) (*models.Lyric, error) {
	lyric, err := s.lyricRepo.GetByIDWithPerformer(ctx, id)
	if err != nil {
		return nil, classifyLyricErr(err)
	}
	return lyric, nil
}

// resolveAlias 同义参数取第一个非空者
func resolveAlias(primary, legacy string) string {
	primary = strings.TrimSpace(primary)
	if primary != "" {
		return primary
	}
	return strings.TrimSpace(legacy)
}

// List 按条件分页查询歌词
func (s *LyricService) List(ctx context.Context, query *ListLyricsQuery) ([]*models.Lyric, int64, int, int, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "LyricService.List")
	defer span.End()
	span.SetAttributes(tracing.WithOperation("list"))

	filters := repository.LyricFilters{
		Language: strings.TrimSpace(query.Language),
		Text:     resolveAlias(query.Text, query.SongTitle),
	}

	if era := resolveAlias(query.Era, query.ReleaseDate); era != "" {
		year, err := strconv.Atoi(era)
		if err != nil {
			return nil, 0, 0, 0, apperrors.ErrInvalidParams.WithMessage("era 必须为整数年份")
		}
		filters.Year = &year
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = s.catalog.DefaultPageSize
	}
	if pageSize > s.catalog.MaxPageSize {
		pageSize = s.catalog.MaxPageSize
	}

	lyrics, total, err := s.lyricRepo.List(ctx, &filters, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, 0, 0, apperrors.ErrDatabaseError.WithError(err)
	}
	return lyrics, total, page, pageSize, nil
}

// Update 部分更新歌词
func (s *LyricService) Update(ctx context.Context, id int64, req *UpdateLyricRequest) (*models.Lyric, error) {
	lyric, err := s.lyricRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classifyLyricErr(err)
	}

	if req.PerformerID != nil {
		if *req.PerformerID <= 0 {
			return nil, apperrors.ErrInvalidParams.WithMessage("performerId 必须为正整数")
		}
		if _, err := s.performerRepo.GetByID(ctx, *req.PerformerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrPerformerNotFound
			}
			return nil, apperrors.ErrDatabaseError.WithError(err)
		}
		lyric.PerformerID = *req.PerformerID
	}
	if req.SongTitle != nil {
		title, err := validateTitle(*req.SongTitle)
		if err != nil {
			return nil, err
		}
		lyric.SongTitle = title
	}
	if req.Words != nil {
		words, err := validateWords(*req.Words)
		if err != nil {
			return nil, err
		}
		lyric.Words = words
	}
	if req.Language != nil {
		language, err := validateLanguage(*req.Language)
		if err != nil {
			return nil, err
		}
		lyric.Language = language
	}
	if req.Link != nil {
		lyric.Link = req.Link
	}
	if req.ImageLink != nil {
		lyric.ImageLink = req.ImageLink
	}
	if req.PreviewLink != nil {
		lyric.PreviewLink = req.PreviewLink
	}
	if req.Popularity != nil {
		lyric.Popularity = req.Popularity
	}
	if req.Year != nil {
		lyric.Year = req.Year
	}
	if b, ok := handler.ParseBoolToken(req.Classic); ok {
		lyric.Classic = b
	}

	if err := s.lyricRepo.Update(ctx, lyric); err != nil {
		return nil, classifyLyricErr(err)
	}
	updated, err := s.lyricRepo.GetByIDWithPerformer(ctx, lyric.ID)
	if err != nil {
		return nil, classifyLyricErr(err)
	}
	return updated, nil
}

// Delete 删除歌词
func (s *LyricService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.GetTracer().Start(ctx, "LyricService.Delete")
	defer span.End()
	span.SetAttributes(tracing.WithLyricID(id))

	if _, err := s.lyricRepo.GetByID(ctx, id); err != nil {
		return classifyLyricErr(err)
	}
	if err := s.lyricRepo.Delete(ctx, id); err != nil {
		return classifyLyricErr(err)
	}
	return nil
}

// classifyLyricErr 把存储层错误归类为业务错误
func classifyLyricErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrLyricNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.ErrLyricPerformerRef
	default:
		return apperrors.ErrDatabaseError.WithError(err)
	}
}
