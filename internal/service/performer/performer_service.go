// Package performer 提供歌手业务服务
package performer

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/verselab/lyrics-backend/internal/common/config"
	apperrors "github.com/verselab/lyrics-backend/internal/common/errors"
	"github.com/verselab/lyrics-backend/internal/common/tracing"
	"github.com/verselab/lyrics-backend/internal/models"
	"github.com/verselab/lyrics-backend/internal/repository"
)

// PerformerService 歌手服务
type PerformerService struct {
	performerRepo *repository.PerformerRepository
	lyricRepo     *repository.LyricRepository
	catalog       *config.CatalogConfig
}

// NewPerformerService 创建歌手服务
func NewPerformerService(
	performerRepo *repository.PerformerRepository,
	lyricRepo *repository.LyricRepository,
	catalog *config.CatalogConfig,
) *PerformerService {
	return &PerformerService{
		performerRepo: performerRepo,
		lyricRepo:     lyricRepo,
		catalog:       catalog,
	}
}

// CreatePerformerRequest 创建歌手请求
type CreatePerformerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Genre *string `json:"genre"`
}

// UpdatePerformerRequest 更新歌手请求
type UpdatePerformerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Genre *string `json:"genre"`
}

// ValidateName 规范化并校验歌手名：去除首尾空白，非空，最长 100 字符
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.ErrPerformerNameRequired
	}
	if utf8.RuneCountInString(name) > models.PerformerNameMaxLen {
		return "", apperrors.ErrPerformerNameTooLong
	}
	return name, nil
}

// normalizeGenre 规范化可选的流派字段，空白等同缺省
func normalizeGenre(genre *string) *string {
	if genre == nil {
		return nil
	}
	g := strings.TrimSpace(*genre)
	if g == "" {
		return nil
	}
	return &g
}

// Create 创建歌手
// 名称冲突按部署配置的策略处理；返回值 created 为 false 表示命中已有行
func (s *PerformerService) Create(ctx context.Context, req *CreatePerformerRequest) (*models.Performer, bool, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "PerformerService.Create")
	defer span.End()

	name, err := ValidateName(req.Name)
	if err != nil {
		return nil, false, err
	}

	performer := &models.Performer{
		Name:  name,
		Genre: normalizeGenre(req.Genre),
	}

	switch s.catalog.ConflictPolicy {
	case config.ConflictPolicyUpsert:
		if err := s.performerRepo.UpsertByName(ctx, performer); err != nil {
			return nil, false, classifyPerformerErr(err)
		}
		return performer, true, nil
	default: // fetch
		created, err := s.performerRepo.CreateOrFetch(ctx, performer)
		if err != nil {
			return nil, false, classifyPerformerErr(err)
		}
		return performer, created, nil
	}
}

// Get 获取歌手详情
func (s *PerformerService) Get(ctx context.Context, id int64) (*models.Performer, error) {
	performer, err := s.performerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classifyPerformerErr(err)
	}
	return performer, nil
}

// List 获取歌手列表（字母序）
func (s *PerformerService) List(ctx context.Context) ([]*models.Performer, error) {
	performers, err := s.performerRepo.List(ctx)
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	return performers, nil
}

// Update 整体替换歌手字段
func (s *PerformerService) Update(ctx context.Context, id int64, req *UpdatePerformerRequest) (*models.Performer, error) {
	performer, err := s.performerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classifyPerformerErr(err)
	}

	name, err := ValidateName(req.Name)
	if err != nil {
		return nil, err
	}

	performer.Name = name
	performer.Genre = normalizeGenre(req.Genre)

	if err := s.performerRepo.Update(ctx, performer); err != nil {
		return nil, classifyPerformerErr(err)
	}
	return performer, nil
}

// Delete 删除歌手
// restrict 策略下仍被歌词引用时返回冲突；unconditional 策略直接删除
func (s *PerformerService) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.GetTracer().Start(ctx, "PerformerService.Delete")
	defer span.End()
	span.SetAttributes(tracing.WithPerformerID(id))

	if _, err := s.performerRepo.GetByID(ctx, id); err != nil {
		return classifyPerformerErr(err)
	}

	if s.catalog.DeletePolicy != config.DeletePolicyUnconditional {
		count, err := s.performerRepo.CountLyrics(ctx, id)
		if err != nil {
			return apperrors.ErrDatabaseError.WithError(err)
		}
		if count > 0 {
			return apperrors.ErrPerformerReferenced
		}
	}

	if err := s.performerRepo.Delete(ctx, id); err != nil {
		return classifyPerformerErr(err)
	}
	return nil
}

// ListLyrics 获取某歌手的全部歌词
func (s *PerformerService) ListLyrics(ctx context.Context, performerID int64) ([]*models.Lyric, error) {
	if _, err := s.performerRepo.GetByID(ctx, performerID); err != nil {
		return nil, classifyPerformerErr(err)
	}

	lyrics, err := s.lyricRepo.ListByPerformer(ctx, performerID)
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	return lyrics, nil
}

// classifyPerformerErr 把存储层错误归类为业务错误
func classifyPerformerErr(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrPerformerNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.ErrPerformerNameTaken
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// 存储引擎兜底的引用约束
		return apperrors.ErrPerformerReferenced
	default:
		return apperrors.ErrDatabaseError.WithError(err)
	}
}
