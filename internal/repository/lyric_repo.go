// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"

	"github.com/verselab/lyrics-backend/internal/models"
)

// LyricFilters 歌词列表过滤条件
// 零值字段不产生谓词；所有谓词以 AND 连接
type LyricFilters struct {
	Language string
	Year     *int
	Text     string
}

// LyricRepository 歌词仓储
type LyricRepository struct {
	db *gorm.DB
}

// NewLyricRepository 创建歌词仓储
func NewLyricRepository(db *gorm.DB) *LyricRepository {
	return &LyricRepository{db: db}
}

// Create 创建歌词
func (r *LyricRepository) Create(ctx context.Context, lyric *models.Lyric) error {
	return r.db.WithContext(ctx).Create(lyric).Error
}

// GetByID 根据 ID 获取歌词
func (r *LyricRepository) GetByID(ctx context.Context, id int64) (*models.Lyric, error) {
	var lyric models.Lyric
	err := r.db.WithContext(ctx).First(&lyric, id).Error
	if err != nil {
		return nil, err
	}
	return &lyric, nil
}

// GetByIDWithPerformer 根据 ID 获取歌词（联歌手）
func (r *LyricRepository) GetByIDWithPerformer(ctx context.Context, id int64) (*models.Lyric, error) {
	var lyric models.Lyric
	err := r.db.WithContext(ctx).Preload("Performer").First(&lyric, id).Error
	if err != nil {
		return nil, err
	}
	return &lyric, nil
}

// Update 更新歌词
func (r *LyricRepository) Update(ctx context.Context, lyric *models.Lyric) error {
	return r.db.WithContext(ctx).Save(lyric).Error
}

// Delete 删除歌词
func (r *LyricRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Lyric{}, id).Error
}

// ListByPerformer 获取某歌手的全部歌词，按 ID 升序
func (r *LyricRepository) ListByPerformer(ctx context.Context, performerID int64) ([]*models.Lyric, error) {
	lyrics := make([]*models.Lyric, 0)
	err := r.db.WithContext(ctx).
		Where("performer_id = ?", performerID).
		Order("id ASC").
		Find(&lyrics).Error
	return lyrics, err
}

// List 过滤 + 分页查询歌词列表
// 过滤谓词按固定顺序逐个追加，全部通过参数占位符绑定；
// 统计总数与取页共用同一条件链，保证 WHERE 子句一致
func (r *LyricRepository) List(ctx context.Context, filters *LyricFilters, offset, limit int) ([]*models.Lyric, int64, error) {
	lyrics := make([]*models.Lyric, 0)
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Lyric{}).
		Joins("JOIN performers ON performers.id = lyrics.performer_id")

	if filters != nil {
		if filters.Language != "" {
			query = query.Where("lyrics.language = ?", filters.Language)
		}
		if filters.Year != nil {
			query = query.Where("lyrics.year = ?", *filters.Year)
		}
		if filters.Text != "" {
			// 歌名、歌词、歌手名三路子条件共享同一个绑定值
			pattern := "%" + strings.ToLower(filters.Text) + "%"
			query = query.Where(
				"LOWER(lyrics.song_title) LIKE @text OR LOWER(lyrics.words) LIKE @text OR LOWER(performers.name) LIKE @text",
				sql.Named("text", pattern),
			)
		}
	}

	// 统计总数（不含分页）
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 查询列表，按 ID 升序保证跨页稳定
	if err := query.Order("lyrics.id ASC").Offset(offset).Limit(limit).Find(&lyrics).Error; err != nil {
		return nil, 0, err
	}

	return lyrics, total, nil
}
