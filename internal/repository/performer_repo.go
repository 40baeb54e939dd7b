// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verselab/lyrics-backend/internal/models"
)

// PerformerRepository 歌手仓储
type PerformerRepository struct {
	db *gorm.DB
}

// NewPerformerRepository 创建歌手仓储
func NewPerformerRepository(db *gorm.DB) *PerformerRepository {
	return &PerformerRepository{db: db}
}

// Create 创建歌手
func (r *PerformerRepository) Create(ctx context.Context, performer *models.Performer) error {
	return r.db.WithContext(ctx).Create(performer).Error
}

// GetByID 根据 ID 获取歌手
func (r *PerformerRepository) GetByID(ctx context.Context, id int64) (*models.Performer, error) {
	var performer models.Performer
	err := r.db.WithContext(ctx).First(&performer, id).Error
	if err != nil {
		return nil, err
	}
	return &performer, nil
}

// GetByName 按名称获取歌手（大小写不敏感）
func (r *PerformerRepository) GetByName(ctx context.Context, name string) (*models.Performer, error) {
	var performer models.Performer
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&performer).Error
	if err != nil {
		return nil, err
	}
	return &performer, nil
}

// List 获取歌手列表，按名称字母序
func (r *PerformerRepository) List(ctx context.Context) ([]*models.Performer, error) {
	// 空结果序列化为 [] 而非 null
	performers := make([]*models.Performer, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&performers).Error
	return performers, err
}

// Update 更新歌手
func (r *PerformerRepository) Update(ctx context.Context, performer *models.Performer) error {
	return r.db.WithContext(ctx).Save(performer).Error
}

// Delete 删除歌手
func (r *PerformerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Performer{}, id).Error
}

// CountLyrics 统计引用该歌手的歌词数量
func (r *PerformerRepository) CountLyrics(ctx context.Context, performerID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lyric{}).
		Where("performer_id = ?", performerID).
		Count(&count).Error
	return count, err
}

// UpsertByName 按名称幂等创建：名称冲突时覆盖已有行的可变字段
// 写入后重新读取，保证返回的是存储中的当前值
func (r *PerformerRepository) UpsertByName(ctx context.Context, performer *models.Performer) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"genre", "updated_at"}),
		}).
		Create(performer).Error
	if err != nil {
		return err
	}

	current, err := r.GetByName(ctx, performer.Name)
	if err != nil {
		return err
	}
	*performer = *current
	return nil
}

// CreateOrFetch 尝试创建歌手；名称冲突时不写入而查回已有行
// 返回 true 表示新建，false 表示行已存在
func (r *PerformerRepository) CreateOrFetch(ctx context.Context, performer *models.Performer) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(performer)
	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected == 0 {
		existing, err := r.GetByName(ctx, performer.Name)
		if err != nil {
			return false, err
		}
		*performer = *existing
		return false, nil
	}

	return true, nil
}
