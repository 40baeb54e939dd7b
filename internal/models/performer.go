package models

import (
	"time"
)

// 字段长度上限
const (
	PerformerNameMaxLen  = 100
	PerformerGenreMaxLen = 50
)

// Performer 歌手模型
type Performer struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"performerId"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	Genre     *string   `gorm:"type:varchar(50)" json:"genre,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 关联
	Lyrics []Lyric `gorm:"foreignKey:PerformerID" json:"-"`
}

// TableName 表名
func (Performer) TableName() string {
	return "performers"
}
