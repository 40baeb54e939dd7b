package models

import (
	"time"
)

// 字段长度上限
const (
	LyricTitleMaxLen    = 100
	LyricWordsMaxLen    = 500
	LyricLanguageMaxLen = 10
)

// Lyric 歌词模型
// 可选列（链接、热度、年份、经典标记）统一为可空字段，
// 部署间的 schema 变体差异通过配置策略体现而非分表
type Lyric struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"lyricId"`
	PerformerID int64     `gorm:"index;not null" json:"performerId"`
	SongTitle   string    `gorm:"type:varchar(100);not null" json:"songTitle"`
	Words       string    `gorm:"type:varchar(500);not null" json:"words"`
	Language    string    `gorm:"type:varchar(10);not null" json:"language"`
	Link        *string   `gorm:"type:varchar(255)" json:"link,omitempty"`
	ImageLink   *string   `gorm:"type:varchar(255)" json:"imageLink,omitempty"`
	PreviewLink *string   `gorm:"type:varchar(255)" json:"previewLink,omitempty"`
	Popularity  *int      `json:"popularity,omitempty"`
	Year        *int      `json:"year,omitempty"`
	Classic     *bool     `json:"classic,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// 关联
	Performer *Performer `gorm:"foreignKey:PerformerID" json:"performer,omitempty"`
}

// TableName 表名
func (Lyric) TableName() string {
	return "lyrics"
}
