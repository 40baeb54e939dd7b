package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/verselab/lyrics-backend/internal/models"
)

// setupTestDB 返回一个用于测试的 SQLite 内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err, "failed to connect to test database")

	err = db.AutoMigrate(
		&models.Performer{},
		&models.Lyric{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// createPerformer 测试辅助：直接写入一名歌手
func createPerformer(t *testing.T, db *gorm.DB, name string) *models.Performer {
	t.Helper()
	p := &models.Performer{Name: name}
	require.NoError(t, db.Create(p).Error)
	return p
}

// createLyric 测试辅助：直接写入一条歌词
func createLyric(t *testing.T, db *gorm.DB, performerID int64, title, words, language string, year *int) *models.Lyric {
	t.Helper()
	l := &models.Lyric{
		PerformerID: performerID,
		SongTitle:   title,
		Words:       words,
		Language:    language,
		Year:        year,
	}
	require.NoError(t, db.Create(l).Error)
	return l
}
