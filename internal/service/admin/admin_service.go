// Package admin 提供数据管理服务：批量导入、清库与种子数据
package admin

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	apperrors "github.com/verselab/lyrics-backend/internal/common/errors"
	"github.com/verselab/lyrics-backend/internal/common/tracing"
	"github.com/verselab/lyrics-backend/internal/models"
	"github.com/verselab/lyrics-backend/internal/repository"
	"github.com/verselab/lyrics-backend/internal/service/performer"
)

// AdminService 数据管理服务
type AdminService struct {
	db *gorm.DB
}

// NewAdminService 创建数据管理服务
func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ImportResult 批量导入结果
type ImportResult struct {
	Performers int `json:"performers"`
	Lyrics     int `json:"lyrics"`
}

// ImportLyrics 批量导入歌词
// 每行格式 performer;songTitle;language;words，整体一个事务，任一行出错全部回滚
func (s *AdminService) ImportLyrics(ctx context.Context, payload string) (*ImportResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "AdminService.ImportLyrics")
	defer span.End()
	span.SetAttributes(tracing.WithOperation("import"))

	lines := strings.Split(payload, "\n")

	type row struct {
		performerName string
		songTitle     string
		language      string
		words         string
	}
	rows := make([]row, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, ";", 4)
		if len(fields) < 4 {
			return nil, apperrors.ErrImportLineMalformed.WithMessage(
				fmt.Sprintf("第 %d 行格式错误，应为 performer;songTitle;language;words", i+1))
		}
		r := row{
			performerName: strings.TrimSpace(fields[0]),
			songTitle:     strings.TrimSpace(fields[1]),
			language:      strings.TrimSpace(fields[2]),
			words:         strings.TrimSpace(fields[3]),
		}
		if r.performerName == "" || r.songTitle == "" || r.language == "" || r.words == "" {
			return nil, apperrors.ErrImportLineMalformed.WithMessage(
				fmt.Sprintf("第 %d 行存在空字段", i+1))
		}
		if utf8.RuneCountInString(r.performerName) > models.PerformerNameMaxLen ||
			utf8.RuneCountInString(r.songTitle) > models.LyricTitleMaxLen ||
			utf8.RuneCountInString(r.language) > models.LyricLanguageMaxLen ||
			utf8.RuneCountInString(r.words) > models.LyricWordsMaxLen {
			return nil, apperrors.ErrImportLineMalformed.WithMessage(
				fmt.Sprintf("第 %d 行字段超长", i+1))
		}
		rows = append(rows, r)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrImportEmptyPayload
	}

	result := &ImportResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		performerRepo := repository.NewPerformerRepository(tx)
		lyricRepo := repository.NewLyricRepository(tx)

		for _, r := range rows {
			p := &models.Performer{Name: r.performerName}
			created, err := performerRepo.CreateOrFetch(ctx, p)
			if err != nil {
				return err
			}
			if created {
				result.Performers++
			}

			lyric := &models.Lyric{
				PerformerID: p.ID,
				SongTitle:   r.songTitle,
				Words:       r.words,
				Language:    r.language,
			}
			if err := lyricRepo.Create(ctx, lyric); err != nil {
				return err
			}
			result.Lyrics++
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	return result, nil
}

// Reset 清空全部歌词与歌手数据
func (s *AdminService) Reset(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先删歌词再删歌手，避免触碰引用约束
		if err := tx.Where("1 = 1").Delete(&models.Lyric{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.Performer{}).Error
	})
	if err != nil {
		return apperrors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// SeedResult 种子数据结果
type SeedResult struct {
	Performers int  `json:"performers"`
	Lyrics     int  `json:"lyrics"`
	Skipped    bool `json:"skipped"`
}

// seedEntry 内置示例数据
type seedEntry struct {
	performer string
	genre     string
	songTitle string
	language  string
	words     string
	year      int
}

var seedEntries = []seedEntry{
	{"Nirvana", "Grunge", "Smells Like Teen Spirit", "EN", "Load up on guns, bring your friends", 1991},
	{"Nirvana", "Grunge", "Come as You Are", "EN", "Come as you are, as you were", 1992},
	{"Queen", "Rock", "Bohemian Rhapsody", "EN", "Is this the real life, is this just fantasy", 1975},
	{"Edith Piaf", "Chanson", "La Vie en rose", "FR", "Des yeux qui font baisser les miens", 1947},
	{"Caetano Veloso", "MPB", "Sozinho", "PT", "As vezes no silencio da noite", 1998},
}

// Seed 写入内置示例数据；库中已有歌手时跳过，保证可重复调用
func (s *AdminService) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Performer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			result.Skipped = true
			return nil
		}

		performerRepo := repository.NewPerformerRepository(tx)
		lyricRepo := repository.NewLyricRepository(tx)
		for _, entry := range seedEntries {
			name, err := performer.ValidateName(entry.performer)
			if err != nil {
				return err
			}
			genre := entry.genre
			p := &models.Performer{Name: name, Genre: &genre}
			created, err := performerRepo.CreateOrFetch(ctx, p)
			if err != nil {
				return err
			}
			if created {
				result.Performers++
			}

			year := entry.year
			lyric := &models.Lyric{
				PerformerID: p.ID,
				SongTitle:   entry.songTitle,
				Words:       entry.words,
				Language:    entry.language,
				Year:        &year,
			}
			if err := lyricRepo.Create(ctx, lyric); err != nil {
				return err
			}
			result.Lyrics++
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	return result, nil
}
