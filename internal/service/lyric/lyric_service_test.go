package lyric

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/verselab/lyrics-backend/internal/common/config"
	apperrors "github.com/verselab/lyrics-backend/internal/common/errors"
	"github.com/verselab/lyrics-backend/internal/models"
	"github.com/verselab/lyrics-backend/internal/repository"
)

func setupService(t *testing.T) (*LyricService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Performer{}, &models.Lyric{}))

	catalog := &config.CatalogConfig{
		ConflictPolicy:  config.ConflictPolicyFetch,
		DeletePolicy:    config.DeletePolicyRestrict,
		DefaultPageSize: 50,
		MaxPageSize:     100,
	}

	lyricRepo := repository.NewLyricRepository(db)
	performerRepo := repository.NewPerformerRepository(db)
	return NewLyricService(lyricRepo, performerRepo, catalog), db
}

func createPerformer(t *testing.T, db *gorm.DB, name string) *models.Performer {
	t.Helper()
	p := &models.Performer{Name: name}
	require.NoError(t, db.Create(p).Error)
	return p
}

func validCreateRequest(performerID int64) *CreateLyricRequest {
	return &CreateLyricRequest{
		PerformerID: performerID,
		SongTitle:   "Smells Like Teen Spirit",
		Words:       "Load up on guns, bring your friends",
		Language:    "EN",
	}
}

func TestLyricService_Create(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	nirvana := createPerformer(t, db, "Nirvana")

	req := validCreateRequest(nirvana.ID)
	req.Classic = "True"
	lyric, err := svc.Create(ctx, req)
	require.NoError(t, err)
	assert.NotZero(t, lyric.ID)
	assert.Equal(t, "Smells Like Teen Spirit", lyric.SongTitle)
	// 返回值携带歌手
	require.NotNil(t, lyric.Performer)
	assert.Equal(t, "Nirvana", lyric.Performer.Name)
	// 宽松布尔解析
	require.NotNil(t, lyric.Classic)
	assert.True(t, *lyric.Classic)
}

func TestLyricService_Create_UnknownPerformer(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateRequest(9999))
	assert.ErrorIs(t, err, apperrors.ErrPerformerNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Lyric{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestLyricService_Create_Validation(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	nirvana := createPerformer(t, db, "Nirvana")

	cases := []struct {
		name    string
		mutate  func(*CreateLyricRequest)
		wantErr error
	}{
		{
			name:    "歌名为空",
			mutate:  func(r *CreateLyricRequest) { r.SongTitle = "  " },
			wantErr: apperrors.ErrLyricTitleRequired,
		},
		{
			name:    "歌名超长",
			mutate:  func(r *CreateLyricRequest) { r.SongTitle = strings.Repeat("a", 101) },
			wantErr: apperrors.ErrLyricTitleTooLong,
		},
		{
			name:    "歌词为空",
			mutate:  func(r *CreateLyricRequest) { r.Words = "" },
			wantErr: apperrors.ErrLyricWordsRequired,
		},
		{
			name:    "歌词超长",
			mutate:  func(r *CreateLyricRequest) { r.Words = strings.Repeat("a", 501) },
			wantErr: apperrors.ErrLyricWordsTooLong,
		},
		{
			name:    "语言为空",
			mutate:  func(r *CreateLyricRequest) { r.Language = " " },
			wantErr: apperrors.ErrLyricLanguageRequired,
		},
		{
			name:    "语言超长",
			mutate:  func(r *CreateLyricRequest) { r.Language = strings.Repeat("a", 11) },
			wantErr: apperrors.ErrLyricLanguageTooLong,
		},
		{
			name:    "歌手ID非正",
			mutate:  func(r *CreateLyricRequest) { r.PerformerID = 0 },
			wantErr: apperrors.ErrInvalidParams,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest(nirvana.ID)
			tc.mutate(req)
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// 边界值合法
	req := validCreateRequest(nirvana.ID)
	req.SongTitle = strings.Repeat("t", 100)
	req.Words = strings.Repeat("w", 500)
	req.Language = strings.Repeat("l", 10)
	_, err := svc.Create(ctx, req)
	assert.NoError(t, err)
}

func TestLyricService_Update_Partial(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	nirvana := createPerformer(t, db, "Nirvana")

	lyric, err := svc.Create(ctx, validCreateRequest(nirvana.ID))
	require.NoError(t, err)

	// 只改歌名，其余字段保持原值
	newTitle := "Come as You Are"
	updated, err := svc.Update(ctx, lyric.ID, &UpdateLyricRequest{SongTitle: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Come as You Are", updated.SongTitle)
	assert.Equal(t, lyric.Words, updated.Words)
	assert.Equal(t, lyric.Language, updated.Language)
	assert.Equal(t, nirvana.ID, updated.PerformerID)

	// 换歌手必须已存在
	ghost := int64(9999)
	_, err = svc.Update(ctx, lyric.ID, &UpdateLyricRequest{PerformerID: &ghost})
	assert.ErrorIs(t, err, apperrors.ErrPerformerNotFound)

	queen := createPerformer(t, db, "Queen")
	updated, err = svc.Update(ctx, lyric.ID, &UpdateLyricRequest{PerformerID: &queen.ID})
	require.NoError(t, err)
	assert.Equal(t, queen.ID, updated.PerformerID)

	// 更新时同样做字段校验
	long := strings.Repeat("a", 501)
	_, err = svc.Update(ctx, lyric.ID, &UpdateLyricRequest{Words: &long})
	assert.ErrorIs(t, err, apperrors.ErrLyricWordsTooLong)

	_, err = svc.Update(ctx, 9999, &UpdateLyricRequest{SongTitle: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrLyricNotFound)
}

func TestLyricService_Delete(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	nirvana := createPerformer(t, db, "Nirvana")

	lyric, err := svc.Create(ctx, validCreateRequest(nirvana.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, lyric.ID))
	assert.ErrorIs(t, svc.Delete(ctx, lyric.ID), apperrors.ErrLyricNotFound)
}

func TestLyricService_List_AliasesAndClamps(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	nirvana := createPerformer(t, db, "Nirvana")

	year1991 := 1991
	req := validCreateRequest(nirvana.ID)
	req.Year = &year1991
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	req2 := validCreateRequest(nirvana.ID)
	req2.SongTitle = "Come as You Are"
	year1992 := 1992
	req2.Year = &year1992
	_, err = svc.Create(ctx, req2)
	require.NoError(t, err)

	t.Run("era过滤", func(t *testing.T) {
		lyrics, total, page, pageSize, err := svc.List(ctx, &ListLyricsQuery{Era: "1991"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, lyrics, 1)
		assert.Equal(t, "Smells Like Teen Spirit", lyrics[0].SongTitle)
		assert.Equal(t, 1, page)
		assert.Equal(t, 50, pageSize)
	})

	t.Run("releaseDate是era的别名", func(t *testing.T) {
		_, total, _, _, err := svc.List(ctx, &ListLyricsQuery{ReleaseDate: "1992"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("era优先于releaseDate", func(t *testing.T) {
		_, total, _, _, err := svc.List(ctx, &ListLyricsQuery{Era: "1991", ReleaseDate: "1992"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("era非整数返回参数错误", func(t *testing.T) {
		_, _, _, _, err := svc.List(ctx, &ListLyricsQuery{Era: "nineties"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidParams)
	})

	t.Run("songTitle是text的别名", func(t *testing.T) {
		lyrics, total, _, _, err := svc.List(ctx, &ListLyricsQuery{SongTitle: "come as"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, lyrics, 1)
		assert.Equal(t, "Come as You Are", lyrics[0].SongTitle)
	})

	t.Run("分页参数钳制", func(t *testing.T) {
		_, _, page, pageSize, err := svc.List(ctx, &ListLyricsQuery{Page: -3, PageSize: 0})
		require.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, 50, pageSize)

		_, _, _, pageSize, err = svc.List(ctx, &ListLyricsQuery{Page: 1, PageSize: 500})
		require.NoError(t, err)
		assert.Equal(t, 100, pageSize)
	})
}

func TestLyricService_Get(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	nirvana := createPerformer(t, db, "Nirvana")

	lyric, err := svc.Create(ctx, validCreateRequest(nirvana.ID))
	require.NoError(t, err)

	got, err := svc.Get(ctx, lyric.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Performer)
	assert.Equal(t, "Nirvana", got.Performer.Name)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrLyricNotFound)
}
