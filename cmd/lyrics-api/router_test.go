package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/verselab/lyrics-backend/internal/common/config"
	"github.com/verselab/lyrics-backend/internal/models"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, db.AutoMigrate(&models.Performer{}, &models.Lyric{}))

	cfg := &config.Config{
		Server: config.ServerConfig{Name: "lyrics-backend", Mode: "test", Port: 0},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type"},
		},
		Catalog: config.CatalogConfig{
			ConflictPolicy:  config.ConflictPolicyFetch,
			DeletePolicy:    config.DeletePolicyRestrict,
			DefaultPageSize: 50,
			MaxPageSize:     100,
		},
	}

	setupRouter(r, cfg, zap.NewNop(), db)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// TestCatalogFlow 覆盖一次完整的录入、查询与删除流程
func TestCatalogFlow(t *testing.T) {
	r := setupTestRouter(t)

	// 创建歌手
	w := doJSON(t, r, http.MethodPost, "/api/performers", gin.H{
		"name":  "Nirvana",
		"genre": "Grunge",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	performer := decodeBody(t, w)
	performerID := performer["performerId"].(float64)
	assert.Equal(t, "Nirvana", performer["name"])
	assert.Equal(t, "Grunge", performer["genre"])

	// 创建歌词
	w = doJSON(t, r, http.MethodPost, "/api/lyrics", gin.H{
		"performerId": performerID,
		"songTitle":   "Smells Like Teen Spirit",
		"words":       "Load up on guns, bring your friends",
		"language":    "EN",
		"year":        1991,
		"classic":     "true",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	lyric := decodeBody(t, w)
	lyricID := lyric["lyricId"].(float64)
	assert.Equal(t, true, lyric["classic"])

	// 详情携带歌手
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/lyrics/%.0f", lyricID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	lyric = decodeBody(t, w)
	nested, ok := lyric["performer"].(map[string]interface{})
	require.True(t, ok, "expected nested performer, body: %s", w.Body.String())
	assert.Equal(t, "Nirvana", nested["name"])

	// 仍有歌词引用，删除歌手被拒绝
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/performers/%.0f", performerID), nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.NotEmpty(t, body["message"])

	// 先删歌词
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/lyrics/%.0f", lyricID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 再删歌手
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/performers/%.0f", performerID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	// 已删除
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/performers/%.0f", performerID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePerformer_DuplicateReturnsExisting(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/performers", gin.H{"name": "Queen"})
	require.Equal(t, http.StatusCreated, w.Code)
	first := decodeBody(t, w)

	// fetch 策略：重名返回已有记录，状态码 200
	w = doJSON(t, r, http.MethodPost, "/api/performers", gin.H{"name": "Queen"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decodeBody(t, w)
	assert.Equal(t, first["performerId"], second["performerId"])
}

func TestListLyrics_PaginationEnvelope(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/performers", gin.H{"name": "Nirvana"})
	require.Equal(t, http.StatusCreated, w.Code)
	performerID := decodeBody(t, w)["performerId"].(float64)

	for i := 0; i < 3; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/lyrics", gin.H{
			"performerId": performerID,
			"songTitle":   fmt.Sprintf("Track %d", i),
			"words":       "some words",
			"language":    "EN",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/lyrics?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["total"])
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 2, body["pageSize"])
	items, ok := body["items"].([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestListLyrics_LegacyAliases(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/performers", gin.H{"name": "Nirvana"})
	require.Equal(t, http.StatusCreated, w.Code)
	performerID := decodeBody(t, w)["performerId"].(float64)

	w = doJSON(t, r, http.MethodPost, "/api/lyrics", gin.H{
		"performerId": performerID,
		"songTitle":   "Smells Like Teen Spirit",
		"words":       "Load up on guns",
		"language":    "EN",
		"year":        1991,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// releaseDate 等价于 era
	w = doJSON(t, r, http.MethodGet, "/api/lyrics?releaseDate=1991", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	// songTitle 等价于 text，且匹配歌手名
	w = doJSON(t, r, http.MethodGet, "/api/lyrics?songTitle=nirvana", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["total"])

	// era 非整数返回 400
	w = doJSON(t, r, http.MethodGet, "/api/lyrics?era=nineties", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidIDReturnsBadRequest(t *testing.T) {
	r := setupTestRouter(t)

	for _, path := range []string{
		"/api/performers/abc",
		"/api/performers/0",
		"/api/performers/-1",
		"/api/lyrics/abc",
		"/api/lyrics/0",
	} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "path %s", path)
	}
}

func TestAdminEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	// 批量导入
	payload := "Nirvana;Smells Like Teen Spirit;EN;Load up on guns\n" +
		"Queen;Bohemian Rhapsody;EN;Is this the real life\n"
	req := httptest.NewRequest(http.MethodPost, "/api/admin/lyrics/import", strings.NewReader(payload))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.EqualValues(t, 2, body["performers"])
	assert.EqualValues(t, 2, body["lyrics"])

	// 超过 1MB 的导入请求体被拒绝
	huge := strings.NewReader(strings.Repeat("a", 1<<20+1))
	req = httptest.NewRequest(http.MethodPost, "/api/admin/lyrics/import", huge)
	req.Header.Set("Content-Type", "text/plain")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// 清库
	w = doJSON(t, r, http.MethodPost, "/api/admin/reset", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/performers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var performers []interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &performers))
	assert.Empty(t, performers)

	// 种子数据幂等
	w = doJSON(t, r, http.MethodPost, "/api/admin/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["skipped"])

	w = doJSON(t, r, http.MethodPost, "/api/admin/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["skipped"])
}

func TestHealthAndNoRoute(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["message"])
}
