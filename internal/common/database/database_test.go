package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verselab/lyrics-backend/internal/common/config"
)

func TestInit_SQLite(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: 1,
	}

	db, err := Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())

	assert.NoError(t, Close(db))
}

func TestInit_UnsupportedDriver(t *testing.T) {
	cfg := &config.DatabaseConfig{Driver: "oracle"}
	db, err := Init(cfg)
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestClose_NilHandle(t *testing.T) {
	assert.NoError(t, Close(nil))
}
