package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CATALOG_TEST_PORT", "9090")
	assert.Equal(t, "9090", getEnv("CATALOG_TEST_PORT", "8080"))
	assert.Equal(t, "8080", getEnv("CATALOG_TEST_MISSING", "8080"))
}

func TestGetBool(t *testing.T) {
	t.Setenv("CATALOG_TEST_FLAG", "false")
	assert.False(t, getBool("CATALOG_TEST_FLAG", true))

	t.Setenv("CATALOG_TEST_FLAG", "not-a-bool")
	assert.True(t, getBool("CATALOG_TEST_FLAG", true))

	assert.True(t, getBool("CATALOG_TEST_UNSET", true))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("DB_URL", "file::memory:")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("EDITORS_EDIT_OTHERS", "0")

	cfg := LoadEnv()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "file::memory:", cfg.DBURL)
	assert.Equal(t, "ja", cfg.CanonicalLang)
	assert.False(t, cfg.EditorsEditOthers)
	assert.Equal(t, "admin", cfg.LockOverrideRole)
}
