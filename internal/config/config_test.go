package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Preview.Locale)
	assert.Nil(t, cfg.Export.Dir)

	_, err = LoadConfig("")
	require.Error(t, err)
}

func TestLoadConfigValues(t *testing.T) {
	path := writeConfig(t, `
[preview]
locale = "de"
generate = 50
seed = 9

[export]
dir = "/tmp/out"

[[catalog.field]]
id = "amount"
name = "Amount"
type = "number"

[[catalog.field]]
id = "city"
type = "TEXT"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Preview.Locale)
	assert.Equal(t, "de", *cfg.Preview.Locale)
	assert.Equal(t, 50, *cfg.Preview.Generate)
	assert.Equal(t, int64(9), *cfg.Preview.Seed)
	assert.Equal(t, "/tmp/out", *cfg.Export.Dir)

	cat, err := cfg.BuildCatalog()
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())
	city, err := cat.Resolve("city")
	require.NoError(t, err)
	assert.Equal(t, "city", city.Name)
	assert.Equal(t, model.TypeText, city.Type)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[preview]\nlocal = \"en\"\n"))
	require.ErrorContains(t, err, "preview.local")
}

func TestBuildCatalog(t *testing.T) {
	cat, err := FileConfig{}.BuildCatalog()
	require.NoError(t, err)
	assert.True(t, cat.Has("sales_amount"))

	bad := FileConfig{Catalog: CatalogConfig{Fields: []FieldConfig{{ID: "x", Type: "money"}}}}
	_, err = bad.BuildCatalog()
	require.Error(t, err)

	dup := FileConfig{Catalog: CatalogConfig{Fields: []FieldConfig{{ID: "x", Type: "text"}, {ID: "x", Type: "text"}}}}
	_, err = dup.BuildCatalog()
	require.Error(t, err)
}

func TestPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "reportcraft", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "reportcraft", "reportcraft.db"), DefaultDBPath())
	assert.Equal(t, filepath.Join("/data", "reportcraft", "exports"), DefaultExportDir())
}

func TestDefaultTemplateDecodes(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, DefaultTemplate()))
	require.NoError(t, err)
	assert.Nil(t, cfg.Preview.Locale)
	assert.Empty(t, cfg.Catalog.Fields)
}
