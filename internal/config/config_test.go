package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, "schedule", cfg.ScheduleKey)
	assert.Equal(t, "wbs", cfg.WBSKey)
	assert.Empty(t, cfg.StoreURL)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{
		// remote mode
		"store_url": "https://planner.example.com",
		"schedule_key": "proj-42/schedule",
		"project_start": "2024-03-04",
	}`)

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "https://planner.example.com", cfg.StoreURL)
	assert.Equal(t, "proj-42/schedule", cfg.ScheduleKey)
	assert.Equal(t, "2024-03-04", cfg.ProjectStart)
	assert.Equal(t, "wbs", cfg.WBSKey, "unset fields keep their defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"db_path": "/tmp/from-file.db"}`)
	t.Setenv("HORAE_DB", "/tmp/from-env.db")
	t.Setenv("HORAE_STORE_URL", "https://env.example.com")

	cfg, err := Load(dir, "")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, "https://env.example.com", cfg.StoreURL)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	_, err := Load(t.TempDir(), "nope.json")
	require.Error(t, err)
}

func TestLoad_InvalidDateRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"project_start": "04/03/2024"}`)

	_, err := Load(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project_start")
}

func TestLoad_MalformedJSONC(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"store_url": `)

	_, err := Load(dir, "")
	require.Error(t, err)
}
