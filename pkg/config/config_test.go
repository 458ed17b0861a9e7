package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandkon/kon/internal/testutil"
)

func TestLoad_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  type: sqlite
storage:
  type: local
`
	configFile := testutil.WriteFile(t, dir, "config.yaml", content)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 2, cfg.Scheduler.SubTreeDepth)
	assert.Equal(t, 8, cfg.Scheduler.TaskCountMax)
}

func TestLoad_CustomValues(t *testing.T) {
	dir := t.TempDir()
	content := `
database:
  type: postgres
  host: db.example.com
  port: 5432
  database: kon
  user: admin
  password: secret
storage:
  type: local
  local_path: /tmp/storage
scheduler:
  sub_tree_depth: 3
  task_count_max: 16
`
	configFile := testutil.WriteFile(t, dir, "config.yaml", content)

	cfg, err := Load(configFile)
	require.NoError(t, err)

	assert.Equal(t, "db.example.com", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "kon", cfg.Database.Database)
	assert.Equal(t, 16, cfg.Scheduler.TaskCountMax)
}

func TestLoad_InvalidDatabaseType(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: oracle
storage:
  type: local
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	_, err = Load(configFile)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

// Note: Storage validation tests live in internal/storage.

func TestLoad_COSWithCredentials(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := `
database:
  type: postgres
  host: localhost
storage:
  type: cos
  bucket: test-bucket
  region: ap-guangzhou
  secret_id: test-id
  secret_key: test-key
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "cos", cfg.Storage.Type)
	assert.Equal(t, "test-bucket", cfg.Storage.Bucket)
}

func TestValidate_InvalidDatabaseType(t *testing.T) {
	cfg := &Config{
		Database:  DatabaseConfig{Type: "oracle"},
		Storage:   StorageConfig{Type: "local"},
		Scheduler: SchedulerConfig{SubTreeDepth: 2, TaskCountMax: 4},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database type")
}

func TestValidate_InvalidTaskCountMax(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Type: "sqlite"},
		Storage:  StorageConfig{Type: "local"},
		Scheduler: SchedulerConfig{
			SubTreeDepth: 2,
			TaskCountMax: 0,
		},
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "task_count_max must be at least 1")
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	// Should not return error, use defaults
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFromReader(t *testing.T) {
	content := []byte(`
database:
  type: mysql
  host: mysql.local
storage:
  type: local
`)
	cfg, err := LoadFromReader("yaml", content)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "mysql.local", cfg.Database.Host)
}
