package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "pipeline.yml"))
	require.NoError(t, err)
	assert.Equal(t, "input.dir", cfg.InputDir)
	assert.Equal(t, 1000000, cfg.Depth)
	assert.Equal(t, 19, cfg.Zstd.CompressionLvl)
	assert.Equal(t, "4G", cfg.JobMemory)
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yml")
	yml := `input: fastqs.dir
depth: 50000
seed: 100
job_threads: 8
job_memory: 16G
zstd:
  compression_lvl: 22
  job_threads: 12
md5sum:
  job_threads: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fastqs.dir", cfg.InputDir)
	assert.Equal(t, 50000, cfg.Depth)
	assert.Equal(t, 100, cfg.Seed)
	assert.Equal(t, 8, cfg.JobThreads)
	assert.Equal(t, "16G", cfg.JobMemory)
	assert.Equal(t, 22, cfg.Zstd.CompressionLvl)
	assert.Equal(t, 12, cfg.Zstd.Threads)
	assert.Equal(t, 2, cfg.MD5Sum.Threads)
	// untouched values keep their defaults
	assert.Equal(t, "8G", cfg.Zstd.Memory)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yml")
	require.NoError(t, os.WriteFile(path, []byte("depth: [not a number\n"), 0644))
	_, err := LoadConfig(path)
	require.Error(t, err)
}
