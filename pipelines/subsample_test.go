package pipelines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OxfordCMS/ocmstoolkit/utils"
)

func TestSubsampleSeed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s1.fastq.1.gz"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s1.fastq.2.gz"), []byte("x"), 0644))

	cfg := utils.DefaultConfig()
	cfg.InputDir = dir
	cfg.Seed = 100

	wf, seed, err := Subsample(cfg, 1)
	require.NoError(t, err)
	require.NotNil(t, wf)
	assert.Equal(t, 100, seed, "configured seed is used as-is")
}

func TestSubsampleRandomSeedWhenUnset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "s1.fastq.gz"), []byte("x"), 0644))

	cfg := utils.DefaultConfig()
	cfg.InputDir = dir
	cfg.Seed = 0

	_, seed, err := Subsample(cfg, 1)
	require.NoError(t, err)
	assert.Greater(t, seed, 0, "a run without a configured seed still gets one")
}

func TestSubsampleNoInput(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.InputDir = t.TempDir()
	_, _, err := Subsample(cfg, 1)
	require.Error(t, err)
}
