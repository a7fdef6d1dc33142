package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBoth(t *testing.T) {
	base := t.TempDir()
	l := NewLayout(base, "microbiome", "sandy", "gut_study")

	require.NoError(t, l.Create(LevelBoth))

	for _, dir := range []string{
		l.ProjectDir, l.DataDir, l.PipelineDir, l.ArchiveDir,
		l.WorkDir, l.AnalysisDir, l.DevelDir, l.CodeDir,
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err, "expected %s to exist", dir)
		assert.True(t, info.IsDir())
	}

	target, err := os.Readlink(filepath.Join(l.WorkDir, "code"))
	require.NoError(t, err)
	assert.Equal(t, l.CodeDir, target)
}

func TestCreateGroupOnly(t *testing.T) {
	base := t.TempDir()
	l := NewLayout(base, "microbiome", "sandy", "gut_study")

	require.NoError(t, l.Create(LevelGroup))

	_, err := os.Stat(l.ProjectDir)
	assert.NoError(t, err)
	_, err = os.Stat(l.WorkDir)
	assert.True(t, os.IsNotExist(err), "user directories must not be created at group level")
}

func TestCreateUserOnly(t *testing.T) {
	base := t.TempDir()
	l := NewLayout(base, "microbiome", "sandy", "gut_study")

	require.NoError(t, l.Create(LevelUser))

	_, err := os.Stat(l.ProjectDir)
	assert.True(t, os.IsNotExist(err), "group directories must not be created at user level")
	_, err = os.Lstat(filepath.Join(l.WorkDir, "code"))
	assert.NoError(t, err)
}

func TestCreateRefusesExistingProject(t *testing.T) {
	base := t.TempDir()
	l := NewLayout(base, "microbiome", "sandy", "gut_study")

	require.NoError(t, l.Create(LevelBoth))
	err := l.Create(LevelBoth)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCreateUnknownLevel(t *testing.T) {
	l := NewLayout(t.TempDir(), "g", "u", "p")
	require.Error(t, l.Create("everything"))
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("/well", "microbiome", "sandy", "gut_study")
	assert.Equal(t, "/well/microbiome/projects/gut_study", l.ProjectDir)
	assert.Equal(t, "/well/microbiome/projects/archive/gut_study", l.ArchiveDir)
	assert.Equal(t, "/well/microbiome/users/sandy/work/gut_study/analysis", l.AnalysisDir)
	assert.Equal(t, "/well/microbiome/users/sandy/devel/gut_study/code", l.CodeDir)
}
