// Package project scaffolds the standard OCMS project directory layout on the
// cluster filesystem: shared group directories under projects/, and per-user
// work and devel trees with a code symlink between them.
package project

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
)

// Level selects which part of the layout to create.
type Level string

const (
	LevelGroup Level = "group"
	LevelUser  Level = "user"
	LevelBoth  Level = "both"
)

// DefaultBase is the cluster filesystem root the layout hangs off.
const DefaultBase = "/well"

// Layout holds the resolved directory paths for one project.
type Layout struct {
	ProjectDir  string
	DataDir     string
	PipelineDir string
	ArchiveDir  string

	WorkDir     string
	AnalysisDir string
	DevelDir    string
	CodeDir     string
}

// NewLayout computes the layout for a project owned by the given user and
// group under base.
func NewLayout(base, group, username, name string) Layout {
	projectDir := filepath.Join(base, group, "projects", name)
	workDir := filepath.Join(base, group, "users", username, "work", name)
	develDir := filepath.Join(base, group, "users", username, "devel", name)
	return Layout{
		ProjectDir:  projectDir,
		DataDir:     filepath.Join(projectDir, "data"),
		PipelineDir: filepath.Join(projectDir, "pipelines"),
		ArchiveDir:  filepath.Join(base, group, "projects", "archive", name),

		WorkDir:     workDir,
		AnalysisDir: filepath.Join(workDir, "analysis"),
		DevelDir:    develDir,
		CodeDir:     filepath.Join(develDir, "code"),
	}
}

// CurrentUserGroup resolves the invoking user and their primary group.
func CurrentUserGroup() (username, group string, err error) {
	u, err := user.Current()
	if err != nil {
		return "", "", fmt.Errorf("resolving current user: %w", err)
	}
	g, err := user.LookupGroupId(u.Gid)
	if err != nil {
		return "", "", fmt.Errorf("resolving primary group for %s: %w", u.Username, err)
	}
	return u.Username, g.Name, nil
}

// Create makes the directories for the requested level. Any directory that
// already exists fails the run so an existing project is never touched.
func (l Layout) Create(level Level) error {
	var dirs []string
	if level == LevelGroup || level == LevelBoth {
		dirs = append(dirs, l.ProjectDir, l.DataDir, l.PipelineDir, l.ArchiveDir)
	}
	if level == LevelUser || level == LevelBoth {
		dirs = append(dirs, l.WorkDir, l.AnalysisDir, l.DevelDir, l.CodeDir)
	}
	if len(dirs) == 0 {
		return fmt.Errorf("project: unknown level %q (use group, user or both)", level)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err == nil {
			return fmt.Errorf("project: %s already exists", dir)
		}
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("project: creating %s: %w", dir, err)
		}
	}

	if level == LevelUser || level == LevelBoth {
		if err := os.Symlink(l.CodeDir, filepath.Join(l.WorkDir, "code")); err != nil {
			return fmt.Errorf("project: linking code directory: %w", err)
		}
	}
	return nil
}
