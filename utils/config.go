package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// JobConfig carries cluster resource settings for one kind of job.
type JobConfig struct {
	Threads int    `yaml:"job_threads"`
	Memory  string `yaml:"job_memory"`
}

// Config is the pipeline.yml shared by all pipeline commands. Fields unused
// by a given pipeline are ignored.
type Config struct {
	// Directory holding the files a pipeline consumes.
	InputDir string `yaml:"input"`

	// Subsampling depth (number of reads kept) for the subsample pipeline.
	Depth int `yaml:"depth"`

	// Seed passed to seqtk sample. Zero means pick one at random; the
	// chosen value is logged so a run can be reproduced.
	Seed int `yaml:"seed"`

	// Default job resources, overridable per tool below.
	JobThreads int    `yaml:"job_threads"`
	JobMemory  string `yaml:"job_memory"`

	// Path to an ENA-generated download script for the sra pipeline.
	ENAScript string `yaml:"ena_script"`

	Zstd struct {
		// zstd compression level, 1-22. Levels 20-22 need --ultra.
		CompressionLvl int `yaml:"compression_lvl"`
		JobConfig      `yaml:",inline"`
	} `yaml:"zstd"`

	MD5Sum JobConfig `yaml:"md5sum"`
}

// DefaultConfig returns the settings used when pipeline.yml omits a value.
func DefaultConfig() Config {
	var cfg Config
	cfg.InputDir = "input.dir"
	cfg.Depth = 1000000
	cfg.JobThreads = 1
	cfg.JobMemory = "4G"
	cfg.Zstd.CompressionLvl = 19
	cfg.Zstd.Threads = 4
	cfg.Zstd.Memory = "8G"
	cfg.MD5Sum.Threads = 1
	cfg.MD5Sum.Memory = "4G"
	return cfg
}

// LoadConfig reads pipeline.yml, filling defaults for anything unset. A
// missing file is not an error: every pipeline can run on defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
