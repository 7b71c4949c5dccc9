package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"sbackup/internal/domain"
)

type Config struct {
	SourceDir   string
	TargetDir   string
	Interactive bool // ask before overwriting a stale target file
	Preserve    bool // propagate modes and modification times
	DryRun      bool
	Verbose     bool
	TUI         bool
}

// ApplyEnv fills unset fields from the environment, mirroring the flag
// surface for scripted use.
func (c *Config) ApplyEnv() {
	if c.SourceDir == "" {
		c.SourceDir = envOrEmpty("SBACKUP_SOURCE_DIR")
	}
	if c.TargetDir == "" {
		c.TargetDir = envOrEmpty("SBACKUP_TARGET_DIR")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("SBACKUP_VERBOSE")
	}
	if !c.Interactive {
		c.Interactive = envTruthy("SBACKUP_INTERACTIVE")
	}
}

// Normalize validates the directories are named and rewrites both to
// absolute, cleaned paths.
func (c *Config) Normalize() error {
	if c.SourceDir == "" || c.TargetDir == "" {
		return errors.New("source and target are required")
	}
	src, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return err
	}
	dst, err := filepath.Abs(c.TargetDir)
	if err != nil {
		return err
	}
	c.SourceDir = src
	c.TargetDir = dst
	return nil
}

// TraversalContext freezes the per-run configuration the walker consumes.
func (c Config) TraversalContext() domain.TraversalContext {
	return domain.TraversalContext{
		SourceRoot:         c.SourceDir,
		TargetRoot:         c.TargetDir,
		PromptOnOverwrite:  c.Interactive,
		PreserveAttributes: c.Preserve,
		DryRun:             c.DryRun,
	}
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
