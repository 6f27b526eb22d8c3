package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths holds the resolved directory layout for one run. All relative
// directories are resolved against the working directory.
type Paths struct {
	DataDir   string
	OutputDir string
	LogsDir   string
}

// NewPaths resolves the configured directories to absolute paths.
func NewPaths(cfg PathsConfig) (*Paths, error) {
	resolve := func(dir string) (string, error) {
		if filepath.IsAbs(dir) {
			return dir, nil
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path %s: %w", dir, err)
		}
		return abs, nil
	}

	data, err := resolve(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	output, err := resolve(cfg.OutputDir)
	if err != nil {
		return nil, err
	}
	logs, err := resolve(cfg.LogsDir)
	if err != nil {
		return nil, err
	}

	return &Paths{DataDir: data, OutputDir: output, LogsDir: logs}, nil
}

// EnsureDirectories creates the output and logs directories if missing.
// The data directory is deliberately not created: a missing feed directory
// means there is nothing to process.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetOutputPath returns the full path for an output artifact.
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the full path for a log file.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
