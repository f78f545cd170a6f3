// Package config holds language constants and the optional quill.yaml
// project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project represents the top-level quill.yaml configuration.
type Project struct {
	// Entry is the source file compiled and run when the CLI is invoked
	// on a directory instead of a file.
	Entry string `yaml:"entry,omitempty"`

	// Check makes `quill run` stop after type checking.
	Check bool `yaml:"check,omitempty"`

	// Color controls diagnostic coloring: "auto" (default), "always", "never".
	Color string `yaml:"color,omitempty"`
}

// LoadProject reads quill.yaml from dir. A missing file is not an error;
// the zero Project is returned instead.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

func (p *Project) validate() error {
	switch p.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", p.Color)
	}
	if p.Entry != "" && !isSourcePath(p.Entry) {
		return fmt.Errorf("entry %q is not a quill source file", p.Entry)
	}
	return nil
}

func isSourcePath(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}
