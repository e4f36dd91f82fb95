package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config mirrors the .optionalize.yml file. Flag values win over file values.
// Source entries may be files, directories, or glob patterns.
type config struct {
	Sources []string `yaml:"sources"`
	Types   []string `yaml:"types"`
	Package string   `yaml:"package"`
	Output  string   `yaml:"output"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge overlays non-empty override values onto the receiver.
func (c config) merge(override config) config {
	out := c
	if len(override.Sources) > 0 {
		out.Sources = override.Sources
	}
	if len(override.Types) > 0 {
		out.Types = override.Types
	}
	if override.Package != "" {
		out.Package = override.Package
	}
	if override.Output != "" {
		out.Output = override.Output
	}
	return out
}
