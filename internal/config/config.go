// Package config loads project configuration from .reqtrace.yaml, allowing
// repositories to relocate test trees and result artifacts without code
// changes. Missing files fall back to defaults that match the conventional
// layout (tests/python, tests/csharp, artifacts/).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is searched in the working directory when no explicit
// config path is given.
const DefaultFileName = ".reqtrace.yaml"

// Ecosystem locates one test-source tree.
type Ecosystem struct {
	Root  string   `yaml:"root"`  // scan root (default: ".")
	Globs []string `yaml:"globs"` // doublestar patterns relative to root
}

// Config is the full project configuration.
type Config struct {
	// Prefix is the requirement-identifier prefix (default: "REQ").
	Prefix string `yaml:"prefix"`
	// Catalog optionally points at a requirements catalog YAML; when set,
	// its IDs seed the reporting universe and an unreadable file is fatal.
	Catalog string `yaml:"catalog"`
	// ArtifactsDir receives the two generated documents.
	ArtifactsDir string `yaml:"artifacts_dir"`

	Results struct {
		Root       string   `yaml:"root"`
		JUnitGlobs []string `yaml:"junit_globs"`
		TRXGlobs   []string `yaml:"trx_globs"`
	} `yaml:"results"`

	Sources struct {
		Interpreted Ecosystem `yaml:"interpreted"`
		Compiled    Ecosystem `yaml:"compiled"`
	} `yaml:"sources"`
}

// Default returns a Config matching the conventional repository layout.
func Default() *Config {
	cfg := &Config{
		Prefix:       "REQ",
		ArtifactsDir: "artifacts",
	}

	cfg.Results.Root = "."
	cfg.Results.JUnitGlobs = []string{
		"tests/python/**/*.xml",
		"**/junit*.xml",
		"**/test-results*.xml",
		"**/TestResult*.xml",
	}
	cfg.Results.TRXGlobs = []string{"**/*.trx"}

	cfg.Sources.Interpreted = Ecosystem{
		Root:  ".",
		Globs: []string{"tests/python/**/*.py", "tests/**/*.py", "**/test_*.py"},
	}
	cfg.Sources.Compiled = Ecosystem{
		Root:  ".",
		Globs: []string{"tests/csharp/**/*.cs", "tests/**/*.cs", "**/test_*.cs"},
	}
	return cfg
}

// Load reads the config at path, overlaying it on the defaults. An empty
// path means "look for .reqtrace.yaml in the working directory"; its
// absence is fine. An explicitly named file that is missing or unparsable
// is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path) // #nosec G304 - config path is operator-controlled
	if err != nil {
		if explicit {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
