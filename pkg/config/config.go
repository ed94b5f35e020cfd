// Package config holds the settings of a conversion run: where to read IFC
// files, where to write GraphML, and how the extractor names and filters
// entities.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-ifcgraph/pkg/extract"
	"github.com/dd0wney/cluso-ifcgraph/pkg/validation"
)

// Default configuration values
const (
	DefaultInputDir        = "data"
	DefaultOutputDir       = "data"
	DefaultExtension       = ".ifc"
	DefaultOutputExtension = ".graphml"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
)

// Environment variables read by ApplyEnv
const (
	EnvInputDir    = "IFCGRAPH_INPUT_DIR"
	EnvOutputDir   = "IFCGRAPH_OUTPUT_DIR"
	EnvRecursive   = "IFCGRAPH_RECURSIVE"
	EnvMetricsFile = "IFCGRAPH_METRICS_FILE"
	EnvLogFormat   = "IFCGRAPH_LOG_FORMAT"
)

var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"json", "text"}
)

// Config is the complete run configuration
type Config struct {
	// InputDir is scanned for Extension files
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one OutputExtension file per input
	OutputDir string `yaml:"output_dir"`

	Extension       string `yaml:"extension"`
	OutputExtension string `yaml:"output_extension"`

	// Recursive descends into subdirectories and mirrors them under OutputDir
	Recursive bool `yaml:"recursive"`

	// AtomicWrite writes through a temporary file and a rename
	AtomicWrite bool `yaml:"atomic_write"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// MetricsFile, when set, receives the Prometheus registry in text
	// exposition format after the batch
	MetricsFile string `yaml:"metrics_file"`

	Extraction ExtractionConfig `yaml:"extraction"`
}

// ExtractionConfig tunes the graph extractor
type ExtractionConfig struct {
	PrimaryCategory string `yaml:"primary_category" validate:"required,ifctype"`
	SpaceCommonPset string `yaml:"space_common_pset" validate:"required"`

	// LogPruned logs the GlobalId of every node removed for having no edges
	LogPruned bool `yaml:"log_pruned"`
}

// Default returns the configuration used when no file or flag overrides it
func Default() *Config {
	return &Config{
		InputDir:        DefaultInputDir,
		OutputDir:       DefaultOutputDir,
		Extension:       DefaultExtension,
		OutputExtension: DefaultOutputExtension,
		AtomicWrite:     true,
		LogLevel:        DefaultLogLevel,
		LogFormat:       DefaultLogFormat,
		Extraction: ExtractionConfig{
			PrimaryCategory: extract.DefaultPrimaryCategory,
			SpaceCommonPset: extract.DefaultSpaceCommonPset,
		},
	}
}

// Load reads a YAML file over the defaults. Keys absent from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from IFCGRAPH_* environment variables. The log
// level is read by the logging package from LOG_LEVEL.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvInputDir); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		c.MetricsFile = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv(EnvRecursive); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRecursive, v, err)
		}
		c.Recursive = b
	}
	return nil
}

// Validate checks struct tags first, then the field and cross-field rules
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return validation.NewConfigValidator("config").
		Required("input_dir", c.InputDir).
		Required("output_dir", c.OutputDir).
		Custom("extension", func() error { return validation.ValidateExtension(c.Extension) }).
		Custom("output_extension", func() error { return validation.ValidateExtension(c.OutputExtension) }).
		When(c.LogLevel != "", func(v *validation.ConfigValidator) {
			v.OneOf("log_level", c.LogLevel, logLevels)
		}).
		When(c.LogFormat != "", func(v *validation.ConfigValidator) {
			v.OneOf("log_format", c.LogFormat, logFormats)
		}).
		When(sameDir(c.InputDir, c.OutputDir), func(v *validation.ConfigValidator) {
			// outputs land next to inputs, so the two must not collide
			v.Distinct("output_extension", c.OutputExtension, "extension", c.Extension)
		}).
		Validate()
}

// sameDir compares two directory paths after resolving them against the
// working directory.
func sameDir(a, b string) bool {
	return absPath(a) == absPath(b)
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
