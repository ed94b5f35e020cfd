package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-ifcgraph/pkg/validation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ifcgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.InputDir)
	assert.Equal(t, "data", cfg.OutputDir)
	assert.Equal(t, ".ifc", cfg.Extension)
	assert.Equal(t, ".graphml", cfg.OutputExtension)
	assert.True(t, cfg.AtomicWrite)
	assert.False(t, cfg.Recursive)
	assert.Equal(t, "IfcSpace", cfg.Extraction.PrimaryCategory)
	assert.Equal(t, "Pset_SpaceCommon", cfg.Extraction.SpaceCommonPset)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input_dir: models
output_dir: graphs
recursive: true
atomic_write: false
log_format: json
extraction:
  primary_category: IfcZone
  log_pruned: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "models", cfg.InputDir)
	assert.Equal(t, "graphs", cfg.OutputDir)
	assert.True(t, cfg.Recursive)
	assert.False(t, cfg.AtomicWrite)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "IfcZone", cfg.Extraction.PrimaryCategory)
	assert.True(t, cfg.Extraction.LogPruned)

	// untouched keys keep their defaults
	assert.Equal(t, ".ifc", cfg.Extension)
	assert.Equal(t, "Pset_SpaceCommon", cfg.Extraction.SpaceCommonPset)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "input_dir: [unterminated"))
	assert.ErrorContains(t, err, "parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvInputDir, "/in")
	t.Setenv(EnvOutputDir, "/out")
	t.Setenv(EnvRecursive, "true")
	t.Setenv(EnvMetricsFile, "/tmp/ifcgraph.prom")
	t.Setenv(EnvLogFormat, "json")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "/in", cfg.InputDir)
	assert.Equal(t, "/out", cfg.OutputDir)
	assert.True(t, cfg.Recursive)
	assert.Equal(t, "/tmp/ifcgraph.prom", cfg.MetricsFile)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestApplyEnvInvalidBool(t *testing.T) {
	t.Setenv(EnvRecursive, "sometimes")
	assert.Error(t, Default().ApplyEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty input dir", func(c *Config) { c.InputDir = "" }, "input_dir"},
		{"blank output dir", func(c *Config) { c.OutputDir = "  " }, "output_dir: required field is empty"},
		{"extension without dot", func(c *Config) { c.Extension = "ifc" }, `config.extension: extension "ifc" must start with a dot`},
		{"empty output extension", func(c *Config) { c.OutputExtension = "" }, "config.output_extension"},
		{"bad primary category", func(c *Config) { c.Extraction.PrimaryCategory = "Space" }, "extraction.primary_category"},
		{"empty pset name", func(c *Config) { c.Extraction.SpaceCommonPset = "" }, "extraction.space_common_pset"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"output would overwrite input", func(c *Config) { c.OutputExtension = ".IFC" }, "output_extension"},
		{"same dir spelled differently", func(c *Config) {
			c.InputDir = "data"
			c.OutputDir = "./data/"
			c.OutputExtension = ".ifc"
		}, "output_extension: must differ from extension"},
		{"same extension in another dir", func(c *Config) {
			c.OutputDir = "out"
			c.OutputExtension = ".ifc"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidatable(t *testing.T) {
	var _ validation.Validatable = (*Config)(nil)

	cfg := Default()
	assert.NoError(t, validation.ValidateConfig(cfg))
	cfg.LogLevel = "verbose"
	assert.ErrorContains(t, validation.ValidateConfig(cfg), "config.log_level")
}
