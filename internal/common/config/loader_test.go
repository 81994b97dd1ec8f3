// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
app:
  name: template-normalizer
  environment: test
input:
  path: template.yaml
  format: yaml
output:
  path: out.yaml
normalize:
  parameters: true
manifest:
  enabled: true
logging:
  level: debug
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.App.Environment)
	assert.Equal(t, "template.yaml", cfg.Input.Path)
	assert.Equal(t, "yaml", cfg.Input.Format)
	assert.True(t, cfg.Normalize.Parameters)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, `
input:
  path: template.json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "template-normalizer", cfg.App.Name)
	assert.Equal(t, "auto", cfg.Input.Format)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Normalize.Parameters)
}

func TestLoadFromFile_ManifestPathDefault(t *testing.T) {
	path := writeConfig(t, `
input:
  path: template.json
manifest:
  enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "build-manifest.json", cfg.Manifest.Path)
}

func TestLoadFromFile_InvalidFormat(t *testing.T) {
	path := writeConfig(t, `
input:
  path: template.json
  format: xml
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input.format")
}

func TestLoadFromFile_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
input:
  path: template.json
logging:
  level: loud
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
}

func TestLoadFromFile_S3InputRequiresOutputPath(t *testing.T) {
	path := writeConfig(t, `
input:
  path: s3://bucket/template.yaml
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.path")
}

func TestLoadFromFile_SchemaRejectsWrongTypes(t *testing.T) {
	path := writeConfig(t, `
input:
  path: template.json
normalize:
  parameters: "definitely"
`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestLoadFromFile_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_TEMPLATE_PATH", "/tmp/expanded.yaml")

	path := writeConfig(t, `
input:
  path: ${TEST_TEMPLATE_PATH}
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/expanded.yaml", cfg.Input.Path)
}
