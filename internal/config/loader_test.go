package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/pkg/lint"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBasic(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "solguard.yaml", `
rules:
  security/tx-origin: error
  naming/func-name-mixedcase: "off"
  practices/max-states-count:
    - warning
    - max: 20
plugins:
  - plugins/custom.star
excludedFiles:
  - "vendor/**"
parallel: 8
`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.BasePath)
	assert.Equal(t, 8, cfg.Parallel)

	setting, ok := cfg.Setting("security/tx-origin")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityError, setting.Severity)

	off, ok := cfg.Setting("naming/func-name-mixedcase")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityOff, off.Severity)

	states, ok := cfg.Setting("practices/max-states-count")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityWarning, states.Severity)
	assert.Equal(t, 20, lint.GetIntOption(states.Options, "max", 0))

	require.Len(t, cfg.Plugins, 1)
	assert.Equal(t, filepath.Join(dir, "plugins/custom.star"), cfg.Plugins[0])
	assert.Equal(t, []string{"vendor/**"}, cfg.ExcludedFiles)
}

func TestLoadNumericSeverities(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "solguard.yaml", `
rules:
  security/tx-origin: 2
  security/avoid-selfdestruct: 1
  naming/var-name-mixedcase: 0
`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	assertSeverity := func(id string, want lint.Severity) {
		s, ok := cfg.Setting(id)
		require.True(t, ok, id)
		assert.Equal(t, want, s.Severity, id)
	}
	assertSeverity("security/tx-origin", lint.SeverityError)
	assertSeverity("security/avoid-selfdestruct", lint.SeverityWarning)
	assertSeverity("naming/var-name-mixedcase", lint.SeverityOff)
}

func TestLoadExtendsPreset(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "solguard.yaml", `
extends:
  - solguard:recommended
rules:
  security/tx-origin: "off"
`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	// Local settings override the preset.
	s, ok := cfg.Setting("security/tx-origin")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityOff, s.Severity)

	// Other preset rules survive.
	sel, ok := cfg.Setting("security/avoid-selfdestruct")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityWarning, sel.Severity)
}

func TestLoadExtendsFileChain(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
rules:
  security/tx-origin: warning
  naming/contract-name-pascalcase: warning
`)
	path := writeConfig(t, dir, "solguard.yaml", `
extends:
  - base.yaml
rules:
  security/tx-origin: error
`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)

	s, _ := cfg.Setting("security/tx-origin")
	assert.Equal(t, lint.SeverityError, s.Severity)

	inherited, ok := cfg.Setting("naming/contract-name-pascalcase")
	require.True(t, ok)
	assert.Equal(t, lint.SeverityWarning, inherited.Severity)
}

func TestLoadExtendsCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "extends: [b.yaml]\n")
	writeConfig(t, dir, "b.yaml", "extends: [a.yaml]\n")

	_, err := Load(filepath.Join(dir, "a.yaml"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestLoadUnknownPreset(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "solguard.yaml", "extends: [vendor:strict]\n")

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vendor:strict")
}

func TestLoadInvalidSeverity(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "solguard.yaml", `
rules:
  security/tx-origin: critical
`)

	_, err := Load(path, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "security/tx-origin")
}

func TestLoadFromDirMissing(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir(), Options{})
	require.NoError(t, err)

	// Defaults: recommended preset, caching on.
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultParallel, cfg.Parallel)
	_, ok := cfg.Setting("security/tx-origin")
	assert.True(t, ok)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOLGUARD_PARALLEL", "2")
	t.Setenv("SOLGUARD_CACHE_ENABLED", "false")

	dir := t.TempDir()
	path := writeConfig(t, dir, "solguard.yaml", "parallel: 8\n")

	cfg, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Parallel)
	assert.False(t, cfg.Cache.Enabled)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "solguard.yaml", "parallel: 1\n")
	nested := filepath.Join(root, "contracts", "token")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, "", FindProjectRoot(t.TempDir()))
}
