package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solguard-labs/solguard/internal/cli/commands"
	"github.com/solguard-labs/solguard/pkg/lint"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeProject(t *testing.T, source string) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "solguard.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("extends:\n  - solguard:recommended\ncache:\n  enabled: false\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Wallet.sol"), []byte(source), 0o644))
	return dir, cfgPath
}

const walletSource = `pragma solidity ^0.8.19;

contract Wallet {
    address private owner;

    function withdraw() public {
        require(tx.origin == owner, "denied");
    }
}
`

func TestAnalyzeCommandFindsIssues(t *testing.T) {
	dir, cfg := writeProject(t, walletSource)

	out, err := runCLI(t, "analyze", "--config", cfg, "--format", "json", dir)
	require.Error(t, err)
	var exit *commands.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.Code)

	var result lint.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Files, 1)
	require.NotEmpty(t, result.Files[0].Issues)
	assert.Equal(t, "security/tx-origin", result.Files[0].Issues[0].RuleID)
}

func TestAnalyzeCommandCleanExit(t *testing.T) {
	dir, cfg := writeProject(t, "pragma solidity ^0.8.19;\n\ncontract Safe {\n    uint256 private total;\n\n    function bump() public {\n        total = total + 1;\n    }\n}\n")

	out, err := runCLI(t, "analyze", "--config", cfg, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestAnalyzeCommandCacheAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "solguard.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("extends:\n  - solguard:recommended\ncache:\n  enabled: true\n  path: .solguard/cache.db\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Wallet.sol"), []byte(walletSource), 0o644))

	_, err := runCLI(t, "analyze", "--config", cfg, "--format", "json", dir)
	require.Error(t, err)

	out, err := runCLI(t, "analyze", "--config", cfg, "--format", "json", dir)
	require.Error(t, err)

	var result lint.Result
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].FromCache)
	require.NotEmpty(t, result.Files[0].Issues)
	assert.Equal(t, "security/tx-origin", result.Files[0].Issues[0].RuleID)
}

func TestRulesCommandListsAndShows(t *testing.T) {
	_, cfg := writeProject(t, walletSource)

	out, err := runCLI(t, "rules", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "security/tx-origin")
	assert.Contains(t, out, "rule(s)")

	out, err = runCLI(t, "rules", "--config", cfg, "security/tx-origin")
	require.NoError(t, err)
	assert.Contains(t, out, "solguard.dev/docs/rules/security/tx-origin")

	_, err = runCLI(t, "rules", "--config", cfg, "no/such-rule")
	require.Error(t, err)
}

func TestInitCommandWritesLoadableConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "solguard.yaml")

	// Re-running without --force refuses to overwrite.
	_, err = runCLI(t, "init", dir)
	require.Error(t, err)

	_, err = runCLI(t, "init", "--force", dir)
	require.NoError(t, err)

	// The starter file must load cleanly.
	_, err = runCLI(t, "rules", "--config", filepath.Join(dir, "solguard.yaml"))
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "solguard v")
}

func TestPluginsValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.star")
	require.NoError(t, os.WriteFile(good, []byte(`
def _analyze(ctx):
    pass

plugin = struct(
    meta = {"name": "demo", "version": "1.0.0"},
    rules = {
        "no-op": {"meta": {"title": "No-op"}, "analyze": _analyze},
    },
)
`), 0o644))
	bad := filepath.Join(dir, "bad.star")
	require.NoError(t, os.WriteFile(bad, []byte(`plugin = struct(meta = {"name": "demo", "version": "not-semver"})`), 0o644))

	out, err := runCLI(t, "plugins", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")

	out, err = runCLI(t, "plugins", "validate", good, bad)
	require.Error(t, err)
	var exit *commands.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.Code)
	assert.Contains(t, out, "semver")
}
