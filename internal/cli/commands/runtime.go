// Package commands implements the solguard subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/solguard-labs/solguard/internal/config"
	"github.com/solguard-labs/solguard/internal/engine"
	"github.com/solguard-labs/solguard/internal/plugin"
	"github.com/solguard-labs/solguard/internal/state"
	"github.com/solguard-labs/solguard/pkg/lint"
	"github.com/solguard-labs/solguard/pkg/lint/rules"
)

// ExitError carries a specific process exit code out of a command.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Runtime bundles the collaborators a command needs: resolved config,
// the rule catalog, loaded plugins, and the optional cache store.
type Runtime struct {
	Config       *config.Resolved
	Catalog      *lint.Catalog
	Loader       *plugin.Loader
	PluginReport *plugin.Report
	Logger       *slog.Logger

	store *state.SQLiteStore
}

// newRuntime resolves configuration and loads plugins for one command
// invocation. Plugin presets become visible to `extends` through a second
// resolution pass once the plugins are loaded.
func newRuntime(cmd *cobra.Command) (*Runtime, error) {
	logger := slog.Default()

	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	load := func(opts config.Options) (*config.Resolved, error) {
		if cfgPath != "" {
			return config.Load(cfgPath, opts)
		}
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root := config.FindProjectRoot(cwd)
		if root == "" {
			root = cwd
		}
		return config.LoadFromDir(root, opts)
	}

	cfg, err := load(config.Options{})
	if err != nil {
		return nil, err
	}

	loader := plugin.NewLoader(logger)
	report := loader.Load(cfg.Plugins, true)
	for _, e := range report.Errors {
		logger.Warn("plugin error", "code", e.Code, "path", e.Path, "message", e.Message)
	}

	if presets := pluginPresets(loader, logger); len(presets) > 0 {
		cfg, err = load(config.Options{Presets: presets})
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyFlags(cfg, cmd.Flags()); err != nil {
		return nil, err
	}

	return &Runtime{
		Config:       cfg,
		Catalog:      rules.NewCatalog(),
		Loader:       loader,
		PluginReport: report,
		Logger:       logger,
	}, nil
}

// pluginPresets normalizes raw plugin presets into config presets.
func pluginPresets(loader *plugin.Loader, logger *slog.Logger) map[string]config.Preset {
	raw := loader.AllPresets()
	if len(raw) == 0 {
		return nil
	}
	presets := make(map[string]config.Preset, len(raw))
	for name, ruleMap := range raw {
		p := config.Preset{}
		for id, v := range ruleMap {
			setting, err := config.NormalizeRuleValue(id, v)
			if err != nil {
				logger.Warn("invalid preset entry", "preset", name, "rule", id, "error", err)
				continue
			}
			p[id] = setting
		}
		presets[name] = p
	}
	return presets
}

// NewEngine builds the analysis engine, opening the cache store when
// caching is enabled.
func (r *Runtime) NewEngine() (*engine.Engine, error) {
	var cache engine.Cache
	if r.Config.Cache.Enabled {
		path := r.Config.Cache.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.Config.BasePath, path)
		}
		store, err := state.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening cache store: %w", err)
		}
		r.store = store
		cache = store
	}

	return engine.New(engine.Options{
		Catalog: r.Catalog,
		Extra:   r.Loader.AllRules(),
		Config:  r.Config,
		Cache:   cache,
		Logger:  r.Logger,
	})
}

// Store returns the cache store when one is open, for run bookkeeping.
func (r *Runtime) Store() *state.SQLiteStore { return r.store }

// Close tears plugins down and releases the cache store.
func (r *Runtime) Close() {
	r.Loader.UnloadAll()
	if r.store != nil {
		_ = r.store.Close()
	}
}
