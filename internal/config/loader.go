package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "solguard.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "solguard.yml"

// EnvPrefix is the prefix for environment variable overrides, e.g.
// SOLGUARD_PARALLEL=4.
const EnvPrefix = "SOLGUARD_"

// Default configuration values.
const (
	DefaultParallel  = 4
	DefaultCachePath = ".solguard/cache.db"
	DefaultAddr      = "127.0.0.1:7419"
)

// Options customizes config loading.
type Options struct {
	// Presets extends the built-in preset table, e.g. with namespaced
	// plugin presets. Caller-supplied presets shadow built-ins of the same
	// name.
	Presets map[string]Preset
}

// Default returns the resolved configuration used when no config file
// exists: the recommended preset with caching on.
func Default() *Resolved {
	res := &Resolved{
		BasePath: ".",
		Rules:    map[string]RuleSetting{},
		Env:      map[string]string{},
		Parallel: DefaultParallel,
		Cache:    CacheConfig{Enabled: true, Path: DefaultCachePath},
		Server:   ServerConfig{Addr: DefaultAddr},
	}
	for id, setting := range BuiltinPresets()[PresetRecommended] {
		res.Rules[id] = setting
	}
	return res
}

// Load reads the config file at path and resolves its extends chain into a
// finished Resolved value. Extends entries are built-in preset names
// ("solguard:recommended", "solguard:all"), caller-supplied preset names,
// or paths to other config files relative to the extending file.
func Load(path string, opts Options) (*Resolved, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}

	presets := BuiltinPresets()
	for name, p := range opts.Presets {
		presets[name] = p
	}

	res := &Resolved{
		BasePath: filepath.Dir(abs),
		Rules:    map[string]RuleSetting{},
		Env:      map[string]string{},
		Parallel: DefaultParallel,
		Cache:    CacheConfig{Enabled: true, Path: DefaultCachePath},
		Server:   ServerConfig{Addr: DefaultAddr},
	}
	if err := mergeFile(res, abs, presets, map[string]bool{}); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(res); err != nil {
		return nil, err
	}
	return res, nil
}

// applyEnvOverrides overlays SOLGUARD_* environment variables on the scalar
// settings after the whole extends chain has merged.
func applyEnvOverrides(res *Resolved) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment overrides: %w", err)
	}
	if k.Exists("parallel") {
		res.Parallel = k.Int("parallel")
	}
	if k.Exists("cache.enabled") {
		res.Cache.Enabled = k.Bool("cache.enabled")
	}
	if k.Exists("cache.path") {
		res.Cache.Path = k.String("cache.path")
	}
	if k.Exists("server.addr") {
		res.Server.Addr = k.String("server.addr")
	}
	return nil
}

// LoadFromDir looks for solguard.yaml or solguard.yml in dir and loads it.
// Returns the defaults when no config file is found; that is not an error.
func LoadFromDir(dir string, opts Options) (*Resolved, error) {
	path := findConfigFile(dir)
	if path == "" {
		return Default(), nil
	}
	return Load(path, opts)
}

// mergeFile loads one config file and merges it into res, extends chain
// first so local settings override inherited ones. Chains are cycle-checked
// by absolute path.
func mergeFile(res *Resolved, absPath string, presets map[string]Preset, visiting map[string]bool) error {
	if visiting[absPath] {
		return fmt.Errorf("extends cycle detected at %s", absPath)
	}
	visiting[absPath] = true
	defer delete(visiting, absPath)

	k := koanf.New(".")
	if err := k.Load(file.Provider(absPath), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config %s: %w", absPath, err)
	}

	var raw FileConfig
	if err := k.Unmarshal("", &raw); err != nil {
		return fmt.Errorf("parsing config %s: %w", absPath, err)
	}

	baseDir := filepath.Dir(absPath)
	for _, parent := range raw.Extends {
		if preset, ok := presets[parent]; ok {
			for id, setting := range preset {
				res.Rules[id] = setting
			}
			continue
		}
		if strings.Contains(parent, ":") {
			return fmt.Errorf("%s: unknown preset %q", absPath, parent)
		}
		parentPath := parent
		if !filepath.IsAbs(parentPath) {
			parentPath = filepath.Join(baseDir, parentPath)
		}
		if err := mergeFile(res, parentPath, presets, visiting); err != nil {
			return err
		}
	}

	for id, v := range raw.Rules {
		setting, err := NormalizeRuleValue(id, v)
		if err != nil {
			return fmt.Errorf("%s: %w", absPath, err)
		}
		res.Rules[id] = setting
	}

	for _, p := range raw.Plugins {
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		res.Plugins = append(res.Plugins, p)
	}
	res.ExcludedFiles = append(res.ExcludedFiles, raw.ExcludedFiles...)
	for key, val := range raw.Env {
		res.Env[key] = val
	}
	if raw.Parallel != 0 {
		res.Parallel = raw.Parallel
	}
	if raw.Cache.Path != "" || raw.Cache.Enabled {
		if raw.Cache.Path == "" {
			raw.Cache.Path = DefaultCachePath
		}
		res.Cache = raw.Cache
	}
	if raw.Server.Addr != "" {
		res.Server = raw.Server
	}
	return nil
}

// envKey maps SOLGUARD_CACHE_ENABLED to cache.enabled.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "_", ".")
}

// Defaults returns the koanf defaults provider used by the CLI layer to
// seed flag-overridable settings.
func Defaults() *confmap.Confmap {
	return confmap.Provider(map[string]any{
		"parallel":      DefaultParallel,
		"cache.enabled": true,
		"cache.path":    DefaultCachePath,
		"server.addr":   DefaultAddr,
	}, ".")
}

// findConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func findConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// FindProjectRoot walks up from the given directory to find a directory
// containing solguard.yaml or solguard.yml.
// Returns empty string if not found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		if findConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
