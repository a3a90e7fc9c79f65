package config

import (
	"fmt"

	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ApplyFlags overlays explicitly set command-line flags on a resolved
// config. Flags win over the config file and environment. Only flags the
// user actually set take effect.
func ApplyFlags(res *Resolved, flags *pflag.FlagSet) error {
	k := koanf.New(".")
	if err := k.Load(Defaults(), nil); err != nil {
		return fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return fmt.Errorf("loading flag overrides: %w", err)
	}

	if f := flags.Lookup("parallel"); f != nil && f.Changed {
		res.Parallel = k.Int("parallel")
	}
	if f := flags.Lookup("no-cache"); f != nil && f.Changed && k.Bool("no-cache") {
		res.Cache.Enabled = false
	}
	if f := flags.Lookup("cache-path"); f != nil && f.Changed {
		res.Cache.Path = k.String("cache-path")
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		res.Server.Addr = k.String("addr")
	}
	return nil
}
