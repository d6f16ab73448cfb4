package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                   = "debug"
	ConfigEngine                  = "engine"
	ConfigVerify                  = "verify"
	ConfigLogFile                 = "log-file"
	ConfigMemoTableMaxPower       = "memo-table-max-power"
	ConfigMemoTableMemoryFraction = "memo-table-memory-fraction"
	ConfigHistoryFile             = "history-file"
	ConfigCPUProfile              = "cpu-profile"
)

const envPrefix = "capgrid"

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigEngine, "levels")
	v.SetDefault(ConfigVerify, false)
	v.SetDefault(ConfigLogFile, "")
	v.SetDefault(ConfigMemoTableMaxPower, 21)
	v.SetDefault(ConfigMemoTableMemoryFraction, 0.25)
	v.SetDefault(ConfigHistoryFile, filepath.Join(os.TempDir(), "capgrid_history"))
	v.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config with defaults only; nothing is read from
// flags, files, or the environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	return &Config{Viper: v}
}

// Load reads, in increasing order of precedence: defaults, an optional
// config.yaml (working directory, then $XDG_CONFIG_HOME/capgrid),
// CAPGRID_* environment variables, and command-line flags. Positional
// arguments are left in Args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("capgrid", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigEngine, "levels", "search engine: levels or memo")
	fs.Bool(ConfigVerify, false, "run both engines and check they agree")
	fs.String(ConfigLogFile, "", "write a YAML log of every search level to this file")
	fs.Int(ConfigMemoTableMaxPower, 21, "memo table holds at most 2^n entries")
	fs.Float64(ConfigMemoTableMemoryFraction, 0.25, "memo table may use at most this fraction of system memory")
	fs.String(ConfigHistoryFile, "", "shell history file")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	// Flags end at the first positional argument; the rest is a shell
	// command with its own options.
	fs.SetInterspersed(false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	// Only flags that were explicitly set override other sources.
	var bindErr error
	fs.Visit(func(f *pflag.Flag) {
		if err := c.BindPFlag(f.Name, f); err != nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath(".")
	if cfgdir, err := os.UserConfigDir(); err == nil {
		c.AddConfigPath(filepath.Join(cfgdir, envPrefix))
	}
	if err := c.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		log.Debug().Msg("no config file found; using defaults")
	} else {
		log.Debug().Str("file", c.ConfigFileUsed()).Msg("loaded-config-file")
	}
	c.Set("args", fs.Args())
	return nil
}

// Args returns the positional arguments left over after flag parsing.
func (c *Config) Args() []string {
	return c.GetStringSlice("args")
}
