package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaultConfig(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetString(ConfigEngine), "levels")
	is.Equal(cfg.GetInt(ConfigMemoTableMaxPower), 21)
	is.Equal(cfg.GetFloat64(ConfigMemoTableMemoryFraction), 0.25)
	is.True(!cfg.GetBool(ConfigDebug))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	cfg := &Config{}
	err := cfg.Load([]string{"--engine", "memo", "--debug", "--memo-table-max-power=16", "extra"})
	is.NoErr(err)
	is.Equal(cfg.GetString(ConfigEngine), "memo")
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetInt(ConfigMemoTableMaxPower), 16)
	is.Equal(cfg.Args(), []string{"extra"})
}

func TestLoadEnvAndFile(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	chdir(t, dir)
	err := os.WriteFile(filepath.Join(dir, "config.yaml"),
		[]byte("engine: memo\nmemo-table-max-power: 18\n"), 0o644)
	is.NoErr(err)
	t.Setenv("CAPGRID_MEMO_TABLE_MAX_POWER", "15")

	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.GetString(ConfigEngine), "memo")
	// env beats file
	is.Equal(cfg.GetInt(ConfigMemoTableMaxPower), 15)
	is.Equal(cfg.GetString(ConfigLogFile), "")

	// flag beats file
	is.NoErr(cfg.Load([]string{"--engine=levels"}))
	is.Equal(cfg.GetString(ConfigEngine), "levels")
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	cfg := &Config{}
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}

func TestLoadStopsAtCommand(t *testing.T) {
	is := is.New(t)
	chdir(t, t.TempDir())
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--debug", "solve", "-depth", "3"}))
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.Args(), []string{"solve", "-depth", "3"})
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
