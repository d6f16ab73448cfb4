package main

import (
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/capgrid/config"
)

func TestLogLevel(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	is.Equal(logLevel(cfg), zerolog.InfoLevel)
	cfg.Set(config.ConfigDebug, true)
	is.Equal(logLevel(cfg), zerolog.DebugLevel)
}
