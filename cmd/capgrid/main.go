// capgrid reads a depth bound and a board from stdin and prints the
// checksum of every position reachable within that many moves.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/capgrid/config"
	"github.com/domino14/capgrid/gameio"
	"github.com/domino14/capgrid/runner"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level := logLevel(cfg)
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	if path := cfg.GetString(config.ConfigCPUProfile); path != "" {
		f, err := os.Create(path)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("capgrid failed")
		pprof.StopCPUProfile()
		os.Exit(1)
	}
}

// logLevel is Info unless debug logging is requested. Logs go to stderr,
// so stdout carries only the checksum.
func logLevel(cfg *config.Config) zerolog.Level {
	if cfg.GetBool(config.ConfigDebug) {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func run(ctx context.Context, cfg *config.Config) error {
	in, err := gameio.ParseInput(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.Debug().Int("max-depth", in.MaxDepth).Str("board", in.Board.String()).Msg("parsed-input")

	result, err := runner.NewRunner(cfg).Solve(ctx, in.Board, in.MaxDepth)
	if err != nil {
		return err
	}
	return gameio.WriteResult(os.Stdout, result)
}
