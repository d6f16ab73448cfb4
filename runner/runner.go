// Package runner builds search engines from configuration and runs
// requests through them.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/captures"
	"github.com/domino14/capgrid/config"
	"github.com/domino14/capgrid/movegen"
	"github.com/domino14/capgrid/solver"
)

// Runner owns one capture table and the engines built on it.
type Runner struct {
	cfg    *config.Config
	gen    *movegen.Generator
	levels *solver.LevelSolver
	memo   *solver.MemoSolver
}

func NewRunner(cfg *config.Config) *Runner {
	gen := movegen.NewGenerator(captures.NewTable())
	memo := solver.NewMemoSolver(gen)
	memo.SetTableLimits(cfg.GetInt(config.ConfigMemoTableMaxPower),
		cfg.GetFloat64(config.ConfigMemoTableMemoryFraction))
	return &Runner{
		cfg:    cfg,
		gen:    gen,
		levels: solver.NewLevelSolver(gen),
		memo:   memo,
	}
}

func (r *Runner) Generator() *movegen.Generator {
	return r.gen
}

func (r *Runner) Levels() *solver.LevelSolver {
	return r.levels
}

func (r *Runner) Memo() *solver.MemoSolver {
	return r.memo
}

// Engine returns the solver registered under name.
func (r *Runner) Engine(name solver.Engine) (solver.Solver, error) {
	switch name {
	case solver.EngineLevels:
		return r.levels, nil
	case solver.EngineMemo:
		return r.memo, nil
	}
	return nil, fmt.Errorf("%w: %q", solver.ErrUnknownEngine, name)
}

// Solve runs the configured engine, or both when verify is set.
func (r *Runner) Solve(ctx context.Context, root board.State, maxDepth int) (uint32, error) {
	closer, err := r.openLogStream()
	if err != nil {
		return 0, err
	}
	if closer != nil {
		defer func() {
			r.levels.SetLogStream(nil)
			closer.Close()
		}()
	}

	start := time.Now()
	var result uint32
	engine := solver.Engine(r.cfg.GetString(config.ConfigEngine))
	if r.cfg.GetBool(config.ConfigVerify) {
		engine = "verify"
		result, err = solver.Verify(ctx, r.levels, r.memo, root, maxDepth)
	} else {
		var s solver.Solver
		s, err = r.Engine(engine)
		if err != nil {
			return 0, err
		}
		result, err = s.Solve(ctx, root, maxDepth)
	}
	if err != nil {
		return 0, err
	}
	log.Info().
		Str("engine", string(engine)).
		Str("board", root.String()).
		Int("max-depth", maxDepth).
		Uint32("result", result).
		Dur("elapsed", time.Since(start)).
		Msg("solved")
	return result, nil
}

func (r *Runner) openLogStream() (io.Closer, error) {
	path := r.cfg.GetString(config.ConfigLogFile)
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening level log: %w", err)
	}
	r.levels.SetLogStream(f)
	return f, nil
}
