package shell

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/config"
	"github.com/domino14/capgrid/solver"
)

const (
	progressInterval = 2 * time.Second
	defaultTop       = 10
	histogramBins    = 15
	histogramWidth   = 50
)

var commandNames = []string{
	"board", "random", "depth", "hash", "moves", "solve", "verify",
	"frontier", "help", "exit",
}

var completer = readline.NewPrefixCompleter(
	lo.Map(commandNames, func(name string, _ int) readline.PrefixCompleterInterface {
		return readline.PcItem(name)
	})...,
)

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	sb.WriteString("commands:\n")
	sb.WriteString("board [c0 ... c8 | 120/040/703] - show or set the board\n")
	sb.WriteString("random [-fill n] - random board with n occupied cells\n")
	sb.WriteString("depth [n] - show or set the search depth\n")
	sb.WriteString("hash - show the board hash and packed state\n")
	sb.WriteString("moves [pos] - list the moves at pos, or at every empty cell\n")
	sb.WriteString("solve [-engine levels|memo] [-depth n] - compute the checksum\n")
	sb.WriteString("verify [-depth n] - run both engines and compare\n")
	sb.WriteString("frontier <depth> [-top n] - summarize the positions reached at depth\n")
	sb.WriteString("exit - quit\n")
	return msg(sb.String()), nil
}

func (sc *ShellController) board(cmd *shellcmd) (*Response, error) {
	switch len(cmd.args) {
	case 0:
	case 1:
		s, err := board.FromString(cmd.args[0])
		if err != nil {
			return nil, err
		}
		sc.curBoard = s
	case board.NumCells:
		s, err := board.FromString(strings.Join(cmd.args, ""))
		if err != nil {
			return nil, err
		}
		sc.curBoard = s
	default:
		return nil, errors.New("board takes no arguments, a board string, or 9 cell values")
	}
	return msg(sc.curBoard.ToDisplayText()), nil
}

func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	fill, err := cmd.options.IntDefault("fill", frand.Intn(board.NumCells+1))
	if err != nil {
		return nil, err
	}
	if fill < 0 || fill > board.NumCells {
		return nil, fmt.Errorf("fill must be between 0 and %d", board.NumCells)
	}
	var s board.State
	for _, pos := range frand.Perm(board.NumCells)[:fill] {
		s = s.SetCell(pos, uint8(frand.Intn(board.MaxCellValue)+1))
	}
	sc.curBoard = s
	return msg(sc.curBoard.ToDisplayText()), nil
}

func (sc *ShellController) depth(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		d, err := parseDepth(cmd.args[0])
		if err != nil {
			return nil, err
		}
		sc.curDepth = d
	}
	return msg(fmt.Sprintf("depth: %d", sc.curDepth)), nil
}

func parseDepth(s string) (int, error) {
	var d int
	if _, err := fmt.Sscanf(s, "%d", &d); err != nil || d < 0 {
		return 0, fmt.Errorf("depth must be a non-negative integer, got %q", s)
	}
	return d, nil
}

func (sc *ShellController) depthOption(cmd *shellcmd) (int, error) {
	d, err := cmd.options.IntDefault("depth", sc.curDepth)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("bad depth option %q", cmd.options["depth"])
	}
	return d, nil
}

func (sc *ShellController) hash(cmd *shellcmd) (*Response, error) {
	return msg(fmt.Sprintf("board %s hash %d packed %#x full %v",
		sc.curBoard, sc.curBoard.Hash(), uint32(sc.curBoard), sc.curBoard.IsFull())), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	positions := sc.curBoard.EmptyPositions()
	if len(cmd.args) > 0 {
		var pos int
		if _, err := fmt.Sscanf(cmd.args[0], "%d", &pos); err != nil ||
			pos < 0 || pos >= board.NumCells {
			return nil, fmt.Errorf("position must be 0-%d", board.NumCells-1)
		}
		if sc.curBoard.Cell(pos) != 0 {
			return nil, fmt.Errorf("cell %s is not empty", board.PosName(pos))
		}
		positions = []int{pos}
	}
	if len(positions) == 0 {
		return msg("board is full; no moves"), nil
	}
	var sb strings.Builder
	gen := sc.runner.Generator()
	n := 0
	for _, pos := range positions {
		for _, m := range gen.Moves(sc.curBoard, pos) {
			n++
			fmt.Fprintf(&sb, "%3d: %-24s %s\n", n, m.ShortDescription(), m.Result)
		}
	}
	return msg(sb.String()), nil
}

// runWithProgress runs fn while logging progress until it returns.
func (sc *ShellController) runWithProgress(what string, depthDone *atomic.Int64,
	fn func() error) error {

	done := make(chan struct{})
	g := errgroup.Group{}
	g.Go(func() error {
		defer close(done)
		return fn()
	})
	g.Go(func() error {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		start := time.Now()
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				ev := log.Info().Str("task", what).Dur("elapsed", time.Since(start))
				if depthDone != nil {
					ev = ev.Int64("depth-done", depthDone.Load())
				}
				ev.Msg("still-working")
			}
		}
	})
	return g.Wait()
}

func (sc *ShellController) trackLevels(depthDone *atomic.Int64) func() {
	levels := sc.runner.Levels()
	depthDone.Store(-1)
	levels.SetLevelCallback(func(l solver.LevelLog, _ *solver.Frontier) {
		depthDone.Store(int64(l.Depth))
	})
	return func() { levels.SetLevelCallback(nil) }
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	engine := solver.Engine(cmd.options.String("engine",
		sc.config.GetString(config.ConfigEngine)))
	s, err := sc.runner.Engine(engine)
	if err != nil {
		return nil, err
	}
	depth, err := sc.depthOption(cmd)
	if err != nil {
		return nil, err
	}

	var depthDone atomic.Int64
	if engine == solver.EngineLevels {
		defer sc.trackLevels(&depthDone)()
	}
	ctx, cancel := sc.solveContext()
	defer cancel()

	start := time.Now()
	var result uint32
	err = sc.runWithProgress("solve", &depthDone, func() error {
		var err error
		result, err = s.Solve(ctx, sc.curBoard, depth)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := fmt.Sprintf("checksum %d (engine %s, depth %d, %s)",
		result, engine, depth, time.Since(start).Round(time.Millisecond))
	if engine == solver.EngineMemo {
		ts := sc.runner.Memo().TableStats()
		out += fmt.Sprintf("\nnodes %d, table %d entries, %d lookups, %d hits, %d collisions",
			sc.runner.Memo().Nodes(), ts.Size, ts.Lookups, ts.Hits, ts.Collisions)
	}
	return msg(out), nil
}

func (sc *ShellController) verify(cmd *shellcmd) (*Response, error) {
	depth, err := sc.depthOption(cmd)
	if err != nil {
		return nil, err
	}
	ctx, cancel := sc.solveContext()
	defer cancel()
	var result uint32
	err = sc.runWithProgress("verify", nil, func() error {
		var err error
		result, err = solver.Verify(ctx, sc.runner.Levels(), sc.runner.Memo(),
			sc.curBoard, depth)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("engines agree: checksum %d at depth %d", result, depth)), nil
}

func (sc *ShellController) frontier(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("frontier <depth> [-top n]")
	}
	depth, err := parseDepth(cmd.args[0])
	if err != nil {
		return nil, err
	}
	top, err := cmd.options.IntDefault("top", defaultTop)
	if err != nil {
		return nil, err
	}

	levels := sc.runner.Levels()
	var last *solver.Frontier
	var lastLog solver.LevelLog
	levels.SetLevelCallback(func(l solver.LevelLog, f *solver.Frontier) {
		last, lastLog = f, l
	})
	defer levels.SetLevelCallback(nil)

	ctx, cancel := sc.solveContext()
	defer cancel()
	var result uint32
	err = sc.runWithProgress("frontier", nil, func() error {
		var err error
		result, err = levels.Solve(ctx, sc.curBoard, depth)
		return err
	})
	if err != nil {
		return nil, err
	}
	return msg(describeFrontier(last, lastLog, result, top)), nil
}

func describeFrontier(f *solver.Frontier, l solver.LevelLog, result uint32, top int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "depth %d: %d positions (%d terminal), checksum %d\n",
		l.Depth, f.Len(), l.Terminal, result)
	if l.Expanded > 0 {
		fmt.Fprintf(&sb, "branching: mean %.2f, min %.0f, max %.0f\n",
			l.Branching.Mean, l.Branching.Min, l.Branching.Max)
	}
	sb.WriteString("     position     ways        hash\n")
	for i, e := range f.Top(top) {
		fmt.Fprintf(&sb, "%3d: %s  %-10d  %d\n", i+1, e.State, e.Ways, e.State.Hash())
	}
	values := f.WaysValues()
	if len(lo.Uniq(values)) > 1 {
		sb.WriteString("\npaths per position:\n")
		hist := histogram.Hist(histogramBins, values)
		if err := histogram.Fprint(&sb, hist, histogram.Linear(histogramWidth)); err != nil {
			log.Err(err).Msg("histogram-error")
		}
	}
	return sb.String()
}
