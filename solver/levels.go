package solver

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/movegen"
	"github.com/domino14/capgrid/stats"
)

// LevelLog describes one depth of a level-synchronous search.
type LevelLog struct {
	Depth     int           `yaml:"depth"`
	Frontier  int           `yaml:"frontier"`
	Terminal  int           `yaml:"terminal"`
	Expanded  int           `yaml:"expanded"`
	Children  int           `yaml:"children"`
	Branching stats.Summary `yaml:"branching"`
	Result    uint32        `yaml:"result"`
	Elapsed   time.Duration `yaml:"elapsed"`
}

// LevelSolver is the breadth-first engine. It keeps exactly one frontier
// per depth: the current one is consumed while the next is built.
type LevelSolver struct {
	gen movegen.MoveGenerator

	logStream io.Writer
	onLevel   func(LevelLog, *Frontier)
}

var _ Solver = (*LevelSolver)(nil)

func NewLevelSolver(gen movegen.MoveGenerator) *LevelSolver {
	return &LevelSolver{gen: gen}
}

// SetLogStream makes the solver write one YAML document per depth to w.
func (s *LevelSolver) SetLogStream(w io.Writer) {
	s.logStream = w
}

// SetLevelCallback registers fn to be called after each depth with that
// depth's log and frontier. The frontier must not be retained past the
// call unless the caller is done solving.
func (s *LevelSolver) SetLevelCallback(fn func(LevelLog, *Frontier)) {
	s.onLevel = fn
}

// Solve folds every terminal position into the checksum. A position is
// terminal when it is full or when maxDepth has been reached. The context
// is checked between depths.
func (s *LevelSolver) Solve(ctx context.Context, root board.State, maxDepth int) (uint32, error) {
	cur := NewFrontier(1)
	cur.Add(root, 1)
	var result uint32

	for d := 0; d <= maxDepth; d++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		start := time.Now()
		next := NewFrontier(cur.Len() * 4)
		lvl := LevelLog{Depth: d, Frontier: cur.Len()}
		branching := &stats.Statistic{}

		cur.Each(func(st board.State, ways uint32) {
			if d == maxDepth || st.IsFull() {
				result = fold(result, st, ways)
				lvl.Terminal++
				return
			}
			n := s.gen.ExpandAll(st, ways, next)
			lvl.Expanded++
			lvl.Children += n
			branching.Push(float64(n))
		})

		lvl.Branching = branching.Summary()
		lvl.Result = result
		lvl.Elapsed = time.Since(start)
		log.Debug().
			Int("depth", d).
			Int("frontier", lvl.Frontier).
			Int("terminal", lvl.Terminal).
			Int("expanded", lvl.Expanded).
			Int("next-frontier", next.Len()).
			Dur("elapsed", lvl.Elapsed).
			Msg("level-done")
		if err := s.emit(lvl, cur); err != nil {
			return 0, err
		}

		if d == maxDepth {
			break
		}
		if next.Len() == 0 {
			// Every branch filled up; later depths contribute nothing.
			log.Debug().Int("depth", d).Msg("frontier-exhausted")
			break
		}
		cur = next
	}
	return result, nil
}

func (s *LevelSolver) emit(lvl LevelLog, f *Frontier) error {
	if s.onLevel != nil {
		s.onLevel(lvl, f)
	}
	if s.logStream == nil {
		return nil
	}
	out, err := yaml.Marshal([]LevelLog{lvl})
	if err != nil {
		log.Error().Err(err).Msg("marshalling level log")
		return err
	}
	_, err = s.logStream.Write(out)
	return err
}
