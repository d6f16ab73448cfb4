// Package shell is an interactive console for exploring capture-game
// positions: set up a board, list its moves, and run either engine.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/capgrid/board"
	"github.com/domino14/capgrid/config"
	"github.com/domino14/capgrid/runner"
)

const defaultDepth = 8

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

type ShellController struct {
	l      *readline.Instance
	config *config.Config
	runner *runner.Runner

	curBoard board.State
	curDepth int

	solveMu     sync.Mutex
	solveCancel context.CancelFunc
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func newController(cfg *config.Config) *ShellController {
	return &ShellController{
		config:   cfg,
		runner:   runner.NewRunner(cfg),
		curDepth: defaultDepth,
	}
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mcapgrid>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer,

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg)
	sc.l = l
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	if sc.l == nil {
		writeln(msg, os.Stdout)
		return
	}
	writeln(msg, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Interrupt cancels a running solve. It reports whether one was running.
func (sc *ShellController) Interrupt() bool {
	sc.solveMu.Lock()
	defer sc.solveMu.Unlock()
	if sc.solveCancel == nil {
		return false
	}
	sc.solveCancel()
	return true
}

func (sc *ShellController) solveContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sc.solveMu.Lock()
	sc.solveCancel = cancel
	sc.solveMu.Unlock()
	return ctx, func() {
		sc.solveMu.Lock()
		sc.solveCancel = nil
		sc.solveMu.Unlock()
		cancel()
	}
}

func (sc *ShellController) handle(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "board", "b", "show", "s":
		return sc.board(cmd)
	case "random", "r":
		return sc.random(cmd)
	case "depth", "d":
		return sc.depth(cmd)
	case "hash":
		return sc.hash(cmd)
	case "moves", "m":
		return sc.moves(cmd)
	case "solve":
		return sc.solve(cmd)
	case "verify":
		return sc.verify(cmd)
	case "frontier", "f":
		return sc.frontier(cmd)
	case "help", "h", "?":
		return sc.help(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

// Execute runs a single line, as if typed at the prompt.
func (sc *ShellController) Execute(line string) error {
	cmd, err := extractFields(line)
	if err != nil {
		return err
	}
	resp, err := sc.handle(cmd)
	if err != nil {
		return err
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.Execute(line); err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
