package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"stow/interpreter-go/pkg/interpreter"
)

const (
	historyFile = ".stow_history"
	replPrompt  = "stow> "
	clearScreen = "\x1b[H\x1b[2J"
)

var banner = fmt.Sprintf("Stow Programming Language [Version %s]\nType 'exit' to quit or 'clear' to clear the screen.", languageVersion)

// linerReader serves both the REPL prompt and input() calls, so that a
// single reader owns the terminal.
type linerReader struct {
	state *liner.State
}

func (r linerReader) ReadLine(prompt string) (string, error) {
	return r.state.Prompt(prompt)
}

func (c *cli) runREPL() error {
	stdin, ok := c.stdin.(*os.File)
	if !ok || !isatty.IsTerminal(stdin.Fd()) {
		reader := interpreter.NewStreamReader(c.stdin, c.stdout)
		s, err := c.openSession(".", reader)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, banner)
		replLoop(reader, s.interp, c.stdout, c.errWriter(), nil)
		return nil
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	reader := linerReader{state: ln}
	s, err := c.openSession(".", reader)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, banner)
	replLoop(reader, s.interp, c.stdout, c.errWriter(), ln.AppendHistory)
	return nil
}

// replLoop runs each line as its own program against shared interpreter
// state until exit or end of input.
func replLoop(in interpreter.LineReader, interp *interpreter.Interpreter, out, errOut io.Writer, remember func(string)) {
	for {
		line, err := in.ReadLine(replPrompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil && line == "" {
			return
		}
		switch strings.TrimSpace(line) {
		case "exit":
			return
		case "clear":
			fmt.Fprint(out, clearScreen)
			continue
		case "":
		default:
			if remember != nil {
				remember(line)
			}
			if rerr := interp.Run(line); rerr != nil {
				fmt.Fprintln(errOut, rerr)
			}
		}
		if err != nil {
			return
		}
	}
}
