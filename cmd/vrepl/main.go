package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"vparse/pkg/verilog"
)

const (
	banner      = "vparse repl. Type a statement, or :help for commands."
	historyFile = ".vparse_history"
	promptMain  = "vparse> "
	promptCont  = "   ...> "
)

const helpText = `:stmt     parse input as a statement (default)
:expr     parse input as an expression
:module   parse input as a module
:tokens   show the token stream
:macros   list macros defined in this session
:quit     exit
` + "`define lines add macros to the session."

// session holds the REPL state between inputs.
type session struct {
	mode   string
	macros verilog.MacroTable
}

func newSession() *session {
	return &session{mode: "stmt", macros: verilog.MacroTable{}}
}

// command handles a ":" line.
func (s *session) command(line string) (out string, quit bool) {
	switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
	case ":quit", ":q":
		return "", true
	case ":help":
		return helpText, false
	case ":stmt", ":expr", ":module", ":tokens":
		s.mode = strings.TrimPrefix(cmd, ":")
		return "mode: " + s.mode, false
	case ":macros":
		names := make([]string, 0, len(s.macros))
		for name := range s.macros {
			names = append(names, name)
		}
		sort.Strings(names)
		lines := make([]string, len(names))
		for i, name := range names {
			lines[i] = s.macros[name].String()
		}
		if len(lines) == 0 {
			return "no macros defined", false
		}
		return strings.Join(lines, "\n"), false
	}
	return "unknown command. Type :help for a list.", false
}

// eval parses src in the current mode and renders the result.
func (s *session) eval(src string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(src), "`define") {
		defs, _, err := verilog.Preprocess(src)
		if err != nil {
			return "", err
		}
		names := make([]string, len(defs))
		for i, m := range defs {
			s.macros.Define(m)
			names[i] = fmt.Sprintf("%s (%s)", m.Name, m.Kind)
		}
		return "defined " + strings.Join(names, ", "), nil
	}

	opts := []verilog.Option{verilog.WithMacros(s.macros)}
	switch s.mode {
	case "tokens":
		tokens, err := verilog.Lex(src)
		if err != nil {
			return "", err
		}
		lines := make([]string, len(tokens))
		for i, tok := range tokens {
			lines[i] = tok.String()
		}
		return strings.Join(lines, "\n"), nil
	case "expr":
		e, err := verilog.ParseExpression(src, opts...)
		if err != nil {
			return "", err
		}
		return e.String(), nil
	case "module":
		m, err := verilog.ParseModule(src, opts...)
		if err != nil {
			return "", err
		}
		return m.String(), nil
	}
	st, err := verilog.ParseStatement(src, opts...)
	if err != nil {
		return "", err
	}
	return verilog.Format(st), nil
}

// incomplete reports whether err means the input stopped early, so the REPL
// should read a continuation line.
func incomplete(err error) bool {
	var se *verilog.SyntaxError
	return errors.As(err, &se) && se.AtEOF()
}

// console owns the line editor and its history file.
type console struct {
	ln       *liner.State
	histPath string
}

func openConsole(histName string) *console {
	home, _ := os.UserHomeDir()
	c := &console{ln: liner.NewLiner(), histPath: filepath.Join(home, histName)}
	c.ln.SetCtrlCAborts(true)
	if f, err := os.Open(c.histPath); err == nil {
		_, _ = c.ln.ReadHistory(f)
		_ = f.Close()
	}
	return c
}

// close saves the history and restores the terminal.
func (c *console) close() {
	if f, err := os.Create(c.histPath); err == nil {
		_, _ = c.ln.WriteHistory(f)
		_ = f.Close()
	}
	_ = c.ln.Close()
}

// closeOnSignal restores the terminal when the process is told to stop.
func (c *console) closeOnSignal(sigs ...os.Signal) (stop func()) {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, sigs...)
	done := make(chan struct{})
	go func() {
		select {
		case <-sigc:
			c.close()
			os.Exit(130)
		case <-done:
		}
	}()
	return func() {
		signal.Stop(sigc)
		close(done)
	}
}

// read returns one complete input. Lines are joined while the text parses up
// to an early end of input in the session's mode. ok is false at end of
// input.
func (c *console) read(s *session) (src string, ok bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := c.ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src = b.String()
		if !s.wantsMore(src) {
			return src, true
		}
	}
}

// wantsMore reports whether src is an unfinished statement, expression or
// module.
func (s *session) wantsMore(src string) bool {
	trimmed := strings.TrimSpace(src)
	switch {
	case trimmed == "", s.mode == "tokens",
		strings.HasPrefix(trimmed, ":"), strings.HasPrefix(trimmed, "`define"):
		return false
	}
	_, err := s.eval(src)
	return incomplete(err)
}

func main() {
	fmt.Println(banner)

	c := openConsole(historyFile)
	defer c.close()
	stop := c.closeOnSignal(syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	s := newSession()
	for {
		src, ok := c.read(s)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		c.ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			out, quit := s.command(src)
			if quit {
				return
			}
			fmt.Println(out)
			continue
		}

		out, err := s.eval(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(out)
	}
}
