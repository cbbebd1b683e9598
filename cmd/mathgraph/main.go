// cmd/mathgraph/main.go — interactive expression calculator.
//
// Expressions typed at the prompt are parsed, simplified, and printed.
// REPL commands handle differentiation, evaluation, and DOT export.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/puct9/mathgraph"
)

const (
	historyFile = ".mathgraph_history"
	prompt      = "mg> "
)

const helpText = `Type an expression to simplify it, e.g. (x + 2) + 3

Commands:
  :diff <var> <expr>            partial derivative, simplified
  :eval <var>=<n>,... <expr>    evaluate under bindings (partial ok)
  :dot <expr>                   Graphviz DOT for the expression graph
  :help                         show this help
  :quit                         exit
`

func main() {
	fmt.Println("mathgraph REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, ":") {
			if quit := command(line); quit {
				return
			}
			continue
		}

		expr, err := mathgraph.Parse(line)
		if err != nil {
			fail(err)
			continue
		}
		result, err := expr.Simplify()
		if err != nil {
			fail(err)
			continue
		}
		fmt.Println(result)
	}
}

// command runs a ":"-prefixed REPL command and reports whether the REPL
// should exit.
func command(line string) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case ":quit", ":q":
		return true

	case ":help", ":h":
		fmt.Print(helpText)

	case ":diff":
		varName, src, ok := strings.Cut(rest, " ")
		if !ok {
			fail(fmt.Errorf("usage: :diff <var> <expr>"))
			return false
		}
		expr, err := mathgraph.Parse(src)
		if err != nil {
			fail(err)
			return false
		}
		result, err := expr.Gradient(varName).Simplify()
		if err != nil {
			fail(err)
			return false
		}
		fmt.Println(result)

	case ":eval":
		spec, src, ok := strings.Cut(rest, " ")
		if !ok {
			fail(fmt.Errorf("usage: :eval <var>=<n>[,<var>=<n>...] <expr>"))
			return false
		}
		env, err := parseBindings(spec)
		if err != nil {
			fail(err)
			return false
		}
		expr, err := mathgraph.Parse(src)
		if err != nil {
			fail(err)
			return false
		}
		result, err := expr.Evaluate(env)
		if err != nil {
			fail(err)
			return false
		}
		fmt.Println(result)

	case ":dot":
		expr, err := mathgraph.Parse(rest)
		if err != nil {
			fail(err)
			return false
		}
		fmt.Print(mathgraph.Visualise(expr))

	default:
		fmt.Printf("unknown command %q. Type :help for commands.\n", name)
	}
	return false
}

func parseBindings(spec string) (mathgraph.Env, error) {
	env := mathgraph.Env{}
	for _, pair := range strings.Split(spec, ",") {
		name, val, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad binding %q, want <var>=<number>", pair)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("bad binding %q: %v", pair, err)
		}
		env[strings.TrimSpace(name)] = v
	}
	return env, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "\x1b[31m"+err.Error()+"\x1b[0m")
}
