//go:build !js

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"vparse/pkg/utils"
	"vparse/pkg/verilog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, so tests can drive it.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vparse", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input Verilog file path")
	outPath := fs.String("out", "", "output file path (default: stdout)")
	preprocessOnly := fs.Bool("E", false, "print the preprocessed text and stop")
	showTokens := fs.Bool("tokens", false, "print the token stream and stop")
	showMacros := fs.Bool("macros", false, "print the `define table and stop")
	checkOnly := fs.Bool("check", false, "only report whether the file parses")
	showStats := fs.Bool("stats", false, "print per-module node counts instead of the formatted source")
	maxDepth := fs.Int("max-depth", verilog.DefaultMaxDepth, "nesting limit for groups and statements")
	verbose := fs.Bool("v", false, "log pipeline progress to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := log.New(io.Discard, "vparse: ", 0)
	if *verbose {
		logger.SetOutput(stderr)
	}

	if *inPath == "" {
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "nothing to do: provide -in <file.v>")
			fs.Usage()
			return 2
		}
		*inPath = fs.Arg(0)
	}

	fullPath, src, err := utils.ReadSource(*inPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Printf("read %d bytes from %s", len(src), fullPath)

	var out string
	switch {
	case *preprocessOnly, *showMacros:
		defs, text, err := verilog.Preprocess(src)
		if err != nil {
			fmt.Fprintf(stderr, "%s: preprocess failed: %v\n", *inPath, err)
			return 1
		}
		logger.Printf("collected %d macro definitions", len(defs))
		if *showMacros {
			out = formatMacros(defs)
		} else {
			out = text + "\n"
		}

	case *showTokens:
		tokens, err := verilog.Lex(src)
		if err != nil {
			fmt.Fprintf(stderr, "%s: lex failed: %v\n", *inPath, err)
			return 1
		}
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.String())
			sb.WriteString("\n")
		}
		out = sb.String()

	default:
		mods, err := verilog.ParseModules(src, verilog.WithMaxDepth(*maxDepth))
		if err != nil {
			fmt.Fprintf(stderr, "%s: parse failed: %v\n", *inPath, err)
			return 1
		}
		logger.Printf("parsed %d modules", len(mods))

		switch {
		case *checkOnly:
			fmt.Fprintf(stdout, "%s: ok (%d modules)\n", *inPath, len(mods))
			return 0
		case *showStats:
			out = formatStats(mods)
		default:
			parts := make([]string, len(mods))
			for i, m := range mods {
				parts[i] = m.String()
			}
			out = strings.Join(parts, "\n\n") + "\n"
		}
	}

	if *outPath == "" {
		fmt.Fprint(stdout, out)
		return 0
	}
	if err := utils.WriteOutput(*outPath, out); err != nil {
		fmt.Fprintf(stderr, "failed to write %q: %v\n", *outPath, err)
		return 1
	}
	logger.Printf("wrote %d bytes -> %s", len(out), *outPath)
	return 0
}

func formatMacros(defs []verilog.Macro) string {
	var sb strings.Builder
	for _, m := range defs {
		fmt.Fprintf(&sb, "%d\t%-11s %s\n", m.Line, m.Kind, m)
	}
	return sb.String()
}

// nodeStats counts AST nodes by Go type name, e.g. "NonBlockingAssign".
func nodeStats(m *verilog.Module) map[string]int {
	counts := map[string]int{}
	verilog.Walk(m, func(n verilog.Node) bool {
		name := strings.TrimPrefix(fmt.Sprintf("%T", n), "*verilog.")
		counts[name]++
		return true
	})
	return counts
}

func formatStats(mods []*verilog.Module) string {
	var sb strings.Builder
	for _, m := range mods {
		counts := nodeStats(m)
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintf(&sb, "module %s: %d ports, %d statements\n", m.Name, len(m.Ports), len(m.Stmts))
		for _, name := range names {
			fmt.Fprintf(&sb, "  %-20s %d\n", name, counts[name])
		}
	}
	return sb.String()
}
