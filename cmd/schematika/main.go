// Command schematika is a thin REPL/batch driver over pkg/reader and
// internal/interp: it owns no core logic of its own, only stdin/stdout
// wiring, prompt/TTY detection, and mapping a parsed top-level
// expression to an evaluated value (or a printed diagnostic).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/interp"
	"github.com/schematika/schematika/internal/rtconfig"
	"github.com/schematika/schematika/pkg/reader"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML rtconfig document (optional)")
	flag.Parse()

	cfg := rtconfig.Default()
	if *configPath != "" {
		loaded, err := rtconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if args := flag.Args(); len(args) > 0 {
		os.Exit(runFile(cfg, args[0]))
	}
	os.Exit(runREPL(cfg))
}

func runFile(cfg rtconfig.Config, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	sess := reader.BeginTranslationUnit(cfg)
	sess.Feed(data)
	sess.SetEOF()

	globals := interp.NewGlobals(sess.Collector, sess.Global)
	// env is the top-level call-frame chain: nil because nothing encloses
	// a translation unit's defs, but still a named, rooted slot rather
	// than a bare nil literal, so a future nested frame assigned here
	// would survive a collection the same way globals.values does.
	var env *interp.Frame
	sess.Collector.AddRoot(gcheap.SlotRoot(&env))
	for {
		expr, err := sess.ReadExpr()
		if err != nil {
			if err == reader.ErrEndOfInput {
				return 0
			}
			reportError(err)
			return 1
		}
		if _, err := interp.Eval(sess.Collector, globals, env, expr); err != nil {
			reportError(err)
			return 1
		}
	}
}

func runREPL(cfg rtconfig.Config) int {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	sess := reader.BeginInteractiveSession(cfg)
	globals := interp.NewGlobals(sess.Collector, sess.Global)
	var env *interp.Frame
	sess.Collector.AddRoot(gcheap.SlotRoot(&env))
	in := bufio.NewReader(os.Stdin)

	for {
		if interactive {
			fmt.Print("schematika> ")
		}
		line, err := in.ReadString('\n')
		if len(line) > 0 {
			sess.Feed([]byte(line))
		}
		if err != nil {
			sess.SetEOF()
		}
		drained := drainExpressions(sess, globals, env)
		if err != nil {
			return drained
		}
	}
}

// drainExpressions reads every top-level expression the session can
// currently complete from already-fed bytes, evaluating and printing
// each one, and returns a process exit code when end of input was
// reached (0, reader.ErrEndOfInput) or when a parse error could not be
// recovered from (1); ErrNeedMoreInput, or an error Recover cleared,
// returns -1 so the outer read loop feeds another line.
func drainExpressions(sess *reader.Session, globals *interp.Globals, env *interp.Frame) int {
	for {
		expr, err := sess.ReadExpr()
		if err != nil {
			switch err {
			case reader.ErrNeedMoreInput:
				return -1
			case reader.ErrEndOfInput:
				return 0
			default:
				reportError(err)
				if !sess.Recover() {
					return 1
				}
				return -1
			}
		}
		printResult(sess, globals, env, expr)
	}
}

func printResult(sess *reader.Session, globals *interp.Globals, env *interp.Frame, expr ast.Expression) {
	v, err := interp.Eval(sess.Collector, globals, env, expr)
	if err != nil {
		reportError(err)
		return
	}
	fmt.Println(v.String())
}

func reportError(err error) {
	fmt.Fprintln(os.Stderr, err)
	if d, ok := err.(*diag.Diag); ok && d.Fatal() {
		os.Exit(1)
	}
}
