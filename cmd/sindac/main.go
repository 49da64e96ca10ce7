// Command sindac is the thin CLI driver over the core compiler
// packages. Benchmark/CLI entry points beyond this thin driver are out
// of core scope; this file is only the narrow seam that wires the
// packages together. Its verb dispatch — a bare os.Args switch rather
// than the flag package, usage printed to stderr on misuse — narrows
// to a handful of verbs: compile, format, test, plus an audit-trail
// `log` verb backed by internal/buildlog.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/arena"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/buildlog"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/codegen"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/config"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/diagnostics"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/pipeline"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/session"
	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
)

const usage = `usage: sindac <command> [arguments]

commands:
  compile <file.sin> [--arith=checked|unchecked] [-o <out.c>]
  test <file.sin> [file2.sin ...]
  format <file.sin>
  log [-n <count>]
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "compile":
		err = runCompile(os.Args[2:])
	case "test":
		err = runTest(os.Args[2:])
	case "format":
		err = runFormat(os.Args[2:])
	case "log":
		err = runLog(os.Args[2:])
	case "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "sindac: %v\n", err)
		os.Exit(1)
	}
}

// arithFlag parses "--arith=checked" / "--arith=unchecked" out of args,
// returning the remaining positional arguments.
func arithFlag(args []string, manifestDefault config.ArithMode) ([]string, codegen.ArithMode) {
	mode := config.ArithChecked
	if manifestDefault != "" {
		mode = manifestDefault
	}
	var rest []string
	for _, a := range args {
		switch a {
		case "--arith=checked":
			mode = config.ArithChecked
		case "--arith=unchecked":
			mode = config.ArithUnchecked
		default:
			rest = append(rest, a)
		}
	}
	if mode == config.ArithUnchecked {
		return rest, codegen.Unchecked
	}
	return rest, codegen.Checked
}

// arithName renders an ArithMode for the build log.
func arithName(m codegen.ArithMode) string {
	if m == codegen.Unchecked {
		return string(config.ArithUnchecked)
	}
	return string(config.ArithChecked)
}

// outputFlag pulls a trailing "-o <path>" pair out of args.
func outputFlag(args []string) ([]string, string) {
	var rest []string
	out := ""
	for i := 0; i < len(args); i++ {
		if args[i] == "-o" && i+1 < len(args) {
			out = args[i+1]
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	return rest, out
}

// compileResult is what compileFile hands back to its callers
// (runCompile, runTest, and the build-log appender) so each can decide
// what to do with the diagnostics and generated output without
// re-running the pipeline.
type compileResult struct {
	ctx  *pipeline.Context
	rep  *diagnostics.Reporter
	sess *session.Session
}

// compileFile runs one source file through the full pipeline (parse via
// the externally linked frontend, check, optimize, generate) and
// returns the accumulated result. It never calls os.Exit itself —
// callers decide exit behavior, since runTest needs to keep going after
// a failing file while runCompile should stop at the first.
func compileFile(path string, arith codegen.ArithMode) (*compileResult, error) {
	if !config.HasSourceExt(path) {
		return nil, fmt.Errorf("%s: not a recognized Sindarin source file", path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sess := session.New(filepath.Dir(path))
	a := arena.NewArena(sess.Label())

	rep := diagnostics.NewReporter(os.Stderr)

	if ParseSource == nil {
		rep.Report(&diagnostics.DiagnosticError{
			File:     path,
			Code:     "E000",
			Severity: diagnostics.SeverityFatal,
			Message:  errNoFrontend.Error(),
		})
		return &compileResult{rep: rep, sess: sess}, nil
	}

	mod, err := ParseSource(a, path, src)
	if err != nil {
		rep.Report(diagnostics.NewFatal(token.Token{File: path}, "E001", err.Error()))
		return &compileResult{rep: rep, sess: sess}, nil
	}

	ctx := pipeline.NewContext(path, mod, a, arith)
	pl := pipeline.New(
		pipeline.CheckerProcessor{},
		pipeline.OptimizerProcessor{},
		pipeline.CodegenProcessor{},
	)
	ctx = pl.Run(ctx)
	for _, d := range ctx.Errors {
		rep.Report(d)
	}
	return &compileResult{ctx: ctx, rep: rep, sess: sess}, nil
}

func runCompile(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("compile: missing source file\n%s", usage)
	}
	manifest, _ := config.LoadOrDefault("sindarin.yaml")
	args, arith := arithFlag(args, manifest.Arith)
	args, outPath := outputFlag(args)
	if len(args) == 0 {
		return fmt.Errorf("compile: missing source file")
	}
	path := args[0]

	res, err := compileFile(path, arith)
	if err != nil {
		return err
	}
	printDiagnostics(res.rep.Diagnostics())

	exitCode := 0
	if res.rep.HadError() {
		exitCode = 1
	}
	appendBuildLog(manifest, res, path, arithName(arith), exitCode)
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	if res.ctx == nil {
		return nil
	}

	if outPath == "" {
		outPath = manifest.OutputDir
		if err := os.MkdirAll(outPath, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
		base := filepath.Base(path)
		ext := filepath.Ext(base)
		outPath = filepath.Join(outPath, base[:len(base)-len(ext)]+".c")
	}
	if err := os.WriteFile(outPath, []byte(res.ctx.Output), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	runtimeFiles, err := codegen.RuntimeFiles()
	if err != nil {
		return fmt.Errorf("reading embedded runtime sources: %w", err)
	}
	dir := filepath.Dir(outPath)
	for name, content := range runtimeFiles {
		if err := os.WriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return fmt.Errorf("writing runtime file %s: %w", name, err)
		}
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", outPath)
	return nil
}

// runTest compiles every file given and reports pass/fail per file,
// continuing past a failing file rather than stopping at the first —
// the same "surface everything this run can find" approach the
// checker/optimizer use internally.
func runTest(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("test: missing source file(s)\n%s", usage)
	}
	failures := 0
	for _, path := range args {
		res, err := compileFile(path, codegen.Checked)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
			failures++
			continue
		}
		printDiagnostics(res.rep.Diagnostics())
		if res.rep.HadError() {
			fmt.Fprintf(os.Stdout, "FAIL %s\n", path)
			failures++
			continue
		}
		fmt.Fprintf(os.Stdout, "PASS %s\n", path)
	}
	if failures > 0 {
		os.Exit(1)
	}
	return nil
}

// runFormat is a placeholder verb: formatting source text is a
// property of the (externally supplied) lexer/parser, not this
// module's core — it exists only so sindac's verb surface covers
// compile, run tests, and format.
func runFormat(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("format: missing source file\n%s", usage)
	}
	if ParseSource == nil {
		return errNoFrontend
	}
	return fmt.Errorf("format: not supported without a linked pretty-printer frontend")
}

func runLog(args []string) error {
	manifest, _ := config.LoadOrDefault("sindarin.yaml")
	n := 20
	for i := 0; i < len(args); i++ {
		if args[i] == "-n" && i+1 < len(args) {
			if v, err := strconv.Atoi(args[i+1]); err == nil {
				n = v
			}
			i++
		}
	}
	log, err := buildlog.Open(manifest.BuildLog)
	if err != nil {
		return err
	}
	defer log.Close()

	runs, err := log.Recent(n)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%s  %-8s  exit=%d  diags=%d  %s\n",
			r.StartedAt.Format(time.RFC3339), r.ArithMode, r.ExitCode, r.DiagCount, r.SourceFile)
	}
	return nil
}

// appendBuildLog records one compile invocation to the project's build
// log. Consistent with the fatal/internal-only hard-failure policy, a
// build-log write failure is itself non-fatal to the compile — it is
// printed as a warning and otherwise ignored.
func appendBuildLog(manifest *config.Manifest, res *compileResult, path, arith string, exitCode int) {
	log, err := buildlog.Open(manifest.BuildLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sindac: warning: could not open build log: %v\n", err)
		return
	}
	defer log.Close()

	run := buildlog.Run{
		SessionID:  res.sess.ID.String(),
		SourceFile: path,
		StartedAt:  res.sess.Started,
		DiagCount:  len(res.rep.Diagnostics()),
		ExitCode:   exitCode,
		ArithMode:  arith,
	}
	if err := log.Append(run); err != nil {
		fmt.Fprintf(os.Stderr, "sindac: warning: could not append build log: %v\n", err)
	}
}
