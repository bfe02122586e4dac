// Package engine orchestrates the full pipeline — tokenize, combine,
// optimize, link, run/compile — and is the only package `cmd/bf` talks to
// directly.
package engine

import (
	"fmt"
	"io"

	"bfvm/internal/backend"
	"bfvm/internal/diagnostics"
	"bfvm/internal/interp"
	"bfvm/internal/ir"
	"bfvm/internal/linker"
	"bfvm/internal/token"
)

// Options controls which optimizer passes run and how much the pipeline
// reports about its own progress. The zero value runs every pass with no
// reporting, matching the teacher's own "sane defaults, opt out with
// flags" posture in cmd/emulator/main.go.
type Options struct {
	NoZeroLoop       bool
	NoArithLoop      bool
	NoJumpRedundancy bool
	NoDCE            bool

	// Verbosity is the number of times -v/--verbose was given on the
	// command line. 0: silent. 1: stage instruction-count deltas. 2: also
	// peephole rewrite traces. 3 and above: also dump source and IR.
	Verbosity int

	// MaxSteps bounds interpreter execution; 0 means unlimited.
	MaxSteps uint64
}

// Result is everything a successful compile-and-optimize produces: the
// linked, ready-to-run instruction stream plus any static warnings the
// arithmetic-loop pass raised along the way.
type Result struct {
	Instructions []ir.Instruction
	Warnings     []ir.Warning
}

// Compile runs source through the full pipeline up to and including the
// jump linker. diag receives stage-progress output per opts.Verbosity;
// pass io.Discard to suppress it entirely.
func Compile(src []byte, opts Options, diag io.Writer) (Result, error) {
	tokens := token.Tokenize(src)

	tracer := traceFor(opts.Verbosity, diag)

	instructions := ir.Combine(tokens, tracer)
	reportStage(diag, opts.Verbosity, "combine", len(tokens), len(instructions))

	before := len(instructions)
	if !opts.NoZeroLoop {
		instructions = ir.ZeroLoop(instructions, tracer)
		reportStage(diag, opts.Verbosity, "zero-loop", before, len(instructions))
	}

	var warnings []ir.Warning
	before = len(instructions)
	if !opts.NoArithLoop {
		instructions, warnings = ir.ArithmeticLoop(instructions, tracer, true, !opts.NoJumpRedundancy)
		reportStage(diag, opts.Verbosity, "arithmetic-loop", before, len(instructions))
	}

	before = len(instructions)
	if !opts.NoDCE {
		instructions = ir.DeadCode(instructions, tracer)
		reportStage(diag, opts.Verbosity, "dce", before, len(instructions))
	}

	linked, err := linker.Link(instructions)
	if err != nil {
		return Result{}, diagnostics.Wrap("link", err)
	}

	if opts.Verbosity >= 3 {
		fmt.Fprintf(diag, "source:\n%s\n", src)
		fmt.Fprintln(diag, "ir:")
		for i, in := range linked {
			fmt.Fprintf(diag, "%4d: %s\n", i, in)
		}
	}

	for _, w := range warnings {
		diagnostics.PrintWarning(diag, diagnostics.StaticWarning{
			Stage:   "arithmetic-loop",
			Message: w.Message,
			Start:   w.Start,
			End:     w.End,
		})
	}

	return Result{Instructions: linked, Warnings: warnings}, nil
}

// Run executes a compiled Result against the given stdin/stdout streams.
func Run(result Result, stdin io.Reader, stdout io.Writer, maxSteps uint64) error {
	it := interp.New(result.Instructions, stdin, stdout)
	it.MaxSteps = maxSteps
	if err := it.Run(); err != nil {
		return diagnostics.Wrap("run", err)
	}
	return nil
}

// CompileNative hands a linked Result to a backend. Since the only backend
// shipped is backend.Stub, this always fails with
// diagnostics.ErrBackendUnimplemented — present so `cmd/bf compile` has a
// real call site to dispatch to once a native backend exists.
func CompileNative(result Result, b backend.Backend) ([]byte, error) {
	out, err := b.Compile(result.Instructions)
	if err != nil {
		return nil, diagnostics.Wrap(fmt.Sprintf("backend(%s)", b.Name()), err)
	}
	return out, nil
}

func traceFor(verbosity int, w io.Writer) ir.Tracer {
	if verbosity < 2 {
		return nil
	}
	return func(line string) {
		fmt.Fprintln(w, line)
	}
}

func reportStage(w io.Writer, verbosity int, stage string, before, after int) {
	if verbosity < 1 {
		return
	}
	fmt.Fprintf(w, "%s: %d -> %d instructions\n", stage, before, after)
}
