// Command bf is the CLI front-end for the optimizing Brainfuck pipeline:
// format a source file, dump its IR, run it, or (stub) compile it to
// native code.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bfvm/internal/backend"
	"bfvm/internal/engine"
	"bfvm/internal/format"
	"bfvm/internal/source"
	"bfvm/internal/token"
)

// Version information.
const (
	Version     = "0.1.0"
	ProjectName = "bf"
)

// commandAliases maps short forms to their canonical subcommand name,
// mirroring the teacher's "r"/"i" shortcuts for "run"/"info".
var commandAliases = map[string]string{
	"r": "run",
	"c": "compile",
	"i": "info",
	"f": "format",
}

// verboseFlag accumulates occurrences of -v/--verbose. The stdlib flag
// package has no built-in repeat-counting flag, so this implements
// flag.Value directly rather than pulling in a third-party flags library
// for one feature.
type verboseFlag int

func (v *verboseFlag) String() string { return fmt.Sprintf("%d", int(*v)) }
func (v *verboseFlag) IsBoolFlag() bool { return true }
func (v *verboseFlag) Set(string) error {
	*v++
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet(ProjectName, flag.ContinueOnError)

	var verbosity verboseFlag
	fs.Var(&verbosity, "v", "increase verbosity (repeatable)")
	fs.Var(&verbosity, "verbose", "increase verbosity (repeatable)")
	noZeroLoop := fs.Bool("no-zero-loop", false, "disable the zero-loop pass")
	noArithLoop := fs.Bool("no-arith-loop", false, "disable the arithmetic-loop pass")
	noJumpRedundancy := fs.Bool("no-jump-redundancy", false, "disable jump-redundancy marking")
	noDCE := fs.Bool("no-dce", false, "disable dead-code elimination")
	optimize := fs.Bool("optimize", true, "master optimization gate; false disables all passes")
	maxSteps := fs.Uint64("max-steps", 0, "stop execution after this many instructions (0 = unlimited)")

	if len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help") {
		showUsage(fs)
		return nil
	}
	if len(args) > 0 && args[0] == "version" {
		showVersion()
		return nil
	}
	if len(args) == 0 {
		showUsage(fs)
		return fmt.Errorf("unknown subcommand")
	}

	cmd := args[0]
	if canonical, ok := commandAliases[cmd]; ok {
		cmd = canonical
	}

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return fmt.Errorf("path argument required")
	}
	path := rest[0]

	// Flags may also follow the path, as the usage line shows.
	if err := fs.Parse(rest[1:]); err != nil {
		return err
	}

	opts := engine.Options{
		NoZeroLoop:       *noZeroLoop || !*optimize,
		NoArithLoop:      *noArithLoop || !*optimize,
		NoJumpRedundancy: *noJumpRedundancy || !*optimize,
		NoDCE:            *noDCE || !*optimize,
		Verbosity:        int(verbosity),
		MaxSteps:         *maxSteps,
	}

	switch cmd {
	case "format":
		return runFormat(path)
	case "ir":
		return runIR(path, opts)
	case "run":
		return runProgram(path, opts)
	case "compile":
		return runCompile(path, opts)
	case "info":
		return runInfo(path)
	default:
		return fmt.Errorf("unknown subcommand %q", cmd)
	}
}

func runFormat(path string) error {
	prog, err := source.Load(path)
	if err != nil {
		return err
	}
	return format.Source(os.Stdout, token.Tokenize(prog.Data))
}

func runIR(path string, opts engine.Options) error {
	prog, err := source.Load(path)
	if err != nil {
		return err
	}
	result, err := engine.Compile(prog.Data, opts, os.Stderr)
	if err != nil {
		return err
	}
	return format.IR(os.Stdout, result.Instructions)
}

func runProgram(path string, opts engine.Options) error {
	prog, err := source.Load(path)
	if err != nil {
		return err
	}
	result, err := engine.Compile(prog.Data, opts, os.Stderr)
	if err != nil {
		return err
	}
	return engine.Run(result, os.Stdin, os.Stdout, opts.MaxSteps)
}

func runCompile(path string, opts engine.Options) error {
	prog, err := source.Load(path)
	if err != nil {
		return err
	}
	result, err := engine.Compile(prog.Data, opts, os.Stderr)
	if err != nil {
		return err
	}

	stub := backend.NewStub("x86_64-elf")
	_, err = engine.CompileNative(result, stub)
	return err
}

func runInfo(path string) error {
	prog, err := source.Load(path)
	if err != nil {
		return err
	}

	tokens := token.Tokenize(prog.Data)
	depth, maxDepth := 0, 0
	for _, tok := range tokens {
		switch tok.Kind {
		case token.LBracket:
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}
		case token.RBracket:
			depth--
		}
	}

	fmt.Printf("File: %s\n", prog.Path)
	fmt.Printf("Known extension: %t\n", source.HasKnownExtension(prog.Path))
	fmt.Printf("Source bytes: %d\n", len(prog.Data))
	fmt.Printf("Tokens: %d\n", len(tokens))
	fmt.Printf("Max bracket nesting: %d\n", maxDepth)
	return nil
}

func showUsage(fs *flag.FlagSet) {
	fmt.Printf("Usage: %s [COMMAND] <path> [OPTIONS]\n", filepath.Base(os.Args[0]))
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  format <path>    Print canonical source for the program")
	fmt.Println("  ir <path>        Print the optimized, linked IR")
	fmt.Println("  run <path>       Interpret the program")
	fmt.Println("  compile <path>   Compile to native code (unimplemented)")
	fmt.Println("  info <path>      Print source statistics without running anything")
	fmt.Println("  help             Show this help message")
	fmt.Println("  version          Show version information")
	fmt.Println()
	fmt.Println("Aliases: r=run, c=compile, i=info, f=format")
	fmt.Println()
	fmt.Println("Options:")
	fs.PrintDefaults()
}

func showVersion() {
	fmt.Printf("%s v%s\n", ProjectName, Version)
	fmt.Println("An optimizing Brainfuck compiler and interpreter")
}
