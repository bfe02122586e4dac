// Package interp implements the bytecode-style interpreter: a fetch-
// dispatch loop over linked IR, a wrapping 8-bit cell tape, and a single
// pointer pair (instruction pointer, cell pointer).
package interp

import (
	"bufio"
	"fmt"
	"io"

	"bfvm/internal/diagnostics"
	"bfvm/internal/ir"
	"bfvm/internal/tape"
)

// Interpreter holds all state for one run: the instruction pointer, the
// cell pointer, and the tape. It is owned exclusively by the caller for
// its lifetime — nothing here is shared or reused across runs.
type Interpreter struct {
	instructions []ir.Instruction
	tape         *tape.Tape
	ip           int
	rp           int

	in  *bufio.Reader
	out *bufio.Writer

	// MaxSteps bounds how many instructions Run executes before giving up
	// with ErrStepBudgetExceeded. Zero means unlimited.
	MaxSteps uint64
}

// ErrStepBudgetExceeded is returned by Run when MaxSteps is nonzero and the
// program executes more than that many instructions without completing —
// used to drive statically-flagged possibly-infinite loops to a
// deterministic stop in tests instead of an external process timeout.
var ErrStepBudgetExceeded = diagnostics.ErrStepBudgetExceeded

// New builds an Interpreter over a linked instruction slice. stdin and
// stdout are the streams Input/Output instructions block on; they are the
// only observable blocking calls this interpreter makes.
func New(instructions []ir.Instruction, stdin io.Reader, stdout io.Writer) *Interpreter {
	return &Interpreter{
		instructions: instructions,
		tape:         tape.New(),
		in:           bufio.NewReader(stdin),
		out:          bufio.NewWriter(stdout),
	}
}

// Run executes the program from the start. ip begins at 0, rp begins at 0,
// the tape begins all-zero. It returns cleanly when ip runs past the end
// of the program.
func (it *Interpreter) Run() error {
	defer it.out.Flush()

	var steps uint64
	for it.ip < len(it.instructions) {
		if it.MaxSteps != 0 {
			steps++
			if steps > it.MaxSteps {
				return ErrStepBudgetExceeded
			}
		}

		in := it.instructions[it.ip]
		switch in.Op {
		case ir.Shl:
			it.rp -= in.Count
		case ir.Shr:
			it.rp += in.Count
		case ir.Inc:
			it.tape.Add(it.rp, uint8(in.Count))
		case ir.Dec:
			it.tape.Sub(it.rp, uint8(in.Count))
		case ir.Output:
			if err := it.out.WriteByte(it.tape.Get(it.rp)); err != nil {
				return fmt.Errorf("interp: write output: %w", err)
			}
		case ir.Input:
			if err := it.out.Flush(); err != nil {
				return fmt.Errorf("interp: flush before input: %w", err)
			}
			b, err := it.in.ReadByte()
			if err == nil {
				it.tape.Set(it.rp, b)
			}
			// EOF (or any other read error) silently leaves the cell
			// unchanged, matching observed upstream behavior: the read
			// result is discarded rather than zeroing the cell.
		case ir.Zero:
			it.tape.Set(it.rp+in.Offset, 0)
		case ir.Add:
			it.tape.Add(it.rp+in.Offset, it.tape.Get(it.rp))
		case ir.Sub:
			it.tape.Sub(it.rp+in.Offset, it.tape.Get(it.rp))
		case ir.AddMul:
			it.tape.Add(it.rp+in.Offset, uint8(in.Mult)*it.tape.Get(it.rp))
		case ir.SubMul:
			it.tape.Sub(it.rp+in.Offset, uint8(in.Mult)*it.tape.Get(it.rp))
		case ir.JumpZ:
			if it.tape.Get(it.rp) == 0 && !in.Target.IsRedundant() {
				it.ip = in.Target.Index()
				continue
			}
		case ir.JumpNz:
			if it.tape.Get(it.rp) != 0 && !in.Target.IsRedundant() {
				it.ip = in.Target.Index()
				continue
			}
		}
		it.ip++
	}

	return nil
}
