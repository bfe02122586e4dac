// Package ir defines the intermediate representation the optimizer passes
// operate on: run-length-encoded motion and arithmetic, plus the synthetic
// Zero/Add/Sub/AddMul/SubMul operations the arithmetic-loop pass discovers.
package ir

import "fmt"

// Op identifies one Instruction case. The payload fields that are
// meaningful for a given Op are documented next to each constant.
type Op uint8

const (
	// Shl moves the pointer left by Count cells.
	Shl Op = iota
	// Shr moves the pointer right by Count cells.
	Shr
	// Inc wrapping-adds Count to the current cell.
	Inc
	// Dec wrapping-subtracts Count from the current cell.
	Dec
	// Output writes the current cell to stdout.
	Output
	// Input reads one byte from stdin into the current cell.
	Input
	// JumpZ jumps to Target if the current cell is zero.
	JumpZ
	// JumpNz jumps to Target if the current cell is nonzero.
	JumpNz
	// Zero sets cell[ptr+Offset] to 0.
	Zero
	// Add does cell[ptr+Offset] += cell[ptr].
	Add
	// Sub does cell[ptr+Offset] -= cell[ptr].
	Sub
	// AddMul does cell[ptr+Offset] += Mult * cell[ptr].
	AddMul
	// SubMul does cell[ptr+Offset] -= Mult * cell[ptr].
	SubMul
)

// String names an Op the way the pretty-printer and verbose traces do.
func (o Op) String() string {
	switch o {
	case Shl:
		return "Shl"
	case Shr:
		return "Shr"
	case Inc:
		return "Inc"
	case Dec:
		return "Dec"
	case Output:
		return "Output"
	case Input:
		return "Input"
	case JumpZ:
		return "JumpZ"
	case JumpNz:
		return "JumpNz"
	case Zero:
		return "Zero"
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case AddMul:
		return "AddMul"
	case SubMul:
		return "SubMul"
	default:
		return "?"
	}
}

// Instruction is one step of the program. It is a tagged union: which
// fields are meaningful depends on Op, as documented on each Op constant.
type Instruction struct {
	Op Op

	// Count holds the run-length for Shl/Shr (1..=65535) and Inc/Dec
	// (1..=255).
	Count int

	// Offset holds the signed cell offset for Zero/Add/Sub/AddMul/SubMul.
	Offset int

	// Mult holds the multiplier for AddMul/SubMul (>=2; a multiplier of 1
	// must be encoded as Add/Sub instead).
	Mult int

	// Target holds the resolved or sentinel jump target for JumpZ/JumpNz.
	Target JumpTarget
}

// NewShl builds a Shl instruction. Panics if n is out of range, matching
// the invariant that run-length counts are always strictly positive.
func NewShl(n int) Instruction { return Instruction{Op: Shl, Count: mustPositive(n)} }

// NewShr builds a Shr instruction.
func NewShr(n int) Instruction { return Instruction{Op: Shr, Count: mustPositive(n)} }

// NewInc builds an Inc instruction.
func NewInc(n int) Instruction { return Instruction{Op: Inc, Count: mustPositive(n)} }

// NewDec builds a Dec instruction.
func NewDec(n int) Instruction { return Instruction{Op: Dec, Count: mustPositive(n)} }

// NewOutput builds an Output instruction.
func NewOutput() Instruction { return Instruction{Op: Output} }

// NewInput builds an Input instruction.
func NewInput() Instruction { return Instruction{Op: Input} }

// NewJumpZ builds an unresolved JumpZ instruction.
func NewJumpZ() Instruction { return Instruction{Op: JumpZ, Target: Unresolved()} }

// NewJumpNz builds an unresolved JumpNz instruction.
func NewJumpNz() Instruction { return Instruction{Op: JumpNz, Target: Unresolved()} }

// NewZero builds a Zero instruction at the given signed offset.
func NewZero(offset int) Instruction { return Instruction{Op: Zero, Offset: offset} }

// NewAdd builds an Add instruction at the given signed offset.
func NewAdd(offset int) Instruction { return Instruction{Op: Add, Offset: offset} }

// NewSub builds a Sub instruction at the given signed offset.
func NewSub(offset int) Instruction { return Instruction{Op: Sub, Offset: offset} }

// NewAddMul builds an AddMul instruction. Panics if mult < 2.
func NewAddMul(offset, mult int) Instruction {
	return Instruction{Op: AddMul, Offset: offset, Mult: mustMultiplier(mult)}
}

// NewSubMul builds a SubMul instruction. Panics if mult < 2.
func NewSubMul(offset, mult int) Instruction {
	return Instruction{Op: SubMul, Offset: offset, Mult: mustMultiplier(mult)}
}

func mustPositive(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("ir: run-length count must be positive, got %d", n))
	}
	return n
}

func mustMultiplier(n int) int {
	if n < 2 {
		panic(fmt.Sprintf("ir: AddMul/SubMul multiplier must be >= 2, got %d", n))
	}
	return n
}

// String renders an Instruction for the `ir` subcommand and verbose traces.
func (in Instruction) String() string {
	switch in.Op {
	case Shl, Shr, Inc, Dec:
		return fmt.Sprintf("%s(%d)", in.Op, in.Count)
	case Output, Input:
		return in.Op.String()
	case JumpZ, JumpNz:
		return fmt.Sprintf("%s(%s)", in.Op, in.Target)
	case Zero, Add, Sub:
		return fmt.Sprintf("%s(%d)", in.Op, in.Offset)
	case AddMul, SubMul:
		return fmt.Sprintf("%s(%d,%d)", in.Op, in.Offset, in.Mult)
	default:
		return "?"
	}
}
