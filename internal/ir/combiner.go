package ir

import "bfvm/internal/token"

// maxShiftRun and maxArithRun are the largest run lengths representable by
// a single Shl/Shr and Inc/Dec instruction respectively. A longer run in
// the source is split across multiple instructions of the same kind; the
// only thing this specification requires is that the observable behavior
// match one instruction per source command, not a particular split point.
const (
	maxShiftRun = 65535
	maxArithRun = 255
)

// Combine run-length-encodes adjacent ShiftLeft/ShiftRight/Increment/
// Decrement tokens into single Shl/Shr/Inc/Dec instructions and maps every
// other token one-to-one. Brackets become JumpZ/JumpNz with unresolved
// targets — the jump linker fills those in once optimization is done.
func Combine(tokens []token.Token, trace Tracer) []Instruction {
	out := make([]Instruction, 0, len(tokens))

	i := 0
	for i < len(tokens) {
		kind := tokens[i].Kind
		if !kind.Combinable() {
			out = append(out, singleInstruction(kind))
			i++
			continue
		}

		run := 1
		for i+run < len(tokens) && tokens[i+run].Kind == kind {
			run++
		}
		if run > 1 {
			trace.trace("combine %s x%d", kind, run)
		}

		max := maxArithRun
		if kind == token.ShiftLeft || kind == token.ShiftRight {
			max = maxShiftRun
		}
		for remaining := run; remaining > 0; {
			chunk := remaining
			if chunk > max {
				chunk = max
			}
			out = append(out, runInstruction(kind, chunk))
			remaining -= chunk
		}
		i += run
	}

	return out
}

func singleInstruction(kind token.Kind) Instruction {
	switch kind {
	case token.Output:
		return NewOutput()
	case token.Input:
		return NewInput()
	case token.LBracket:
		return NewJumpZ()
	case token.RBracket:
		return NewJumpNz()
	default:
		panic("ir: singleInstruction called on a combinable kind")
	}
}

func runInstruction(kind token.Kind, n int) Instruction {
	switch kind {
	case token.ShiftLeft:
		return NewShl(n)
	case token.ShiftRight:
		return NewShr(n)
	case token.Increment:
		return NewInc(n)
	case token.Decrement:
		return NewDec(n)
	default:
		panic("ir: runInstruction called on a non-combinable kind")
	}
}
