// Package linker pairs JumpZ/JumpNz instructions and resolves their jump
// targets, the final stage before a Program can be interpreted or handed
// to a backend.
package linker

import (
	"fmt"

	"bfvm/internal/diagnostics"
	"bfvm/internal/ir"
)

// ErrMismatchedBrackets is returned when brackets in the program are not
// balanced: an unmatched JumpNz, or one or more unmatched JumpZ left over
// at end of program.
var ErrMismatchedBrackets = diagnostics.ErrMismatchedBrackets

// Link performs a single left-to-right sweep, maintaining a stack of
// pending JumpZ indices. On a JumpNz it pops the matching opener and
// writes opener+1 into the closer's target and closer+1 into the opener's
// target — unless a target was already marked Redundant by an earlier
// pass, in which case it is left untouched (a prior pass already proved
// that branch is never taken).
func Link(instructions []ir.Instruction) ([]ir.Instruction, error) {
	out := append([]ir.Instruction(nil), instructions...)

	var stack []int
	for i, in := range out {
		switch in.Op {
		case ir.JumpZ:
			stack = append(stack, i)
		case ir.JumpNz:
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: unmatched `]` at instruction %d", ErrMismatchedBrackets, i)
			}
			opener := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !out[opener].Target.IsRedundant() {
				out[opener].Target = ir.Resolved(i + 1)
			}
			if !out[i].Target.IsRedundant() {
				out[i].Target = ir.Resolved(opener + 1)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed `[`", ErrMismatchedBrackets, len(stack))
	}

	return out, nil
}
