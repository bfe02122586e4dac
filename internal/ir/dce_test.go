package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeadCodeDeletesProvablySkippedLoop(t *testing.T) {
	// cell[0] starts at 0, so [>+<] never runs.
	instructions := buildIR("[>+<]+")
	reduced := DeadCode(instructions, nil)
	assert.Equal(t, []Instruction{NewInc(1)}, reduced)
}

func TestDeadCodeStopsAtNonzeroJumpZ(t *testing.T) {
	instructions := buildIR("+[>+<]")
	reduced := DeadCode(instructions, nil)
	assert.Equal(t, instructions, reduced, "cell[0] is nonzero, so DCE cannot soundly continue")
}

func TestDeadCodeStopsAtOutput(t *testing.T) {
	instructions := buildIR(".+")
	reduced := DeadCode(instructions, nil)
	assert.Equal(t, instructions, reduced)
}

func TestDeadCodeStopsAtInput(t *testing.T) {
	instructions := buildIR(",+")
	reduced := DeadCode(instructions, nil)
	assert.Equal(t, instructions, reduced)
}

func TestDeadCodePreservesBracketBalance(t *testing.T) {
	instructions := buildIR("[>[>]<]+")
	reduced := DeadCode(instructions, nil)
	assert.Equal(t, []Instruction{NewInc(1)}, reduced)

	depth := 0
	for _, in := range reduced {
		if in.Op == JumpZ {
			depth++
		}
		if in.Op == JumpNz {
			depth--
		}
	}
	assert.Zero(t, depth)
}

func TestDeadCodeStopsAtLoopAfterZeroedCellIsSet(t *testing.T) {
	instructions := buildIR("[-]+[.]")
	reduced := DeadCode(instructions, nil)
	// After the [-] loop (which ZeroLoop already reduced to Zero(0)) and the
	// +, execution reaches the second JumpZ with cell[0]=1 (nonzero) so DCE
	// must stop there rather than deleting [.] outright.
	assert.Equal(t, instructions, reduced)
}
