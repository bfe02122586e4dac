package linker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bfvm/internal/ir"
)

func TestLinkResolvesSimpleLoop(t *testing.T) {
	program := []ir.Instruction{ir.NewJumpZ(), ir.NewDec(1), ir.NewJumpNz()}
	linked, err := Link(program)
	assert.NoError(t, err)

	assert.True(t, linked[0].Target.IsResolved())
	assert.Equal(t, 3, linked[0].Target.Index())
	assert.True(t, linked[2].Target.IsResolved())
	assert.Equal(t, 1, linked[2].Target.Index())
}

func TestLinkResolvesNestedLoops(t *testing.T) {
	// [ [ - ] ]
	program := []ir.Instruction{
		ir.NewJumpZ(),
		ir.NewJumpZ(),
		ir.NewDec(1),
		ir.NewJumpNz(),
		ir.NewJumpNz(),
	}
	linked, err := Link(program)
	assert.NoError(t, err)

	assert.Equal(t, 5, linked[0].Target.Index())
	assert.Equal(t, 1, linked[4].Target.Index())
	assert.Equal(t, 4, linked[1].Target.Index())
	assert.Equal(t, 2, linked[3].Target.Index())
}

func TestLinkLeavesRedundantTargetsUntouched(t *testing.T) {
	program := []ir.Instruction{ir.NewJumpZ(), ir.NewZero(0)}
	program = append(program, ir.NewJumpNz())
	program[2].Target = ir.Redundant()

	linked, err := Link(program)
	assert.NoError(t, err)

	assert.True(t, linked[0].Target.IsResolved())
	assert.True(t, linked[2].Target.IsRedundant())
}

func TestLinkUnmatchedClosingBracket(t *testing.T) {
	_, err := Link([]ir.Instruction{ir.NewJumpNz()})
	assert.ErrorIs(t, err, ErrMismatchedBrackets)
}

func TestLinkUnmatchedOpeningBracket(t *testing.T) {
	_, err := Link([]ir.Instruction{ir.NewJumpZ(), ir.NewDec(1)})
	assert.ErrorIs(t, err, ErrMismatchedBrackets)
}
