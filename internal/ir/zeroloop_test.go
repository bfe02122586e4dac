package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bfvm/internal/token"
)

func TestZeroLoopRewritesClearIdiom(t *testing.T) {
	instructions := Combine(token.Tokenize([]byte("++++[-]+++")), nil)
	optimized := ZeroLoop(instructions, nil)

	assert.Equal(t, []Instruction{
		NewInc(4),
		NewZero(0),
		NewInc(3),
	}, optimized)
}

func TestZeroLoopIgnoresLargerDecrements(t *testing.T) {
	instructions := Combine(token.Tokenize([]byte("[--]")), nil)
	optimized := ZeroLoop(instructions, nil)
	assert.Equal(t, instructions, optimized)
}

func TestZeroLoopDoesNotReexamineEmittedZero(t *testing.T) {
	instructions := Combine(token.Tokenize([]byte("[-][-]")), nil)
	optimized := ZeroLoop(instructions, nil)
	assert.Equal(t, []Instruction{NewZero(0), NewZero(0)}, optimized)
}
