package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"bfvm/internal/ir"
	"bfvm/internal/token"
)

func TestSourceRoundTripsThroughTokenize(t *testing.T) {
	src := "++>[-]<,."
	var buf bytes.Buffer
	assert.NoError(t, Source(&buf, token.Tokenize([]byte(src))))
	assert.Equal(t, src+"\n", buf.String())
}

func TestSourceDropsComments(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Source(&buf, token.Tokenize([]byte("+ hello +"))))
	assert.Equal(t, "++\n", buf.String())
}

func TestIRRendersOneInstructionPerLine(t *testing.T) {
	instructions := []ir.Instruction{ir.NewInc(3), ir.NewOutput()}
	var buf bytes.Buffer
	assert.NoError(t, IR(&buf, instructions))
	assert.Equal(t, "   0: Inc(3)\n   1: Output\n", buf.String())
}
