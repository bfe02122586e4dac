package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bfvm/internal/ir"
	"bfvm/internal/linker"
	"bfvm/internal/token"
)

func compileAndLink(t *testing.T, src string) []ir.Instruction {
	t.Helper()
	instructions := ir.Combine(token.Tokenize([]byte(src)), nil)
	instructions = ir.ZeroLoop(instructions, nil)
	instructions, _ = ir.ArithmeticLoop(instructions, nil, true, true)
	linked, err := linker.Link(instructions)
	assert.NoError(t, err)
	return linked
}

// helloWorldSource builds a straight-line program that sets cell 0 to each
// character's code point with plain `+`, prints it, then clears the cell
// with a zero-loop before moving to the next character. It exercises the
// combiner's run-length collapsing of long `+` runs and the zero-loop pass
// end to end without depending on a hand-golfed program.
func helloWorldSource(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteString(strings.Repeat("+", int(r)))
		b.WriteString(".[-]")
	}
	return b.String()
}

func TestHelloWorld(t *testing.T) {
	linked := compileAndLink(t, helloWorldSource("Hello, World!\n"))
	var out bytes.Buffer
	it := New(linked, strings.NewReader(""), &out)
	assert.NoError(t, it.Run())
	assert.Equal(t, "Hello, World!\n", out.String())
}

func TestEcho(t *testing.T) {
	// The classic ",[.,]" echo loop relies on a NUL terminator to stop: EOF
	// leaves the cell unchanged rather than zeroing it, so an un-terminated
	// stream would loop on the last nonzero byte forever.
	linked := compileAndLink(t, ",[.,]")
	var out bytes.Buffer
	it := New(linked, strings.NewReader("abc\x00"), &out)
	assert.NoError(t, it.Run())
	assert.Equal(t, "abc", out.String())
}

func TestCopyLoopExecutesEquivalently(t *testing.T) {
	// +++++[->+<] : cell[0]=5, then copy loop moves it all into cell[1]
	linked := compileAndLink(t, "+++++[->+<]")

	var out bytes.Buffer
	it := New(linked, strings.NewReader(""), &out)
	assert.NoError(t, it.Run())
	assert.Equal(t, uint8(0), it.tape.Get(0))
	assert.Equal(t, uint8(5), it.tape.Get(1))
}

func TestMultiplyLoop(t *testing.T) {
	// ++++[->+++<] : cell[0]=4, cell[1] gains 12
	linked := compileAndLink(t, "++++[->+++<]")
	var out bytes.Buffer
	it := New(linked, strings.NewReader(""), &out)
	assert.NoError(t, it.Run())
	assert.Equal(t, uint8(0), it.tape.Get(0))
	assert.Equal(t, uint8(12), it.tape.Get(1))
}

func TestStepBudgetStopsRunawayLoop(t *testing.T) {
	// `+[]` never changes its nonzero cell, so it loops forever. (`+[+]`
	// would not do here: its wrapping cell reaches zero after 512 steps.)
	linked := compileAndLink(t, "+[]")
	var out bytes.Buffer
	it := New(linked, strings.NewReader(""), &out)
	it.MaxSteps = 1000
	err := it.Run()
	assert.ErrorIs(t, err, ErrStepBudgetExceeded)
}

func TestInputEOFLeavesCellUnchanged(t *testing.T) {
	linked := compileAndLink(t, "+++,.")
	var out bytes.Buffer
	it := New(linked, strings.NewReader(""), &out)
	assert.NoError(t, it.Run())
	assert.Equal(t, []byte{3}, out.Bytes())
}

