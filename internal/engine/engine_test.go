package engine

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bfvm/internal/backend"
)

func TestCompileAndRunRoundTrip(t *testing.T) {
	result, err := Compile([]byte("+++++."), Options{}, io.Discard)
	assert.NoError(t, err)
	assert.Empty(t, result.Warnings)

	var out bytes.Buffer
	assert.NoError(t, Run(result, strings.NewReader(""), &out, 0))
	assert.Equal(t, []byte{5}, out.Bytes())
}

func TestCompileReportsMismatchedBrackets(t *testing.T) {
	_, err := Compile([]byte("[+"), Options{}, io.Discard)
	assert.Error(t, err)
}

func TestCompileVerbosityReportsStageDeltas(t *testing.T) {
	var diag bytes.Buffer
	_, err := Compile([]byte("+++[-]"), Options{Verbosity: 1}, &diag)
	assert.NoError(t, err)
	assert.Contains(t, diag.String(), "zero-loop:")
}

func TestCompileCollectsInfiniteLoopWarning(t *testing.T) {
	var diag bytes.Buffer
	result, err := Compile([]byte("+[+]"), Options{}, &diag)
	assert.NoError(t, err)
	assert.Len(t, result.Warnings, 1)
	assert.Contains(t, diag.String(), "infinite loop detected")
}

func TestCompileNativeReportsUnimplemented(t *testing.T) {
	result, err := Compile([]byte("+."), Options{}, io.Discard)
	assert.NoError(t, err)

	_, err = CompileNative(result, backend.NewStub("x86_64-elf"))
	assert.ErrorIs(t, err, backend.ErrUnimplemented)
}

func TestCompileDisabledPassesAreSkipped(t *testing.T) {
	result, err := Compile([]byte("+++[-]"), Options{NoZeroLoop: true, NoArithLoop: true, NoDCE: true}, io.Discard)
	assert.NoError(t, err)
	// without zero-loop or arithmetic-loop rewriting, the loop survives as
	// JumpZ/Dec/JumpNz rather than collapsing to a single Zero(0).
	assert.Len(t, result.Instructions, 4)
}
