// Package format renders source tokens and IR programs as text, backing the
// `format` and `ir` CLI subcommands.
package format

import (
	"fmt"
	"io"
	"strings"

	"bfvm/internal/ir"
	"bfvm/internal/token"
)

// Source re-emits a token stream as canonical Brainfuck source: one
// character per token. This is the `format` subcommand's output — useful
// for diffing two programs that differ only in comments or whitespace.
func Source(w io.Writer, tokens []token.Token) error {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Kind.String())
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

// IR renders a linked or unlinked instruction slice one instruction per
// line, indexed, for the `ir` subcommand.
func IR(w io.Writer, instructions []ir.Instruction) error {
	for i, in := range instructions {
		if _, err := fmt.Fprintf(w, "%4d: %s\n", i, in); err != nil {
			return err
		}
	}
	return nil
}
