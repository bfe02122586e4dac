// Package source loads Brainfuck source files from disk.
package source

import (
	"fmt"
	"os"
	"path/filepath"

	"bfvm/internal/diagnostics"
)

// validExtensions lists the file extensions a source file is expected to
// carry. Load does not reject other extensions — a stray `.txt` program is
// still valid Brainfuck — it only uses this list to annotate info output.
var validExtensions = []string{".bf", ".b"}

// Program is a loaded source file: its raw bytes plus the path it came
// from, for error messages and the `info` subcommand.
type Program struct {
	Path string
	Data []byte
}

// Load reads a Brainfuck source file from disk.
func Load(path string) (*Program, error) {
	if path == "" {
		return nil, diagnostics.ErrEmptySourcePath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %s: %w", path, err)
	}

	return &Program{Path: path, Data: data}, nil
}

// HasKnownExtension reports whether path carries one of the conventional
// Brainfuck source extensions.
func HasKnownExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, valid := range validExtensions {
		if ext == valid {
			return true
		}
	}
	return false
}
