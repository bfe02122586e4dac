// Package backend defines the interface a native code generator would
// implement. No implementation is provided — see Stub — matching the
// system's explicit direction that emitting a malformed object file is
// worse than refusing outright.
package backend

import (
	"bfvm/internal/diagnostics"
	"bfvm/internal/ir"
)

// ErrUnimplemented is returned by every Stub.Compile call.
var ErrUnimplemented = diagnostics.ErrBackendUnimplemented

// Backend turns a linked instruction stream into a target-specific byte
// sequence, e.g. a native object file or a shared library. Every concrete
// Backend must report ErrUnimplemented until it can round-trip the full IR
// instruction set, the same way the cartridge package's MBC interface lets
// unsupported banking modes fail closed instead of returning garbage.
type Backend interface {
	// Name identifies the backend for CLI output, e.g. "x86_64-elf".
	Name() string

	// Compile lowers a linked instruction stream to the backend's target
	// representation.
	Compile(instructions []ir.Instruction) ([]byte, error)
}

// Stub is the only Backend this repository ships: it refuses every
// Compile call. It exists so `cmd/bf compile` has something to dispatch
// to, and so a future native backend has a documented interface to
// implement against.
type Stub struct {
	TargetName string
}

// NewStub returns a Stub reporting the given target name in Name() and
// error messages.
func NewStub(targetName string) *Stub {
	return &Stub{TargetName: targetName}
}

func (s *Stub) Name() string {
	if s.TargetName == "" {
		return "stub"
	}
	return s.TargetName
}

func (s *Stub) Compile(instructions []ir.Instruction) ([]byte, error) {
	return nil, ErrUnimplemented
}
