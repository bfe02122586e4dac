package ir

import "fmt"

// JumpTarget is the payload of a JumpZ/JumpNz instruction: either a
// concrete instruction index (the one just past the partner bracket), or
// the Redundant sentinel meaning
// the branch can never be taken and an executor is free to treat it as a
// no-op. Modeling this as a tagged variant (rather than an out-of-band
// index such as 0 or -1) keeps "not yet linked" and "proven untakeable"
// from being confused with each other.
type JumpTarget struct {
	resolved  bool
	redundant bool
	index     int
}

// Unresolved returns the target state assigned to every JumpZ/JumpNz at
// construction time, before the jump linker runs.
func Unresolved() JumpTarget {
	return JumpTarget{}
}

// Resolved returns a concrete jump target: idx is the 0-based instruction
// index the jump should set ip to, i.e. the partner bracket's index plus one.
func Resolved(idx int) JumpTarget {
	return JumpTarget{resolved: true, index: idx}
}

// Redundant returns the sentinel meaning this branch is provably never
// taken.
func Redundant() JumpTarget {
	return JumpTarget{redundant: true}
}

// IsRedundant reports whether this target was marked Redundant.
func (t JumpTarget) IsRedundant() bool { return t.redundant }

// IsResolved reports whether this target holds a concrete index.
func (t JumpTarget) IsResolved() bool { return t.resolved }

// Index returns the concrete instruction index. Panics if the
// target is not resolved — callers must check IsResolved first.
func (t JumpTarget) Index() int {
	if !t.resolved {
		panic("ir: JumpTarget.Index called on an unresolved or redundant target")
	}
	return t.index
}

// String renders a target for the `ir` subcommand.
func (t JumpTarget) String() string {
	switch {
	case t.redundant:
		return "redundant"
	case t.resolved:
		return fmt.Sprintf("%d", t.index)
	default:
		return "unresolved"
	}
}
