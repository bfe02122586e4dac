package ir

import "fmt"

// Warning is a non-fatal diagnostic the arithmetic-loop pass raises when it
// cannot show that a loop's induction cell returns to zero. It carries the half-open instruction
// range (in the pre-rewrite array this pass is scanning) so the caller can
// report it with source context.
type Warning struct {
	Message string
	Start   int
	End     int
}

// summaryKind is the tag of the induction-cell summary the arithmetic-loop
// pass accumulates while walking a candidate loop body.
type summaryKind uint8

const (
	summaryDiff summaryKind = iota
	summaryZeroed
	summaryZeroedDiff
)

// summary tracks how the induction cell (offset 0 at loop entry) changes
// over one iteration of a candidate copy/multiply loop.
type summary struct {
	kind summaryKind
	d    int
}

func (s *summary) inc(n int) {
	switch s.kind {
	case summaryDiff, summaryZeroedDiff:
		s.d += n
	case summaryZeroed:
		s.kind = summaryZeroedDiff
		s.d = n
	}
}

func (s *summary) dec(n int) {
	switch s.kind {
	case summaryDiff, summaryZeroedDiff:
		s.d -= n
	case summaryZeroed:
		s.kind = summaryZeroedDiff
		s.d = -n
	}
}

func (s *summary) zero() {
	s.kind = summaryZeroed
	s.d = 0
}

// ArithmeticLoop recognizes copy/multiply loops and rewrites them to
// straight-line code, eliminating the branch. When rewrite is false
// recognized loops are left in place — classification, jump-redundancy
// marking (controlled by jumpRedundancy) and warnings still run.
//
// It is the centerpiece of the optimizer: every Diff(-1) copy loop becomes
// a straight-line sequence of Add/Sub/AddMul/SubMul plus a trailing
// Zero(0); loops whose body provably leaves the induction cell at zero get
// their trailing JumpNz marked Redundant; every other loop with a valid
// body and no net pointer motion produces a Warning.
func ArithmeticLoop(instructions []Instruction, trace Tracer, rewrite, jumpRedundancy bool) ([]Instruction, []Warning) {
	out := append([]Instruction(nil), instructions...)
	var warnings []Warning

	i := 0
	for i < len(out) {
		if out[i].Op != JumpZ {
			i++
			continue
		}

		end, ok := findLoopEnd(out, i)
		if !ok {
			i++
			continue
		}

		body := out[i+1 : end]
		sum, offset, ok := analyzeBody(body)
		if !ok || offset != 0 {
			i++
			continue
		}

		switch {
		case sum.kind == summaryDiff && sum.d == -1:
			if rewrite {
				replacement := rewriteCopyLoop(body)
				trace.trace("arithmetic-loop: replaced [%d,%d] with %d instruction(s)", i, end, len(replacement))
				merged := append(append([]Instruction{}, replacement...), out[end+1:]...)
				out = append(out[:i], merged...)
				continue // re-examine from the same index; the slice just shrank/grew under us
			}
			i++

		case sum.kind == summaryZeroed || (sum.kind == summaryZeroedDiff && sum.d == 0):
			if jumpRedundancy && !out[end].Target.IsRedundant() {
				trace.trace("jump-redundancy: marked JumpNz at %d as redundant", end)
				out[end].Target = Redundant()
			}
			i++

		default:
			// Everything else — Diff(d) for any d != -1, or ZeroedDiff(d)
			// for any d != 0 — cannot be proven to terminate by this
			// analysis: the induction cell is never guaranteed to land
			// back on zero. Warn, unless a prior pass already proved the
			// loop is never entered at all.
			if !out[end].Target.IsRedundant() {
				warnings = append(warnings, Warning{
					Message: fmt.Sprintf("infinite loop detected at [%d,%d]", i, end),
					Start:   i,
					End:     end,
				})
			}
			i++
		}
	}

	return out, warnings
}

// findLoopEnd looks forward from open+1 for the first bracket instruction.
// It must be a JumpNz; if a nested JumpZ appears first the shape
// requirement fails and ok is false.
func findLoopEnd(instructions []Instruction, open int) (end int, ok bool) {
	for j := open + 1; j < len(instructions); j++ {
		switch instructions[j].Op {
		case JumpZ:
			return 0, false
		case JumpNz:
			return j, true
		}
	}
	return 0, false
}

// analyzeBody walks a candidate loop body, rejecting anything but
// Shl/Shr/Inc/Dec/Zero, and returns the induction-cell summary plus the
// net pointer motion over the body.
func analyzeBody(body []Instruction) (sum summary, offset int, ok bool) {
	for _, in := range body {
		switch in.Op {
		case Shl:
			offset -= in.Count
		case Shr:
			offset += in.Count
		case Inc:
			if offset == 0 {
				sum.inc(in.Count)
			}
		case Dec:
			if offset == 0 {
				sum.dec(in.Count)
			}
		case Zero:
			if offset+in.Offset == 0 {
				sum.zero()
			}
		default:
			return summary{}, 0, false
		}
	}
	return sum, offset, true
}

// rewriteCopyLoop re-traverses a proven Diff(-1) loop body and emits the
// straight-line replacement: one Add/Sub/AddMul/SubMul per side-effect on a
// cell at nonzero offset, a guarded zero for any Zero at nonzero offset,
// and a final Zero(0) for the now-provably-zero induction cell.
func rewriteCopyLoop(body []Instruction) []Instruction {
	replacement := make([]Instruction, 0, len(body)+1)

	offset := 0
	for _, in := range body {
		switch in.Op {
		case Shl:
			offset -= in.Count
		case Shr:
			offset += in.Count
		case Inc:
			if offset == 0 {
				continue
			}
			if in.Count == 1 {
				replacement = append(replacement, NewAdd(offset))
			} else {
				replacement = append(replacement, NewAddMul(offset, in.Count))
			}
		case Dec:
			if offset == 0 {
				continue
			}
			if in.Count == 1 {
				replacement = append(replacement, NewSub(offset))
			} else {
				replacement = append(replacement, NewSubMul(offset, in.Count))
			}
		case Zero:
			target := offset + in.Offset
			if target == 0 {
				continue
			}
			guardJump := NewJumpZ()
			guardClose := NewJumpNz()
			guardClose.Target = Redundant()
			replacement = append(replacement, guardJump, NewZero(target), guardClose)
		}
	}
	replacement = append(replacement, NewZero(0))
	return replacement
}
