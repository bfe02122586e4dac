package ir

// ZeroLoop scans for the exact three-instruction pattern
// JumpZ, Dec(1), JumpNz and rewrites it to a single Zero(0). The scan is a
// single left-to-right sweep over index i; after a replacement the sweep
// continues at i+1, not i — matching the behavior that a freshly-emitted
// Zero is never itself a further-reducible pattern.
func ZeroLoop(instructions []Instruction, trace Tracer) []Instruction {
	out := append([]Instruction(nil), instructions...)

	i := 0
	for i+2 < len(out) {
		if isZeroLoopPattern(out[i : i+3]) {
			trace.trace("zero-loop: replaced [%d,%d] with Zero(0)", i, i+2)
			rewritten := append([]Instruction{NewZero(0)}, out[i+3:]...)
			out = append(out[:i], rewritten...)
		}
		i++
	}

	return out
}

func isZeroLoopPattern(three []Instruction) bool {
	return three[0].Op == JumpZ &&
		three[1].Op == Dec && three[1].Count == 1 &&
		three[2].Op == JumpNz
}
