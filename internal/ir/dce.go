package ir

// tapeSize mirrors the interpreter's tape size so the symbolic executor
// can never index out of range differently than the real interpreter
// would.
const tapeSize = 1 << 15

// DeadCode runs a forward symbolic executor over the program: it tracks a
// simulated tape and pointer through every instruction whose effect is
// deterministic and has no I/O, and deletes any loop it can prove is
// skipped because its induction cell is statically zero. It stops the
// moment it reaches an instruction it cannot reason about further —
// JumpNz, Output, Input, or a JumpZ whose cell is nonzero — since nothing
// past that point is soundly analyzable without simulating iteration.
func DeadCode(instructions []Instruction, trace Tracer) []Instruction {
	out := append([]Instruction(nil), instructions...)
	tape := make([]uint8, tapeSize)
	ptr := 0

	i := 0
	for i < len(out) {
		in := out[i]
		switch in.Op {
		case Shl:
			ptr -= in.Count
		case Shr:
			ptr += in.Count
		case Inc:
			tape[wrapIndex(ptr)] += uint8(in.Count)
		case Dec:
			tape[wrapIndex(ptr)] -= uint8(in.Count)
		case Zero:
			tape[wrapIndex(ptr+in.Offset)] = 0
		case Add:
			tape[wrapIndex(ptr+in.Offset)] += tape[wrapIndex(ptr)]
		case Sub:
			tape[wrapIndex(ptr+in.Offset)] -= tape[wrapIndex(ptr)]
		case AddMul:
			tape[wrapIndex(ptr+in.Offset)] += uint8(in.Mult) * tape[wrapIndex(ptr)]
		case SubMul:
			tape[wrapIndex(ptr+in.Offset)] -= uint8(in.Mult) * tape[wrapIndex(ptr)]
		case JumpZ:
			if tape[wrapIndex(ptr)] != 0 {
				return out // unsound to continue: branch not taken statically, but we don't simulate iteration
			}
			end, ok := matchingJumpNz(out, i)
			if !ok {
				return out
			}
			trace.trace("dce: deleted provably-skipped loop [%d,%d]", i, end)
			out = append(append([]Instruction(nil), out[:i]...), out[end+1:]...)
			continue // re-examine whatever now occupies index i
		case JumpNz, Output, Input:
			return out
		}
		i++
	}

	return out
}

func wrapIndex(i int) int {
	i %= tapeSize
	if i < 0 {
		i += tapeSize
	}
	return i
}

// matchingJumpNz finds the JumpNz that closes the JumpZ at open, by
// tracking bracket nesting depth.
func matchingJumpNz(instructions []Instruction, open int) (int, bool) {
	depth := 0
	for j := open; j < len(instructions); j++ {
		switch instructions[j].Op {
		case JumpZ:
			depth++
		case JumpNz:
			depth--
			if depth == 0 {
				return j, true
			}
		}
	}
	return 0, false
}
