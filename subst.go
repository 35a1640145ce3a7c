package regasm

// Register references are rewritten textually: every whole register
// token in an operand is resolved to its identity and width, mapped
// through the substitution, and respelled at the same width. All tokens
// in an operand are rewritten in a single pass, so a replacement can
// never be picked up again by a later rule of the same substitution.

// substFunc maps a register identity to its replacement. ok false
// leaves the token untouched.
type substFunc func(r Register) (Register, bool)

func rewriteOperand(op string, sub substFunc) string {
	return regToken.ReplaceAllStringFunc(op, func(tok string) string {
		r, w, err := ParseReg(tok)
		if err != nil {
			return tok
		}
		repl, ok := sub(r)
		if !ok {
			return tok
		}
		return repl.Token(w)
	})
}

// rewriteRange applies sub to every operand of instrs[start..end]
// inclusive, in place. Callers clone the stream first; the allocator
// stages never mutate their input.
func rewriteRange(instrs []*Instruction, start, end int, sub substFunc) {
	if start < 0 {
		start = 0
	}
	if end >= len(instrs) {
		end = len(instrs) - 1
	}
	for i := start; i <= end; i++ {
		in := instrs[i]
		for j, op := range in.Operands {
			in.Operands[j] = rewriteOperand(op, sub)
		}
	}
}

// mapSubst builds a substFunc from a fixed identity mapping.
func mapSubst(m map[Register]Register) substFunc {
	return func(r Register) (Register, bool) {
		repl, ok := m[r]
		return repl, ok
	}
}
