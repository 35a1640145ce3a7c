package regasm

// The stack and base pointer are architecturally privileged: callers
// and the runtime expect them in their canonical locations on entry.
// Allocation hands their physical slots to general use, so every
// original reference is redirected to a replacement register, and the
// replacements are initialized from the canonical registers at the
// entry point before anything reads them.

// ReplaceCritical returns a new stream in which every reference to the
// base and stack pointer, at both widths, is redirected to baseRepl and
// stackRepl, and two 64-bit moves initializing the replacements are
// spliced in immediately after the entry label. The moves read the
// canonical registers, so redirection happens first. An absent entry
// label means no moves are spliced.
func ReplaceCritical(instrs []*Instruction, baseRepl, stackRepl Register, entry string) []*Instruction {
	out := cloneInstrs(instrs)
	rewriteRange(out, 0, len(out)-1, mapSubst(map[Register]Register{
		R_BP: baseRepl,
		R_SP: stackRepl,
	}))

	return spliceAtEntry(out, entry, []*Instruction{
		fixupMove(R_BP, baseRepl),
		fixupMove(R_SP, stackRepl),
	})
}

// fixupMove copies a canonical critical register into its replacement,
// at 64-bit width.
func fixupMove(critical, repl Register) *Instruction {
	return &Instruction{
		Op:       "movq",
		Operands: []string{critical.Token(W64), repl.Token(W64)},
	}
}

// spliceAtEntry inserts the moves immediately after the entry label,
// transferring the label block to the first move so the textual layout
// stays labels, moves, original instruction. An absent entry label
// leaves the stream unchanged.
func spliceAtEntry(out []*Instruction, entry string, moves []*Instruction) []*Instruction {
	if len(moves) == 0 {
		return out
	}
	at := -1
search:
	for i, in := range out {
		for _, l := range in.Labels {
			if l == entry {
				at = i
				break search
			}
		}
	}
	if at < 0 {
		return out
	}

	target := out[at]
	moves[0].Labels = target.Labels
	target.Labels = nil

	spliced := make([]*Instruction, 0, len(out)+len(moves))
	spliced = append(spliced, out[:at]...)
	spliced = append(spliced, moves...)
	spliced = append(spliced, out[at:]...)
	return spliced
}
