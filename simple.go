package regasm

import (
	"fmt"
)

// SimpleAllocate rewrites the whole program with one fixed bijection
// from each distinct register it references to a pool register, in
// order of first appearance. No live-range reasoning: a register keeps
// the same physical identity everywhere. Sufficient whenever the pool
// is at least as large as the program's distinct register count, which
// is the caller's obligation; exhaustion panics.
//
// Each critical register the program references gets its fix-up move
// at the process startup label, initializing the mapping's image for
// it. A critical register the program never spells keeps its canonical
// identity and needs no move.
func SimpleAllocate(pool []Register, p *Program) *Program {
	out := &Program{
		Instructions: cloneInstrs(p.Instructions),
		Rodata:       cloneInstrs(p.Rodata),
	}

	var order []Register
	mapping := make(map[Register]Register)
	for _, in := range out.Instructions {
		for _, op := range in.Operands {
			for _, tok := range regToken.FindAllString(op, -1) {
				r, _, err := ParseReg(tok)
				if err != nil {
					continue
				}
				if _, ok := mapping[r]; ok {
					continue
				}
				if len(pool) == 0 {
					panic(fmt.Sprintf("Allocator error: register pool exhausted: more than %d distinct registers", len(order)))
				}
				mapping[r] = pool[0]
				pool = pool[1:]
				order = append(order, r)
			}
		}
	}

	rewriteRange(out.Instructions, 0, len(out.Instructions)-1, mapSubst(mapping))

	var moves []*Instruction
	if baseRepl, ok := mapping[R_BP]; ok {
		moves = append(moves, fixupMove(R_BP, baseRepl))
	}
	if stackRepl, ok := mapping[R_SP]; ok {
		moves = append(moves, fixupMove(R_SP, stackRepl))
	}
	out.Instructions = spliceAtEntry(out.Instructions, StartupLabel, moves)
	return out
}
