package regasm

import (
	"fmt"
)

// SelectFunc is an injected allocation policy: given a non-empty
// candidate set, return one register and the remaining set. The
// allocator imposes no other contract, so callers can plug in
// round-robin, preference orders, or a fixed order for reproducible
// tests.
type SelectFunc func(avail []Register) (Register, []Register)

// SelectFirst takes the first candidate, preserving pool order.
func SelectFirst(avail []Register) (Register, []Register) {
	return avail[0], avail[1:]
}

// Allocate rewrites the instruction stream to use only registers drawn
// from pool, reusing registers across non-overlapping live ranges.
//
// Two registers are reserved first, base-pointer replacement then
// stack-pointer replacement, and excluded from general allocation. Each
// remaining live range is then resolved against the registers already
// claimed by ranges it overlaps, and every reference inside its window
// is rewritten, both widths in lock-step. Critical-register fix-up runs
// last, at the main label.
//
// The pool is assumed large enough for the densest point of the
// program; exhaustion is a caller contract violation and panics. There
// is no spilling.
func Allocate(pool []Register, sel SelectFunc, instrs []*Instruction) []*Instruction {
	if len(pool) < 2 {
		panic(fmt.Sprintf("Allocator error: pool of %d cannot cover the critical registers", len(pool)))
	}
	baseRepl, pool := sel(pool)
	stackRepl, pool := sel(pool)

	var scopes []*RegScope
	for _, s := range Scopes(instrs) {
		if s.Reg == R_SP || s.Reg == R_BP {
			continue // handled by ReplaceCritical
		}
		scopes = append(scopes, s)
	}

	// Worklist resolution. Any processing order is correct because each
	// scope is checked against everything already resolved; slice order
	// (ascending start) keeps runs reproducible.
	for _, s := range scopes {
		avail := pool
		for _, o := range scopes {
			if o.Resolved() && o.Overlaps(s) {
				avail = without(avail, o.Assigned)
			}
		}
		if len(avail) == 0 {
			panic(fmt.Sprintf("Allocator error: register pool exhausted resolving %v over [%d, %d]", s.Reg, s.Start, s.End))
		}
		r, _ := sel(avail)
		s.resolve(r)
	}

	out := cloneInstrs(instrs)
	for i := range out {
		rewriteRange(out, i, i, func(r Register) (Register, bool) {
			for _, s := range scopes {
				if s.Reg == r && s.Start <= i && i <= s.End {
					return s.Assigned, true
				}
			}
			return 0, false
		})
	}
	return ReplaceCritical(out, baseRepl, stackRepl, MainLabel)
}

// without filters r out of a candidate set, preserving order.
func without(avail []Register, r Register) []Register {
	out := make([]Register, 0, len(avail))
	for _, a := range avail {
		if a != r {
			out = append(out, a)
		}
	}
	return out
}
