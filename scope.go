package regasm

// RegScope is the live range of one register: the inclusive instruction
// index window over which references to Reg must stay coherent. A scope
// starts unresolved; the interval allocator resolves it exactly once by
// assigning a physical register. The allocator never creates or
// destroys scopes, it only fills in the assignment.
type RegScope struct {
	Start, End int
	Reg        Register
	Assigned   Register

	resolved bool
}

// Resolved reports whether the scope has been assigned a register.
func (s *RegScope) Resolved() bool {
	return s.resolved
}

func (s *RegScope) resolve(r Register) {
	if s.resolved {
		panic("Allocator error: scope resolved twice")
	}
	s.Assigned = r
	s.resolved = true
}

// Overlaps reports whether the two inclusive index windows intersect.
// Two overlapping scopes may not share a register.
func (s *RegScope) Overlaps(o *RegScope) bool {
	return s.Start <= o.End && o.Start <= s.End
}

// Scopes computes the live range of every register referenced by the
// instruction stream: first textual occurrence to last, at either
// width. Scopes are returned in order of first appearance, which is
// also ascending start order.
func Scopes(instrs []*Instruction) []*RegScope {
	var scopes []*RegScope
	byReg := make(map[Register]*RegScope)
	for i, in := range instrs {
		for _, op := range in.Operands {
			for _, tok := range regToken.FindAllString(op, -1) {
				r, _, err := ParseReg(tok)
				if err != nil {
					continue
				}
				if s, ok := byReg[r]; ok {
					s.End = i
					continue
				}
				s := &RegScope{Start: i, End: i, Reg: r}
				byReg[r] = s
				scopes = append(scopes, s)
			}
		}
	}
	return scopes
}
