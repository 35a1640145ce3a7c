package regasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopes(t *testing.T) {
	instrs := []*Instruction{
		{Op: "pushq", Operands: []string{"%rbp"}},
		{Op: "movq", Operands: []string{"%rsp", "%rbp"}},
		{Op: "movq", Operands: []string{"$1", "%r16"}},
		{Op: "movl", Operands: []string{"$2", "%r17d"}},
		{Op: "addq", Operands: []string{"%r16", "%r17"}},
		{Op: "popq", Operands: []string{"%rbp"}},
	}
	scopes := Scopes(instrs)
	assert.Equal(t, []*RegScope{
		{Start: 0, End: 5, Reg: R_BP},
		{Start: 1, End: 1, Reg: R_SP},
		{Start: 2, End: 4, Reg: GP(16)},
		{Start: 3, End: 4, Reg: GP(17)},
	}, scopes)
	for _, s := range scopes {
		assert.False(t, s.Resolved())
	}
}

func TestScopesBothWidthsShareOneScope(t *testing.T) {
	instrs := []*Instruction{
		{Op: "movl", Operands: []string{"$1", "%r20d"}},
		{Op: "nop"},
		{Op: "addq", Operands: []string{"$1", "%r20"}},
	}
	assert.Equal(t, []*RegScope{
		{Start: 0, End: 2, Reg: GP(20)},
	}, Scopes(instrs))
}

func TestScopeOverlap(t *testing.T) {
	for _, tt := range []struct {
		a, b     *RegScope
		overlaps bool
	}{
		{a: &RegScope{Start: 0, End: 2}, b: &RegScope{Start: 3, End: 5}, overlaps: false},
		{a: &RegScope{Start: 0, End: 3}, b: &RegScope{Start: 2, End: 5}, overlaps: true},
		{a: &RegScope{Start: 0, End: 5}, b: &RegScope{Start: 2, End: 3}, overlaps: true},
		{a: &RegScope{Start: 2, End: 2}, b: &RegScope{Start: 2, End: 2}, overlaps: true},
	} {
		assert.Equal(t, tt.overlaps, tt.a.Overlaps(tt.b))
		assert.Equal(t, tt.overlaps, tt.b.Overlaps(tt.a))
	}
}
