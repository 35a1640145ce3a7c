package regasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceCritical(t *testing.T) {
	instrs := []*Instruction{
		{Op: ".globl", Operands: []string{"main"}},
		{Op: "pushq", Operands: []string{"%rbp"}, Labels: []string{"main"}},
		{Op: "movq", Operands: []string{"%rsp", "%rbp"}},
		{Op: "movl", Operands: []string{"%ebp", "%r16d"}},
		{Op: "ret"},
	}
	out := ReplaceCritical(instrs, GP(8), GP(9), "main")

	assert.Equal(t, []*Instruction{
		{Op: ".globl", Operands: []string{"main"}},
		{Op: "movq", Operands: []string{"%rbp", "%r8"}, Labels: []string{"main"}},
		{Op: "movq", Operands: []string{"%rsp", "%r9"}},
		{Op: "pushq", Operands: []string{"%r8"}},
		{Op: "movq", Operands: []string{"%r9", "%r8"}},
		{Op: "movl", Operands: []string{"%r8d", "%r16d"}},
		{Op: "ret"},
	}, out)

	// The input stream is untouched.
	assert.Equal(t, []string{"%rbp"}, instrs[1].Operands)
	assert.Equal(t, []string{"main"}, instrs[1].Labels)
}

func TestReplaceCriticalNoEntryLabel(t *testing.T) {
	instrs := []*Instruction{
		{Op: "movq", Operands: []string{"%rsp", "%rbp"}, Labels: []string{"helper"}},
	}
	out := ReplaceCritical(instrs, GP(8), GP(9), "main")
	assert.Equal(t, []*Instruction{
		{Op: "movq", Operands: []string{"%r9", "%r8"}, Labels: []string{"helper"}},
	}, out)
}
