package regasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReg(t *testing.T) {
	for _, tt := range []struct {
		in  string
		reg Register
		w   Width
		err bool
	}{
		{in: "rsp", reg: R_SP, w: W64},
		{in: "esp", reg: R_SP, w: W32},
		{in: "%rbp", reg: R_BP, w: W64},
		{in: "%ebp", reg: R_BP, w: W32},
		{in: "r0", reg: GP(0), w: W64},
		{in: "%r15", reg: GP(15), w: W64},
		{in: "%r15d", reg: GP(15), w: W32},
		{in: "r10000", reg: GP(10000), w: W64},
		{in: "rax", err: true},
		{in: "r", err: true},
		{in: "r12dd", err: true},
		{in: "", err: true},
	} {
		r, w, err := ParseReg(tt.in)
		if tt.err {
			assert.Error(t, err, "ParseReg(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseReg(%q)", tt.in)
		assert.Equal(t, tt.reg, r)
		assert.Equal(t, tt.w, w)
	}
}

func TestRegisterSpelling(t *testing.T) {
	assert.Equal(t, "%r7", GP(7).Token(W64))
	assert.Equal(t, "%r7d", GP(7).Token(W32))
	assert.Equal(t, "%rsp", R_SP.Token(W64))
	assert.Equal(t, "%esp", R_SP.Token(W32))
	assert.Equal(t, "%rbp", R_BP.Token(W64))
	assert.Equal(t, "%ebp", R_BP.Token(W32))
}

func TestParsePool(t *testing.T) {
	pool, err := ParsePool("r8-r11, r15")
	require.NoError(t, err)
	assert.Equal(t, []Register{GP(8), GP(9), GP(10), GP(11), GP(15)}, pool)

	_, err = ParsePool("r8-rax")
	assert.Error(t, err)

	_, err = ParsePool("r10-r8")
	assert.Error(t, err)

	// Pools name identities, so 32-bit spellings are rejected.
	_, err = ParsePool("r8d-r11")
	assert.Error(t, err)

	_, err = ParsePool("r8, r9d")
	assert.Error(t, err)
}
