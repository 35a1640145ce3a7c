package regasm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Register is the logical identity of a register, independent of the
// width it is spelled at. Nonnegative values are numbered general-purpose
// registers; the stack and base pointer get distinguished identities
// because the calling convention privileges them (see critical.go).
type Register int

const (
	R_SP Register = -1
	R_BP Register = -2
)

type Width int

const (
	W32 Width = 32
	W64 Width = 64
)

// GP returns the identity of general-purpose register n.
func GP(n int) Register {
	if n < 0 {
		panic(fmt.Sprintf("Allocator error: no general-purpose register %d", n))
	}
	return Register(n)
}

// Name returns the register's spelling at width w, without the sigil.
// The code generator upstream spells numbered registers rN at 64 bits
// and rNd at 32, matching the x86-64 scheme for r8-r15.
func (r Register) Name(w Width) string {
	switch r {
	case R_SP:
		if w == W32 {
			return "esp"
		}
		return "rsp"
	case R_BP:
		if w == W32 {
			return "ebp"
		}
		return "rbp"
	}
	if w == W32 {
		return "r" + strconv.Itoa(int(r)) + "d"
	}
	return "r" + strconv.Itoa(int(r))
}

// Token returns the register's operand spelling at width w, including
// the sigil.
func (r Register) Token(w Width) string {
	return "%" + r.Name(w)
}

func (r Register) String() string {
	return r.Name(W64)
}

var gpName = regexp.MustCompile(`^r([0-9]+)(d?)$`)

// ParseReg resolves a textual register token to its logical identity and
// width. A leading sigil is accepted and ignored.
func ParseReg(s string) (Register, Width, error) {
	name := strings.ToLower(strings.TrimPrefix(s, "%"))
	switch name {
	case "rsp":
		return R_SP, W64, nil
	case "esp":
		return R_SP, W32, nil
	case "rbp":
		return R_BP, W64, nil
	case "ebp":
		return R_BP, W32, nil
	}
	m := gpName.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, fmt.Errorf("No such register: %s", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("No such register: %s", s)
	}
	if m[2] == "d" {
		return GP(n), W32, nil
	}
	return GP(n), W64, nil
}

// ParsePool parses a comma-separated register pool description.
// Each element is a register name or an inclusive range like r8-r15.
// A pool names register identities, not sized spellings, so elements
// must be spelled at 64 bits. Pool order is preserved; allocation
// policies consume it front to back.
func ParsePool(s string) ([]Register, error) {
	var pool []Register
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			rlo, err := parsePoolReg(lo)
			if err != nil {
				return nil, err
			}
			rhi, err := parsePoolReg(hi)
			if err != nil {
				return nil, err
			}
			if rlo < 0 || rhi < rlo {
				return nil, fmt.Errorf("Bad register range: %s", part)
			}
			for r := rlo; r <= rhi; r++ {
				pool = append(pool, r)
			}
			continue
		}
		r, err := parsePoolReg(part)
		if err != nil {
			return nil, err
		}
		pool = append(pool, r)
	}
	return pool, nil
}

func parsePoolReg(s string) (Register, error) {
	r, w, err := ParseReg(s)
	if err != nil {
		return 0, err
	}
	if w != W64 {
		return 0, fmt.Errorf("Pool registers must be 64-bit spellings: %s", s)
	}
	return r, nil
}

// regToken matches a whole register token inside an operand string.
// The trailing \b keeps a 64-bit spelling from matching the prefix of
// its own 32-bit alias (%r5 inside %r5d) or of an unrelated longer token.
var regToken = regexp.MustCompile(`%(?:r[0-9]+d?|rsp|esp|rbp|ebp)\b`)
