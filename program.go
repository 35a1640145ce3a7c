package regasm

import (
	"fmt"
	"strings"
)

// Instruction is a single line of assembly: an opcode (or directive),
// its operands as raw text fragments, and the labels that immediately
// preceded it in the source. Labels travel with the instruction when
// the stream is spliced.
type Instruction struct {
	Op       string
	Operands []string
	Labels   []string
}

func (in *Instruction) text() string {
	if len(in.Operands) == 0 {
		return "\t" + in.Op
	}
	return "\t" + in.Op + "\t" + strings.Join(in.Operands, ", ")
}

// Program is a parsed assembly unit: the executable instruction stream
// and the read-only data block. Rodata is carried through allocation
// untouched; no registers appear there.
type Program struct {
	Instructions []*Instruction
	Rodata       []*Instruction
}

// ParseError reports a structurally malformed input: one of the required
// section markers is absent.
type ParseError struct {
	Missing string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Missing section marker: %q", e.Missing)
}

const (
	rodataMarker = ".section .rodata"
	textMarker   = ".text"
)

// Labels the allocators splice their entry fix-up after. Simple
// allocation rewrites the whole program before any call setup has run,
// so it fixes up at process startup; interval allocation fixes up after
// the prologue that establishes main's frame.
const (
	StartupLabel = "_start"
	MainLabel    = "main"
)

// Assembler chatter with no effect on allocation. Dropped at parse so
// the model round-trips cleanly.
var denylist = []string{
	".file",
	".size",
	".ident",
	".section .note.GNU-stack",
}

// isMarker compares a line against a section marker with interior
// whitespace normalized, so tab-separated and space-separated spellings
// of the same directive both match.
func isMarker(line, marker string) bool {
	return strings.Join(strings.Fields(line), " ") == marker
}

func dropLine(line string) bool {
	// Normalize interior whitespace the way isMarker does: the
	// assembler spells these with tabs as often as spaces.
	line = strings.Join(strings.Fields(line), " ")
	for _, p := range denylist {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

// ParseProgram splits assembly text into the read-only data block and
// the executable instruction stream. The read-only block runs from the
// .section .rodata line through the .text line that reopens the code
// section; everything outside it, in order, is the instruction stream.
// Either marker missing is a *ParseError.
func ParseProgram(text string) (*Program, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dropLine(line) {
			continue
		}
		lines = append(lines, line)
	}

	ro := -1
	for i, line := range lines {
		if isMarker(line, rodataMarker) {
			ro = i
			break
		}
	}
	if ro < 0 {
		return nil, &ParseError{Missing: rodataMarker}
	}
	end := -1
	for i := ro + 1; i < len(lines); i++ {
		if isMarker(lines[i], textMarker) {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, &ParseError{Missing: textMarker}
	}

	main := make([]string, 0, len(lines))
	main = append(main, lines[:ro]...)
	main = append(main, lines[end+1:]...)
	return &Program{
		Instructions: group(main),
		Rodata:       group(lines[ro : end+1]),
	}, nil
}

// group turns cleaned lines into instructions, attaching each run of
// label lines to the next instruction. Trailing labels with no
// instruction after them are dropped.
func group(lines []string) []*Instruction {
	var ins []*Instruction
	var pending []string
	for _, line := range lines {
		if strings.HasSuffix(line, ":") {
			pending = append(pending, strings.TrimSuffix(line, ":"))
			continue
		}
		in := &Instruction{Labels: pending}
		pending = nil
		if i := strings.IndexAny(line, " \t"); i >= 0 {
			in.Op = line[:i]
			in.Operands = splitOperands(line[i+1:])
		} else {
			in.Op = line
		}
		ins = append(ins, in)
	}
	return ins
}

// splitOperands splits on top-level commas only. Commas inside
// parentheses (scaled-index addressing) or string literals belong to
// the surrounding operand.
func splitOperands(s string) []string {
	var out []string
	depth := 0
	inStr := false
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inStr {
				i++
			}
		case '"':
			inStr = !inStr
		case '(':
			if !inStr {
				depth++
			}
		case ')':
			if !inStr {
				depth--
			}
		case ',':
			if !inStr && depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if op := strings.TrimSpace(s[start:]); op != "" {
		out = append(out, op)
	}
	return out
}

// Text serializes the program: the read-only block first, then the
// instruction stream, each instruction preceded by its labels one per
// line. Parsing the result yields an equal Program.
func (p *Program) Text() string {
	var sb strings.Builder
	for _, in := range p.Rodata {
		writeInstr(&sb, in)
	}
	for _, in := range p.Instructions {
		writeInstr(&sb, in)
	}
	return sb.String()
}

func writeInstr(sb *strings.Builder, in *Instruction) {
	for _, l := range in.Labels {
		sb.WriteString(l)
		sb.WriteString(":\n")
	}
	sb.WriteString(in.text())
	sb.WriteString("\n")
}

// cloneInstrs deep-copies an instruction stream. Allocator stages hand
// back fresh streams rather than mutating their input.
func cloneInstrs(ins []*Instruction) []*Instruction {
	out := make([]*Instruction, len(ins))
	for i, in := range ins {
		out[i] = &Instruction{
			Op:       in.Op,
			Operands: append([]string(nil), in.Operands...),
			Labels:   append([]string(nil), in.Labels...),
		}
	}
	return out
}
