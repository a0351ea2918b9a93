package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Body is the snippet body: either a single line or an ordered block of
// lines. It is a closed two-variant union; consumers branch with a type
// switch over Line and Block.
type Body interface {
	// Lines returns the body as a slice of lines. Line yields a
	// one-element slice; Block yields its lines unchanged.
	Lines() []string

	// Map returns a copy of the body with fn applied to every line.
	Map(fn func(string) string) Body

	// String joins the body with newlines, mainly for display.
	String() string

	isBody()
}

// Line is a single-line snippet body.
type Line string

// Block is a multi-line snippet body in source order.
type Block []string

func (Line) isBody()  {}
func (Block) isBody() {}

// Lines returns the line as a one-element slice.
func (l Line) Lines() []string { return []string{string(l)} }

// Lines returns the block's lines.
func (b Block) Lines() []string { return b }

// Map applies fn to the line.
func (l Line) Map(fn func(string) string) Body { return Line(fn(string(l))) }

// Map applies fn to every line, returning a fresh Block.
func (b Block) Map(fn func(string) string) Body {
	out := make(Block, len(b))
	for i, line := range b {
		out[i] = fn(line)
	}
	return out
}

// String joins the body with newlines, mainly for display.
func (l Line) String() string { return string(l) }

func (b Block) String() string { return strings.Join(b, "\n") }

// MarshalJSON renders a Line as a JSON string.
func (l Line) MarshalJSON() ([]byte, error) { return json.Marshal(string(l)) }

// MarshalJSON renders a Block as a JSON array of strings.
func (b Block) MarshalJSON() ([]byte, error) { return json.Marshal([]string(b)) }

// UnmarshalBody decodes a body from raw JSON, branching on whether the
// value is a string or an array.
func UnmarshalBody(data []byte) (Body, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return nil, fmt.Errorf("failed to decode body lines: %w", err)
		}
		return Block(lines), nil
	}
	var line string
	if err := json.Unmarshal(data, &line); err != nil {
		return nil, fmt.Errorf("failed to decode body: %w", err)
	}
	return Line(line), nil
}

// EscapeDollars escapes every literal dollar sign so it cannot be read as
// a tab-stop marker. Must run before any marker is spliced in.
func EscapeDollars(s string) string {
	return strings.ReplaceAll(s, "$", `\$`)
}
