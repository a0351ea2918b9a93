// Package cson writes values in the line-oriented CSON structured-text
// format consumed by Atom-style snippet files.
//
// The encoder covers the value domain the converters produce: null,
// booleans, numbers, strings, ordered sequences, and insertion-ordered
// mappings (Map). Mappings nested under a key use the relaxed braceless
// form; a mapping nested directly inside a sequence gets an explicit
// brace pair so the downstream parser can find its start. Multi-line
// strings become triple-quoted block strings, never inline escapes.
package cson

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const defaultIndentWidth = 4

// Encoder writes values to an output stream.
type Encoder struct {
	w      io.Writer
	indent string
	level  int
	err    error
}

// NewEncoder returns an encoder writing to w with the default indent
// width of four spaces, starting at indent level zero.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, indent: strings.Repeat(" ", defaultIndentWidth)}
}

// SetIndent sets the indent width in spaces.
func (e *Encoder) SetIndent(width int) {
	if width < 0 {
		width = 0
	}
	e.indent = strings.Repeat(" ", width)
}

// SetLevel sets the starting indent level.
func (e *Encoder) SetLevel(level int) {
	if level < 0 {
		level = 0
	}
	e.level = level
}

// Encode writes one value. A Map at the top level is written in the
// braceless document form.
func (e *Encoder) Encode(v any) error {
	e.err = nil
	switch val := v.(type) {
	case *Map:
		e.encodeMapEntries(val, e.level)
	case []any:
		e.writeString(e.pad(e.level) + "[\n")
		e.encodeListElements(val, e.level+1)
		e.writeString(e.pad(e.level) + "]\n")
	default:
		if s, ok := v.(string); ok && strings.Contains(s, "\n") {
			e.encodeBlockString(s, e.level)
			return e.err
		}
		scalar, err := e.scalar(v)
		if err != nil {
			return err
		}
		e.writeString(e.pad(e.level) + scalar + "\n")
	}
	return e.err
}

// Marshal renders v with the default indent width.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *Encoder) pad(level int) string {
	return strings.Repeat(e.indent, level)
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

// encodeMapEntries writes the entries of m at the given level, one per
// line, without surrounding braces.
func (e *Encoder) encodeMapEntries(m *Map, level int) {
	for _, key := range m.Keys() {
		v, _ := m.Get(key)
		e.writeString(e.pad(level) + quote(key) + ":")
		switch val := v.(type) {
		case *Map:
			// Newline-first relaxed form: nested entries indent one
			// level, no braces.
			e.writeString("\n")
			e.encodeMapEntries(val, level+1)
		case []any:
			e.writeString(" [\n")
			e.encodeListElements(val, level+1)
			e.writeString(e.pad(level) + "]\n")
		default:
			if s, ok := v.(string); ok && strings.Contains(s, "\n") {
				e.writeString(" \"\"\"\n")
				e.encodeBlockLines(s, level+1)
				e.writeString(e.pad(level) + "\"\"\"\n")
				continue
			}
			scalar, err := e.scalar(v)
			if err != nil {
				e.err = err
				return
			}
			e.writeString(" " + scalar + "\n")
		}
	}
}

// encodeListElements writes each element of the sequence on its own
// line at the given level.
func (e *Encoder) encodeListElements(seq []any, level int) {
	for _, v := range seq {
		switch val := v.(type) {
		case *Map:
			// Inside a sequence the mapping needs explicit braces.
			e.writeString(e.pad(level) + "{\n")
			e.encodeMapEntries(val, level+1)
			e.writeString(e.pad(level) + "}\n")
		case []any:
			e.writeString(e.pad(level) + "[\n")
			e.encodeListElements(val, level+1)
			e.writeString(e.pad(level) + "]\n")
		default:
			if s, ok := v.(string); ok && strings.Contains(s, "\n") {
				e.encodeBlockString(s, level)
				continue
			}
			scalar, err := e.scalar(v)
			if err != nil {
				e.err = err
				return
			}
			e.writeString(e.pad(level) + scalar + "\n")
		}
	}
}

// encodeBlockString writes a standalone block string with its opening
// delimiter at the given level.
func (e *Encoder) encodeBlockString(s string, level int) {
	e.writeString(e.pad(level) + "\"\"\"\n")
	e.encodeBlockLines(s, level+1)
	e.writeString(e.pad(level) + "\"\"\"\n")
}

// encodeBlockLines re-indents each source line of a multi-line string.
func (e *Encoder) encodeBlockLines(s string, level int) {
	for _, line := range strings.Split(s, "\n") {
		e.writeString(e.pad(level) + line + "\n")
	}
}

// scalar renders a single-line scalar value. Types outside the
// serializable domain are a configuration error.
func (e *Encoder) scalar(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case string:
		return quote(val), nil
	default:
		return "", fmt.Errorf("cson: cannot encode value of type %T", v)
	}
}

// quote renders a single-line string with backslashes and double quotes
// escaped.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
