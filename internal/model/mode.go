package model

import (
	"fmt"
	"strings"
)

// Mode tags a snippet with the LaTeX context it belongs in.
// Modes are inferred heuristically by the importer, not authoritative.
type Mode string

const (
	// ModeText marks snippets for running-text context.
	ModeText Mode = "text"
	// ModeMaths marks snippets for maths context.
	ModeMaths Mode = "maths"
	// ModeAny marks snippets usable in either context.
	ModeAny Mode = "any"
)

// IsValid returns true if the mode is recognized.
func (m Mode) IsValid() bool {
	switch m {
	case ModeText, ModeMaths, ModeAny:
		return true
	default:
		return false
	}
}

// String returns the string representation of the mode.
func (m Mode) String() string { return string(m) }

// AllModes returns all supported modes.
func AllModes() []Mode {
	return []Mode{ModeText, ModeMaths, ModeAny}
}

// ParseMode converts a string to a Mode. An empty string parses to
// ModeAny; anything else unrecognized is an error.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAny, nil
	}
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m.IsValid() {
		return m, nil
	}
	switch m {
	case "math":
		return ModeMaths, nil
	case "either", "both":
		return ModeAny, nil
	}
	return "", fmt.Errorf("unknown mode %q (valid: text, maths, any)", s)
}
