package model

import "strings"

// Tab-stop markers are an unescaped dollar sign followed by a single
// digit. A backslash before the dollar makes it literal text instead.
// The digit 0 is reserved for the synthesized final stop.

// isTabStopAt reports whether s[i:] starts an unescaped $<digit> marker.
func isTabStopAt(s string, i int) bool {
	if s[i] != '$' || i+1 >= len(s) {
		return false
	}
	if i > 0 && s[i-1] == '\\' {
		return false
	}
	d := s[i+1]
	return d >= '0' && d <= '9'
}

// maxTabStopLine returns the highest marker digit in one line, 0 if none.
func maxTabStopLine(s string) int {
	max := 0
	for i := 0; i < len(s); i++ {
		if !isTabStopAt(s, i) {
			continue
		}
		if d := int(s[i+1] - '0'); d > max {
			max = d
		}
	}
	return max
}

// MaxTabStop returns the highest tab-stop digit anywhere in the body,
// or 0 when the body has no markers.
func MaxTabStop(body Body) int {
	max := 0
	for _, line := range body.Lines() {
		if n := maxTabStopLine(line); n > max {
			max = n
		}
	}
	return max
}

// RewriteFinalStop replaces every unescaped $<max> marker with the
// reserved $0 final-stop marker.
func RewriteFinalStop(s string, max int) string {
	if max <= 0 {
		return s
	}
	target := byte('0' + max)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isTabStopAt(s, i) && s[i+1] == target {
			b.WriteString("$0")
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// DoubleTabStops doubles the sigil of every unescaped marker ($1 becomes
// $$1) so a templating layer passes it through verbatim. The reserved $0
// final stop is left single.
func DoubleTabStops(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if isTabStopAt(s, i) && s[i+1] != '0' {
			b.WriteString("$$")
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// StripTabStops removes up to limit unescaped markers from the line.
// A negative limit removes them all.
func StripTabStops(s string, limit int) string {
	var b strings.Builder
	removed := 0
	for i := 0; i < len(s); i++ {
		if (limit < 0 || removed < limit) && isTabStopAt(s, i) {
			removed++
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// UnescapeDollars reverses EscapeDollars, restoring literal dollar signs.
func UnescapeDollars(s string) string {
	return strings.ReplaceAll(s, `\$`, "$")
}
