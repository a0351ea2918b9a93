// Package macro recognizes the small set of WinEdt macro command shapes
// found in FasTeX active-string definitions and reconstructs snippet
// bodies with tab-stop markers from them.
//
// Only the observed shapes are recognized: this is not a general WinEdt
// macro parser. Patterns are tried in a fixed order from the simplest to
// the most decorated suffix, so a command line can only ever match the
// simplest shape it satisfies.
package macro

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/wedtex/snipconv/internal/model"
)

// Kind distinguishes the two recognized macro families.
type Kind int

const (
	// KindTemplate references a pre-authored multi-line body by
	// identifier in the external template table.
	KindTemplate Kind = iota
	// KindInsert carries the literal inserted text inline.
	KindInsert
)

// String returns a label for the kind.
func (k Kind) String() string {
	if k == KindTemplate {
		return "template"
	}
	return "insert"
}

// Building blocks for the recognized command shapes. The template prefix
// pins the exact Exe path used by the legacy FasTeX macro set.
const (
	templatePre = `^Assign\('FasTeX','(\S*)'\);Exe\('%b\\Macros\\Active Strings\\FasTeX\\FasTeX_Templates\.edt'\);`
	lineUp      = `LineUp\((\d)\);TrackCaret;`
	backOne     = `CharLeft;`
	backSome    = `CharLeft\((\d)\);`
	endGroup    = `EndGroup;$`
)

// The Ins argument is delimited by either a backtick or a single quote.
const insertPre = "^BeginGroup;Backspace\\(\\d+\\);Ins\\([`'](.*)[`']\\);"

type variant int

const (
	tmplBare variant = iota
	tmplInside
	tmplAppend
	insBare
	insOne
	insSome
	insDouble
)

// patterns is the ordered first-match-wins table. The anchored suffixes
// make the entries mutually exclusive, but order still documents intent:
// bare shapes before decorated ones.
var patterns = []struct {
	re *regexp.Regexp
	v  variant
}{
	{regexp.MustCompile(templatePre + `$`), tmplBare},
	{regexp.MustCompile(templatePre + lineUp + backOne + `$`), tmplInside},
	{regexp.MustCompile(templatePre + lineUp + `$`), tmplAppend},
	{regexp.MustCompile(insertPre + endGroup), insBare},
	{regexp.MustCompile(insertPre + backOne + endGroup), insOne},
	{regexp.MustCompile(insertPre + backSome + endGroup), insSome},
	{regexp.MustCompile(insertPre + backOne + backSome + endGroup), insDouble},
}

// Match is the result of recognizing one macro command line.
type Match struct {
	kind Kind
	v    variant
	id   string // template identifier
	text string // literal inserted text, unescaped
	n    int    // lines-from-end or chars-from-end parameter
}

// Kind returns which macro family matched.
func (m Match) Kind() Kind { return m.kind }

// TemplateID returns the referenced template identifier for template
// matches, empty otherwise.
func (m Match) TemplateID() string { return m.id }

// Parse matches one macro command line against the pattern table and
// returns the first match, or ok=false when no shape applies.
func Parse(macroText string) (Match, bool) {
	for _, p := range patterns {
		groups := p.re.FindStringSubmatch(macroText)
		if groups == nil {
			continue
		}
		return newMatch(p.v, groups), true
	}
	return Match{}, false
}

func newMatch(v variant, groups []string) Match {
	m := Match{v: v}
	switch v {
	case tmplBare, tmplInside, tmplAppend:
		m.kind = KindTemplate
		m.id = groups[1]
		if v != tmplBare {
			m.n, _ = strconv.Atoi(groups[2])
		}
	default:
		m.kind = KindInsert
		m.text = groups[1]
		if v == insSome || v == insDouble {
			m.n, _ = strconv.Atoi(groups[2])
		}
	}
	return m
}

// LookupError reports a template identifier missing from the body table.
// It is fatal: the active-string and template source files disagree.
type LookupError struct {
	ID string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("template %q not found in body table", e.ID)
}

// Resolve builds the body for a template match from the external body
// table, escaping literal dollars before splicing the tab stop in.
// A missing identifier yields a LookupError, never a partial body.
func (m Match) Resolve(lookup func(id string) ([]string, bool)) (model.Block, error) {
	if m.kind != KindTemplate {
		return nil, fmt.Errorf("not a template match")
	}
	lines, ok := lookup(m.id)
	if !ok {
		return nil, &LookupError{ID: m.id}
	}
	body := make(model.Block, len(lines))
	for i, line := range lines {
		body[i] = model.EscapeDollars(line)
	}
	idx := len(body) - m.n
	switch m.v {
	case tmplInside:
		if idx >= 0 && idx < len(body) {
			body[idx] = spliceFromEnd(body[idx], 1, "$1")
		}
	case tmplAppend:
		if idx >= 0 && idx < len(body) {
			body[idx] += "$1"
		}
	}
	return body, nil
}

// Insert builds the body for an insertion match, escaping literal
// dollars before splicing tab stops in by chars-from-end position.
func (m Match) Insert() model.Line {
	body := model.EscapeDollars(m.text)
	switch m.v {
	case insOne:
		body = spliceFromEnd(body, 1, "$1")
	case insSome:
		body = spliceFromEnd(body, m.n, "$1")
	case insDouble:
		body = spliceFromEnd(body, m.n+1, "$1")
		// The second-to-last character is the editor's auto-inserted
		// bullet; drop it and splice the second stop before the end.
		if n := len(body); n >= 2 {
			body = body[:n-2] + "$2" + body[n-1:]
		}
	}
	return model.Line(body)
}

// spliceFromEnd inserts marker before the final k characters of s.
func spliceFromEnd(s string, k int, marker string) string {
	if k < 0 {
		k = 0
	}
	if k > len(s) {
		k = len(s)
	}
	cut := len(s) - k
	return s[:cut] + marker + s[cut:]
}
