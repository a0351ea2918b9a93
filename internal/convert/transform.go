package convert

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/wedtex/snipconv/internal/classify"
	"github.com/wedtex/snipconv/internal/model"
)

// Transform is the optional record-rewriting stage that runs before
// conversion. Every sub-option toggles independently; the zero value
// passes records through unchanged except that both shape filters are
// off, so use DefaultTransform or ParseTransform to construct one.
type Transform struct {
	// Exclude drops records whose trigger or any body line matches one
	// of the patterns.
	Exclude []*regexp.Regexp
	// Multiline keeps multi-line records; when false they are dropped.
	Multiline bool
	// Singleline keeps single-line records; when false they are dropped.
	Singleline bool
	// StripMode resets every record's mode to any.
	StripMode bool
	// MathDelims rewrites dollar-delimited inline-maths spans to the
	// \( \) delimiter pair.
	MathDelims bool
	// SplitText splits a legacy \text{...} record into a text-mode and
	// a maths-mode record.
	SplitText bool
	// Choice rewrites a legacy \text{...} record into a single record
	// with a choice tab stop instead of splitting it.
	Choice bool
}

// DefaultTransform returns a pass-through transform.
func DefaultTransform() Transform {
	return Transform{Multiline: true, Singleline: true}
}

// transformKeys names every recognized option.
var transformKeys = map[string]bool{
	"exclude":     true,
	"multiline":   true,
	"singleline":  true,
	"strip_mode":  true,
	"math_delims": true,
	"split_text":  true,
	"choice":      true,
}

// ParseTransform builds a Transform from a string-keyed option map, the
// shape the config file and CLI hand over. Unknown option names are an
// error enumerating every bad key; this stage fails fast rather than
// silently ignoring a misspelled toggle.
func ParseTransform(raw map[string]any) (Transform, error) {
	t := DefaultTransform()

	var unknown []string
	for key := range raw {
		if !transformKeys[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Transform{}, fmt.Errorf("unknown transform options: %s", strings.Join(unknown, ", "))
	}

	for key, value := range raw {
		switch key {
		case "exclude":
			patterns, err := stringList(value)
			if err != nil {
				return Transform{}, fmt.Errorf("transform option %q: %w", key, err)
			}
			for _, p := range patterns {
				re, err := regexp.Compile(p)
				if err != nil {
					return Transform{}, fmt.Errorf("transform option %q: %w", key, err)
				}
				t.Exclude = append(t.Exclude, re)
			}
		default:
			b, ok := value.(bool)
			if !ok {
				return Transform{}, fmt.Errorf("transform option %q: expected bool, got %T", key, value)
			}
			switch key {
			case "multiline":
				t.Multiline = b
			case "singleline":
				t.Singleline = b
			case "strip_mode":
				t.StripMode = b
			case "math_delims":
				t.MathDelims = b
			case "split_text":
				t.SplitText = b
			case "choice":
				t.Choice = b
			}
		}
	}
	return t, nil
}

// stringList accepts []string directly or the []any a YAML/TOML
// decoder produces.
func stringList(v any) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("expected string, got %T", item)
			}
			out[i] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected string list, got %T", v)
	}
}

// inlineMaths matches one escaped-dollar-delimited maths span.
var inlineMaths = regexp.MustCompile(`\\\$(.*?)\\\$`)

// legacyText matches the legacy single-line \text{...} command shape.
var legacyText = regexp.MustCompile(`^\\text\{(.+)\}$`)

// Apply runs the transform on one record, returning zero, one, or two
// records so callers flat-map the result.
func (t Transform) Apply(s model.Snippet) []model.Snippet {
	if t.excluded(s) {
		return nil
	}
	if s.Multiline() && !t.Multiline {
		return nil
	}
	if !s.Multiline() && !t.Singleline {
		return nil
	}

	if t.MathDelims {
		s = s.WithBody(s.Body.Map(func(line string) string {
			return inlineMaths.ReplaceAllString(line, `\(${1}\)`)
		}))
	}

	out := t.splitLegacy(s)

	if t.StripMode {
		for i := range out {
			out[i].Mode = model.ModeAny
		}
	}
	return out
}

// ApplyAll flat-maps the transform over a record list.
func (t Transform) ApplyAll(snips []model.Snippet) []model.Snippet {
	var out []model.Snippet
	for _, s := range snips {
		out = append(out, t.Apply(s)...)
	}
	return out
}

func (t Transform) excluded(s model.Snippet) bool {
	for _, re := range t.Exclude {
		if re.MatchString(s.Trigger) {
			return true
		}
		for _, line := range s.Body.Lines() {
			if re.MatchString(line) {
				return true
			}
		}
	}
	return false
}

// splitLegacy handles the legacy \text{...} command shape: split into a
// text-mode record (inner text) plus a maths-mode record (full
// command), or rewrite to a choice tab stop when Choice is set.
func (t Transform) splitLegacy(s model.Snippet) []model.Snippet {
	if !t.SplitText && !t.Choice {
		return []model.Snippet{s}
	}
	line, ok := s.Body.(model.Line)
	if !ok {
		return []model.Snippet{s}
	}
	m := legacyText.FindStringSubmatch(string(line))
	if m == nil {
		return []model.Snippet{s}
	}
	inner := m[1]

	if t.Choice {
		choice := model.Line(`${1|` + inner + `,\text{` + inner + `}|}`)
		s = s.WithBody(choice).WithMode(model.ModeAny)
		s.Description = classify.Description(choice, s.Trigger)
		return []model.Snippet{s}
	}

	text := s.WithBody(model.Line(inner)).WithMode(model.ModeText)
	text.Description = classify.Description(text.Body, text.Trigger)
	maths := s.WithMode(model.ModeMaths)
	return []model.Snippet{text, maths}
}
