// Package classify tags normalized snippets with a rendering mode and a
// display description.
//
// The mode rules are heuristics distilled from the legacy FasTeX data:
// trigger prefix conventions, a handful of maths-only control sequences,
// and body shape. They are best-effort, not a contract.
package classify

import (
	"strings"

	"github.com/wedtex/snipconv/internal/model"
)

// Command prefixes that mark a single-line body as text context.
var textStart = []string{
	`\usepackage`,
	`\new`,
	`\renew`,
	`\leftline`,
	`\rightline`,
	`\doc`,
	`\text`,
	`\section`,
	`\fbox`,
}

// Command prefixes that mark a single-line body as maths context.
var mathsStart = []string{
	`\frac`,
	`\math`,
	`\operatorname`,
	`\sqrt`,
	`\left`,
	`\right`,
	`\var`,
	`\over`,
	`\wide`,
	`\dot`,
	`\ddot`,
	`\bar`,
	`\vec`,
	`\hat`,
	`\tilde`,
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Mode infers the rendering mode for a snippet body. Rules are ordered;
// the first that fires wins, falling back to ModeAny.
func Mode(body model.Body, trigger string) model.Mode {
	if _, multiline := body.(model.Block); multiline {
		if strings.HasPrefix(trigger, "mx") {
			return model.ModeMaths
		}
		return model.ModeText
	}

	line := string(body.(model.Line))
	switch {
	case strings.Count(line, `\$`) >= 2:
		// Two escaped dollars delimit an inline-maths span, so the
		// snippet as a whole is typed in text context.
		return model.ModeText
	case strings.HasPrefix(trigger, "w") && !strings.HasPrefix(line, `\`):
		return model.ModeText
	case strings.HasPrefix(trigger, "w"):
		return model.ModeMaths
	case strings.HasPrefix(trigger, "o") && strings.HasPrefix(line, "("):
		return model.ModeMaths
	case strings.HasPrefix(trigger, "x"):
		return model.ModeMaths
	case strings.ContainsAny(line, "_^") || strings.Contains(line, `\frac`):
		return model.ModeMaths
	case strings.HasPrefix(line, `\textstyle`) || strings.HasPrefix(line, `\text{}`):
		return model.ModeMaths
	case startsWithAny(line, textStart):
		return model.ModeText
	case startsWithAny(line, mathsStart):
		return model.ModeMaths
	}
	return model.ModeAny
}

// Description derives a display string for a snippet: the first
// non-divider body line with tab-stop markers stripped and escaped
// dollars restored.
func Description(body model.Body, trigger string) string {
	switch b := body.(type) {
	case model.Line:
		return model.UnescapeDollars(model.StripTabStops(string(b), 9))
	case model.Block:
		return describeBlock(b, trigger)
	}
	return ""
}

func describeBlock(lines model.Block, trigger string) string {
	if len(lines) == 0 {
		return ""
	}
	first := Description(model.Line(lines[0]), trigger)
	if strings.HasPrefix(first, "%====") || strings.HasPrefix(first, "%----") {
		if strings.HasPrefix(trigger, "c") {
			// Comment-divider snippets: describe by the shape of
			// every line rather than their content.
			heads := make([]string, len(lines))
			for i, line := range lines {
				if len(line) > 10 {
					line = line[:10]
				}
				heads[i] = line
			}
			return "Divider: " + strings.Join(heads, ";")
		}
		return describeBlock(lines[1:], trigger)
	}
	return strings.TrimLeft(first, "%&")
}
