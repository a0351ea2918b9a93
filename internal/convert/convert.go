// Package convert maps normalized snippet records onto the target
// snippet formats. Converters are pure: they never modify the input
// record and carry no state beyond their options.
package convert

import (
	"strconv"
	"strings"

	"github.com/wedtex/snipconv/internal/cson"
	"github.com/wedtex/snipconv/internal/model"
)

// AtomScope is the grammar scope key Atom snippet files nest under.
const AtomScope = ".text.tex.latex"

// Options configures trigger decoration and final-stop handling for one
// converter run.
type Options struct {
	// Prefix is prepended to every trigger.
	Prefix string
	// Suffix is appended to every trigger.
	Suffix string
	// EndTab keeps a tab stop at the end of the snippet. When false the
	// highest-numbered stop is rewritten to the reserved $0 final stop.
	EndTab bool
}

// VSCodeSnippet is one entry of a VS Code snippet file.
type VSCodeSnippet struct {
	Prefix      string     `json:"prefix"`
	Body        model.Body `json:"body"`
	Description string     `json:"description"`
}

// VSCode converts one record to the VS Code snippet shape.
func VSCode(s model.Snippet, opts Options) VSCodeSnippet {
	body := s.Body
	if !opts.EndTab {
		if max := model.MaxTabStop(body); max > 0 {
			body = body.Map(func(line string) string {
				return model.RewriteFinalStop(line, max)
			})
		}
	}
	return VSCodeSnippet{
		Prefix:      opts.Prefix + s.Trigger + opts.Suffix,
		Body:        body,
		Description: s.Description,
	}
}

// VSCodeAll converts records into a snippet collection keyed by
// description in source order, later duplicates overwriting earlier.
func VSCodeAll(snips []model.Snippet, opts Options) *cson.Map {
	out := cson.NewMap()
	for _, s := range snips {
		out.Set(s.Description, VSCode(s, opts))
	}
	return out
}

// AtomSnippet is one entry of an Atom snippet file. Multi-line bodies
// are a single newline-joined string, rendered by the cson encoder as a
// block string.
type AtomSnippet struct {
	Prefix string
	Body   string
}

// Atom converts one record to the Atom snippet shape. With EndTab set,
// a body that has tab stops gets a synthesized final stop appended.
func Atom(s model.Snippet, opts Options) AtomSnippet {
	max := model.MaxTabStop(s.Body)
	final := ""
	if opts.EndTab && max > 0 {
		final = "$" + strconv.Itoa(max+1)
	}

	var body string
	switch b := s.Body.(type) {
	case model.Line:
		body = string(b) + final
	case model.Block:
		lines := []string(b)
		if final != "" {
			lines = append(append([]string{}, lines...), final)
		}
		body = strings.Join(lines, "\n")
	}
	return AtomSnippet{
		Prefix: opts.Prefix + s.Trigger + opts.Suffix,
		Body:   body,
	}
}

// AtomAll converts records into the nested Atom collection: scope key,
// then description, then the prefix/body pair.
func AtomAll(snips []model.Snippet, opts Options) *cson.Map {
	entries := cson.NewMap()
	for _, s := range snips {
		snip := Atom(s, opts)
		entry := cson.NewMap()
		entry.Set("prefix", snip.Prefix)
		entry.Set("body", snip.Body)
		entries.Set(s.Description, entry)
	}
	out := cson.NewMap()
	out.Set(AtomScope, entries)
	return out
}

// LiveSnippet is one entry of a live-snippet file: a single-line form
// matched against surrounding text as it is typed.
type LiveSnippet struct {
	Prefix              string     `json:"prefix"`
	Body                string     `json:"body"`
	Mode                model.Mode `json:"mode"`
	TriggerWhenComplete bool       `json:"triggerWhenComplete"`
	Description         string     `json:"description"`
	Priority            int        `json:"priority"`
}

// liveAnchor keeps the trigger from firing mid-word or after a control
// sequence.
const liveAnchor = `(^|[^\\])`

// Live converts one record to the live-snippet shape: anchored trigger,
// mandatory leading $1 stop, and every body marker's sigil doubled so
// the snippet engine passes it through (the synthesized $0 stays
// single).
func Live(s model.Snippet, opts Options) LiveSnippet {
	max := 0
	if !opts.EndTab {
		max = model.MaxTabStop(s.Body)
	}
	conv := func(line string) string {
		if max > 0 {
			line = model.RewriteFinalStop(line, max)
		}
		return model.DoubleTabStops(line)
	}

	var body string
	switch b := s.Body.(type) {
	case model.Line:
		body = "$1" + conv(string(b))
	case model.Block:
		lines := make([]string, 0, len(b)+1)
		lines = append(lines, "$1")
		for _, line := range b {
			lines = append(lines, conv(line))
		}
		body = strings.Join(lines, `\n`)
	}

	return LiveSnippet{
		Prefix:              liveAnchor + opts.Prefix + s.Trigger + opts.Suffix,
		Body:                body,
		Mode:                s.Mode,
		TriggerWhenComplete: true,
		Description:         s.Description,
		Priority:            len(s.Trigger),
	}
}

// LiveAll converts records into a live-snippet list, duplicates
// retained in source order.
func LiveAll(snips []model.Snippet, opts Options) []LiveSnippet {
	out := make([]LiveSnippet, len(snips))
	for i, s := range snips {
		out[i] = Live(s, opts)
	}
	return out
}

// Split routes single-line records to the live-snippet list and
// multi-line records to the VS Code collection in one pass.
func Split(snips []model.Snippet, single, multi Options) ([]LiveSnippet, *cson.Map) {
	var live []LiveSnippet
	vsc := cson.NewMap()
	for _, s := range snips {
		if s.Multiline() {
			vsc.Set(s.Description, VSCode(s, multi))
			continue
		}
		live = append(live, Live(s, single))
	}
	return live, vsc
}
