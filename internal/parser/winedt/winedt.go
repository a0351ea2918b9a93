// Package winedt imports WinEdt FasTeX active-string definitions.
//
// Two source files feed the importer: the active-string .ini file of
// trigger/macro blocks, and the template .dat file of multi-line bodies
// referenced by identifier. The importer walks the .ini front to back,
// recognizes each macro with the macro package, splices tab stops, and
// emits one normalized snippet per recognizable block.
package winedt

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/wedtex/snipconv/internal/classify"
	"github.com/wedtex/snipconv/internal/logging"
	"github.com/wedtex/snipconv/internal/macro"
	"github.com/wedtex/snipconv/internal/model"
	"github.com/wedtex/snipconv/internal/parser"
)

var _ parser.Source = (*Reader)(nil)

// The fixed block layout of the active-string file: a STRING line with
// the two-space trigger suffix, two ignorable lines, then the MACRO
// line with the command sequence in brackets.
var (
	triggerLine = regexp.MustCompile(`^STRING="(\S*)  "$`)
	macroLine   = regexp.MustCompile(`^  MACRO="\[(.*)\]"$`)
)

// blockSkipLines is the number of ignorable lines between the trigger
// and macro lines of every block.
const blockSkipLines = 2

// Reader imports snippets from a pair of WinEdt source files.
type Reader struct {
	stringsPath   string
	templatesPath string
}

// New returns a reader over the given active-string .ini file and
// template .dat file.
func New(stringsPath, templatesPath string) *Reader {
	return &Reader{stringsPath: stringsPath, templatesPath: templatesPath}
}

// Name identifies the source format.
func (r *Reader) Name() string { return "winedt" }

// Parse reads every recognizable entry in source order. Iteration stops
// at end of file or at the first block whose trigger or macro line does
// not match the fixed layout. A macro whose command shape matches no
// known pattern is skipped: the legacy data contains noise entries. A
// template reference missing from the body table aborts with an error,
// since it means the two source files do not belong together.
func (r *Reader) Parse() ([]model.Snippet, error) {
	defer logging.Timer("import")()

	templates, err := LoadTemplates(r.templatesPath)
	if err != nil {
		return nil, err
	}
	logging.Debug("template table loaded",
		logging.Path(r.templatesPath),
		logging.Count(templates.Len()),
	)

	f, err := os.Open(r.stringsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open active-string file: %w", err)
	}
	defer f.Close()

	var snippets []model.Snippet
	scanner := bufio.NewScanner(f)
	for {
		snip, ok, err := nextEntry(scanner, templates)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if snip != nil {
			snippets = append(snippets, *snip)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active-string file: %w", err)
	}

	logging.Info("import complete",
		logging.Path(r.stringsPath),
		logging.Count(len(snippets)),
	)
	return snippets, nil
}

// nextEntry reads one block. ok=false ends iteration; a nil snippet
// with ok=true means the block was noise and iteration continues.
func nextEntry(scanner *bufio.Scanner, templates *Templates) (*model.Snippet, bool, error) {
	trigger, ok := scanLine(scanner, triggerLine)
	if !ok {
		return nil, false, nil
	}
	for i := 0; i < blockSkipLines; i++ {
		if !scanner.Scan() {
			return nil, false, nil
		}
	}
	macroText, ok := scanLine(scanner, macroLine)
	if !ok {
		return nil, false, nil
	}

	match, ok := macro.Parse(macroText)
	if !ok {
		logging.Debug("skipping unrecognized macro shape", logging.Trigger(trigger))
		return nil, true, nil
	}

	var body model.Body
	switch match.Kind() {
	case macro.KindTemplate:
		block, err := match.Resolve(templates.Lookup)
		if err != nil {
			return nil, false, fmt.Errorf("entry %q: %w", trigger, err)
		}
		body = block
	case macro.KindInsert:
		body = match.Insert()
	}

	snip := model.Snippet{
		Trigger:     trigger,
		Body:        body,
		Mode:        classify.Mode(body, trigger),
		Description: classify.Description(body, trigger),
	}
	return &snip, true, nil
}

// scanLine reads the next line and returns its single capture group, or
// ok=false at end of input or when the line does not match.
func scanLine(scanner *bufio.Scanner, re *regexp.Regexp) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	line := strings.TrimRight(scanner.Text(), "\r")
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
