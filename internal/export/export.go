// Package export renders converted snippet collections to their target
// files. Output is fully buffered and written wholesale; nothing is
// streamed.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wedtex/snipconv/internal/convert"
	"github.com/wedtex/snipconv/internal/cson"
	"github.com/wedtex/snipconv/internal/logging"
	"github.com/wedtex/snipconv/internal/model"
)

// Format represents a target snippet format.
type Format string

const (
	// FormatData is the normalized internal record file.
	FormatData Format = "data"
	// FormatVSCode is the VS Code snippet JSON file.
	FormatVSCode Format = "vscode"
	// FormatAtom is the Atom CSON snippet file.
	FormatAtom Format = "atom"
	// FormatLive is the live-snippet JSON file.
	FormatLive Format = "live"
	// FormatSplit routes single-line records to live snippets and
	// multi-line records to VS Code snippets.
	FormatSplit Format = "split"
)

// IsValid returns true if the format is recognized.
func (f Format) IsValid() bool {
	switch f {
	case FormatData, FormatVSCode, FormatAtom, FormatLive, FormatSplit:
		return true
	default:
		return false
	}
}

// String returns the string representation of the format.
func (f Format) String() string { return string(f) }

// AllFormats returns all supported target formats.
func AllFormats() []Format {
	return []Format{FormatData, FormatVSCode, FormatAtom, FormatLive, FormatSplit}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("unsupported format %q (valid: data, vscode, atom, live, split)", s)
	}
	return f, nil
}

// Default file names per target, matching the consumers' conventions.
const (
	DataFile   = "data.json"
	VSCodeFile = "latex.json"
	AtomFile   = "language-latex.cson"
	LiveFile   = "liveSnippets.json"
)

// Options configures one export run.
type Options struct {
	// Single decorates single-line snippets (live target).
	Single convert.Options
	// Multi decorates multi-line snippets (vscode/atom targets).
	Multi convert.Options
	// Dir is the output directory.
	Dir string
}

// Exporter writes converted snippets to target files.
type Exporter struct {
	opts Options
}

// New creates an Exporter with the given options.
func New(opts Options) *Exporter {
	return &Exporter{opts: opts}
}

// Export converts records to one target format and writes its file(s)
// under the output directory, returning the paths written.
func (e *Exporter) Export(snips []model.Snippet, format Format) ([]string, error) {
	defer logging.Timer("export")()
	logging.Debug("starting export",
		logging.Format(string(format)),
		logging.Count(len(snips)),
	)

	var (
		paths []string
		err   error
	)
	switch format {
	case FormatData:
		paths, err = e.exportData(snips)
	case FormatVSCode:
		paths, err = e.exportVSCode(snips)
	case FormatAtom:
		paths, err = e.exportAtom(snips)
	case FormatLive:
		paths, err = e.exportLive(snips)
	case FormatSplit:
		paths, err = e.exportSplit(snips)
	default:
		err = fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		logging.Error("export failed", logging.Format(string(format)), logging.Err(err))
		return nil, err
	}

	logging.Info("export complete",
		logging.Format(string(format)),
		logging.Count(len(snips)),
	)
	return paths, nil
}

func (e *Exporter) exportData(snips []model.Snippet) ([]string, error) {
	path := filepath.Join(e.opts.Dir, DataFile)
	if err := WriteData(path, snips); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (e *Exporter) exportVSCode(snips []model.Snippet) ([]string, error) {
	path := filepath.Join(e.opts.Dir, VSCodeFile)
	if err := writeJSON(path, convert.VSCodeAll(snips, e.opts.Multi)); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (e *Exporter) exportAtom(snips []model.Snippet) ([]string, error) {
	path := filepath.Join(e.opts.Dir, AtomFile)
	var buf bytes.Buffer
	if err := cson.NewEncoder(&buf).Encode(convert.AtomAll(snips, e.opts.Multi)); err != nil {
		return nil, err
	}
	if err := writeFile(path, buf.Bytes()); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (e *Exporter) exportLive(snips []model.Snippet) ([]string, error) {
	path := filepath.Join(e.opts.Dir, LiveFile)
	if err := writeJSON(path, convert.LiveAll(snips, e.opts.Single)); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func (e *Exporter) exportSplit(snips []model.Snippet) ([]string, error) {
	live, vsc := convert.Split(snips, e.opts.Single, e.opts.Multi)
	livePath := filepath.Join(e.opts.Dir, LiveFile)
	vscPath := filepath.Join(e.opts.Dir, VSCodeFile)
	if err := writeJSON(livePath, live); err != nil {
		return nil, err
	}
	if err := writeJSON(vscPath, vsc); err != nil {
		return nil, err
	}
	return []string{livePath, vscPath}, nil
}

// WriteData writes the normalized record file.
func WriteData(path string, snips []model.Snippet) error {
	return writeJSON(path, snips)
}

// ReadData reads a normalized record file back into memory.
func ReadData(path string) ([]model.Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}
	var snips []model.Snippet
	if err := json.Unmarshal(data, &snips); err != nil {
		return nil, fmt.Errorf("failed to decode record file %s: %w", path, err)
	}
	return snips, nil
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logging.Debug("file written", logging.Path(path))
	return nil
}
