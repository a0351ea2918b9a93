package winedt

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Templates is the table of multi-line snippet bodies parsed from a
// WinEdt template .dat file. Blocks look like:
//
//	<id>
//	<body line>
//	...
//	-<id>-
//
// Later blocks with a repeated identifier overwrite earlier ones.
type Templates struct {
	bodies map[string][]string
}

// LoadTemplates reads and parses the template body file.
func LoadTemplates(path string) (*Templates, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}
	return ParseTemplates(lines), nil
}

// ParseTemplates builds the body table from raw file lines. Content
// before the first block and anything after an unterminated block is
// ignored; the legacy files carry noise around the real entries.
func ParseTemplates(lines []string) *Templates {
	t := &Templates{bodies: make(map[string][]string)}
	for i := 0; i < len(lines); i++ {
		id := lines[i]
		if id == "" {
			continue
		}
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if lines[j] == "-"+id+"-" {
				end = j
				break
			}
		}
		if end == -1 {
			continue
		}
		body := make([]string, end-i-1)
		copy(body, lines[i+1:end])
		t.bodies[id] = body
		i = end
	}
	return t
}

// Lookup returns the body lines for an identifier. The returned slice
// is shared; callers copy before modifying.
func (t *Templates) Lookup(id string) ([]string, bool) {
	body, ok := t.bodies[id]
	return body, ok
}

// Len returns the number of template bodies in the table.
func (t *Templates) Len() int { return len(t.bodies) }
