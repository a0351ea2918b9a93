package tui

import (
	"testing"

	"github.com/wedtex/snipconv/internal/model"
)

func sampleSnippets() []model.Snippet {
	return []model.Snippet{
		{Trigger: "xa", Body: model.Line(`\alpha`), Mode: model.ModeMaths, Description: `\alpha`},
		{Trigger: "htext", Body: model.Line(`\text{$1}`), Mode: model.ModeText, Description: `\text{}`},
		{
			Trigger:     "bdoc",
			Body:        model.Block{`\begin{document}`, `\end{document}`},
			Mode:        model.ModeText,
			Description: `\begin{document}`,
		},
	}
}

func TestNewSnippetListModel_CollectsModeOptions(t *testing.T) {
	m := NewSnippetListModel(sampleSnippets())

	// Should have the two modes present, in declaration order
	expectedOrder := []model.Mode{model.ModeText, model.ModeMaths}
	if len(m.modeOptions) != len(expectedOrder) {
		t.Fatalf("expected %d mode options, got %d", len(expectedOrder), len(m.modeOptions))
	}
	for i, expected := range expectedOrder {
		if m.modeOptions[i] != expected {
			t.Errorf("mode at index %d: expected %s, got %s", i, expected, m.modeOptions[i])
		}
	}

	// Initially should show all snippets
	if len(m.filtered) != 3 {
		t.Errorf("expected 3 filtered snippets, got %d", len(m.filtered))
	}

	// modeIndex should be -1 (all)
	if m.modeIndex != -1 {
		t.Errorf("expected modeIndex -1, got %d", m.modeIndex)
	}
}

func TestSnippetListModel_ApplyFilter_ByModeAndText(t *testing.T) {
	m := NewSnippetListModel(sampleSnippets())

	// Select "text" mode (index 0)
	m.modeIndex = 0
	m.applyFilter()

	if len(m.filtered) != 2 {
		t.Errorf("expected 2 text-mode snippets, got %d", len(m.filtered))
	}

	// Text filter on top of the mode filter
	m.filter = "document"
	m.applyFilter()

	if len(m.filtered) != 1 {
		t.Fatalf("expected 1 snippet matching 'document' in text mode, got %d", len(m.filtered))
	}
	if m.filtered[0].Trigger != "bdoc" {
		t.Errorf("expected 'bdoc', got %s", m.filtered[0].Trigger)
	}

	// Reset to all modes, filter against the body
	m.modeIndex = -1
	m.filter = "alpha"
	m.applyFilter()

	if len(m.filtered) != 1 {
		t.Errorf("expected 1 snippet matching 'alpha', got %d", len(m.filtered))
	}
}

func TestSnippetListModel_SnippetsToRows(t *testing.T) {
	snippets := []model.Snippet{
		{
			Trigger:     "bdoc",
			Body:        model.Block{`\begin{document}`, `\end{document}`},
			Mode:        model.ModeText,
			Description: `\begin{document}`,
		},
	}

	m := NewSnippetListModel(snippets)
	rows := m.snippetsToRows(snippets)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if len(row) != 4 {
		t.Errorf("expected 4 columns, got %d", len(row))
	}

	// Columns: Trigger, Mode, Lines, Description
	if row[0] != "bdoc" {
		t.Errorf("expected trigger 'bdoc', got %s", row[0])
	}
	if row[1] != "text" {
		t.Errorf("expected mode 'text', got %s", row[1])
	}
	if row[2] != "2" {
		t.Errorf("expected line count '2', got %s", row[2])
	}
}

func TestSnippetListModel_Result(t *testing.T) {
	m := NewSnippetListModel(sampleSnippets())

	// Initially result should be empty
	result := m.Result()
	if result.Action != SnippetActionNone {
		t.Errorf("expected SnippetActionNone, got %d", result.Action)
	}
}

func TestRunSnippetList_EmptySnippets(t *testing.T) {
	result, err := RunSnippetList(nil)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result.Action != SnippetActionNone {
		t.Errorf("expected SnippetActionNone for empty snippets, got %d", result.Action)
	}
}
