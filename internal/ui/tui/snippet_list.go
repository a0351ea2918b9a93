// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/wedtex/snipconv/internal/model"
)

// SnippetAction represents the action to perform after browsing.
type SnippetAction int

const (
	// SnippetActionNone means no action was taken (user quit).
	SnippetActionNone SnippetAction = iota
	// SnippetActionView means the user wants to view the snippet body.
	SnippetActionView
)

// SnippetListResult contains the result of the snippet list TUI interaction.
type SnippetListResult struct {
	Action   SnippetAction
	Selected model.Snippet
}

// snippetListKeyMap defines the key bindings for the snippet list.
type snippetListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	View     key.Binding
	Filter   key.Binding
	ClearFlt key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Help     key.Binding
	Quit     key.Binding
}

type snippetListColumnWidths struct {
	trigger int
	mode    int
	lines   int
	desc    int
}

func defaultSnippetListColumnWidths() snippetListColumnWidths {
	return snippetListColumnWidths{
		trigger: 16,
		mode:    8,
		lines:   6,
		desc:    60,
	}
}

func defaultSnippetListKeyMap() snippetListKeyMap {
	return snippetListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		View: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter/v", "view body"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ClearFlt: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "l"),
			key.WithHelp("tab/l", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "h"),
			key.WithHelp("S-tab/h", "prev mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SnippetListModel is the BubbleTea model for browsing imported snippets.
type SnippetListModel struct {
	table        table.Model
	snippets     []model.Snippet
	filtered     []model.Snippet
	keys         snippetListKeyMap
	result       SnippetListResult
	filter       string
	filtering    bool
	modeOptions  []model.Mode
	modeIndex    int // Index into modeOptions (-1 = all)
	showHelp     bool
	width        int
	height       int
	quitting     bool
	columnWidths snippetListColumnWidths
}

// Styles for the snippet list TUI.
var snippetListStyles = struct {
	Title       lipgloss.Style
	Help        lipgloss.Style
	Filter      lipgloss.Style
	FilterInput lipgloss.Style
	Status      lipgloss.Style
	ModeTab     lipgloss.Style
	ModeActive  lipgloss.Style
	Body        lipgloss.Style
}{
	Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	FilterInput: lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	ModeTab:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	ModeActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),
	Body:        lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
}

// NewSnippetListModel creates a new snippet list model.
func NewSnippetListModel(snippets []model.Snippet) SnippetListModel {
	columnWidths := defaultSnippetListColumnWidths()
	columns := []table.Column{
		{Title: "Trigger", Width: columnWidths.trigger},
		{Title: "Mode", Width: columnWidths.mode},
		{Title: "Lines", Width: columnWidths.lines},
		{Title: "Description", Width: columnWidths.desc},
	}

	// Collect the modes actually present
	modeSet := make(map[model.Mode]bool)
	for _, s := range snippets {
		modeSet[s.Mode] = true
	}

	modeOptions := []model.Mode{}
	for _, mode := range model.AllModes() {
		if modeSet[mode] {
			modeOptions = append(modeOptions, mode)
		}
	}

	// Sort snippets alphabetically by trigger (case-insensitive)
	sort.Slice(snippets, func(i, j int) bool {
		return strings.ToLower(snippets[i].Trigger) < strings.ToLower(snippets[j].Trigger)
	})

	m := SnippetListModel{
		snippets:     snippets,
		filtered:     snippets,
		keys:         defaultSnippetListKeyMap(),
		modeOptions:  modeOptions,
		modeIndex:    -1, // -1 means "all"
		columnWidths: columnWidths,
	}

	rows := m.snippetsToRows(snippets)

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	return m
}

func (m SnippetListModel) snippetsToRows(snippets []model.Snippet) []table.Row {
	widths := m.columnWidths
	if widths.desc == 0 {
		widths = defaultSnippetListColumnWidths()
	}
	rows := make([]table.Row, len(snippets))
	for i, s := range snippets {
		rows[i] = table.Row{
			truncateText(s.Trigger, widths.trigger),
			truncateText(string(s.Mode), widths.mode),
			fmt.Sprintf("%d", len(s.Body.Lines())),
			truncateText(s.Description, widths.desc),
		}
	}
	return rows
}

// Init implements tea.Model.
func (m SnippetListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m SnippetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Reserve space for title, mode tabs, help, status
		newHeight := max(msg.Height-12, 5)
		m.table.SetHeight(newHeight)
		m.applyColumnWidths(msg.Width)

	case tea.KeyMsg:
		// Handle filtering mode
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				return m, nil
			case "esc":
				m.filter = ""
				m.filtering = false
				m.applyFilter()
				return m, nil
			case "backspace":
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.applyFilter()
				}
				return m, nil
			default:
				if len(msg.String()) == 1 {
					m.filter += msg.String()
					m.applyFilter()
				}
				return m, nil
			}
		}

		// Normal mode key handling
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			return m, nil

		case key.Matches(msg, m.keys.ClearFlt):
			m.filter = ""
			m.applyFilter()
			return m, nil

		case key.Matches(msg, m.keys.NextMode):
			if len(m.modeOptions) > 0 {
				m.modeIndex++
				if m.modeIndex >= len(m.modeOptions) {
					m.modeIndex = -1 // Wrap to "all"
				}
				m.applyFilter()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modeOptions) > 0 {
				m.modeIndex--
				if m.modeIndex < -1 {
					m.modeIndex = len(m.modeOptions) - 1 // Wrap to last mode
				}
				m.applyFilter()
			}
			return m, nil

		case key.Matches(msg, m.keys.View):
			if len(m.filtered) > 0 {
				m.result = SnippetListResult{
					Action:   SnippetActionView,
					Selected: m.getSelected(),
				}
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *SnippetListModel) applyFilter() {
	filtered := m.snippets

	// Apply mode filter if not "all"
	if m.modeIndex >= 0 && m.modeIndex < len(m.modeOptions) {
		selected := m.modeOptions[m.modeIndex]
		var modeFiltered []model.Snippet
		for _, s := range filtered {
			if s.Mode == selected {
				modeFiltered = append(modeFiltered, s)
			}
		}
		filtered = modeFiltered
	}

	// Apply text filter against trigger, description and body
	if m.filter != "" {
		var textFiltered []model.Snippet
		lowerFilter := strings.ToLower(m.filter)
		for _, s := range filtered {
			if strings.Contains(strings.ToLower(s.Trigger), lowerFilter) ||
				strings.Contains(strings.ToLower(s.Description), lowerFilter) ||
				strings.Contains(strings.ToLower(s.Body.String()), lowerFilter) {
				textFiltered = append(textFiltered, s)
			}
		}
		filtered = textFiltered
	}

	m.filtered = filtered
	m.table.SetRows(m.snippetsToRows(m.filtered))
}

func (m SnippetListModel) getSelected() model.Snippet {
	cursor := m.table.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return m.filtered[cursor]
	}
	return model.Snippet{}
}

// View implements tea.Model.
func (m SnippetListModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := snippetListStyles.Title.Render("Snippets - Browse Imported Definitions")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(m.renderModeTabs())
	b.WriteString("\n\n")

	// Filter indicator
	if m.filter != "" || m.filtering {
		filterStr := snippetListStyles.Filter.Render("Filter: ")
		filterVal := snippetListStyles.FilterInput.Render(m.filter)
		if m.filtering {
			filterVal += "█"
		}
		b.WriteString(filterStr + filterVal + "\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	status := m.renderStatus()
	b.WriteString(snippetListStyles.Status.Render(status))
	b.WriteString("\n")

	selected := m.getSelected()
	if selected.Trigger != "" && selected.Body != nil {
		bodyWidth := max(m.width-2, 40)
		formatted := formatBody(selected.Body.String(), bodyWidth)
		b.WriteString(snippetListStyles.Body.Render(formatted))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.renderShortHelp())
	}

	return b.String()
}

func (m SnippetListModel) renderModeTabs() string {
	var tabs []string

	// "All" tab
	if m.modeIndex == -1 {
		tabs = append(tabs, snippetListStyles.ModeActive.Render("[All]"))
	} else {
		tabs = append(tabs, snippetListStyles.ModeTab.Render(" All "))
	}

	titleCaser := cases.Title(language.English)
	for i, mode := range m.modeOptions {
		modeName := titleCaser.String(string(mode))
		if i == m.modeIndex {
			tabs = append(tabs, snippetListStyles.ModeActive.Render(fmt.Sprintf("[%s]", modeName)))
		} else {
			tabs = append(tabs, snippetListStyles.ModeTab.Render(fmt.Sprintf(" %s ", modeName)))
		}
	}

	return strings.Join(tabs, "")
}

func (m SnippetListModel) renderStatus() string {
	modeCounts := make(map[model.Mode]int)
	for _, s := range m.snippets {
		modeCounts[s.Mode]++
	}

	var counts []string
	for _, mode := range m.modeOptions {
		counts = append(counts, fmt.Sprintf("%s: %d", mode, modeCounts[mode]))
	}

	status := fmt.Sprintf("Showing %d of %d snippets", len(m.filtered), len(m.snippets))
	if len(counts) > 0 {
		status += " | " + strings.Join(counts, ", ")
	}
	return status
}

func (m SnippetListModel) renderShortHelp() string {
	keys := []string{
		"↑/↓ navigate",
		"tab/S-tab mode",
		"enter view",
		"/ filter",
		"? help",
		"q quit",
	}
	return snippetListStyles.Help.Render(strings.Join(keys, " • "))
}

func (m SnippetListModel) renderFullHelp() string {
	help := `Navigation:
  ↑/k      Move up
  ↓/j      Move down

Mode Filtering:
  Tab/l       Next mode
  Shift-Tab/h Previous mode

Actions:
  Enter/v  View snippet body

Text Filter:
  /        Start filtering (by trigger, description, or body)
  Esc      Clear filter
  Enter    Finish filtering

General:
  ?        Toggle full help
  q        Quit`
	return snippetListStyles.Help.Render(help)
}

func (m *SnippetListModel) applyColumnWidths(totalWidth int) {
	widths := defaultSnippetListColumnWidths()
	if totalWidth > 0 {
		const separatorWidth = 6
		descWidth := totalWidth - (widths.trigger + widths.mode + widths.lines + separatorWidth)
		if descWidth < 40 {
			descWidth = 40
		}
		widths.desc = descWidth
	}

	m.columnWidths = widths
	m.table.SetColumns([]table.Column{
		{Title: "Trigger", Width: widths.trigger},
		{Title: "Mode", Width: widths.mode},
		{Title: "Lines", Width: widths.lines},
		{Title: "Description", Width: widths.desc},
	})
	m.table.SetRows(m.snippetsToRows(m.filtered))
}

// Result returns the result of the user interaction.
func (m SnippetListModel) Result() SnippetListResult {
	return m.result
}

// RunSnippetList runs the interactive snippet browser and returns the result.
func RunSnippetList(snippets []model.Snippet) (SnippetListResult, error) {
	if len(snippets) == 0 {
		return SnippetListResult{}, nil
	}

	mdl := NewSnippetListModel(snippets)
	finalModel, err := tea.NewProgram(mdl, tea.WithAltScreen()).Run()
	if err != nil {
		return SnippetListResult{}, err
	}

	if m, ok := finalModel.(SnippetListModel); ok {
		return m.Result(), nil
	}

	return SnippetListResult{}, nil
}
