// Package browse is an interactive terminal browser over the parsed
// Unicode tables. Type to search names, arrow keys to move through the
// matches, enter to inspect a character.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/ucd"
)

// maxResults caps the match list so pathological fragments like "A"
// stay responsive.
const maxResults = 200

const visibleRows = 15

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Bold(true)

	codepointStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	charStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

type view int

const (
	viewSearch view = iota
	viewDetail
)

type model struct {
	ds       *dataset.Dataset
	input    textinput.Model
	view     view
	results  []ucd.Character
	cursor   int
	offset   int
	selected ucd.Character
	width    int
	height   int
}

func newModel(ds *dataset.Dataset) model {
	ti := textinput.New()
	ti.Placeholder = "character name, e.g. sharp s"
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 50

	return model{
		ds:    ds,
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEsc:
			if m.view == viewDetail {
				m.view = viewSearch
				return m, nil
			}
			return m, tea.Quit

		case tea.KeyEnter:
			if m.view == viewSearch && len(m.results) > 0 {
				m.selected = m.results[m.cursor]
				m.view = viewDetail
			}
			return m, nil

		case tea.KeyUp:
			if m.view == viewSearch && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
			return m, nil

		case tea.KeyDown:
			if m.view == viewSearch && m.cursor < len(m.results)-1 {
				m.cursor++
				if m.cursor >= m.offset+visibleRows {
					m.offset = m.cursor - visibleRows + 1
				}
			}
			return m, nil
		}
	}

	if m.view == viewSearch {
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.search()
		}
		return m, cmd
	}

	return m, nil
}

func (m *model) search() {
	m.cursor = 0
	m.offset = 0
	m.results = nil

	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return
	}

	matches := m.ds.Chars.ByPartialName(q)
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	m.results = matches
}

func (m model) View() string {
	if m.view == viewDetail {
		return m.detailView()
	}
	return m.searchView()
}

func (m model) searchView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Unicode Character Search"))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	if len(m.results) == 0 {
		if strings.TrimSpace(m.input.Value()) != "" {
			s.WriteString(dimStyle.Render("no matches"))
		}
	} else {
		end := min(m.offset+visibleRows, len(m.results))
		for i := m.offset; i < end; i++ {
			c := m.results[i]
			line := fmt.Sprintf("%s  %s  %s",
				codepointStyle.Render(fmt.Sprintf("U+%04X", c.Codepoint)),
				charStyle.Render(string(c.Codepoint)),
				c.Name,
			)
			if i == m.cursor {
				line = selectedStyle.Render("> ") + line
			} else {
				line = "  " + line
			}
			s.WriteString(line)
			s.WriteString("\n")
		}
		if len(m.results) == maxResults {
			s.WriteString(dimStyle.Render(fmt.Sprintf("showing first %d matches", maxResults)))
			s.WriteString("\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(dimStyle.Render("↑/↓ move • enter inspect • esc quit"))
	s.WriteString("\n")
	return s.String()
}

func (m model) detailView() string {
	c := m.selected
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("U+%04X %s", c.Codepoint, c.Name)))
	s.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		s.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), value))
	}

	row("Character", charStyle.Render(string(c.Codepoint)))
	row("Category", c.Category)
	row("Combining", fmt.Sprintf("%d", c.Combining))
	row("Bidi", c.Bidi)
	if block, err := m.ds.Blocks.ByCodepoint(c.Codepoint); err == nil {
		row("Block", block)
	}
	if !c.Decomposition.IsZero() {
		parts := make([]string, 0, len(c.Decomposition.Runes)+1)
		if c.Decomposition.Tag != "" {
			parts = append(parts, c.Decomposition.Tag)
		}
		for _, r := range c.Decomposition.Runes {
			parts = append(parts, fmt.Sprintf("U+%04X", r))
		}
		row("Decomposition", strings.Join(parts, " "))
	}
	if c.Numeric != nil {
		row("Numeric", c.Numeric.RatString())
	}
	if c.Upper != 0 {
		row("Uppercase", fmt.Sprintf("U+%04X", c.Upper))
	}
	if c.Lower != 0 {
		row("Lowercase", fmt.Sprintf("U+%04X", c.Lower))
	}
	if c.Title != 0 {
		row("Titlecase", fmt.Sprintf("U+%04X", c.Title))
	}
	row("UTF-8", fmt.Sprintf("% X", []byte(string(c.Codepoint))))

	s.WriteString("\n")
	s.WriteString(dimStyle.Render("esc back • ctrl+c quit"))
	s.WriteString("\n")
	return s.String()
}

// Run starts the browser over the loaded dataset and blocks until the
// user quits.
func Run(ds *dataset.Dataset) error {
	p := tea.NewProgram(newModel(ds))
	_, err := p.Run()
	return err
}
