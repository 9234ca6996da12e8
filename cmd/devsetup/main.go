// devsetup is a developer environment setup wizard. It downloads the
// UCD data files (UnicodeData.txt, Blocks.txt, CaseFolding.txt) into
// the data directory and collects environment variables. Run via
// `make setup`.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const ucdBaseURL = "https://www.unicode.org/Public/UCD/latest/ucd/"

const dataDir = "data"

var dataFiles = []string{
	"UnicodeData.txt",
	"Blocks.txt",
	"CaseFolding.txt",
}

type step int

const (
	stepUnicodeData step = iota
	stepBlocks
	stepCaseFolding
	stepEnv
	stepComplete
)

var stepNames = []string{
	"UnicodeData.txt",
	"Blocks.txt",
	"CaseFolding.txt",
	"Environment (.env)",
	"Complete",
}

type envField int

const (
	fieldDatabaseURL envField = iota
	fieldPort
	fieldDone
)

var envFieldNames = []string{
	"Database URL (optional)",
	"HTTP Port",
}

type model struct {
	step         step
	envField     envField
	textInput    textinput.Model
	envValues    map[envField]string
	err          error
	width        int
	height       int
	skippedSteps map[step]bool
}

type stepDoneMsg struct {
	skipped bool
}
type stepErrorMsg struct{ err error }

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	activeStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)

func initialModel() model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	return model{
		step:         stepUnicodeData,
		envField:     fieldDatabaseURL,
		textInput:    ti,
		envValues:    make(map[envField]string),
		skippedSteps: make(map[step]bool),
	}
}

func (m model) Init() tea.Cmd {
	return m.runCurrentStep()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "enter":
			if m.step == stepEnv && m.envField < fieldDone {
				return m.handleEnvInput()
			}
			if m.step == stepComplete {
				return m, tea.Quit
			}
		case "tab":
			if m.step == stepEnv && m.envField == fieldDatabaseURL {
				return m.skipEnvField()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case stepDoneMsg:
		m.skippedSteps[m.step] = msg.skipped
		m.step++
		if m.step == stepEnv && envFileExists() {
			m.skippedSteps[stepEnv] = true
			m.step++
		}
		if m.step <= stepComplete {
			return m, m.runCurrentStep()
		}

	case stepErrorMsg:
		m.err = msg.err
		return m, nil
	}

	if m.step == stepEnv && m.envField < fieldDone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("unicodeutil - Developer Setup"))
	s.WriteString("\n\n")

	s.WriteString(m.renderProgress())
	s.WriteString("\n\n")

	s.WriteString(m.renderStepContent())
	s.WriteString("\n\n")

	s.WriteString(subtleStyle.Render("enter=continue • esc/ctrl+c=quit"))
	if m.step == stepEnv && m.envField == fieldDatabaseURL {
		s.WriteString(subtleStyle.Render(" • tab=skip"))
	}

	return boxStyle.Render(s.String())
}

func (m model) renderProgress() string {
	var dots []string
	for i := 0; i <= int(stepComplete); i++ {
		if i < int(m.step) {
			dots = append(dots, completedStyle.Render("●"))
		} else if i == int(m.step) {
			dots = append(dots, activeStepStyle.Render("●"))
		} else {
			dots = append(dots, stepStyle.Render("○"))
		}
	}
	progress := strings.Join(dots, " ")

	stepLabel := ""
	if m.step <= stepComplete {
		stepLabel = fmt.Sprintf("Step %d of %d: %s", m.step+1, len(stepNames), stepNames[m.step])
	}

	return fmt.Sprintf("[%s]  %s", progress, activeStepStyle.Render(stepLabel))
}

func (m model) renderStepContent() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	switch m.step {
	case stepUnicodeData, stepBlocks, stepCaseFolding:
		return fmt.Sprintf("Downloading %s from unicode.org...", dataFiles[m.step])
	case stepEnv:
		return m.renderEnvStep()
	case stepComplete:
		return m.renderComplete()
	}
	return ""
}

func (m model) renderEnvStep() string {
	if m.envField >= fieldDone {
		return completedStyle.Render("Environment configured!")
	}

	var s strings.Builder
	s.WriteString("Configure your environment:\n\n")

	fieldName := envFieldNames[m.envField]
	s.WriteString(fmt.Sprintf("%s:\n", activeStepStyle.Render(fieldName)))

	switch m.envField {
	case fieldDatabaseURL:
		s.WriteString("  The query log backend for /api/v1/recent:\n")
		s.WriteString("  • a file path for SQLite, e.g. ./unicodeutil.db\n")
		s.WriteString("  • a postgres:// URL for PostgreSQL\n")
		s.WriteString("  • empty disables the log entirely\n")
		s.WriteString("\n")
		s.WriteString(subtleStyle.Render("  Enter a backend (or tab to skip):\n"))
	case fieldPort:
		s.WriteString("  The port the JSON API listens on.\n")
		s.WriteString("\n")
		s.WriteString(subtleStyle.Render("  Enter a port (default 3000):\n"))
	}

	s.WriteString("\n")
	s.WriteString(m.textInput.View())

	return s.String()
}

func (m model) renderComplete() string {
	var s strings.Builder
	s.WriteString(completedStyle.Render("✓ Setup complete!"))
	s.WriteString("\n\n")

	skipped := 0
	for _, v := range m.skippedSteps {
		if v {
			skipped++
		}
	}

	if skipped > 0 {
		s.WriteString(subtleStyle.Render(fmt.Sprintf("(%d steps were already configured)\n\n", skipped)))
	}

	s.WriteString("Next steps:\n")
	s.WriteString("  1. Run " + activeStepStyle.Render("go run cmd/web/main.go") + " to start the JSON API\n")
	s.WriteString("  2. Run " + activeStepStyle.Render("go run cmd/ucdinfo/main.go --interactive") + " to browse characters\n")
	s.WriteString("  3. Try " + activeStepStyle.Render("curl localhost:3000/api/v1/ucd/U+00DF") + "\n")

	return s.String()
}

func (m model) handleEnvInput() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.textInput.Value())

	switch m.envField {
	case fieldDatabaseURL:
		m.envValues[m.envField] = value
	case fieldPort:
		if value == "" {
			value = "3000"
		}
		m.envValues[m.envField] = value
	}

	m.textInput.SetValue("")
	m.envField++

	if m.envField == fieldDone {
		return m, m.writeEnvFile()
	}

	return m, nil
}

func (m model) skipEnvField() (tea.Model, tea.Cmd) {
	m.envValues[m.envField] = ""
	m.textInput.SetValue("")
	m.envField++
	return m, nil
}

func (m model) writeEnvFile() tea.Cmd {
	return func() tea.Msg {
		content := fmt.Sprintf(`# Generated by setup tool

# UCD data files
UCD_DIR=%s

# Query log backend (empty disables /api/v1/recent persistence)
DATABASE_URL=%s

# HTTP server
PORT=%s
`,
			dataDir,
			m.envValues[fieldDatabaseURL],
			m.envValues[fieldPort],
		)

		if err := os.WriteFile(".env", []byte(content), 0600); err != nil {
			return stepErrorMsg{err}
		}
		return stepDoneMsg{skipped: false}
	}
}

func (m model) runCurrentStep() tea.Cmd {
	switch m.step {
	case stepUnicodeData, stepBlocks, stepCaseFolding:
		return downloadFile(dataFiles[m.step])
	case stepEnv, stepComplete:
		return nil
	}
	return nil
}

func envFileExists() bool {
	_, err := os.Stat(".env")
	return err == nil
}

func downloadFile(name string) tea.Cmd {
	return func() tea.Msg {
		dest := filepath.Join(dataDir, name)
		if _, err := os.Stat(dest); err == nil {
			return stepDoneMsg{skipped: true}
		}

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return stepErrorMsg{fmt.Errorf("creating %s: %w", dataDir, err)}
		}

		client := &http.Client{Timeout: 2 * time.Minute}
		resp, err := client.Get(ucdBaseURL + name)
		if err != nil {
			return stepErrorMsg{fmt.Errorf("downloading %s: %w", name, err)}
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return stepErrorMsg{fmt.Errorf("downloading %s: status %d", name, resp.StatusCode)}
		}

		tmp := dest + ".tmp"
		f, err := os.Create(tmp)
		if err != nil {
			return stepErrorMsg{fmt.Errorf("creating %s: %w", tmp, err)}
		}
		if _, err := io.Copy(f, resp.Body); err != nil {
			f.Close()
			os.Remove(tmp)
			return stepErrorMsg{fmt.Errorf("writing %s: %w", name, err)}
		}
		if err := f.Close(); err != nil {
			os.Remove(tmp)
			return stepErrorMsg{fmt.Errorf("closing %s: %w", name, err)}
		}
		if err := os.Rename(tmp, dest); err != nil {
			return stepErrorMsg{fmt.Errorf("moving %s into place: %w", name, err)}
		}

		return stepDoneMsg{skipped: false}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
