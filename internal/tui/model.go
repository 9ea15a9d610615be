// Package tui provides the Bubble Tea shell that collects a city, month, and
// day, then shows the statistics report.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/bikeshare/internal/dataset"
	"github.com/verte-zerg/bikeshare/internal/stats"
)

type stage int

const (
	stageCity stage = iota
	stageMonth
	stageDay
	stageLoading
	stageReport
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

type reportMsg struct {
	content string
	err     error
}

// Model implements the Bubble Tea shell.
type Model struct {
	loader   *dataset.Loader
	parallel bool

	stage    stage
	input    textinput.Model
	viewport viewport.Model

	city  string
	month string
	day   string

	errMsg string
	width  int
	height int
}

// NewModel constructs the shell model.
func NewModel(loader *dataset.Loader, parallel bool) *Model {
	m := &Model{
		loader:   loader,
		parallel: parallel,
		viewport: viewport.New(0, 0),
	}
	m.input = textinput.New()
	m.input.CharLimit = 64
	m.restart()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = maxInt(1, msg.Height-3)
		m.input.Width = maxInt(10, msg.Width-lipgloss.Width(m.input.Prompt)-2)
		return m, nil
	case reportMsg:
		if msg.err != nil {
			logErrf("query failed: %v\n", msg.err)
			m.restart()
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.stage = stageReport
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.stage {
		case stageReport:
			return m.updateReport(msg)
		case stageLoading:
			return m, nil
		default:
			return m.updatePrompt(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	title := titleStyle.Render("Let's explore some US bikeshare data!")
	switch m.stage {
	case stageReport:
		footer := footerStyle.Render("Scroll: up/down/pgup/pgdn  Restart: r  Quit: q")
		return strings.Join([]string{title, m.viewport.View(), footer}, "\n")
	case stageLoading:
		return title + "\n\n" + promptStyle.Render(fmt.Sprintf("Loading %s...", m.city))
	}
	lines := []string{title, "", promptStyle.Render(m.question()), m.input.View()}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, "", footerStyle.Render("enter: confirm  esc: back  ctrl+c: quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.back()
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.restart()
		return m, textinput.Blink
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// submit validates the current answer. Invalid input keeps the same question.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	var err error
	switch m.stage {
	case stageCity:
		m.city, err = m.loader.Registry().ParseCity(value)
	case stageMonth:
		m.month, err = dataset.ParseMonth(value)
	case stageDay:
		m.day, err = dataset.ParseDay(value)
	}
	if err != nil {
		m.errMsg = err.Error()
		m.input.SetValue("")
		return m, nil
	}
	m.errMsg = ""
	m.input.SetValue("")
	if m.stage == stageDay {
		m.stage = stageLoading
		m.input.Blur()
		return m, m.query()
	}
	m.stage++
	return m, nil
}

func (m *Model) back() {
	m.errMsg = ""
	m.input.SetValue("")
	if m.stage > stageCity {
		m.stage--
	}
}

func (m *Model) restart() {
	m.stage = stageCity
	m.city, m.month, m.day = "", "", ""
	m.errMsg = ""
	m.input.SetValue("")
	m.input.Prompt = "> "
	m.input.Focus()
}

func (m *Model) question() string {
	switch m.stage {
	case stageCity:
		return fmt.Sprintf("Select a city from %s:", strings.Join(m.loader.Registry().Cities(), ", "))
	case stageMonth:
		return fmt.Sprintf("Select a month from %s:", strings.Join(dataset.Months(), ", "))
	default:
		return fmt.Sprintf("Select a day from %s:", strings.Join(dataset.Days(), ", "))
	}
}

func (m *Model) query() tea.Cmd {
	loader := m.loader
	city, month, day := m.city, m.month, m.day
	parallel := m.parallel
	width := m.width
	return func() tea.Msg {
		filter, err := dataset.NewFilter(month, day)
		if err != nil {
			return reportMsg{err: err}
		}
		rs, err := loader.Load(context.Background(), city, filter)
		if err != nil {
			return reportMsg{err: err}
		}
		report := stats.BuildReport(rs, parallel)
		var buf bytes.Buffer
		if err := stats.RenderReportWithWidth(&buf, report, minInt(width, 80)); err != nil {
			return reportMsg{err: fmt.Errorf("failed to render report: %w", err)}
		}
		return reportMsg{content: strings.TrimRight(buf.String(), "\n")}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
