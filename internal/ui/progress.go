package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pl0lex/internal/driver"
)

const (
	statusColumn = 10
	minNameWidth = 20
)

type fileRow struct {
	path  string
	state fileState
}

type progressModel struct {
	title   string
	events  <-chan driver.ProgressEvent
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	closed  bool
}

type (
	eventMsg  driver.ProgressEvent
	closedMsg struct{}
)

// NewProgressModel renders one row per file plus an overall bar.
// The program quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.ProgressEvent) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(stateLexing.style())),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.rows[i] = fileRow{path: path}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.ProgressEvent(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.closed {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	prefix := m.spinner.View()
	if m.closed {
		prefix = "done:"
	}
	var b strings.Builder
	header := fmt.Sprintf("%s %s [%d/%d]", prefix, m.title, m.finished(), len(m.rows))
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-6, minNameWidth)
	for _, row := range m.rows {
		status := row.state.style().Render(fmt.Sprintf("%*s", statusColumn, row.state))
		fmt.Fprintf(&b, "  %s  %s\n", status, truncate(row.path, nameWidth))
	}
	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// next ждёт следующее событие драйвера; закрытый канал завершает программу.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *progressModel) applyEvent(ev driver.ProgressEvent) tea.Cmd {
	i, known := m.byPath[ev.File]
	if !known {
		return nil
	}
	if st, ok := stateOf(ev); ok {
		m.rows[i].state = st
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) finished() int {
	n := 0
	for _, row := range m.rows {
		if row.state.final() {
			n++
		}
	}
	return n
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range m.rows {
		sum += stateTable[row.state].weight
	}
	return sum / float64(len(m.rows))
}

// truncate обрезает по ширине на экране, а не по байтам: пути бывают не ASCII.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(s, width, tail)
}
