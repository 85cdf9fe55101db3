package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KudcraftsHQ/slidekit/pkg/pipeline"
)

// =============================================================================
// ExportModel - Batch export progress
// =============================================================================

// slideDoneMsg reports one finished slide from the export goroutines.
type slideDoneMsg struct {
	index int
	err   error
}

// exportDoneMsg reports the completed (or aborted) export run.
type exportDoneMsg struct {
	result *pipeline.ExportResult
	err    error
}

// tickMsg advances the spinner frame.
type tickMsg time.Time

var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	barFailedStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// ExportModel is the bubbletea model showing batch export progress: a
// progress bar, per-slide counts, and elapsed time. Slide completions
// arrive as slideDoneMsg via Program.Send from the export goroutines.
type ExportModel struct {
	Total  int
	Done   int
	Failed int

	Result *ExportOutcome
	cancel context.CancelFunc
	frame  int
	start  time.Time
	width  int
}

// ExportOutcome carries the final export result out of the TUI loop.
type ExportOutcome struct {
	Result    *pipeline.ExportResult
	Err       error
	Cancelled bool
}

// NewExportModel creates an export progress model. cancel aborts the
// export when the user quits early.
func NewExportModel(total int, cancel context.CancelFunc) *ExportModel {
	return &ExportModel{
		Total:  total,
		cancel: cancel,
		start:  time.Now(),
		width:  40,
	}
}

func (m *ExportModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			if m.Result == nil {
				m.Result = &ExportOutcome{Cancelled: true}
			} else {
				m.Result.Cancelled = true
			}
			// The export goroutine still sends exportDoneMsg; quitting
			// here keeps the terminal responsive while it unwinds.
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 20
		if m.width < 10 {
			m.width = 10
		}
		if m.width > 60 {
			m.width = 60
		}
	case slideDoneMsg:
		m.Done++
		if msg.err != nil {
			m.Failed++
		}
	case exportDoneMsg:
		cancelled := m.Result != nil && m.Result.Cancelled
		m.Result = &ExportOutcome{Result: msg.result, Err: msg.err, Cancelled: cancelled}
		return m, tea.Quit
	case tickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m *ExportModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Exporting deck"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q: cancel"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(m.renderBar())
	b.WriteString(fmt.Sprintf("  %d/%d", m.Done, m.Total))
	if m.Failed > 0 {
		b.WriteString("  " + barFailedStyle.Render(fmt.Sprintf("%d failed", m.Failed)))
	}
	b.WriteString("\n\n")
	b.WriteString("  " + StyleDim.Render(time.Since(m.start).Round(time.Second).String()))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws the progress bar with a crawling head while slides are
// still in flight.
func (m *ExportModel) renderBar() string {
	filled := 0
	if m.Total > 0 {
		filled = m.Done * m.width / m.Total
	}
	if filled > m.width {
		filled = m.width
	}

	var b strings.Builder
	b.WriteString(barFilledStyle.Render(strings.Repeat("█", filled)))
	if filled < m.width {
		head := []string{"▏", "▎", "▍", "▌", "▋", "▊", "▉"}[m.frame%7]
		b.WriteString(barFilledStyle.Render(head))
		if filled+1 < m.width {
			b.WriteString(barEmptyStyle.Render(strings.Repeat("░", m.width-filled-1)))
		}
	}
	return b.String()
}
