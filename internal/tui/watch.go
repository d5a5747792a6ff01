// Package tui renders a live status view for watch-mode builds.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/julianknutsen/elmassets/internal/builder"
	"github.com/julianknutsen/elmassets/internal/style"
)

// historySize is how many past builds the view keeps.
const historySize = 5

// Config describes what is being watched.
type Config struct {
	Entries []string
	OutDir  string
	Target  string
}

// Model is the root bubbletea model of the watch view.
type Model struct {
	cfg      Config
	spinner  spinner.Model
	building bool
	builds   int
	last     *builder.Summary
	history  []builder.Summary
	width    int
}

// New creates the watch view.
func New(cfg Config) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styleSpinner),
	)
	return Model{cfg: cfg, spinner: sp, building: true}
}

// Init implements bubbletea.Model.
func (m Model) Init() bubbletea.Cmd {
	return m.spinner.Tick
}

// Update implements bubbletea.Model.
func (m Model) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case bubbletea.KeyMsg:
		if msg.Type == bubbletea.KeyCtrlC {
			return m, bubbletea.Quit
		}
		return m, nil

	case buildStartedMsg:
		m.building = true
		return m, m.spinner.Tick

	case buildFinishedMsg:
		m.building = false
		m.builds++
		s := msg.summary
		m.last = &s
		m.history = append(m.history, s)
		if len(m.history) > historySize {
			m.history = m.history[len(m.history)-historySize:]
		}
		return m, nil

	case spinner.TickMsg:
		if !m.building {
			return m, nil
		}
		var cmd bubbletea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements bubbletea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("assets --watch"))
	b.WriteString("  ")
	b.WriteString(styleDim.Render(fmt.Sprintf("%s → %s (%s)",
		strings.Join(m.cfg.Entries, ", "), m.cfg.OutDir, m.cfg.Target)))
	b.WriteString("\n\n")

	switch {
	case m.building:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), m.buildingLabel())
	case m.last != nil:
		b.WriteString(builder.FormatSummary(*m.last))
		b.WriteString("\n")
	}

	if m.last != nil {
		for _, msg := range m.last.Errors {
			fmt.Fprintf(&b, "  %s %s\n", styleFail.Render(style.IconFail), builder.FormatMessage(msg))
		}
		for _, msg := range m.last.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", styleWarn.Render(style.IconWarn), builder.FormatMessage(msg))
		}
		if m.last.OK() {
			for _, o := range m.last.Outputs {
				fmt.Fprintf(&b, "  %s %s\n", styleDim.Render(formatBytes(o.Bytes)), o.Path)
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(m.statusBar())
	return b.String()
}

// Builds returns the number of finished builds.
func (m Model) Builds() int { return m.builds }

func (m Model) buildingLabel() string {
	if m.builds == 0 {
		return "building..."
	}
	return "rebuilding..."
}

func (m Model) statusBar() string {
	failed := 0
	for _, s := range m.history {
		if !s.OK() {
			failed++
		}
	}
	left := fmt.Sprintf("%d builds", m.builds)
	if failed > 0 {
		left += fmt.Sprintf(", %d of last %d failed", failed, len(m.history))
	}
	hint := "close stdin to stop"
	return renderBar(m.width, left, hint)
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%6.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%6.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%6dB", n)
	}
}
