package tui

import (
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/julianknutsen/elmassets/internal/builder"
)

// buildStartedMsg is sent when esbuild begins a (re)build.
type buildStartedMsg struct{}

// buildFinishedMsg carries the outcome of a (re)build.
type buildFinishedMsg struct {
	summary builder.Summary
}

// Reporter forwards builder progress into a running program.
type Reporter struct {
	send func(bubbletea.Msg)
}

// NewReporter returns a builder.Reporter that feeds p.
func NewReporter(p *bubbletea.Program) *Reporter {
	return &Reporter{send: p.Send}
}

// BuildStarted implements builder.Reporter.
func (r *Reporter) BuildStarted() { r.send(buildStartedMsg{}) }

// BuildFinished implements builder.Reporter.
func (r *Reporter) BuildFinished(s builder.Summary) { r.send(buildFinishedMsg{summary: s}) }
