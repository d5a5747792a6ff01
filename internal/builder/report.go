package builder

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/julianknutsen/elmassets/internal/style"
)

// LineReporter writes one styled line per finished build.
type LineReporter struct {
	w      io.Writer
	clear  bool
	mu     sync.Mutex
	builds int
}

// NewLineReporter returns a reporter writing to w. When clear is set the
// terminal is cleared before every rebuild after the first.
func NewLineReporter(w io.Writer, clear bool) *LineReporter {
	return &LineReporter{w: w, clear: clear}
}

// BuildStarted implements Reporter.
func (r *LineReporter) BuildStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clear && r.builds > 0 {
		fmt.Fprint(r.w, style.ClearScreen)
	}
}

// BuildFinished implements Reporter.
func (r *LineReporter) BuildFinished(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builds++
	fmt.Fprintln(r.w, FormatSummary(s))
	for _, m := range s.Errors {
		fmt.Fprintf(r.w, "  %s %s\n", style.Error.Render(style.IconFail), FormatMessage(m))
	}
	for _, m := range s.Warnings {
		fmt.Fprintf(r.w, "  %s %s\n", style.Warning.Render(style.IconWarn), FormatMessage(m))
	}
}

// Builds returns the number of builds reported so far.
func (r *LineReporter) Builds() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.builds
}

// FormatSummary renders the one-line outcome of a build.
func FormatSummary(s Summary) string {
	took := style.Dim.Render(fmt.Sprintf("in %s", s.Duration.Round(time.Millisecond)))
	if !s.OK() {
		return fmt.Sprintf("%s build failed with %s %s",
			style.Error.Render(style.IconFail), plural(len(s.Errors), "error"), took)
	}
	line := fmt.Sprintf("%s built %s %s",
		style.Success.Render(style.IconPass), plural(len(s.Outputs), "file"), took)
	if n := len(s.Warnings); n > 0 {
		line += " " + style.Warning.Render(fmt.Sprintf("(%s)", plural(n, "warning")))
	}
	return line
}

// FormatMessage renders an esbuild message with its location when known.
func FormatMessage(m api.Message) string {
	text := m.Text
	if m.PluginName != "" {
		text = fmt.Sprintf("[%s] %s", m.PluginName, text)
	}
	if m.Location == nil {
		return text
	}
	return fmt.Sprintf("%s %s", style.Dim.Render(fmt.Sprintf("%s:%d:%d:", m.Location.File, m.Location.Line, m.Location.Column)), text)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
