// Package builder runs esbuild for the configured entry points, either once
// or continuously until its input closes.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/KarpelesLab/pjson"
	"github.com/evanw/esbuild/pkg/api"
	"github.com/julianknutsen/elmassets/internal/buildconfig"
	"github.com/julianknutsen/elmassets/internal/elm"
)

// ErrBuildFailed is returned when esbuild reports at least one error.
var ErrBuildFailed = errors.New("build failed")

// Output is one file written by a build.
type Output struct {
	Path  string
	Bytes int
}

// Summary describes one finished build.
type Summary struct {
	Errors   []api.Message
	Warnings []api.Message
	Outputs  []Output
	Duration time.Duration
}

// OK reports whether the build produced no errors.
func (s Summary) OK() bool { return len(s.Errors) == 0 }

// Reporter observes build progress. Calls may come from esbuild goroutines.
type Reporter interface {
	BuildStarted()
	BuildFinished(Summary)
}

// Builder compiles assets for one mode.
type Builder struct {
	cfg      buildconfig.Config
	mode     buildconfig.Mode
	elm      elm.Options
	reporter Reporter
	quiet    bool
	now      func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(b *Builder) { b.reporter = r }
}

// WithElm overrides the Elm compiler options derived from the mode.
func WithElm(opts elm.Options) Option {
	return func(b *Builder) { b.elm = opts }
}

// Quiet silences esbuild's own logging, for when a reporter owns the terminal.
func Quiet() Option {
	return func(b *Builder) { b.quiet = true }
}

// New returns a Builder for cfg in mode.
func New(cfg buildconfig.Config, mode buildconfig.Mode, opts ...Option) *Builder {
	b := &Builder{
		cfg:      cfg,
		mode:     mode,
		elm:      cfg.Elm(mode),
		reporter: nopReporter{},
		now:      time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Mode returns the build mode.
func (b *Builder) Mode() buildconfig.Mode { return b.mode }

func (b *Builder) options() api.BuildOptions {
	opts := b.cfg.BuildOptions(b.mode, elm.Plugin(b.elm), b.reportPlugin())
	opts.Metafile = true
	if b.quiet {
		opts.LogLevel = api.LogLevelSilent
	}
	return opts
}

// reportPlugin forwards esbuild's start and end hooks to the reporter so
// every rebuild in watch mode is observed.
func (b *Builder) reportPlugin() api.Plugin {
	var (
		mu    sync.Mutex
		start time.Time
	)
	return api.Plugin{
		Name: "report",
		Setup: func(build api.PluginBuild) {
			build.OnStart(func() (api.OnStartResult, error) {
				mu.Lock()
				start = b.now()
				mu.Unlock()
				b.reporter.BuildStarted()
				return api.OnStartResult{}, nil
			})
			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				mu.Lock()
				elapsed := b.now().Sub(start)
				mu.Unlock()
				b.reporter.BuildFinished(summarize(result, elapsed))
				return api.OnEndResult{}, nil
			})
		},
	}
}

// Build runs a single build.
func (b *Builder) Build() (Summary, error) {
	if err := b.cfg.Validate(); err != nil {
		return Summary{}, err
	}
	start := b.now()
	result := api.Build(b.options())
	sum := summarize(&result, b.now().Sub(start))
	if !sum.OK() {
		return sum, buildError(sum.Errors[0])
	}
	return sum, nil
}

// buildError wraps the first esbuild error. Errors raised by the elm plugin
// also match elm.ErrCompile.
func buildError(first api.Message) error {
	if first.PluginName == "elm" && strings.HasPrefix(first.Text, elm.ErrCompile.Error()) {
		return fmt.Errorf("%w: %w%s", ErrBuildFailed, elm.ErrCompile,
			strings.TrimPrefix(first.Text, elm.ErrCompile.Error()))
	}
	return fmt.Errorf("%w: %s", ErrBuildFailed, first.Text)
}

// Watch builds, then rebuilds on every source change until stdin reaches
// EOF (or fails), at which point it stops watching and returns nil.
// Cancelling ctx stops watching and returns ctx.Err().
func (b *Builder) Watch(ctx context.Context, stdin io.Reader) error {
	if err := b.cfg.Validate(); err != nil {
		return err
	}
	bctx, cerr := api.Context(b.options())
	if cerr != nil {
		return fmt.Errorf("%w: %s", ErrBuildFailed, firstText(cerr.Errors))
	}
	defer bctx.Dispose()

	if err := bctx.Watch(api.WatchOptions{}); err != nil {
		return fmt.Errorf("starting watch: %w", err)
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		// Any read error is treated as closure; the caller only cares
		// that the controlling process went away.
		_, _ = io.Copy(io.Discard, stdin)
	}()

	select {
	case <-closed:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func summarize(result *api.BuildResult, elapsed time.Duration) Summary {
	return Summary{
		Errors:   result.Errors,
		Warnings: result.Warnings,
		Outputs:  parseOutputs(result.Metafile),
		Duration: elapsed,
	}
}

type metafile struct {
	Outputs map[string]struct {
		Bytes int `json:"bytes"`
	} `json:"outputs"`
}

func parseOutputs(meta string) []Output {
	if meta == "" {
		return nil
	}
	var m metafile
	if err := pjson.Unmarshal([]byte(meta), &m); err != nil {
		return nil
	}
	out := make([]Output, 0, len(m.Outputs))
	for path, o := range m.Outputs {
		out = append(out, Output{Path: path, Bytes: o.Bytes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func firstText(msgs []api.Message) string {
	if len(msgs) == 0 {
		return "unknown error"
	}
	return msgs[0].Text
}

type nopReporter struct{}

func (nopReporter) BuildStarted()         {}
func (nopReporter) BuildFinished(Summary) {}
