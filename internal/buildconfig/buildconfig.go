// Package buildconfig declares how the front-end entry points are compiled
// into static assets, and how that changes between the default, watch and
// deploy modes.
package buildconfig

import (
	"errors"
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/julianknutsen/elmassets/internal/elm"
)

// Mode selects one of the mutually exclusive build modes.
type Mode int

const (
	// Default compiles once without minification or source maps.
	Default Mode = iota
	// Watch compiles with the Elm debugger and inline source maps, then
	// rebuilds on every source change.
	Watch
	// Deploy compiles once with Elm optimizations and minified output.
	Deploy
)

func (m Mode) String() string {
	switch m {
	case Default:
		return "default"
	case Watch:
		return "watch"
	case Deploy:
		return "deploy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ErrConflictingModes is returned when watch and deploy are both requested.
var ErrConflictingModes = errors.New("--watch and --deploy cannot be combined")

// ParseMode maps the CLI switches to a Mode.
func ParseMode(watch, deploy bool) (Mode, error) {
	switch {
	case watch && deploy:
		return Default, ErrConflictingModes
	case watch:
		return Watch, nil
	case deploy:
		return Deploy, nil
	default:
		return Default, nil
	}
}

// Config is the fixed build declaration shared by every mode.
type Config struct {
	EntryPoints []string
	OutDir      string
	Target      api.Target
	LogLevel    api.LogLevel
	Loader      map[string]api.Loader
}

// DefaultConfig returns the project's build declaration. Paths are relative to
// the assets directory the tool is run from.
func DefaultConfig() Config {
	return Config{
		EntryPoints: []string{"js/app.js", "js/main.js"},
		OutDir:      "../priv/static/assets",
		Target:      api.ES2017,
		LogLevel:    api.LogLevelInfo,
		Loader:      map[string]api.Loader{},
	}
}

// Validate reports declarations esbuild would reject or silently ignore.
func (c Config) Validate() error {
	if len(c.EntryPoints) == 0 {
		return errors.New("build config: no entry points")
	}
	for i, e := range c.EntryPoints {
		if e == "" {
			return fmt.Errorf("build config: entry point %d is empty", i)
		}
	}
	if c.OutDir == "" {
		return errors.New("build config: output directory is empty")
	}
	return nil
}

// Elm returns the compiler options for the Elm frontend in mode m.
func (c Config) Elm(m Mode) elm.Options {
	switch m {
	case Watch:
		return elm.Options{Debug: true, ClearOnWatch: true}
	case Deploy:
		return elm.Options{Optimize: true}
	default:
		return elm.Options{}
	}
}

// BuildOptions returns the esbuild options for mode m with the given
// plugins installed.
func (c Config) BuildOptions(m Mode, plugins ...api.Plugin) api.BuildOptions {
	loader := make(map[string]api.Loader, len(c.Loader))
	for ext, l := range c.Loader {
		loader[ext] = l
	}
	opts := api.BuildOptions{
		EntryPoints: append([]string(nil), c.EntryPoints...),
		Bundle:      true,
		Target:      c.Target,
		Outdir:      c.OutDir,
		LogLevel:    c.LogLevel,
		Loader:      loader,
		Plugins:     plugins,
		Write:       true,
	}

	switch m {
	case Watch:
		opts.Sourcemap = api.SourceMapInline
	case Deploy:
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
	}
	return opts
}

var targetNames = map[api.Target]string{
	api.ES2015: "es2015",
	api.ES2016: "es2016",
	api.ES2017: "es2017",
	api.ES2018: "es2018",
	api.ES2019: "es2019",
	api.ES2020: "es2020",
	api.ES2021: "es2021",
	api.ES2022: "es2022",
	api.ESNext: "esnext",
}

// TargetName returns the esbuild spelling of the syntax target.
func (c Config) TargetName() string {
	if n, ok := targetNames[c.Target]; ok {
		return n
	}
	return "default"
}
