// Package elm provides an esbuild plugin that compiles imported .elm modules
// with the elm compiler and hands the emitted JavaScript back to the bundler.
package elm

import (
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

const namespace = "elm"

// Options controls how the elm compiler is invoked.
type Options struct {
	// Debug compiles with the time-travelling debugger (--debug).
	Debug bool
	// Optimize enables dead code elimination and record field renaming
	// (--optimize). Takes precedence over Debug; elm rejects the pair.
	Optimize bool
	// ClearOnWatch asks reporters to clear the terminal before each rebuild.
	ClearOnWatch bool
	// PathToElm overrides compiler discovery.
	PathToElm string
	// OutputDir is where intermediate JavaScript is staged.
	// Defaults to xdg.ElmOutputDir().
	OutputDir string
	// Run executes the compiler. Defaults to os/exec.
	Run Runner
}

// Plugin returns the esbuild plugin for the given options.
func Plugin(opts Options) api.Plugin {
	c := newCompiler(opts)
	return api.Plugin{
		Name: "elm",
		Setup: func(build api.PluginBuild) {
			build.OnResolve(api.OnResolveOptions{Filter: `\.elm$`},
				func(args api.OnResolveArgs) (api.OnResolveResult, error) {
					return api.OnResolveResult{
						Path:      resolvePath(args.ResolveDir, args.Path),
						Namespace: namespace,
					}, nil
				})
			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: namespace},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					return c.load(args.Path), nil
				})
		},
	}
}

func resolvePath(resolveDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(resolveDir, path)
}

// load compiles one module. Compiler failures are reported as esbuild
// messages rather than Go errors so watch dirs survive a broken build.
func (c *compiler) load(path string) api.OnLoadResult {
	result := api.OnLoadResult{
		ResolveDir: filepath.Dir(path),
		Loader:     api.LoaderJS,
		WatchFiles: []string{path},
	}

	root := FindProjectRoot(filepath.Dir(path))
	if root == "" {
		root = filepath.Dir(path)
	} else {
		result.WatchFiles = append(result.WatchFiles, filepath.Join(root, projectFile))
		// WatchDirs only catches files being added or removed; edits to
		// imported modules need each file listed.
		if proj, err := ReadProject(root); err == nil {
			result.WatchDirs = proj.SourceDirs(root)
			for _, f := range proj.Modules(root) {
				if f != path {
					result.WatchFiles = append(result.WatchFiles, f)
				}
			}
		}
	}

	js, err := c.compile(root, path)
	if err != nil {
		result.Errors = []api.Message{{Text: err.Error()}}
		return result
	}
	result.Contents = &js
	return result
}
