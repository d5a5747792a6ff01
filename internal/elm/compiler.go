package elm

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/KarpelesLab/rndstr"
	"github.com/julianknutsen/elmassets/internal/xdg"
)

// ErrCompile is returned when the elm compiler exits unsuccessfully.
var ErrCompile = errors.New("elm make failed")

// Runner executes name with args in dir and returns its combined output.
type Runner func(dir, name string, args ...string) ([]byte, error)

func execRunner(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

type compiler struct {
	opts      Options
	outputDir string
	run       Runner
}

func newCompiler(opts Options) *compiler {
	c := &compiler{opts: opts, outputDir: opts.OutputDir, run: opts.Run}
	if c.outputDir == "" {
		c.outputDir = xdg.ElmOutputDir()
	}
	if c.run == nil {
		c.run = execRunner
	}
	return c
}

// Args returns the elm command line for compiling file into out.
func (o Options) Args(file, out string) []string {
	args := []string{"make", file, "--output=" + out}
	switch {
	case o.Optimize:
		args = append(args, "--optimize")
	case o.Debug:
		args = append(args, "--debug")
	}
	return args
}

// Binary returns the compiler to run for a project rooted at dir: the
// explicit override, a project-local npm install, or elm on PATH.
func (o Options) Binary(dir string) string {
	if o.PathToElm != "" {
		return o.PathToElm
	}
	local := filepath.Join(dir, "node_modules", ".bin", "elm")
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local
	}
	return "elm"
}

func (c *compiler) compile(dir, file string) (string, error) {
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating elm output dir: %w", err)
	}
	out := filepath.Join(c.outputDir, "elm-"+rndstr.Simple(16, rndstr.Alnum)+".js")
	defer func() { _ = os.Remove(out) }()

	output, err := c.run(dir, c.opts.Binary(dir), c.opts.Args(file, out)...)
	if err != nil {
		detail := strings.TrimSpace(string(output))
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("%w: %s\n%s", ErrCompile, filepath.Base(file), detail)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return "", fmt.Errorf("reading elm output: %w", err)
	}
	return string(data), nil
}
