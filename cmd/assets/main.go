// assets compiles the front-end entry points into static files for the
// web server to serve.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianknutsen/elmassets/internal/style"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// errExit is a sentinel error returned by cobra RunE functions to signal
// non-zero exit. The command has already written its own error to stderr.
var errExit = errors.New("exit")

// run executes the assets CLI with the given args.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd(stdin, stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "assets: %v\n", err)
		}
		var h *HintedError
		if errors.As(err, &h) && h.Hint != "" {
			fmt.Fprintf(stderr, "  %s\n", style.Dim.Render(h.Hint))
		}
		return 1
	}
	return 0
}

// newRootCmd creates the root cobra command. The root command itself runs
// the build; --watch and --deploy pick the mode.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "assets",
		Short: "Compile front-end assets",
		Long: `Compile js/app.js and js/main.js (with their Elm modules) into
../priv/static/assets.

With --watch the build is kept up to date until standard input closes.
With --deploy the Elm program is optimized and the output minified.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, stdin, stdout, stderr)
		},
	}
	root.Flags().Bool("watch", false, "Rebuild on change until stdin closes (debug Elm, inline source maps)")
	root.Flags().Bool("deploy", false, "Optimized Elm and minified output")
	root.AddCommand(
		newVersionCmd(stdout),
	)
	return root
}
