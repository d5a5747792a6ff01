package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/julianknutsen/elmassets/internal/buildconfig"
	"github.com/julianknutsen/elmassets/internal/builder"
	"github.com/julianknutsen/elmassets/internal/style"
	"github.com/julianknutsen/elmassets/internal/tui"
	"github.com/spf13/cobra"
)

func runBuild(cmd *cobra.Command, stdin io.Reader, _, stderr io.Writer) error {
	watch, _ := cmd.Flags().GetBool("watch")
	deploy, _ := cmd.Flags().GetBool("deploy")

	mode, err := buildconfig.ParseMode(watch, deploy)
	if err != nil {
		return hintWrap(err)
	}

	cfg := buildconfig.DefaultConfig()
	if mode == buildconfig.Watch {
		return runWatch(cmd.Context(), cfg, stdin, stderr)
	}

	b := builder.New(cfg, mode, builder.WithReporter(builder.NewLineReporter(stderr, false)))
	if _, err := b.Build(); err != nil {
		return hintWrap(err)
	}
	return nil
}

// runWatch keeps rebuilding until stdin closes. On a terminal the progress
// is drawn by the watch view; otherwise each rebuild prints one line.
func runWatch(ctx context.Context, cfg buildconfig.Config, stdin io.Reader, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	live := cfg.Elm(buildconfig.Watch).ClearOnWatch && style.IsTerminal(stderr)

	if !live {
		b := builder.New(cfg, buildconfig.Watch, builder.WithReporter(builder.NewLineReporter(stderr, false)))
		return hintWrap(b.Watch(ctx, stdin))
	}

	p := bubbletea.NewProgram(
		tui.New(tui.Config{Entries: cfg.EntryPoints, OutDir: cfg.OutDir, Target: cfg.TargetName()}),
		bubbletea.WithInput(nil),
		bubbletea.WithOutput(stderr),
	)
	// The view owns the terminal, so an interrupt reaches it rather than
	// the process; leaving the view stops watching.
	ctx, stop := context.WithCancel(ctx)
	defer stop()
	uiDone := make(chan error, 1)
	go func() {
		_, err := p.Run()
		stop()
		uiDone <- err
	}()

	b := builder.New(cfg, buildconfig.Watch, builder.WithReporter(tui.NewReporter(p)), builder.Quiet())
	err := b.Watch(ctx, stdin)
	p.Quit()
	uiErr := <-uiDone
	switch {
	case errors.Is(err, context.Canceled):
		err = nil
	case uiErr != nil && !errors.Is(uiErr, bubbletea.ErrInterrupted) && err == nil:
		err = fmt.Errorf("watch view: %w", uiErr)
	}
	return hintWrap(err)
}
