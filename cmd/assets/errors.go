package main

import (
	"errors"

	"github.com/julianknutsen/elmassets/internal/buildconfig"
	"github.com/julianknutsen/elmassets/internal/builder"
	"github.com/julianknutsen/elmassets/internal/elm"
)

// HintedError wraps an error with a user-facing recovery hint.
type HintedError struct {
	Err  error
	Hint string
}

func (h *HintedError) Error() string { return h.Err.Error() }
func (h *HintedError) Unwrap() error { return h.Err }

// hintWrap attaches a recovery hint to known build errors.
func hintWrap(err error) error {
	if err == nil {
		return nil
	}
	var hint string
	switch {
	case errors.Is(err, buildconfig.ErrConflictingModes):
		hint = "Use --watch while developing or --deploy for a release build."
	case errors.Is(err, elm.ErrCompile):
		hint = "Run 'elm make src/Main.elm' to see the full compiler report."
	case errors.Is(err, builder.ErrBuildFailed):
		hint = "Fix the errors reported above and run the build again."
	default:
		return err
	}
	return &HintedError{Err: err, Hint: hint}
}
