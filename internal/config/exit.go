package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	simerrors "lifeworld/internal/errors"
)

// Exit codes used by the commands.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// Exitf writes a formatted message prefixed with the command name to
// stderr and exits with ExitFailure.
func Exitf(format string, args ...any) {
	exit(ExitFailure, fmt.Sprintf(format, args...))
}

// ExitErr reports err under the given context and exits. Invalid input,
// such as a bad flag or environment value, exits with ExitUsage; anything
// else with ExitFailure.
func ExitErr(context string, err error) {
	exit(exitCode(err), context+": "+err.Error())
}

func exitCode(err error) int {
	if errors.Is(err, simerrors.ErrInvalidInput) {
		return ExitUsage
	}
	return ExitFailure
}

func exit(code int, msg string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", filepath.Base(os.Args[0]), msg)
	os.Exit(code)
}
