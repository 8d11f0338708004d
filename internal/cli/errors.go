package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usageText = `Usage: symdiff --eval "expression" var=value ...
       symdiff --diff "expression" --by variable`

var (
	errorStyle = color.New(color.FgRed, color.Bold)
	hintStyle  = color.New(color.FgHiYellow)
)

// UsageError is a malformed or missing command-line argument.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitError
}

func printError(w io.Writer, err error) {
	errorStyle.Fprintf(w, "error: %v\n", err)
	var ue *UsageError
	if errors.As(err, &ue) {
		hintStyle.Fprintln(w, usageText)
	}
}
