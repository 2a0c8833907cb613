package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/steveyegge/civic/internal/debug"
	"github.com/steveyegge/civic/internal/types"
	"github.com/steveyegge/civic/internal/ui"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for fatal errors that prevent the command from completing.
//
// Example:
//
//	if err := store.Close(); err != nil {
//	    FatalError("%v", err)
//	}
func FatalError(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorLine(fmt.Sprintf(format, args...)))
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
// Use this when you can provide an actionable suggestion to fix the error.
//
// Example:
//
//	FatalErrorWithHint("issue not found", "Run 'civic list' to see issue IDs")
func FatalErrorWithHint(message, hint string) {
	fmt.Fprintln(os.Stderr, errorLine(message))
	fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	os.Exit(1)
}

// WarnError writes a warning message to stderr and returns.
// Use this for optional operations that enhance functionality but aren't required.
// Warnings are dropped in quiet mode.
func WarnError(format string, args ...interface{}) {
	if debug.IsQuiet() {
		return
	}
	fmt.Fprintln(os.Stderr, warnLine(fmt.Sprintf(format, args...)))
}

func errorLine(msg string) string {
	return ui.RenderFailIcon() + " " + ui.RenderFail("Error:") + " " + msg
}

func warnLine(msg string) string {
	return ui.RenderWarnIcon() + " " + ui.RenderWarn("Warning:") + " " + msg
}

// FatalStoreError exits with err, adding a hint for caller-correctable
// validation failures.
func FatalStoreError(err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		FatalErrorWithHint(err.Error(), hintFor(verr))
	}
	FatalError("%v", err)
}

func hintFor(verr *types.ValidationError) string {
	return fmt.Sprintf("%s must be one of: %s", verr.Field, strings.Join(verr.Allowed, ", "))
}
