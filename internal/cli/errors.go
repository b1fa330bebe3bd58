package cli

import (
	"fmt"

	"github.com/vburojevic/axiom-pipe/internal/output"
)

// outputErrorCommon normalizes error emission across the informational
// commands, respecting ndjson vs text formats.
func outputErrorCommon(globals *Globals, code, message, hint string) error {
	if globals.Format == "ndjson" {
		_ = output.NewNDJSONWriter(globals.Stdout).WriteError(code, message, hint)
	} else {
		writeErrorText(globals, code, message, hint)
	}
	return &CLIError{Code: code, Message: message, Hint: hint}
}

// fatalError reports a failure of the forward command. stdout carries
// forwarded data only, so these always go to stderr as text.
func fatalError(globals *Globals, code, message, hint string) error {
	writeErrorText(globals, code, message, hint)
	return &CLIError{Code: code, Message: message, Hint: hint}
}

func writeErrorText(globals *Globals, code, message, hint string) {
	fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", code, message)
	if hint != "" {
		fmt.Fprintf(globals.Stderr, "Hint: %s\n", hint)
	}
}
