package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/diagnostics"
)

// colorEnabled decides whether diagnostic lines get ANSI severity
// coloring: only when stderr is an actual terminal, so piped or
// redirected output never picks up escape codes.
func colorEnabled() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func severityColor(s diagnostics.Severity) string {
	switch s {
	case diagnostics.SeverityWarning:
		return "\x1b[33m" // yellow
	case diagnostics.SeverityError:
		return "\x1b[31m" // red
	case diagnostics.SeverityFatal, diagnostics.SeverityInternal:
		return "\x1b[1;31m" // bold red
	default:
		return ""
	}
}

const colorReset = "\x1b[0m"

// printDiagnostics writes each diagnostic's plain-text line
// ("<file>:<line>:<col>: <severity>: <message>") to stderr, colorized
// by severity when stderr is a terminal.
func printDiagnostics(diags []*diagnostics.DiagnosticError) {
	color := colorEnabled()
	for _, d := range diags {
		if color {
			fmt.Fprintf(os.Stderr, "%s%s%s\n", severityColor(d.Severity), d.Error(), colorReset)
		} else {
			fmt.Fprintf(os.Stderr, "%s\n", d.Error())
		}
	}
}
