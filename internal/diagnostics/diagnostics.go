// Package diagnostics implements Sindarin's severity-tagged error
// reporter: warning/error/fatal/internal diagnostics carrying a source
// location, deduplicated by position, sorted before being handed to the
// printer.
//
// DiagnosticError's shape — a Token, a stable Code, an optional File
// override, an Error() string — matches how callers consume it:
// `err.Token`, `err.Code`, `err.File`, `err.Error()`. Dedup-by-position
// keys on `"line:col:code"`.
package diagnostics

import (
	"fmt"
	"os"
	"sort"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
)

// Severity is one of the three reportable levels — warning, error,
// fatal — plus the internal-compiler-error variant.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
	SeverityInternal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	case SeverityInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// DiagnosticError is one reported diagnostic.
type DiagnosticError struct {
	Token    token.Token
	Code     string
	File     string
	Severity Severity
	Message  string
}

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = e.Token.File
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", file, e.Token.Line, e.Token.Column, e.Severity, e.Message)
}

// NewError, NewWarning, NewFatal, and NewInternal construct a
// DiagnosticError at the given severity (one of the three reportable
// severities, plus the internal-compiler-error variant).
func NewError(tok token.Token, code, message string) *DiagnosticError {
	return &DiagnosticError{Token: tok, Code: code, Severity: SeverityError, Message: message}
}

func NewWarning(tok token.Token, code, message string) *DiagnosticError {
	return &DiagnosticError{Token: tok, Code: code, Severity: SeverityWarning, Message: message}
}

func NewFatal(tok token.Token, code, message string) *DiagnosticError {
	return &DiagnosticError{Token: tok, Code: code, Severity: SeverityFatal, Message: message}
}

// NewInternal builds an internal-compiler-error diagnostic tagged with
// the Go call site (file/line) that detected the violated invariant, so
// the message prints the source position of the internal call site.
func NewInternal(callSiteFile string, callSiteLine int, message string) *DiagnosticError {
	return &DiagnosticError{
		Token:    token.Token{File: callSiteFile, Line: callSiteLine},
		Code:     "E000",
		Severity: SeverityInternal,
		Message:  message,
	}
}

// Reporter accumulates diagnostics for one compilation, deduplicates by
// (line, column, code), and sorts by position before reporting.
type Reporter struct {
	seen  map[string]bool
	diags []*DiagnosticError
	out   *os.File
}

// NewReporter returns a Reporter writing plain-text diagnostics to out
// (typically os.Stderr).
func NewReporter(out *os.File) *Reporter {
	return &Reporter{seen: make(map[string]bool), out: out}
}

// Report adds d unless an equivalent (line, column, code) diagnostic
// was already reported for this compilation.
func (r *Reporter) Report(d *DiagnosticError) {
	key := fmt.Sprintf("%d:%d:%s", d.Token.Line, d.Token.Column, d.Code)
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.diags = append(r.diags, d)
}

// HadError reports whether any error, fatal, or internal diagnostic was
// reported (warnings alone do not fail a compile).
func (r *Reporter) HadError() bool {
	for _, d := range r.diags {
		if d.Severity != SeverityWarning {
			return true
		}
	}
	return false
}

// Diagnostics returns the accumulated diagnostics sorted by source
// position, stable with respect to report order for same-position
// diagnostics.
func (r *Reporter) Diagnostics() []*DiagnosticError {
	sorted := make([]*DiagnosticError, len(r.diags))
	copy(sorted, r.diags)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Token, sorted[j].Token
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	return sorted
}

// Flush prints every accumulated diagnostic in the plain-text format
// "<file>:<line>:<col>: <severity>: <message>\n" and, if any reported
// diagnostic is fatal, terminates the process with exit code 1 after
// printing.
func (r *Reporter) Flush() {
	fatal := false
	for _, d := range r.Diagnostics() {
		fmt.Fprintf(r.out, "%s\n", d.Error())
		if d.Severity == SeverityFatal || d.Severity == SeverityInternal {
			fatal = true
		}
	}
	if fatal {
		os.Exit(1)
	}
}
