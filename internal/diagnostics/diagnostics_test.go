package diagnostics

import (
	"os"
	"strings"
	"testing"

	"github.com/SindarinSDK/sindarin-compiler-sub012/internal/token"
)

func tok(file string, line, col int) token.Token {
	return token.Token{File: file, Line: line, Column: col}
}

func TestErrorFormat(t *testing.T) {
	d := NewError(tok("main.sin", 3, 14), "E100", "cannot assign string to int")
	want := "main.sin:3:14: error: cannot assign string to int"
	if got := d.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestFileOverrideWinsOverTokenFile(t *testing.T) {
	d := NewWarning(tok("inner.sin", 1, 1), "W001", "shadowed variable")
	d.File = "outer.sin"
	if !strings.HasPrefix(d.Error(), "outer.sin:") {
		t.Fatalf("File override should win, got %q", d.Error())
	}
}

func TestReporterDeduplicatesByPosition(t *testing.T) {
	r := NewReporter(os.Stderr)
	r.Report(NewError(tok("a.sin", 2, 5), "E100", "first"))
	r.Report(NewError(tok("a.sin", 2, 5), "E100", "second copy at same position"))
	r.Report(NewError(tok("a.sin", 2, 5), "E101", "different code, same position"))

	if got := len(r.Diagnostics()); got != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", got)
	}
}

func TestDiagnosticsSortedByPosition(t *testing.T) {
	r := NewReporter(os.Stderr)
	r.Report(NewError(tok("a.sin", 9, 1), "E100", "later"))
	r.Report(NewError(tok("a.sin", 2, 7), "E100", "earlier"))
	r.Report(NewError(tok("a.sin", 2, 3), "E100", "earliest"))

	diags := r.Diagnostics()
	if diags[0].Message != "earliest" || diags[2].Message != "later" {
		t.Fatalf("diagnostics not sorted by position: %v", diags)
	}
}

func TestHadErrorIgnoresWarnings(t *testing.T) {
	r := NewReporter(os.Stderr)
	r.Report(NewWarning(tok("a.sin", 1, 1), "W001", "just a warning"))
	if r.HadError() {
		t.Fatal("warnings alone should not fail a compile")
	}
	r.Report(NewError(tok("a.sin", 2, 1), "E100", "an error"))
	if !r.HadError() {
		t.Fatal("an error diagnostic should fail the compile")
	}
}

func TestInternalCarriesCallSite(t *testing.T) {
	d := NewInternal("checker.go", 217, "unreachable variant")
	if d.Token.File != "checker.go" || d.Token.Line != 217 {
		t.Fatalf("internal diagnostic should carry its call site, got %+v", d.Token)
	}
	if d.Severity != SeverityInternal {
		t.Fatalf("expected internal severity, got %v", d.Severity)
	}
}
