package buildlog

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.db")
	log, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestAppendAndRecent(t *testing.T) {
	log := openTestLog(t)

	base := time.Now()
	runs := []Run{
		{SessionID: "s1", SourceFile: "a.sin", StartedAt: base, DiagCount: 0, ExitCode: 0, ArithMode: "checked"},
		{SessionID: "s2", SourceFile: "b.sin", StartedAt: base.Add(time.Second), DiagCount: 2, ExitCode: 1, ArithMode: "unchecked"},
	}
	for _, r := range runs {
		if err := log.Append(r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	recent, err := log.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(recent))
	}
	if recent[0].SessionID != "s2" {
		t.Fatalf("expected newest run first, got %q", recent[0].SessionID)
	}
}

func TestRecentRespectsLimit(t *testing.T) {
	log := openTestLog(t)
	for i := 0; i < 5; i++ {
		if err := log.Append(Run{
			SessionID:  string(rune('a' + i)),
			SourceFile: "x.sin",
			StartedAt:  time.Now().Add(time.Duration(i) * time.Second),
			ArithMode:  "checked",
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	recent, err := log.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(recent))
	}
}

func TestFailureRate(t *testing.T) {
	log := openTestLog(t)
	for i, code := range []int{0, 1, 1, 0} {
		if err := log.Append(Run{
			SessionID:  string(rune('a' + i)),
			SourceFile: "x.sin",
			StartedAt:  time.Now().Add(time.Duration(i) * time.Second),
			ExitCode:   code,
			ArithMode:  "checked",
		}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	rate, err := log.FailureRate(10)
	if err != nil {
		t.Fatalf("FailureRate: %v", err)
	}
	if rate != 0.5 {
		t.Fatalf("expected failure rate 0.5, got %v", rate)
	}
}

func TestFailureRateEmptyLog(t *testing.T) {
	log := openTestLog(t)
	rate, err := log.FailureRate(10)
	if err != nil {
		t.Fatalf("FailureRate: %v", err)
	}
	if rate != 0 {
		t.Fatalf("expected 0 failure rate on an empty log, got %v", rate)
	}
}
