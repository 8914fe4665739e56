package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/intentguard/internal/ledger"
)

// executeCommand runs a cobra command with the given args and captures
// combined output.
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	_, err = root.ExecuteC()
	return buf.String(), err
}

func TestInit_SeedsWorkspace(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	out, err := executeCommand(rootCmd, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "seeded") {
		t.Errorf("output = %q, want it to mention seeding", out)
	}

	out, err = executeCommand(rootCmd, "init")
	if err == nil {
		t.Fatal("expected a second init against the same workspace to fail")
	}
	_ = out
}

func TestIntentsList_EmptyWorkspace(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	out, err := executeCommand(rootCmd, "intents", "list")
	if err != nil {
		t.Fatalf("intents list failed: %v", err)
	}
	if !strings.Contains(out, "no intents declared") {
		t.Errorf("output = %q, want it to report no intents", out)
	}
}

func TestIntentsShow_UnknownIntentErrors(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	if _, err := executeCommand(rootCmd, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	_, err := executeCommand(rootCmd, "intents", "show", "INT-404")
	if err == nil || !strings.Contains(err.Error(), "no such intent") {
		t.Errorf("err = %v, want a no-such-intent error", err)
	}
}

func TestIntentsStatus_UnknownIntentErrors(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	if _, err := executeCommand(rootCmd, "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	_, err := executeCommand(rootCmd, "intents", "status", "INT-404", "COMPLETE")
	if err == nil || !strings.Contains(err.Error(), "no such intent") {
		t.Errorf("err = %v, want a no-such-intent error", err)
	}
}

func TestIntentsStatus_InvalidStatusErrors(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	_, err := executeCommand(rootCmd, "intents", "status", "INT-001", "NOT_A_STATUS")
	if err == nil {
		t.Fatal("expected an invalid-status error")
	}
}

func TestTraceTail_EmptyWorkspace(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	out, err := executeCommand(rootCmd, "trace", "tail")
	if err != nil {
		t.Fatalf("trace tail failed: %v", err)
	}
	if !strings.Contains(out, "no trace entries recorded") {
		t.Errorf("output = %q, want it to report no entries", out)
	}
}

func TestTraceTail_RejectsNonNumericN(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	_, err := executeCommand(rootCmd, "trace", "tail", "not-a-number")
	if err == nil {
		t.Fatal("expected an error for a non-numeric n")
	}
}

func TestTraceSearch_FindsEntryAppendedOutsideTheIndex(t *testing.T) {
	tmp := t.TempDir()
	workspace = tmp
	defer func() { workspace = "" }()

	entry := ledger.NewTraceEntry("deadbeef", "INTENT_EVOLUTION", "added a new exported route", []ledger.FileTrace{
		{RelativePath: "src/api/routes.ts"},
	})
	if err := ledger.AppendEntry(tmp, entry); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	// Nothing indexes entries as they're appended; search must rebuild
	// the derived index from the ledger itself before querying it.
	out, err := executeCommand(rootCmd, "trace", "search", "route")
	if err != nil {
		t.Fatalf("trace search failed: %v", err)
	}
	if !strings.Contains(out, "src/api/routes.ts") {
		t.Errorf("output = %q, want it to contain the matching entry's file path", out)
	}
}
