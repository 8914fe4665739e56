package ledger

import "testing"

func TestIndex_RebuildAndSearch(t *testing.T) {
	tmp := t.TempDir()

	entries := []TraceEntry{
		NewTraceEntry("", "INTENT_EVOLUTION", "Exported API surface changed: 1 added (fn:subtract:2)",
			[]FileTrace{{RelativePath: "src/api/math.ts"}}),
		NewTraceEntry("", "AST_REFACTOR", "Exported API surface unchanged — internal refactor only",
			[]FileTrace{{RelativePath: "src/ui/button.tsx"}}),
	}
	for _, e := range entries {
		if err := AppendEntry(tmp, e); err != nil {
			t.Fatalf("AppendEntry failed: %v", err)
		}
	}

	idx, err := OpenIndex(tmp)
	if err != nil {
		t.Fatalf("OpenIndex failed: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(tmp); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	hits, err := idx.Search("subtract", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 || hits[0].FilePaths != "src/api/math.ts" {
		t.Errorf("Search(subtract) = %+v, want one hit for src/api/math.ts", hits)
	}
}

func TestIndex_SearchEmptyQueryReturnsRecent(t *testing.T) {
	tmp := t.TempDir()
	if err := AppendEntry(tmp, NewTraceEntry("", "UNKNOWN", "reason", nil)); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	idx, err := OpenIndex(tmp)
	if err != nil {
		t.Fatalf("OpenIndex failed: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(tmp); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	hits, err := idx.Search("", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("Search(\"\") = %d hits, want 1", len(hits))
	}
}

func TestIndex_RebuildIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	if err := AppendEntry(tmp, NewTraceEntry("", "UNKNOWN", "reason", nil)); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	idx, err := OpenIndex(tmp)
	if err != nil {
		t.Fatalf("OpenIndex failed: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(tmp); err != nil {
		t.Fatalf("first Rebuild failed: %v", err)
	}
	if err := idx.Rebuild(tmp); err != nil {
		t.Fatalf("second Rebuild failed: %v", err)
	}

	hits, err := idx.Search("", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("after two rebuilds, got %d hits, want 1", len(hits))
	}
}
