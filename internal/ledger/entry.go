// Package ledger implements the append-only trace ledger (§3 Trace
// Entry, §4.G Trace Logger) plus a derived, rebuildable SQLite+FTS5
// search index layered on top of it.
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Contributor identifies who (or what) authored a conversation turn
// that touched a file. This mirrors the subset of intent.Contributor
// that a trace entry actually carries — session_id lives one level up,
// and last_active has no meaning for a point-in-time trace record.
type Contributor struct {
	EntityType      string `json:"entity_type"`
	ModelIdentifier string `json:"model_identifier,omitempty"`
}

// RelatedRef is a loosely-typed cross-reference attached to a
// conversation (e.g. {"type": "issue", "value": "INT-001"}).
type RelatedRef struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Range is one edited span within a file, carrying the fingerprint of
// that span's content at write time.
type Range struct {
	StartLine    int    `json:"start_line"`
	EndLine      int    `json:"end_line"`
	ContentHash  string `json:"content_hash"`
	HashMethod   string `json:"hash_method"`
	ASTNodeCount int    `json:"ast_node_count"`
}

// Conversation attributes a set of ranges within one file to a single
// session and contributor.
type Conversation struct {
	SessionID   string       `json:"session_id"`
	Contributor Contributor  `json:"contributor"`
	Ranges      []Range      `json:"ranges"`
	Related     []RelatedRef `json:"related,omitempty"`
}

// FileTrace is one mutated file's conversations within a Trace Entry.
type FileTrace struct {
	RelativePath  string         `json:"relative_path"`
	Conversations []Conversation `json:"conversations"`
}

// VCSInfo carries the best-effort VCS revision captured at trace time.
// RevisionID is nil when the probe could not determine one (§4.B).
type VCSInfo struct {
	RevisionID *string `json:"revision_id"`
}

// TraceEntry is one line of agent_trace.jsonl (§3).
type TraceEntry struct {
	ID                   string      `json:"id"`
	Timestamp            string      `json:"timestamp"`
	VCS                  VCSInfo     `json:"vcs"`
	MutationClass        string      `json:"mutation_class"`
	ClassificationReason string      `json:"classification_reason"`
	Files                []FileTrace `json:"files"`
}

// NewTraceEntry stamps a fresh id and timestamp for a Trace Entry about
// to be appended. revision is nil-able: an empty string from vcsprobe
// means "undetermined" and is represented as a nil RevisionID.
func NewTraceEntry(revision, mutationClass, reason string, files []FileTrace) TraceEntry {
	var vcs VCSInfo
	if revision != "" {
		vcs.RevisionID = &revision
	}
	return TraceEntry{
		ID:                   uuid.NewString(),
		Timestamp:            timeNow().UTC().Format(time.RFC3339),
		VCS:                  vcs,
		MutationClass:        mutationClass,
		ClassificationReason: reason,
		Files:                files,
	}
}

// timeNow is a package-level var so tests can pin the clock, matching
// the injection pattern used throughout this codebase (e.g.
// internal/intent's timeNow).
var timeNow = time.Now
