package intent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// OrchestrationDir is the workspace-relative directory holding the
	// policy and ignore files.
	OrchestrationDir = ".orchestration"
	// IntentsFile is the filename of the intent policy document.
	IntentsFile = "active_intents.yaml"
	// IgnoreFile is the workspace-relative ignore-pattern file.
	IgnoreFile = ".intentignore"
)

// fileHeader is rewritten verbatim at the top of active_intents.yaml on
// every write. update_intent_status MUST preserve exactly this header
// (§4.A invariant) even though everything below it is replaced.
const fileHeader = `# active_intents.yaml
# Managed by intentguard. Hand-edit the data below freely — the engine
# re-reads this file on every lookup and never caches it.
# Do not remove this header; the rewriter always restores it.
`

// MalformedIntents is returned by Load when the YAML document cannot
// be parsed. This is treated as a developer/human error (§7): the
// loader fails loudly rather than silently degrading.
type MalformedIntents struct {
	Path string
	Err  error
}

func (e *MalformedIntents) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *MalformedIntents) Unwrap() error { return e.Err }

// UnknownIntent is returned when an operation names an id that does
// not exist in the intent file.
type UnknownIntent struct {
	ID string
}

func (e *UnknownIntent) Error() string {
	return fmt.Sprintf("unknown intent %q", e.ID)
}

// Store defines the persistence interface for intents. Abstracted for
// testability (DIP) — hooks depend on this, not on FileStore directly.
type Store interface {
	Load(ws string) ([]Intent, error)
	Find(ws, id string) (*Intent, error)
	UpdateStatus(ws, id string, status Status, blockedReason string) error
}

// FileStore implements Store by re-reading active_intents.yaml from
// disk on every call. There is deliberately no in-memory cache: humans
// may edit the file while the agent is running, and re-parsing a
// small YAML document is negligible next to tool-call latency.
type FileStore struct{}

// NewFileStore creates a filesystem-backed policy store.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// IntentsPath returns the absolute path to active_intents.yaml.
func IntentsPath(ws string) string {
	return filepath.Join(ws, OrchestrationDir, IntentsFile)
}

// IgnorePath returns the absolute path to .intentignore.
func IgnorePath(ws string) string {
	return filepath.Join(ws, IgnoreFile)
}

// Load parses active_intents.yaml, returning an empty slice if the
// file does not exist.
func (fs *FileStore) Load(ws string) ([]Intent, error) {
	path := IntentsPath(ws)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc intentsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedIntents{Path: path, Err: err}
	}
	return doc.ActiveIntents, nil
}

// Find returns the intent with the given id, or nil if not found.
func (fs *FileStore) Find(ws, id string) (*Intent, error) {
	intents, err := fs.Load(ws)
	if err != nil {
		return nil, err
	}
	for i := range intents {
		if intents[i].ID == id {
			return &intents[i], nil
		}
	}
	return nil, nil
}

// Init seeds an empty active_intents.yaml with just the header, for a
// freshly onboarded workspace. An existing file is overwritten and its
// intents discarded — callers should check existence first if they want
// to avoid clobbering one.
func (fs *FileStore) Init(ws string) error {
	return fs.writeAll(ws, nil)
}

// UpdateStatus rewrites the file with the named intent's status (and,
// for BLOCKED, its blocked_reason) changed, preserving the header and
// refreshing updated_at to now (UTC, ISO-8601). Fails with
// *UnknownIntent if id is not present.
func (fs *FileStore) UpdateStatus(ws, id string, status Status, blockedReason string) error {
	if err := ValidateStatus(status); err != nil {
		return err
	}

	intents, err := fs.Load(ws)
	if err != nil {
		return err
	}

	found := false
	for i := range intents {
		if intents[i].ID == id {
			intents[i].Status = status
			intents[i].UpdatedAt = nowISO()
			if status == StatusBlocked {
				intents[i].BlockedReason = blockedReason
			} else {
				intents[i].BlockedReason = ""
			}
			found = true
			break
		}
	}
	if !found {
		return &UnknownIntent{ID: id}
	}

	return fs.writeAll(ws, intents)
}

// writeAll serializes the full intent list back to active_intents.yaml,
// preceded by fileHeader. This replaces the entire data section — any
// ad-hoc comments a human added below the header are discarded, per
// the spec's own open question in §9.
func (fs *FileStore) writeAll(ws string, intents []Intent) error {
	path := IntentsPath(ws)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}

	body, err := yaml.Marshal(intentsFile{ActiveIntents: intents})
	if err != nil {
		return fmt.Errorf("marshaling intents: %w", err)
	}

	out := append([]byte(fileHeader), body...)
	return os.WriteFile(path, out, 0o644)
}

// IsMalformed reports whether err is (or wraps) a MalformedIntents.
func IsMalformed(err error) bool {
	var m *MalformedIntents
	return errors.As(err, &m)
}

// IsUnknown reports whether err is (or wraps) an UnknownIntent.
func IsUnknown(err error) bool {
	var u *UnknownIntent
	return errors.As(err, &u)
}
