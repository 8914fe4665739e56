// Package hookctx defines the per-call data model shared by every stage
// of the mediation pipeline: the Tool Context that flows through
// pre-hooks, the Block Signal that can short-circuit it, and the
// Mutation Class enum attached once the Classifier has run.
//
// None of these types carry behavior beyond simple accessors — they are
// the nouns the pipeline, hooks, and façade all agree on.
package hookctx

import "maps"

// BlockCode identifies why a pre-hook refused to let a tool call proceed.
type BlockCode string

const (
	CodeNoIntentDeclared BlockCode = "NO_INTENT_DECLARED"
	CodeScopeViolation   BlockCode = "SCOPE_VIOLATION"
	CodeStaleFile        BlockCode = "STALE_FILE"
	CodeUnknownIntent    BlockCode = "UNKNOWN_INTENT"
	CodeCompleteIntent   BlockCode = "COMPLETE_INTENT"
	CodeBlockedIntent    BlockCode = "BLOCKED_INTENT"
	CodeGenericBlock     BlockCode = "GENERIC_BLOCK"
)

// BlockSignal is returned by a pre-hook to abort the pipeline chain.
// It is surfaced to the agent verbatim as the tool's result (§6 block
// result payload).
type BlockSignal struct {
	Reason string    `json:"error"`
	Code   BlockCode `json:"code"`
}

// Error satisfies the error interface so a BlockSignal can be threaded
// through ordinary Go error-returning code when convenient (e.g. tests).
func (b *BlockSignal) Error() string {
	return b.Reason
}

// MutationClass classifies the exported-surface impact of a write,
// computed by the Mutation Classifier (§4.D).
type MutationClass string

const (
	ClassASTRefactor     MutationClass = "AST_REFACTOR"
	ClassIntentEvolution MutationClass = "INTENT_EVOLUTION"
	ClassUnknown         MutationClass = "UNKNOWN"
)

// Context is the per-call record threaded through the pipeline.
// Pre-hooks never mutate a Context in place — each returns a new value
// (see Clone) so that a block decision made mid-chain can never be
// confused with partial enrichment from hooks that ran before it.
type Context struct {
	ToolName      string
	Params        map[string]any
	WorkspacePath string
	IntentID      string // empty means unset

	// SessionID is the lazily created per-process session identifier
	// (§5: "no in-memory state persists across calls except the
	// registered hook list and a lazily created session identifier").
	// It is stable for the engine's lifetime and attributes trace
	// conversations to the process that made them.
	SessionID string

	MutationClass MutationClass

	// ClassificationReason is the Classifier's human-readable reason for
	// MutationClass, set by the Trace Logger post-hook so that a later
	// post-hook (Lesson Recorder) can explain itself without re-running
	// the classifier.
	ClassificationReason string

	// OldContentSnapshot is captured by the Lock Guard so the Trace
	// Logger's Classifier call has something to diff against.
	OldContentSnapshot string
	HasOldContent      bool

	// InjectedResult is set by the Context Injector. When non-empty
	// after the pre-chain, the real tool is skipped entirely.
	InjectedResult string
	HasInjected    bool

	// VCSRevision is populated lazily by hooks that query the VCS probe.
	VCSRevision string
}

// New builds the initial Context for a tool call. sessionIntent seeds
// IntentID when the host already knows the active intent (§4.H step 1,
// "session_intent?").
func New(toolName string, params map[string]any, workspacePath, sessionIntent string) *Context {
	return &Context{
		ToolName:      toolName,
		Params:        params,
		WorkspacePath: workspacePath,
		IntentID:      sessionIntent,
	}
}

// Clone returns a shallow copy of the context. Pre-hooks call this
// before mutating any field, so the input they were handed is never
// touched (the invariant in spec §3: "pre-hooks must not mutate the
// shared input").
func (c *Context) Clone() *Context {
	cp := *c
	if c.Params != nil {
		cp.Params = maps.Clone(c.Params)
	}
	return &cp
}

// StringParam reads a string parameter, returning ok=false if the key
// is absent or not a string.
func (c *Context) StringParam(key string) (string, bool) {
	v, exists := c.Params[key]
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
