package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HendryAvila/intentguard/internal/classifier"
	"github.com/HendryAvila/intentguard/internal/fingerprint"
	"github.com/HendryAvila/intentguard/internal/hookctx"
	"github.com/HendryAvila/intentguard/internal/intent"
	"github.com/HendryAvila/intentguard/internal/ledger"
	"github.com/HendryAvila/intentguard/internal/pipeline"
	"github.com/HendryAvila/intentguard/internal/vcsprobe"
)

// TraceLogger implements the Trace Logger post-hook (§4.G). It fires on
// the destructive write subset, computing the post-write fingerprint
// and mutation class, then appending one Trace Entry to the ledger.
func TraceLogger() pipeline.PostHook {
	return func(ctx *hookctx.Context, toolResult any) error {
		if !IsWriteSubset(ctx.ToolName) {
			return nil
		}
		target, ok := PathParam(ctx.Params)
		if !ok {
			return nil
		}
		absTarget := resolvePath(ctx.WorkspacePath, target)

		content, err := os.ReadFile(absTarget)
		if err != nil {
			content = nil // file was deleted or unreadable: log with empty content
		}

		fp := fingerprint.Compute(absTarget, content)

		mutationClass := string(hookctx.ClassUnknown)
		reason := "no old content captured"
		if ctx.HasOldContent {
			result := classifier.Classify(absTarget, []byte(ctx.OldContentSnapshot), content)
			mutationClass = string(result.Class)
			reason = result.Reason
		}

		relPath := vcsprobe.ToRelativePath(ctx.WorkspacePath, absTarget)
		revision := vcsprobe.CurrentRevision(ctx.WorkspacePath)

		entry := ledger.NewTraceEntry(revision, mutationClass, reason, []ledger.FileTrace{
			{
				RelativePath: relPath,
				Conversations: []ledger.Conversation{
					{
						SessionID: ctx.SessionID,
						Contributor: ledger.Contributor{
							EntityType: "AI",
						},
						Ranges: []ledger.Range{
							{
								StartLine:    1,
								EndLine:      strings.Count(string(content), "\n") + 1,
								ContentHash:  fp.Hash,
								HashMethod:   string(fp.Method),
								ASTNodeCount: fp.NodeCount,
							},
						},
					},
				},
			},
		})

		ctx.MutationClass = hookctx.MutationClass(mutationClass)
		ctx.ClassificationReason = reason
		return ledger.AppendEntry(ctx.WorkspacePath, entry)
	}
}

// IntentMapUpdater implements the Intent-Map Updater post-hook (§4.G):
// a best-effort, human-readable Markdown snapshot of intent state,
// rewritten after any write-subset call. Treated as non-core by the
// spec; its exact format is implementation-defined.
func IntentMapUpdater(store intent.Store) pipeline.PostHook {
	return func(ctx *hookctx.Context, toolResult any) error {
		if !IsWriteSubset(ctx.ToolName) {
			return nil
		}
		intents, err := store.Load(ctx.WorkspacePath)
		if err != nil {
			return fmt.Errorf("loading intents for status map: %w", err)
		}

		var b strings.Builder
		b.WriteString("# Intent Status\n\n")
		b.WriteString("_Generated by intentguard — do not hand-edit, see active_intents.yaml instead._\n\n")
		for _, in := range intents {
			b.WriteString("## " + in.ID + " — " + in.Name + "\n")
			b.WriteString("- status: " + string(in.Status) + "\n")
			if in.Status == intent.StatusBlocked && in.BlockedReason != "" {
				b.WriteString("- blocked reason: " + in.BlockedReason + "\n")
			}
			b.WriteString("- owned scope: " + strings.Join(in.OwnedScope, ", ") + "\n\n")
		}

		path := intentStatusPath(ctx.WorkspacePath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating orchestration directory: %w", err)
		}
		return os.WriteFile(path, []byte(b.String()), 0o644)
	}
}

const intentStatusFile = "STATUS.md"

func intentStatusPath(ws string) string {
	return filepath.Join(ws, intent.OrchestrationDir, intentStatusFile)
}

// LessonRecorder implements the Lesson Recorder post-hook (§4.G). It
// fires only when the write was classified INTENT_EVOLUTION, appending
// a timestamped note to CLAUDE.md so future sessions see what changed
// and why.
func LessonRecorder() pipeline.PostHook {
	return func(ctx *hookctx.Context, toolResult any) error {
		if ctx.MutationClass != hookctx.ClassIntentEvolution || ctx.IntentID == "" {
			return nil
		}

		target, _ := PathParam(ctx.Params)
		section := fmt.Sprintf(
			"\n## %s — intent %s\n\n- file: `%s`\n- what changed: %s\n",
			timeNow().UTC().Format(time.RFC3339), ctx.IntentID, target, ctx.ClassificationReason,
		)

		path := claudeMDPath(ctx.WorkspacePath)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(claudeMDHeader), 0o644); err != nil {
				return fmt.Errorf("seeding CLAUDE.md: %w", err)
			}
		}

		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening CLAUDE.md: %w", err)
		}
		defer f.Close()

		_, err = f.WriteString(section)
		return err
	}
}

const claudeMDHeader = "# Project Notes\n\n_Auto-seeded by intentguard. Human-editable; the Lesson Recorder only appends._\n"

func claudeMDPath(ws string) string {
	return filepath.Join(ws, "CLAUDE.md")
}
