// Package vcsprobe implements best-effort, non-throwing queries
// against whatever version-control system owns the workspace. Every
// operation returns null/empty on any failure rather than propagating
// an error — git is a nice-to-have for revision tagging, never a
// dependency the pipeline can block on (§4.B).
package vcsprobe

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// probeTimeout bounds every shell-out. §4.B calls this a "hard timeout
// of 3 seconds".
const probeTimeout = 3 * time.Second

// execCommandContext is a package-level variable so tests can replace
// it without touching the real git binary — the same injection pattern
// the teacher's test suite and boshu2/agentops use for exec.Command.
var execCommandContext = exec.CommandContext

// CurrentRevision returns the head commit identifier for ws, or "" if
// it cannot be determined (not a repo, git missing, timeout, etc.).
func CurrentRevision(ws string) string {
	out, ok := run(ws, "rev-parse", "HEAD")
	if !ok {
		return ""
	}
	return strings.TrimSpace(out)
}

// FileRevisionAtHead returns the blob object id for a tracked file at
// HEAD, or "" on any failure.
func FileRevisionAtHead(ws, relativePath string) string {
	out, ok := run(ws, "rev-parse", "HEAD:"+filepath.ToSlash(relativePath))
	if !ok {
		return ""
	}
	return strings.TrimSpace(out)
}

// ToRelativePath POSIX-normalizes absolutePath relative to ws. If
// absolutePath is not under ws, it returns the absolute path unchanged
// (POSIX-normalized), per §4.B.
func ToRelativePath(ws, absolutePath string) string {
	rel, err := filepath.Rel(ws, absolutePath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(absolutePath)
	}
	return filepath.ToSlash(rel)
}

// run shells out to git with the 3-second hard timeout, returning
// ok=false on any error (non-zero exit, timeout, git missing, etc.).
func run(ws string, args ...string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	cmd := execCommandContext(ctx, "git", args...)
	cmd.Dir = ws
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	return string(out), true
}
