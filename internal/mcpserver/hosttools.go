package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/HendryAvila/intentguard/internal/dispatch"
)

// hostToolDispatcher is the minimal, real file/command backend that the
// Dispatch Façade invokes once a call has cleared the pre-hook chain.
// It stands in for the "host editor integration" and "shell command
// execution" collaborators the spec treats as out of scope (§1
// Non-goals): real enough to exercise the pipeline end to end, never
// the subject of its own policy.
func hostToolDispatcher(workspacePath string) dispatch.ToolDispatcher {
	return func(toolName string, params map[string]any) (any, error) {
		switch toolName {
		case "read_file":
			path, _ := params["path"].(string)
			data, err := os.ReadFile(resolveWithin(workspacePath, path))
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			return string(data), nil

		case "write_file":
			path, _ := params["path"].(string)
			content, _ := params["content"].(string)
			abs := resolveWithin(workspacePath, path)
			if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
				return nil, fmt.Errorf("creating parent directory for %s: %w", path, err)
			}
			if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
				return nil, fmt.Errorf("writing %s: %w", path, err)
			}
			return fmt.Sprintf("wrote %d bytes to %s", len(content), path), nil

		case "delete_file":
			path, _ := params["path"].(string)
			if err := os.Remove(resolveWithin(workspacePath, path)); err != nil {
				return nil, fmt.Errorf("deleting %s: %w", path, err)
			}
			return fmt.Sprintf("deleted %s", path), nil

		case "execute_command":
			command, _ := params["command"].(string)
			out, err := exec.CommandContext(context.Background(), "sh", "-c", command).CombinedOutput()
			if err != nil {
				return string(out), fmt.Errorf("running command: %w", err)
			}
			return string(out), nil

		default:
			return nil, fmt.Errorf("no host implementation registered for tool %q", toolName)
		}
	}
}

func resolveWithin(ws, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(ws, target)
}
