package hooks

import "path/filepath"

// resolvePath turns a tool call's (possibly relative) target path
// parameter into an absolute path anchored at the workspace root.
// Already-absolute targets pass through unchanged.
func resolvePath(ws, target string) string {
	if filepath.IsAbs(target) {
		return target
	}
	return filepath.Join(ws, target)
}
