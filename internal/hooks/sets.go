// Package hooks implements the four pre-hooks and three post-hooks that
// make up the mediation pipeline's policy logic (§4.F, §4.G), wired
// together by internal/mcpserver.
package hooks

// readOnlyTools is the read-only / meta tool allowlist (§6, names
// exactly as given). These tools bypass the Gatekeeper and Scope
// Enforcer unconditionally.
var readOnlyTools = map[string]bool{
	"read_file":             true,
	"list_files":            true,
	"list_directory":        true,
	"search_files":          true,
	"get_file_info":         true,
	"codebase_search":       true,
	"read_command_output":   true,
	"select_active_intent":  true,
	"attempt_completion":    true,
	"ask_followup_question": true,
	"switch_mode":           true,
	"use_mcp_tool":          true,
	"access_mcp_resource":   true,
	"run_slash_command":     true,
	"skill":                 true,
	"update_todo_list":      true,
	"new_task":              true,
}

// destructiveTools is the authorization-required tool set (§6).
var destructiveTools = map[string]bool{
	"write_file":            true,
	"write_to_file":         true,
	"create_file":           true,
	"apply_diff":            true,
	"apply_patch":           true,
	"edit":                  true,
	"search_and_replace":    true,
	"search_replace":        true,
	"edit_file":             true,
	"insert_code_block":     true,
	"replace_in_file":       true,
	"delete_file":           true,
	"execute_command":       true,
	"run_terminal_command":  true,
	"generate_image":        true,
}

// nonWriteDestructiveTools are destructive tools excluded from the
// write subset used by the Lock Guard and Trace Logger (§6: "Of these,
// the write subset ... excludes execute_command, run_terminal_command,
// generate_image").
var nonWriteDestructiveTools = map[string]bool{
	"execute_command":      true,
	"run_terminal_command": true,
	"generate_image":       true,
}

// pathParamNames are the parameter keys tried, in order, to extract a
// tool call's target path (§6).
var pathParamNames = []string{"path", "file_path", "target_file", "destination"}

// IsReadOnly reports whether tool is in the read-only/meta allowlist.
func IsReadOnly(tool string) bool {
	return readOnlyTools[tool]
}

// IsDestructive reports whether tool is in the destructive set.
func IsDestructive(tool string) bool {
	return destructiveTools[tool]
}

// IsWriteSubset reports whether tool is destructive and also in the
// write subset (i.e. not execute_command/run_terminal_command/generate_image).
func IsWriteSubset(tool string) bool {
	return destructiveTools[tool] && !nonWriteDestructiveTools[tool]
}

// PathParam extracts a tool call's target path parameter, trying each
// name in pathParamNames in order. ok is false if none is present as a
// string.
func PathParam(params map[string]any) (path string, ok bool) {
	for _, name := range pathParamNames {
		v, exists := params[name]
		if !exists {
			continue
		}
		if s, isString := v.(string); isString && s != "" {
			return s, true
		}
	}
	return "", false
}
