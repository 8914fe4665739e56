package ledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/intentguard/internal/intent"
)

// TraceFile is the append-only ledger's filename within .orchestration/.
const TraceFile = "agent_trace.jsonl"

// TracePath returns the absolute path to ws's trace ledger.
func TracePath(ws string) string {
	return filepath.Join(ws, intent.OrchestrationDir, TraceFile)
}

// AppendEntry serializes entry as one compact, newline-terminated JSON
// line and appends it to the workspace's trace ledger, creating
// .orchestration/ if needed. Per §4.G the caller (Trace Logger) must log
// and swallow any error this returns — it must never reach the agent.
func AppendEntry(ws string, entry TraceEntry) error {
	path := TracePath(ws)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ledger: create orchestration directory: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("ledger: marshal trace entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ledger: open trace ledger: %w", err)
	}
	defer f.Close()

	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("ledger: append trace entry: %w", err)
	}
	return nil
}

// ReadAll reads every Trace Entry from ws's ledger in file order.
// Malformed lines are skipped rather than failing the whole read — the
// ledger is append-only and self-contained per line (§5), so one
// corrupt line must not hide the rest.
func ReadAll(ws string) ([]TraceEntry, error) {
	f, err := os.Open(TracePath(ws))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: open trace ledger: %w", err)
	}
	defer f.Close()

	var entries []TraceEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry TraceEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ledger: scan trace ledger: %w", err)
	}
	return entries, nil
}

// Tail returns at most the last n Trace Entries in ws's ledger, oldest
// first within that window.
func Tail(ws string, n int) ([]TraceEntry, error) {
	all, err := ReadAll(ws)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(all) {
		return all, nil
	}
	return all[len(all)-n:], nil
}
