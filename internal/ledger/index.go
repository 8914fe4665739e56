package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/HendryAvila/intentguard/internal/intent"
	_ "modernc.org/sqlite"
)

// openIndexDB is a package-level var so tests can inject a failure or a
// fake driver, the same pattern the teacher's memory package uses for
// sql.Open.
var openIndexDB = sql.Open

// IndexFile is the derived search index's filename within
// .orchestration/. Unlike TraceFile, this file is a cache: Rebuild can
// reconstruct it from agent_trace.jsonl at any time, and deleting it is
// always safe.
const IndexFile = "agent_trace_index.db"

// IndexPath returns the absolute path to ws's derived search index.
func IndexPath(ws string) string {
	return filepath.Join(ws, intent.OrchestrationDir, IndexFile)
}

// Index is a derived, rebuildable SQLite+FTS5 search index over a
// workspace's trace ledger. agent_trace.jsonl remains the source of
// truth at all times; this index only accelerates lookups.
type Index struct {
	db *sql.DB
}

// OpenIndex opens (creating if needed) the search index for ws and
// ensures its schema is current.
func OpenIndex(ws string) (*Index, error) {
	path := IndexPath(ws)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ledger: create orchestration directory: %w", err)
	}

	db, err := openIndexDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("ledger: open index: %w", err)
	}

	idx := &Index{db: db}
	if err := idx.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

// Close closes the underlying database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS trace_entries (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			trace_id              TEXT    NOT NULL UNIQUE,
			timestamp             TEXT    NOT NULL,
			mutation_class        TEXT    NOT NULL,
			classification_reason TEXT    NOT NULL,
			file_paths            TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_trace_timestamp ON trace_entries(timestamp);

		CREATE VIRTUAL TABLE IF NOT EXISTS trace_entries_fts USING fts5(
			classification_reason,
			file_paths,
			content='trace_entries',
			content_rowid='id'
		);
	`
	_, err := idx.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("ledger: migrate index: %w", err)
	}
	return nil
}

// Rebuild discards the index's contents and replays every entry
// currently in ws's trace ledger. Safe to call at any time — the
// ledger, not the index, is authoritative.
func (idx *Index) Rebuild(ws string) error {
	if _, err := idx.db.Exec(`DELETE FROM trace_entries_fts`); err != nil {
		return fmt.Errorf("ledger: clear index fts: %w", err)
	}
	if _, err := idx.db.Exec(`DELETE FROM trace_entries`); err != nil {
		return fmt.Errorf("ledger: clear index: %w", err)
	}

	entries, err := ReadAll(ws)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := idx.insert(entry); err != nil {
			return fmt.Errorf("ledger: index entry %s: %w", entry.ID, err)
		}
	}
	return nil
}

// Index appends one freshly-written Trace Entry to the index without a
// full rebuild, for the common case of indexing as the ledger grows.
func (idx *Index) Index(entry TraceEntry) error {
	return idx.insert(entry)
}

func (idx *Index) insert(entry TraceEntry) error {
	joined := joinFilePaths(entry.Files)

	res, err := idx.db.Exec(
		`INSERT OR IGNORE INTO trace_entries (trace_id, timestamp, mutation_class, classification_reason, file_paths)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.MutationClass, entry.ClassificationReason, joined,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil // already indexed
	}

	rowID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	_, err = idx.db.Exec(
		`INSERT INTO trace_entries_fts (rowid, classification_reason, file_paths) VALUES (?, ?, ?)`,
		rowID, entry.ClassificationReason, joined,
	)
	return err
}

func joinFilePaths(files []FileTrace) string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.RelativePath
	}
	return strings.Join(paths, " ")
}

// SearchHit is one match returned by Search.
type SearchHit struct {
	TraceID              string
	Timestamp            string
	MutationClass        string
	ClassificationReason string
	FilePaths            string
}

// Search runs a full-text query across classification reasons and file
// paths. An empty query falls back to the most recent entries.
func (idx *Index) Search(query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 20
	}
	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return idx.recent(limit)
	}

	rows, err := idx.db.Query(`
		SELECT t.trace_id, t.timestamp, t.mutation_class, t.classification_reason, t.file_paths
		FROM trace_entries_fts fts
		JOIN trace_entries t ON t.id = fts.rowid
		WHERE trace_entries_fts MATCH ?
		ORDER BY fts.rank
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: search: %w", err)
	}
	defer rows.Close()
	return scanHits(rows)
}

func (idx *Index) recent(limit int) ([]SearchHit, error) {
	rows, err := idx.db.Query(`
		SELECT trace_id, timestamp, mutation_class, classification_reason, file_paths
		FROM trace_entries
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger: recent: %w", err)
	}
	defer rows.Close()
	return scanHits(rows)
}

func scanHits(rows *sql.Rows) ([]SearchHit, error) {
	var hits []SearchHit
	for rows.Next() {
		var h SearchHit
		if err := rows.Scan(&h.TraceID, &h.Timestamp, &h.MutationClass, &h.ClassificationReason, &h.FilePaths); err != nil {
			return nil, fmt.Errorf("ledger: scan search row: %w", err)
		}
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: iterate search rows: %w", err)
	}
	return hits, nil
}

// sanitizeFTS wraps each query word in quotes for a safe FTS5 MATCH
// expression, adapted from the teacher's memory package.
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
