// Package fingerprint computes spatially independent content fingerprints
// for tool-call mutation tracking (§4.C). Supported TypeScript/JavaScript
// source gets an AST-shape hash that ignores position, whitespace, and
// comments; everything else falls back to a raw content hash.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
)

// Method identifies how a Fingerprint's hash was derived.
type Method string

const (
	MethodAST Method = "ast"
	MethodRaw Method = "raw"
)

// Fingerprint is the result of hashing one file's content.
type Fingerprint struct {
	Hash      string
	Method    Method
	NodeCount int
}

var supportedExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true,
	".mts": true, ".cts": true, ".mjs": true, ".cjs": true,
}

// Compute produces the fingerprint for a file's content, dispatching on
// path's extension (case-folded). Unsupported extensions, a missing
// parser, or a parse failure all fall back to the raw content hash.
func Compute(path string, content []byte) Fingerprint {
	ext := strings.ToLower(filepath.Ext(path))
	if supportedExtensions[ext] {
		if nodes, ok := parseSource(ext, content); ok {
			return hashNodes(nodes)
		}
	}
	return rawFingerprint(content)
}

// RawFingerprint hashes content's raw bytes, bypassing the AST-shape
// path entirely. Callers that need a fingerprint a client can
// reproduce without replicating the server's AST serialization (§4.F's
// Optimistic Lock Guard) must use this instead of Compute.
func RawFingerprint(content []byte) Fingerprint {
	return rawFingerprint(content)
}

func rawFingerprint(content []byte) Fingerprint {
	sum := sha256.Sum256(content)
	return Fingerprint{
		Hash:   "raw-sha256:" + hex.EncodeToString(sum[:]),
		Method: MethodRaw,
	}
}

// hashNodes serializes the top-level declaration sequence as canonical
// JSON — compact, with key order fixed by FingerprintNode's field order —
// and hashes that serialization.
func hashNodes(nodes []FingerprintNode) Fingerprint {
	if nodes == nil {
		nodes = []FingerprintNode{}
	}
	data, err := json.Marshal(nodes)
	if err != nil {
		return rawFingerprint(data)
	}
	sum := sha256.Sum256(data)
	return Fingerprint{
		Hash:      "ast-sha256:" + hex.EncodeToString(sum[:]),
		Method:    MethodAST,
		NodeCount: len(nodes),
	}
}
