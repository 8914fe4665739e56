package fingerprint

import (
	"path/filepath"
	"strconv"
	"strings"
)

// ExportSignature is one exported declaration's shape, keyed by
// (Kind, Name) for the Mutation Classifier (§4.D).
type ExportSignature struct {
	Kind       string
	Name       string
	ParamCount int
}

// Key is the (kind, name) identity §4.D correlates old vs new exports by.
func (s ExportSignature) Key() string {
	return s.Kind + ":" + s.Name
}

// Format renders a signature the way the classifier's reasons are
// worded: "fn:<name>:<param_count>" for functions, "<kind>:<name>"
// otherwise.
func (s ExportSignature) Format() string {
	if s.Kind == "fn" {
		return "fn:" + s.Name + ":" + strconv.Itoa(s.ParamCount)
	}
	return s.Kind + ":" + s.Name
}

// ExportSignatures extracts the exported-surface signatures from path's
// content using the same parse path as Compute. Returns nil for
// non-source content or a parse failure, matching §4.D step 2.
func ExportSignatures(path string, content []byte) []ExportSignature {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil
	}
	nodes, ok := parseSource(ext, content)
	if !ok {
		return nil
	}

	var out []ExportSignature
	for _, n := range nodes {
		if !n.Exported {
			continue
		}
		sig := ExportSignature{Kind: signatureKind(n.TypeTag), Name: n.Name}
		if n.ParamCount != nil {
			sig.ParamCount = *n.ParamCount
		}
		out = append(out, sig)
	}
	return out
}

// signatureKind maps a FingerprintNode.TypeTag (§4.C's projection tags)
// onto the Export Signature kind enum (§3: fn, class, interface, type,
// var, ref, default) — the two vocabularies diverge only for the
// type-alias/re-export/default-export tags.
func signatureKind(typeTag string) string {
	switch typeTag {
	case "type-alias":
		return "type"
	case "export-ref":
		return "ref"
	case "export-default":
		return "default"
	default:
		return typeTag
	}
}
