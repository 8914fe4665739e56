// Package classifier implements the Mutation Classifier (§4.D): it
// decides whether a file edit was an internal refactor or a change to
// the file's exported API surface, by diffing export signatures
// extracted by internal/fingerprint.
package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/intentguard/internal/fingerprint"
)

// Class is the classifier's verdict.
type Class string

const (
	ClassASTRefactor     Class = "AST_REFACTOR"
	ClassIntentEvolution Class = "INTENT_EVOLUTION"
	ClassUnknown         Class = "UNKNOWN"
)

// Result is the classifier's output: the verdict plus the evidence
// behind it.
type Result struct {
	Class   Class
	Reason  string
	Added   []fingerprint.ExportSignature
	Removed []fingerprint.ExportSignature
	Changed []fingerprint.ExportSignature
}

// Classify compares the exported surface of oldContent against
// newContent for the same path, following §4.D's algorithm exactly.
func Classify(path string, oldContent, newContent []byte) Result {
	oldSigs := fingerprint.ExportSignatures(path, oldContent)
	newSigs := fingerprint.ExportSignatures(path, newContent)

	if len(oldSigs) == 0 && len(newSigs) == 0 {
		return Result{
			Class:  ClassUnknown,
			Reason: "non-source or parse failure",
		}
	}

	oldByKey := indexByKey(oldSigs)
	newByKey := indexByKey(newSigs)

	var added, removed, changed []fingerprint.ExportSignature
	for key, sig := range newByKey {
		if _, ok := oldByKey[key]; !ok {
			added = append(added, sig)
		}
	}
	for key, sig := range oldByKey {
		if _, ok := newByKey[key]; !ok {
			removed = append(removed, sig)
		}
	}
	for key, oldSig := range oldByKey {
		newSig, ok := newByKey[key]
		if !ok {
			continue
		}
		if oldSig.Kind != newSig.Kind {
			changed = append(changed, newSig)
			continue
		}
		if oldSig.Kind == "fn" && oldSig.ParamCount != newSig.ParamCount {
			changed = append(changed, newSig)
		}
	}

	sortSignatures(added)
	sortSignatures(removed)
	sortSignatures(changed)

	if len(added) == 0 && len(removed) == 0 && len(changed) == 0 {
		return Result{
			Class:  ClassASTRefactor,
			Reason: "Exported API surface unchanged — internal refactor only",
		}
	}

	return Result{
		Class:   ClassIntentEvolution,
		Reason:  evolutionReason(added, removed, changed),
		Added:   added,
		Removed: removed,
		Changed: changed,
	}
}

func indexByKey(sigs []fingerprint.ExportSignature) map[string]fingerprint.ExportSignature {
	out := make(map[string]fingerprint.ExportSignature, len(sigs))
	for _, s := range sigs {
		out[s.Key()] = s
	}
	return out
}

func sortSignatures(sigs []fingerprint.ExportSignature) {
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Key() < sigs[j].Key() })
}

func evolutionReason(added, removed, changed []fingerprint.ExportSignature) string {
	var parts []string
	if n := len(added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added (%s)", n, formatAll(added)))
	}
	if n := len(removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed (%s)", n, formatAll(removed)))
	}
	if n := len(changed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d changed (%s)", n, formatAll(changed)))
	}
	return "Exported API surface changed: " + strings.Join(parts, ", ")
}

func formatAll(sigs []fingerprint.ExportSignature) string {
	formatted := make([]string, len(sigs))
	for i, s := range sigs {
		formatted[i] = s.Format()
	}
	return strings.Join(formatted, ", ")
}
