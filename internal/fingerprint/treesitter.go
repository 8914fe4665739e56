package fingerprint

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// FingerprintNode is one top-level declaration's structural projection.
// Field order fixes the canonical JSON key order produced by hashNodes.
type FingerprintNode struct {
	TypeTag    string   `json:"type_tag"`
	Name       string   `json:"name,omitempty"`
	ParamCount *int     `json:"param_count,omitempty"`
	Exported   bool     `json:"exported"`
	Children   []string `json:"children"`
}

func languageFor(ext string) *sitter.Language {
	switch ext {
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// parseSource parses content with the grammar matching ext and projects
// its top-level declarations into fingerprint nodes. ok is false if the
// parse produced a syntax error — callers fall back to the raw hash.
func parseSource(ext string, content []byte) (nodes []FingerprintNode, ok bool) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(ext))

	tree, err := parser.ParseCtx(context.Background(), nil, content)
	if err != nil || tree == nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, false
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		nodes = append(nodes, declarationNodes(root.NamedChild(i), content, false)...)
	}
	return nodes, true
}

// declarationNodes projects a single top-level statement into zero or
// more fingerprint nodes (a variable declaration or a named re-export
// list can each expand to several).
func declarationNodes(node *sitter.Node, content []byte, exported bool) []FingerprintNode {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		return []FingerprintNode{functionNode(node, content, exported)}
	case "class_declaration":
		return []FingerprintNode{classNode(node, content, exported)}
	case "interface_declaration":
		return []FingerprintNode{interfaceNode(node, content, exported)}
	case "type_alias_declaration":
		return []FingerprintNode{typeAliasNode(node, content, exported)}
	case "lexical_declaration", "variable_declaration":
		return varNodes(node, content, exported)
	case "export_statement":
		return exportStatementNodes(node, content)
	default:
		return nil
	}
}

func text(n *sitter.Node, content []byte) string {
	if n == nil {
		return ""
	}
	return string(content[n.StartByte():n.EndByte()])
}

func memberTags(body *sitter.Node, content []byte) []string {
	tags := []string{}
	if body == nil {
		return tags
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		tags = append(tags, body.NamedChild(i).Type())
	}
	return tags
}

func functionNode(node *sitter.Node, content []byte, exported bool) FingerprintNode {
	count := 0
	if params := node.ChildByFieldName("parameters"); params != nil {
		count = int(params.NamedChildCount())
	}
	return FingerprintNode{
		TypeTag:    "fn",
		Name:       text(node.ChildByFieldName("name"), content),
		ParamCount: &count,
		Exported:   exported,
		Children:   memberTags(node.ChildByFieldName("body"), content),
	}
}

func classNode(node *sitter.Node, content []byte, exported bool) FingerprintNode {
	return FingerprintNode{
		TypeTag:  "class",
		Name:     text(node.ChildByFieldName("name"), content),
		Exported: exported,
		Children: memberTags(node.ChildByFieldName("body"), content),
	}
}

func interfaceNode(node *sitter.Node, content []byte, exported bool) FingerprintNode {
	return FingerprintNode{
		TypeTag:  "interface",
		Name:     text(node.ChildByFieldName("name"), content),
		Exported: exported,
		Children: memberTags(node.ChildByFieldName("body"), content),
	}
}

func typeAliasNode(node *sitter.Node, content []byte, exported bool) FingerprintNode {
	return FingerprintNode{
		TypeTag:  "type-alias",
		Name:     text(node.ChildByFieldName("name"), content),
		Exported: exported,
		Children: []string{},
	}
}

func varNodes(node *sitter.Node, content []byte, exported bool) []FingerprintNode {
	var out []FingerprintNode
	for i := 0; i < int(node.NamedChildCount()); i++ {
		decl := node.NamedChild(i)
		if decl.Type() != "variable_declarator" {
			continue
		}
		childTag := "unknown"
		if value := decl.ChildByFieldName("value"); value != nil {
			childTag = value.Type()
		}
		out = append(out, FingerprintNode{
			TypeTag:  "var",
			Name:     text(decl.ChildByFieldName("name"), content),
			Exported: exported,
			Children: []string{childTag},
		})
	}
	return out
}

// exportStatementNodes handles the three shapes an export_statement can
// take: a default export, an export wrapping a declaration (inherits
// that declaration's tag with exported=true), or a re-export specifier
// list / namespace re-export.
func exportStatementNodes(node *sitter.Node, content []byte) []FingerprintNode {
	isDefault := false
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "default" {
			isDefault = true
			break
		}
	}

	decl := node.ChildByFieldName("declaration")

	if isDefault {
		name := "default"
		switch {
		case decl == nil:
			// export default <expression>; — no declaration to name.
		case text(decl.ChildByFieldName("name"), content) != "":
			name = text(decl.ChildByFieldName("name"), content)
		default:
			name = decl.Type()
		}
		return []FingerprintNode{{
			TypeTag:  "export-default",
			Name:     name,
			Exported: true,
			Children: []string{},
		}}
	}

	if decl != nil {
		return declarationNodes(decl, content, true)
	}

	return reExportNodes(node, content)
}

func reExportNodes(node *sitter.Node, content []byte) []FingerprintNode {
	var clause *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "export_clause" {
			clause = node.NamedChild(i)
			break
		}
	}
	if clause == nil {
		// `export * from "mod"` — no per-symbol names to project.
		return []FingerprintNode{{
			TypeTag:  "export-ref",
			Name:     "*",
			Exported: true,
			Children: []string{},
		}}
	}

	var out []FingerprintNode
	for i := 0; i < int(clause.NamedChildCount()); i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != "export_specifier" {
			continue
		}
		name := text(spec.ChildByFieldName("name"), content)
		if alias := spec.ChildByFieldName("alias"); alias != nil {
			name = text(alias, content)
		}
		out = append(out, FingerprintNode{
			TypeTag:  "export-ref",
			Name:     name,
			Exported: true,
			Children: []string{},
		})
	}
	return out
}
