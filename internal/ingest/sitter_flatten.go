package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/maxw3st/spotlight/internal/walk"
)

func decodeSyntax(ctx context.Context, name string, content []byte) (any, error) {
	lang, ok := DetectLanguageFromExt(strings.ToLower(filepath.Ext(name)))
	if !ok {
		return nil, fmt.Errorf("no grammar for %s", name)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return SyntaxTree(tree.RootNode(), content), nil
}

// SyntaxTree converts the named nodes under n into ordered objects:
// `type` and `line` always, `text` for leaves, `children` otherwise, and
// `field` when the parent names the child's role.
func SyntaxTree(n *sitter.Node, src []byte) *walk.OrderedObject {
	rec := walk.NewOrderedObject()
	rec.Set("type", n.Type())
	rec.Set("line", int64(n.StartPoint().Row)+1)

	if n.NamedChildCount() == 0 {
		rec.Set("text", n.Content(src))
		return rec
	}

	// Only interest in named nodes (syntactic constructs), not anonymous tokens
	var children []any
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		c := SyntaxTree(child, src)
		if field := n.FieldNameForChild(i); field != "" {
			c.Set("field", field)
		}
		children = append(children, c)
	}
	rec.Set("children", children)
	return rec
}
