package ingest

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/ohler55/ojg/oj"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/maxw3st/spotlight/internal/walk"
)

// decodeHCL turns an HCL or Terraform file into nested ordered objects.
// Blocks nest under their type and labels (`resource.aws_s3_bucket.logs`),
// repeated blocks collect into a list. Attributes that evaluate without
// variables or functions become plain values, the rest keep their source
// text.
func decodeHCL(_ context.Context, name string, content []byte) (any, error) {
	file, diags := hclsyntax.ParseConfig(content, name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse hcl %s: %w", name, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("parse hcl %s: unexpected body %T", name, file.Body)
	}
	return hclBody(body, content), nil
}

func hclBody(body *hclsyntax.Body, src []byte) *walk.OrderedObject {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})

	out := walk.NewOrderedObject()
	ai, bi := 0, 0
	for ai < len(attrs) || bi < len(body.Blocks) {
		if bi == len(body.Blocks) ||
			(ai < len(attrs) && attrs[ai].SrcRange.Start.Byte < body.Blocks[bi].TypeRange.Start.Byte) {
			out.Set(attrs[ai].Name, hclValue(attrs[ai].Expr, src))
			ai++
			continue
		}
		addBlock(out, body.Blocks[bi], src)
		bi++
	}
	return out
}

func addBlock(out *walk.OrderedObject, b *hclsyntax.Block, src []byte) {
	keys := append([]string{b.Type}, b.Labels...)
	parent := out
	for _, k := range keys[:len(keys)-1] {
		// an attribute or unlabelled blocks already under k stay; the
		// labelled block joins them in a list
		var child *walk.OrderedObject
		switch prev := lookup(parent, k).(type) {
		case *walk.OrderedObject:
			child = prev
		case nil:
			child = walk.NewOrderedObject()
			parent.Set(k, child)
		case []any:
			child = walk.NewOrderedObject()
			parent.Set(k, append(prev, child))
		default:
			child = walk.NewOrderedObject()
			parent.Set(k, []any{prev, child})
		}
		parent = child
	}

	last := keys[len(keys)-1]
	body := hclBody(b.Body, src)
	switch prev := lookup(parent, last).(type) {
	case nil:
		parent.Set(last, body)
	case []any:
		parent.Set(last, append(prev, body))
	default:
		parent.Set(last, []any{prev, body})
	}
}

func lookup(o *walk.OrderedObject, key string) any {
	v, _ := o.Get(key)
	return v
}

func hclValue(expr hclsyntax.Expression, src []byte) any {
	text := string(expr.Range().SliceBytes(src))
	val, diags := expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() {
		return text
	}
	if val.IsNull() {
		return nil
	}
	raw, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return text
	}
	v, err := oj.Parse(raw)
	if err != nil {
		return text
	}
	return v
}
