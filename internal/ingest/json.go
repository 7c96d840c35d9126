package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/ohler55/ojg/oj"

	"github.com/maxw3st/spotlight/internal/walk"
)

var errMultipleValues = errors.New("more than one top-level value")

func decodeJSON(_ context.Context, name string, content []byte) (any, error) {
	doc, err := parseOrdered(content)
	if err != nil {
		return nil, fmt.Errorf("parse json %s: %w", name, err)
	}
	return doc, nil
}

// ParseLiteral reads s as a JSON literal (`12`, `"12"`, `true`, `null`,
// `{"a":1}`). Text that is not valid JSON is returned as a bare string.
// Numbers decode exactly as they do in loaded documents.
func ParseLiteral(s string) any {
	v, err := parseOrdered([]byte(s))
	if err != nil {
		return s
	}
	return v
}

// parseOrdered decodes JSON keeping object keys in document order.
// Integers are int64, or uint64 past math.MaxInt64; decimals are float64.
func parseOrdered(content []byte) (any, error) {
	b := &jsonBuilder{}
	if err := oj.Tokenize(content, b); err != nil {
		return nil, err
	}
	if b.count > 1 {
		return nil, errMultipleValues
	}
	return b.root, nil
}

type jsonFrame struct {
	obj *walk.OrderedObject
	arr []any
	key string
}

// jsonBuilder assembles values from tokenizer callbacks.
type jsonBuilder struct {
	stack []*jsonFrame
	root  any
	count int
}

func (b *jsonBuilder) add(v any) {
	if len(b.stack) == 0 {
		b.root = v
		b.count++
		return
	}
	top := b.stack[len(b.stack)-1]
	if top.obj != nil {
		top.obj.Set(top.key, v)
		return
	}
	top.arr = append(top.arr, v)
}

func (b *jsonBuilder) pop() *jsonFrame {
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return top
}

func (b *jsonBuilder) Null() { b.add(nil) }
func (b *jsonBuilder) Bool(v bool) { b.add(v) }
func (b *jsonBuilder) Int(v int64) { b.add(v) }
func (b *jsonBuilder) Float(v float64) { b.add(v) }
func (b *jsonBuilder) String(v string) { b.add(v) }
func (b *jsonBuilder) Key(k string) { b.stack[len(b.stack)-1].key = k }
func (b *jsonBuilder) ObjectStart() { b.stack = append(b.stack, &jsonFrame{obj: walk.NewOrderedObject()}) }
func (b *jsonBuilder) ObjectEnd() { b.add(b.pop().obj) }
func (b *jsonBuilder) ArrayStart() { b.stack = append(b.stack, &jsonFrame{arr: []any{}}) }
func (b *jsonBuilder) ArrayEnd() { b.add(b.pop().arr) }
func (b *jsonBuilder) Number(v string) { b.add(bigNumber(v)) }

// bigNumber handles numbers that fit neither int64 nor float64.
func bigNumber(s string) any {
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
