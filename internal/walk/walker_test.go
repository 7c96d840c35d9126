package walk

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxw3st/spotlight/api"
)

type obj = map[string]any

func always(any, string, any) bool { return true }

func keyIs(name string) Predicate {
	return func(_ any, key string, _ any) bool { return key == name }
}

func TestSearchPreOrder(t *testing.T) {
	root := obj{
		"b": obj{"d": 1, "c": []any{"x", obj{"e": true}}},
		"a": "first",
	}
	got := NewWalker(nil).Search(root, "r", always)
	assert.Equal(t, []string{
		"r.a -> (string)",
		"r.b -> (object)",
		`r.b.c -> (array)`,
		`r.b.c["0"] -> (string)`,
		`r.b.c["1"] -> (object)`,
		`r.b.c["1"].e -> (boolean)`,
		"r.b.d -> (number)",
	}, api.Lines(got))
}

func TestSearchVisitsContainersOnce(t *testing.T) {
	shared := obj{"leaf": 1}
	root := obj{"x": shared, "y": shared}

	var owners []any
	got := NewWalker(nil).Search(root, "", func(_ any, key string, owner any) bool {
		if key == "leaf" {
			owners = append(owners, owner)
		}
		return key == "y" || key == "leaf"
	})
	// shared is entered under x only; under y it is a plain object, not a cycle
	assert.Equal(t, []string{"x.leaf -> (number)", "y -> (object)"}, api.Lines(got))
	assert.Len(t, owners, 1)
}

func TestSearchCycles(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		root := obj{}
		root["self"] = root
		got := NewWalker(nil).Search(root, "<object>", always)
		assert.Equal(t, []string{"<object>.self -> (<<object>>)"}, api.Lines(got))
	})

	t.Run("back reference to ancestor", func(t *testing.T) {
		a := obj{}
		b := obj{"up": a}
		a["down"] = b
		got := NewWalker(nil).Search(obj{"a": a}, "window", keyIs("up"))
		assert.Equal(t, []string{"window.a.down.up -> (<window.a>)"}, api.Lines(got))
	})

	t.Run("pointer cycle through structs", func(t *testing.T) {
		type node struct {
			Name string
			Next *node
		}
		n1 := &node{Name: "one"}
		n2 := &node{Name: "two", Next: n1}
		n1.Next = n2
		got := NewWalker(nil).Search(n1, "n", keyIs("Next"))
		assert.Equal(t, []string{"n.Next -> (object)", "n.Next.Next -> (<n>)"}, api.Lines(got))
	})

	t.Run("slice containing itself", func(t *testing.T) {
		s := make([]any, 1)
		s[0] = s
		got := NewWalker(nil).Search(obj{"s": s}, "", always)
		assert.Equal(t, []string{"s -> (array)", `s["0"] -> (<s>)`}, api.Lines(got))
	})
}

func TestSearchSkipsPrototypeLinks(t *testing.T) {
	root := obj{
		"prototype":   obj{"hidden": 1},
		"constructor": "kept",
		"p":           &proto{},
	}
	got := NewWalker(nil).Search(root, "", always)
	assert.Equal(t, []string{"constructor -> (string)", "p -> (object)"}, api.Lines(got))
}

type protoWithCtor struct {
	Constructor any `json:"constructor"`
	Other       int `json:"other"`
}

func (protoWithCtor) PrototypeOf() any { return nil }

func TestSearchSkipsPrototypeConstructor(t *testing.T) {
	got := NewWalker(nil).Search(&protoWithCtor{Constructor: 1, Other: 2}, "p", always)
	assert.Equal(t, []string{"p.other -> (number)"}, api.Lines(got))
}

func TestSearchEmpty(t *testing.T) {
	w := NewWalker(nil)
	for _, root := range []any{nil, 12, "x", obj{}, []any{}} {
		got := w.Search(root, "r", always)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestSearchPassesOwner(t *testing.T) {
	inner := obj{"k": "v"}
	got := NewWalker(nil).Search(obj{"inner": inner}, "", keyIs("k"))
	require.Len(t, got, 1)
	assert.Equal(t, "v", got[0].Value)
	assert.Equal(t, "k", got[0].Key)
	assert.Equal(t, inner, got[0].Owner)
}

// fakeHost serves a hand-built graph of named nodes, so the walker can be
// exercised without reflection.
type fakeHost struct {
	children map[string][]Property
}

func (h fakeHost) Kind(v any) Kind {
	if h.IsContainer(v) {
		return Object
	}
	return String
}

func (fakeHost) ClassName(any) string {
	return ""
}

func (h fakeHost) IsContainer(v any) bool {
	_, ok := h.children[v.(string)]
	return ok
}

func (h fakeHost) Properties(v any) []Property {
	return h.children[v.(string)]
}

func (h fakeHost) Identity(v any) (Identity, bool) {
	if !h.IsContainer(v) {
		return Identity{}, false
	}
	return Identity{ptr: uintptr(len(v.(string)))}, true
}

func (fakeHost) IsPrototype(any) bool {
	return false
}

func (fakeHost) InstanceOf(any, reflect.Type) bool {
	return false
}

func TestSearchWithCustomHost(t *testing.T) {
	h := fakeHost{children: map[string][]Property{
		"r":   {{Key: "one", Value: "ab"}, {Key: "two", Value: "abc"}},
		"ab":  {{Key: "leaf", Value: "x"}, {Key: "back", Value: "r"}},
		"abc": {{Key: "leaf", Value: "y"}},
	}}
	got := NewWalker(h).Search("r", "root", always)
	assert.Equal(t, []string{
		"root.one -> (object)",
		"root.one.leaf -> (string)",
		"root.one.back -> (<root>)",
		"root.two -> (object)",
		"root.two.leaf -> (string)",
	}, api.Lines(got))
}
