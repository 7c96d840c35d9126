package mcptools

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxw3st/spotlight"
	"github.com/maxw3st/spotlight/internal/ingest"
	"github.com/maxw3st/spotlight/internal/query"
)

type discard struct{}

func (discard) Println(...any) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "doc.json", []byte(`{"b":{"c":12,"d":"12"}}`), 0o644))
	return &Handler{
		Loader: ingest.NewLoader(fs),
		Finder: spotlight.New(spotlight.WithSink(discard{})),
	}
}

func call(t *testing.T, h *Handler, op query.Op, param string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = string(op)
	req.Params.Arguments = args
	res, err := h.Search(op, param)(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestSearchTools(t *testing.T) {
	h := newHandler(t)

	t.Run("by name", func(t *testing.T) {
		res := call(t, h, query.ByName, "name", map[string]any{"file": "doc.json", "name": "c"})
		assert.False(t, res.IsError)
		assert.Equal(t, "<object>.b.c -> (number)\n", text(t, res))
	})

	t.Run("by value with path", func(t *testing.T) {
		res := call(t, h, query.ByValue, "value", map[string]any{"file": "doc.json", "value": `"12"`, "path": "doc"})
		assert.Equal(t, "doc.b.d -> (string)\n", text(t, res))
	})

	t.Run("custom script", func(t *testing.T) {
		res := call(t, h, query.Custom, "script", map[string]any{"file": "doc.json", "script": "(@.value == 12)"})
		assert.Equal(t, "<object>.b.c -> (number)\n", text(t, res))
	})

	t.Run("no matches", func(t *testing.T) {
		res := call(t, h, query.ByKind, "kind", map[string]any{"file": "doc.json", "kind": "array"})
		assert.Equal(t, "no matches\n", text(t, res))
	})

	t.Run("missing argument", func(t *testing.T) {
		res := call(t, h, query.ByName, "name", map[string]any{"file": "doc.json"})
		assert.True(t, res.IsError)
	})

	t.Run("missing file", func(t *testing.T) {
		res := call(t, h, query.ByName, "name", map[string]any{"file": "nope.json", "name": "c"})
		assert.True(t, res.IsError)
	})

	t.Run("invalid script", func(t *testing.T) {
		res := call(t, h, query.Custom, "script", map[string]any{"file": "doc.json", "script": "(@.key =="})
		assert.True(t, res.IsError)
	})
}

func TestNewServer(t *testing.T) {
	s := NewServer(newHandler(t), "test")
	require.NotNil(t, s)
}
