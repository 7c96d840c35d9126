// Package mcptools exposes the four searches as MCP tools so an agent can
// search a data file by name, kind, value or filter script.
package mcptools

import (
	"context"
	"errors"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/maxw3st/spotlight"
	"github.com/maxw3st/spotlight/api"
	"github.com/maxw3st/spotlight/internal/ingest"
	"github.com/maxw3st/spotlight/internal/query"
)

// Handler serves search tool calls against files read by Loader.
type Handler struct {
	Loader *ingest.Loader
	Finder *spotlight.Finder
}

type toolSpec struct {
	name  string
	op    query.Op
	param string
	desc  string
}

var tools = []toolSpec{
	{"by_name", query.ByName, "name", "Find every property with the given name."},
	{"by_kind", query.ByKind, "kind", "Find every value of a kind (array, object, string, number, boolean, null, undefined, function) or type name, case-insensitively."},
	{"by_value", query.ByValue, "value", "Find every slot strictly equal to a JSON literal, e.g. 12 or \"12\"."},
	{"custom", query.Custom, "script", "Find every slot matching a JSONPath filter over @.key and @.value, e.g. (@.value > 10)."},
}

// NewServer returns an MCP server with one tool per search.
func NewServer(h *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer("spotlight", version, server.WithToolCapabilities(false))
	for _, spec := range tools {
		tool := mcp.NewTool(spec.name,
			mcp.WithDescription(spec.desc),
			mcp.WithString("file", mcp.Required(), mcp.Description("Data file to search (json, yaml, toml, hcl, sqlite or source code).")),
			mcp.WithString(spec.param, mcp.Required(), mcp.Description("Search criterion.")),
			mcp.WithString("path", mcp.Description("Label prepended to every hit. Defaults to <object>.")),
		)
		s.AddTool(tool, h.Search(spec.op, spec.param))
	}
	return s
}

// Search returns the tool handler for op reading its criterion from param.
func (h *Handler) Search(op query.Op, param string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		file, err := req.RequireString("file")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		criterion, err := req.RequireString(param)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		doc, err := h.Loader.Load(ctx, file)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		opts := api.SearchOptions{Object: doc}
		if p, ok := req.GetArguments()["path"].(string); ok {
			opts.Path = api.Label(p)
		}

		matches, err := query.Run(h.Finder, query.Request{Op: op, Criterion: criterion, Options: opts})
		if errors.Is(err, query.ErrInvalidCriterion) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err != nil {
			return nil, err
		}

		var b strings.Builder
		if err := query.Render(&b, matches, query.FormatLines); err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			b.WriteString("no matches\n")
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}
