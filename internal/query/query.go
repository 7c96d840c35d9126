// Package query turns textual search requests, as typed on the command
// line or sent by an MCP client, into Finder calls and renders the hits.
package query

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/olekukonko/tablewriter"

	"github.com/maxw3st/spotlight"
	"github.com/maxw3st/spotlight/api"
	"github.com/maxw3st/spotlight/internal/ingest"
	"github.com/maxw3st/spotlight/internal/match"
)

// ErrInvalidCriterion is returned when a search rejects its criterion.
var ErrInvalidCriterion = errors.New("invalid criterion")

// Op names one of the four searches.
type Op string

const (
	ByName  Op = "name"
	ByKind  Op = "kind"
	ByValue Op = "value"
	Custom  Op = "custom"
)

// Request is a search with a textual criterion.
type Request struct {
	Op        Op
	Criterion string
	Options   api.SearchOptions
}

// Run executes req with f. Value criteria are read as JSON literals and
// custom criteria as JSONPath filter scripts.
func Run(f *spotlight.Finder, req Request) ([]api.Match, error) {
	var matches []api.Match
	switch req.Op {
	case ByName:
		matches = f.ByName(req.Criterion, &req.Options)
	case ByKind:
		matches = f.ByKind(req.Criterion, &req.Options)
	case ByValue:
		matches = f.ByValue(ingest.ParseLiteral(req.Criterion), &req.Options)
	case Custom:
		pred, err := match.Script(req.Criterion)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidCriterion, req.Criterion, err)
		}
		matches = f.Custom(pred, &req.Options)
	default:
		return nil, fmt.Errorf("unknown search %q", req.Op)
	}
	if matches == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCriterion, req.Criterion)
	}
	return matches, nil
}

// Output formats accepted by Render.
const (
	FormatLines = "lines"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Render writes matches to w in the given format.
func Render(w io.Writer, matches []api.Match, format string) error {
	switch strings.ToLower(format) {
	case "", FormatLines:
		for _, m := range matches {
			if _, err := fmt.Fprintln(w, m.String()); err != nil {
				return err
			}
		}
		return nil
	case FormatTable:
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"path", "key", "summary"})
		for _, m := range matches {
			table.Append([]string{m.Path, m.Key, m.Summary})
		}
		table.Render()
		return nil
	case FormatJSON:
		// values are left out: they may be cyclic
		out := make([]any, len(matches))
		for i, m := range matches {
			out[i] = map[string]any{"path": m.Path, "key": m.Key, "summary": m.Summary}
		}
		_, err := fmt.Fprintln(w, oj.JSON(out, &oj.Options{Indent: 2, Sort: true}))
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}
