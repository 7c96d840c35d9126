package ingest

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/maxw3st/spotlight/internal/walk"
)

// decodeTOML rebuilds the decoded tables as ordered objects, in the order
// their keys appear in the file.
func decodeTOML(_ context.Context, name string, content []byte) (any, error) {
	var doc map[string]any
	md, err := toml.Decode(string(content), &doc)
	if err != nil {
		return nil, fmt.Errorf("parse toml %s: %w", name, err)
	}

	// child keys per table path, first appearance wins; prefixes count too
	// so dotted keys (a.b = 1) place their table
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		for i := 1; i <= len(key); i++ {
			full := strings.Join(key[:i], "\x00")
			if seen[full] {
				continue
			}
			seen[full] = true
			parent := strings.Join(key[:i-1], "\x00")
			order[parent] = append(order[parent], key[i-1])
		}
	}
	return tomlOrdered(doc, "", order), nil
}

func tomlOrdered(v any, path string, order map[string][]string) any {
	switch x := v.(type) {
	case map[string]any:
		obj := walk.NewOrderedObject()
		for _, k := range order[path] {
			if val, ok := x[k]; ok {
				obj.Set(k, tomlOrdered(val, tomlChild(path, k), order))
			}
		}
		// inline tables inside arrays carry no key metadata
		var rest []string
		for k := range x {
			if _, ok := obj.Get(k); !ok {
				rest = append(rest, k)
			}
		}
		sort.Strings(rest)
		for _, k := range rest {
			obj.Set(k, tomlOrdered(x[k], tomlChild(path, k), order))
		}
		return obj
	case []map[string]any:
		out := make([]any, len(x))
		for i, t := range x {
			out[i] = tomlOrdered(t, path, order)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = tomlOrdered(item, path, order)
		}
		return out
	}
	return v
}

func tomlChild(path, key string) string {
	if path == "" {
		return key
	}
	return path + "\x00" + key
}
