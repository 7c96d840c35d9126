package ingest

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/maxw3st/spotlight/internal/walk"
)

// decodeYAML keeps mapping order and turns anchors and aliases into shared
// references, so an aliased mapping is one container reachable twice.
func decodeYAML(_ context.Context, name string, content []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, fmt.Errorf("parse yaml %s: %w", name, err)
	}
	c := yamlConverter{seen: make(map[*yaml.Node]any)}
	return c.convert(&root)
}

type yamlConverter struct {
	seen map[*yaml.Node]any
}

func (c *yamlConverter) convert(n *yaml.Node) (any, error) {
	if v, ok := c.seen[n]; ok {
		return v, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.convert(n.Alias)
	case yaml.MappingNode:
		obj := walk.NewOrderedObject()
		c.seen[n] = obj
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		// registered before the items so an item aliasing its own sequence
		// gets the same backing array
		seq := make([]any, len(n.Content))
		c.seen[n] = seq
		for i, item := range n.Content {
			v, err := c.convert(item)
			if err != nil {
				return nil, err
			}
			seq[i] = v
		}
		return seq, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return scalar(v), nil
	}
	return nil, fmt.Errorf("line %d: unexpected yaml node kind %d", n.Line, n.Kind)
}

// scalar widens ints so every loader yields the same number types as the
// JSON loader. yaml.v3 only produces uint64 above math.MaxInt64, so those
// stay unsigned.
func scalar(v any) any {
	if x, ok := v.(int); ok {
		return int64(x)
	}
	return v
}
