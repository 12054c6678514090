package rulefile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"reimport/internal/core/engine"
)

// PatternTag marks a YAML scalar holding a /source/flags pattern literal
const PatternTag = "!regexp"

// ParseYAML decodes a YAML rules document
func ParseYAML(data []byte, selector string) (interface{}, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if selector != "" {
		var err error
		if root, err = selectYAML(root, selector); err != nil {
			return nil, err
		}
	}
	return decodeYAML(root)
}

func selectYAML(node *yaml.Node, selector string) (*yaml.Node, error) {
	for _, key := range strings.Split(selector, ".") {
		if node.Kind == yaml.AliasNode {
			node = node.Alias
		}
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("selector %q: %q is not inside a mapping", selector, key)
		}

		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("selector %q matched nothing", selector)
		}
		node = next
	}
	return node, nil
}

func decodeYAML(node *yaml.Node) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return decodeYAML(node.Content[0])

	case yaml.AliasNode:
		return decodeYAML(node.Alias)

	case yaml.ScalarNode:
		if node.Tag == PatternTag {
			p, err := engine.ParseLiteral(node.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", node.Line, err)
			}
			return p, nil
		}
		var v interface{}
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return v, nil

	case yaml.SequenceNode:
		seq := make([]interface{}, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := decodeYAML(item)
			if err != nil {
				return nil, err
			}
			seq = append(seq, v)
		}
		return seq, nil

	case yaml.MappingNode:
		m := make(map[string]interface{}, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := decodeYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[node.Content[i].Value] = v
		}
		return m, nil
	}

	// empty document
	return nil, nil
}
