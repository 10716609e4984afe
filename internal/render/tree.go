package render

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/roach88/migrate-gse/internal/kvstore"
)

// Tree wraps a kvstore tree so that it marshals to ordered JSON and YAML.
// Leaves become plain strings. YAML output carries entry comments as head
// comments on their keys; JSON drops them.
type Tree struct {
	Map *kvstore.Map
}

// MarshalJSON implements json.Marshaler.
func (t Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, t.Map); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, m *kvstore.Map) error {
	buf.WriteByte('{')
	for i, key := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')

		n, _ := m.Get(key)
		switch v := n.(type) {
		case *kvstore.Map:
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		case kvstore.Entry:
			s, err := json.Marshal(v.Value)
			if err != nil {
				return err
			}
			buf.Write(s)
		}
	}
	buf.WriteByte('}')
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Tree) MarshalYAML() (interface{}, error) {
	return yamlNode(t.Map), nil
}

func yamlNode(m *kvstore.Map) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range m.Keys() {
		k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
		n, _ := m.Get(key)
		var v *yaml.Node
		switch x := n.(type) {
		case *kvstore.Map:
			v = yamlNode(x)
		case kvstore.Entry:
			k.HeadComment = x.Comment
			v = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x.Value}
		}
		node.Content = append(node.Content, k, v)
	}
	return node
}
