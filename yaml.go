package jsondiff

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlCodec reads & writes YAML through yaml.v3's node API, which keeps
// mapping order. only the JSON compatible subset of YAML is supported:
// mapping keys must be scalars and floats must be finite
type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Decode(data []byte) (Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// empty document
		return Null{}, nil
	}
	r := &yamlReader{active: map[*yaml.Node]bool{}}
	v, err := r.read(doc.Content[0])
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return v, nil
}

// maxYAMLAliasNodes caps the nodes that alias expansion may produce in one
// document
const maxYAMLAliasNodes = 1 << 20

// yamlReader converts a node tree into Values. every alias is expanded into
// its own copy
type yamlReader struct {
	// nodes on the current path from the document root
	active map[*yaml.Node]bool
	// nodes produced under an alias so far
	expanded int
	aliases  int
}

func (r *yamlReader) read(n *yaml.Node) (Value, error) {
	if r.active[n] {
		return nil, fmt.Errorf("line %d: alias %q refers to its own ancestor", n.Line, n.Anchor)
	}
	if r.aliases > 0 {
		r.expanded++
		if r.expanded > maxYAMLAliasNodes {
			return nil, fmt.Errorf("line %d: aliases expand to more than %d nodes", n.Line, maxYAMLAliasNodes)
		}
	}
	r.active[n] = true
	defer delete(r.active, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null{}, nil
		}
		return r.read(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown alias %q", n.Line, n.Value)
		}
		r.aliases++
		defer func() { r.aliases-- }()
		return r.read(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := r.read(v)
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, el := range n.Content {
			val, err := r.read(el)
			if err != nil {
				return nil, err
			}
			arr.Push(val)
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
}

func fromYAMLScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return Number(strconv.FormatInt(i, 10)), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return Number(strconv.FormatUint(u, 10)), nil
		}
		return floatScalar(n)
	case "!!float":
		return floatScalar(n)
	default:
		// strings, timestamps & binary all stay text
		return String(n.Value), nil
	}
}

func floatScalar(n *yaml.Node) (Value, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return nil, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("line %d: %q has no json representation", n.Line, n.Value)
	}
	return Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func (yamlCodec) Encode(v Value) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAMLNode(v)); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v Value) *yaml.Node {
	switch x := orNull(v).(type) {
	case Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(x))}
	case Number:
		tag := "!!int"
		if strings.ContainsAny(string(x), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(x)}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(x)}
	case *Array:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range x.elems {
			n.Content = append(n.Content, toYAMLNode(el))
		}
		return n
	case *Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range x.keys {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				toYAMLNode(x.vals[k]),
			)
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}
