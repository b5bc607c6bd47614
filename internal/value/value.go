// Package value implements the dynamic value model for parsed front matter.
//
// A Value is a closed sum over the shapes a YAML document can take: null,
// boolean, number (integer and float kept as distinct subkinds so precision
// survives a round trip), string, array, and map. Map iteration is always
// lexicographic by key so serialization is deterministic.
package value

import (
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindMap
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed front-matter tree. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	m    map[string]Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps a 64-bit integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a double-precision float.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps an ordered sequence of Values.
func Array(vs []Value) Value { return Value{kind: KindArray, arr: vs} }

// Map wraps a mapping from string keys to Values.
func Map(m map[string]Value) Value { return Value{kind: KindMap, m: m} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// AsString returns the wrapped string, or ok=false for any other kind.
func (v Value) AsString() (string, bool) {
	if v.kind == KindString {
		return v.s, true
	}
	return "", false
}

// AsBool returns the wrapped boolean, or ok=false for any other kind.
func (v Value) AsBool() (bool, bool) {
	if v.kind == KindBool {
		return v.b, true
	}
	return false, false
}

// AsInt returns the wrapped integer, or ok=false for any other kind.
func (v Value) AsInt() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// AsFloat returns the wrapped float, or ok=false for any other kind.
func (v Value) AsFloat() (float64, bool) {
	if v.kind == KindFloat {
		return v.f, true
	}
	return 0, false
}

// AsArray returns the wrapped sequence, or ok=false for any other kind.
func (v Value) AsArray() ([]Value, bool) {
	if v.kind == KindArray {
		return v.arr, true
	}
	return nil, false
}

// AsMap returns the wrapped mapping, or ok=false for any other kind.
func (v Value) AsMap() (map[string]Value, bool) {
	if v.kind == KindMap {
		return v.m, true
	}
	return nil, false
}

// Keys returns the map's keys in lexicographic order. For non-map kinds it
// returns nil.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get looks up a key in a map Value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	val, ok := v.m[key]
	return val, ok
}

// Interface converts v to plain Go values (nil, bool, int64, float64,
// string, []any, map[string]any) for use as a template data context.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromYAML decodes a YAML document into a Value. Decoding failures are
// reported as deserialization errors carrying the parser's message.
func FromYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, errors.Decode(err)
	}
	return FromNode(&root)
}

// FromNode converts a decoded YAML node tree into a Value.
//
// The conversion is total except for two documented cases: map keys that are
// not strings are silently dropped, and numeric literals that fit neither an
// int64 nor a float64 fail with an unrepresentable-number error. Tagged
// nodes are unwrapped to their inner value, the tag discarded.
func FromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case 0:
		// Empty document.
		return Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return FromNode(n.Content[0])
	case yaml.AliasNode:
		return FromNode(n.Alias)
	case yaml.SequenceNode:
		arr := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromNode(c)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, v)
		}
		return Array(arr), nil
	case yaml.MappingNode:
		m := make(map[string]Value, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode || key.Tag != "!!str" {
				// Non-string keys are dropped, not rejected.
				continue
			}
			v, err := FromNode(n.Content[i+1])
			if err != nil {
				return Value{}, err
			}
			m[key.Value] = v
		}
		return Map(m), nil
	case yaml.ScalarNode:
		return fromScalar(n)
	default:
		return Value{}, errors.New(errors.KindOther, fmt.Sprintf("unsupported YAML node kind %d", n.Kind))
	}
}

func fromScalar(n *yaml.Node) (Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, errors.Decode(err)
		}
		return Bool(b), nil
	case "!!int":
		// Integer preferred; literals beyond int64 fall back to float.
		if i, err := strconv.ParseInt(n.Value, 10, 64); err == nil {
			return Int(i), nil
		}
		var i int64
		if err := n.Decode(&i); err == nil {
			return Int(i), nil
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return Float(f), nil
		}
		return Value{}, unrepresentable(n.Value)
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return Float(f), nil
		}
		return Value{}, unrepresentable(n.Value)
	case "!!timestamp":
		// Front-matter dates stay strings; downstream parses them.
		return String(n.Value), nil
	case "!!str":
		return String(n.Value), nil
	default:
		// Custom-tagged scalar: discard the tag, keep the literal.
		return String(n.Value), nil
	}
}

func unrepresentable(literal string) error {
	return errors.New(errors.KindOther, fmt.Sprintf("unrepresentable number in front matter: %s", literal))
}

// MarshalYAML serializes v back to YAML without information loss for all
// variants except Null, which is emitted as an empty scalar (an absent
// marker) rather than a literal null token. Map keys are emitted in
// lexicographic order.
func (v Value) MarshalYAML() (any, error) {
	return v.yamlNode()
}

func (v Value) yamlNode() (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}, nil
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}, nil
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.i, 10)}, nil
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.f, 'g', -1, 64)}, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}, nil
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.arr {
			c, err := e.yamlNode()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, c)
		}
		return node, nil
	case KindMap:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			c, err := v.m[k].yamlNode()
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, c)
		}
		return node, nil
	default:
		return nil, errors.New(errors.KindOther, fmt.Sprintf("cannot serialize value of kind %s", v.kind))
	}
}
