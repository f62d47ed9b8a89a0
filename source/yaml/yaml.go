// Package yaml reads YAML documents into wirecodec Values. Mapping key order
// is preserved, so records decoded from YAML re-encode in the input order.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	wirecodec "github.com/reoring/wirecodec"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Path      string
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Reader decodes a multi-document YAML stream using yaml.Node. ParseOpt
// controls duplicate keys and nesting depth the same way it does for JSON.
type Reader struct {
	dec *yaml.Decoder
	opt wirecodec.ParseOpt
}

// NewReader constructs a Reader. Only the last ParseOpt is used.
func NewReader(r io.Reader, opts ...wirecodec.ParseOpt) *Reader {
	rd := &Reader{dec: yaml.NewDecoder(r)}
	if len(opts) > 0 {
		rd.opt = opts[len(opts)-1]
	}
	return rd
}

// Next returns the next document. It returns io.EOF when the stream is
// exhausted. An empty document yields null.
func (r *Reader) Next() (wirecodec.Value, error) {
	var root yaml.Node
	if err := r.dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return wirecodec.Value{}, io.EOF
		}
		return wirecodec.Value{}, wirecodec.Issues{{Path: "/", Code: wirecodec.CodeParseError, Message: err.Error()}}
	}
	c := converter{opt: r.opt}
	return c.convert(&root, wirecodec.Root(), 0)
}

// ReadAll reads all documents from the stream.
func (r *Reader) ReadAll() ([]wirecodec.Value, error) {
	var out []wirecodec.Value
	for {
		v, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, v)
	}
}

// Parse reads the first document of data.
func Parse(data []byte, opts ...wirecodec.ParseOpt) (wirecodec.Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return wirecodec.Value{}, wirecodec.Issues{{Path: "/", Code: wirecodec.CodeParseError, Message: "empty YAML document"}}
	}
	v, err := NewReader(bytes.NewReader(data), opts...).Next()
	if errors.Is(err, io.EOF) {
		return wirecodec.Value{}, wirecodec.Issues{{Path: "/", Code: wirecodec.CodeParseError, Message: "empty YAML document"}}
	}
	return v, err
}

// Decode parses the first document of data and decodes it with c.
func Decode[T any](c wirecodec.Codec[T], data []byte, opts ...wirecodec.ParseOpt) (T, error) {
	v, err := Parse(data, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.Decode(v, wirecodec.Root())
}

type converter struct {
	opt wirecodec.ParseOpt
}

func (c converter) convert(n *yaml.Node, p wirecodec.Path, depth int) (wirecodec.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return wirecodec.Null(), nil
		}
		return c.convert(n.Content[0], p, depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return wirecodec.Null(), nil
		}
		return c.convert(n.Alias, p, depth)
	case yaml.MappingNode:
		if err := c.checkDepth(p, depth+1); err != nil {
			return wirecodec.Value{}, err
		}
		b := wirecodec.NewObjectBuilder(len(n.Content) / 2)
		first := make(map[string][2]int, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, vn := n.Content[i], n.Content[i+1]
			key := k.Value
			if pos, dup := first[key]; dup {
				if err := c.duplicate(p, key, pos, k); err != nil {
					return wirecodec.Value{}, err
				}
			} else {
				first[key] = [2]int{k.Line, k.Column}
			}
			v, err := c.convert(vn, p.Field(key), depth+1)
			if err != nil {
				return wirecodec.Value{}, err
			}
			b.Set(key, v)
		}
		return b.Build(), nil
	case yaml.SequenceNode:
		if err := c.checkDepth(p, depth+1); err != nil {
			return wirecodec.Value{}, err
		}
		items := make([]wirecodec.Value, 0, len(n.Content))
		for i, it := range n.Content {
			v, err := c.convert(it, p.Index(i), depth+1)
			if err != nil {
				return wirecodec.Value{}, err
			}
			items = append(items, v)
		}
		return wirecodec.Array(items...), nil
	case yaml.ScalarNode:
		return scalar(n, p)
	default:
		return wirecodec.Null(), nil
	}
}

func (c converter) checkDepth(p wirecodec.Path, depth int) error {
	if c.opt.MaxDepth > 0 && depth > c.opt.MaxDepth {
		return wirecodec.Issues{{Path: p.String(), Code: wirecodec.CodeParseError, Message: "max depth exceeded"}}
	}
	return nil
}

func (c converter) duplicate(p wirecodec.Path, key string, first [2]int, k *yaml.Node) error {
	de := &DuplicateKeyError{Path: p.Field(key).String(), Key: key, FirstLine: first[0], FirstCol: first[1], Line: k.Line, Col: k.Column}
	switch c.opt.Strictness.OnDuplicateKey {
	case wirecodec.Error:
		return wirecodec.Issues{{Path: de.Path, Code: wirecodec.CodeDuplicateKey, Message: de.Error(), Params: map[string]any{"key": key, "line": k.Line}}}
	case wirecodec.Warn:
		if c.opt.OnWarning != nil {
			c.opt.OnWarning(wirecodec.Issue{Path: de.Path, Code: wirecodec.CodeDuplicateKey, Message: de.Error()})
		}
	}
	return nil
}

func scalar(n *yaml.Node, p wirecodec.Path) (wirecodec.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return wirecodec.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return wirecodec.String(n.Value), nil
		}
		return wirecodec.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return wirecodec.Int(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return wirecodec.Uint(u), nil
		}
		// integers beyond uint64 keep their magnitude as a float
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return wirecodec.Float(f), nil
		}
		return wirecodec.String(n.Value), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return wirecodec.String(n.Value), nil
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return wirecodec.Value{}, wirecodec.Issues{{Path: p.String(), Code: wirecodec.CodeParseError, Message: "non-finite number " + n.Value}}
		}
		return wirecodec.Float(f), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their source text
		return wirecodec.String(n.Value), nil
	}
}
