package wirecodec

import (
	"strconv"
	"strings"
)

// Path identifies a location inside a Value tree. Paths are immutable: Field
// and Index return a new Path that shares the receiver as its prefix.
// The zero Path is the root.
type Path struct {
	node *pathNode
}

type pathNode struct {
	parent *pathNode
	seg    string
	depth  int
}

// Root returns the empty path.
func Root() Path { return Path{} }

// Field appends an object key segment.
func (p Path) Field(name string) Path { return p.append(name) }

// Index appends an array index segment.
func (p Path) Index(i int) Path { return p.append(strconv.Itoa(i)) }

func (p Path) append(seg string) Path {
	d := 1
	if p.node != nil {
		d = p.node.depth + 1
	}
	return Path{node: &pathNode{parent: p.node, seg: seg, depth: d}}
}

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool { return p.node == nil }

// Segments returns the unescaped segments from the root down.
func (p Path) Segments() []string {
	if p.node == nil {
		return nil
	}
	out := make([]string, p.node.depth)
	for n := p.node; n != nil; n = n.parent {
		out[n.depth-1] = n.seg
	}
	return out
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// String renders p as a JSON Pointer ("/" for the root, "/items/2/name" otherwise).
func (p Path) String() string {
	if p.node == nil {
		return "/"
	}
	var b strings.Builder
	for _, s := range p.Segments() {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(s))
	}
	return b.String()
}

// ParsePath parses a JSON Pointer produced by Path.String.
func ParsePath(s string) Path {
	p := Root()
	if s == "" || s == "/" {
		return p
	}
	for _, part := range strings.Split(strings.TrimPrefix(s, "/"), "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		p = p.append(part)
	}
	return p
}
