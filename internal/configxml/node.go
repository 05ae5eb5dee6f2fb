// Package configxml reads the participant, meter and property XML
// configuration documents kept in participant buckets.
//
// Documents mix the hbd, espm and haystack namespaces. Elements keep the
// prefix they were written with in Name.Space. A lookup step written as
// "prefix:local" matches that qualified name only; a bare "local" step
// matches any prefix.
package configxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is an element of a parsed document. The value returned by Parse is a
// document node whose only child is the root element.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	parent   *Node
	text     strings.Builder
}

// Parse reads a whole XML document.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	doc := &Node{}
	stack := []*Node{doc}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			n := &Node{Name: t.Name, Attrs: append([]xml.Attr(nil), t.Attr...), parent: parent}
			parent.Children = append(parent.Children, n)
			stack = append(stack, n)
		case xml.EndElement:
			top := stack[len(stack)-1]
			if len(stack) == 1 || top.Name != t.Name {
				return nil, fmt.Errorf("parse xml: unexpected end element </%s>", qualified(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			stack[len(stack)-1].text.Write(t)
		}
	}
	if len(stack) > 1 {
		return nil, fmt.Errorf("parse xml: element <%s> is not closed", qualified(stack[len(stack)-1].Name))
	}
	if len(doc.Children) == 0 {
		return nil, errors.New("parse xml: document has no root element")
	}
	return doc, nil
}

func qualified(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

// Is reports whether the element matches a lookup step.
func (n *Node) Is(step string) bool {
	if n == nil {
		return false
	}
	if prefix, local, ok := strings.Cut(step, ":"); ok {
		return n.Name.Space == prefix && n.Name.Local == local
	}
	return n.Name.Local == step
}

// ParseString reads a whole XML document from s.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

// Find returns every element matching the descendant chain path, in document order.
// Each step searches all descendants of the previous matches.
func (n *Node) Find(path ...string) []*Node {
	if n == nil {
		return nil
	}
	current := []*Node{n}
	for _, name := range path {
		var next []*Node
		seen := make(map[*Node]bool)
		for _, c := range current {
			c.walk(func(d *Node) {
				if d.Is(name) && !seen[d] {
					seen[d] = true
					next = append(next, d)
				}
			})
		}
		current = next
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

// First returns the first element matching path or nil.
func (n *Node) First(path ...string) *Node {
	found := n.Find(path...)
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// ChildrenNamed returns the direct children matching name.
func (n *Node) ChildrenNamed(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Is(name) {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first direct child matching name or nil.
func (n *Node) Child(name string) *Node {
	children := n.ChildrenNamed(name)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// Closest returns the nearest ancestor matching name or nil.
func (n *Node) Closest(name string) *Node {
	if n == nil {
		return nil
	}
	for p := n.parent; p != nil; p = p.parent {
		if p.Is(name) {
			return p
		}
	}
	return nil
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Text returns the concatenated character data of the element and its descendants.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.collect(&b)
	return b.String()
}

// TrimmedText returns Text without surrounding whitespace.
func (n *Node) TrimmedText() string {
	return strings.TrimSpace(n.Text())
}

func (n *Node) collect(b *strings.Builder) {
	b.WriteString(n.text.String())
	for _, c := range n.Children {
		c.collect(b)
	}
}

// walk visits the descendants of n in document order, excluding n itself.
func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.Children {
		fn(c)
		c.walk(fn)
	}
}
