// Package svgtree provides a mutable XML document tree,
// which can be modified and serialized back to XML.
// It complements the token stream parser of svglatex/svgicon :
// stripping elements from a document and writing the residual
// document requires holding the whole tree in memory.
package svgtree

import (
	"encoding/xml"
	"errors"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// SVG is the namespace of the svg elements.
const SVG = "http://www.w3.org/2000/svg"

// Node is one element of the document tree.
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string // character data directly inside the element

	parent *Node
}

// Document owns the tree of a parsed XML file.
type Document struct {
	Root *Node
}

// Parse reads an XML document, with charset awareness.
func Parse(source io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(source)
	decoder.CharsetReader = charset.NewReaderLabel
	var (
		root    *Node
		current *Node
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch t := t.(type) {
		case xml.StartElement:
			node := &Node{
				Name:   t.Name,
				Attrs:  append([]xml.Attr{}, t.Attr...),
				parent: current,
			}
			if current == nil {
				if root != nil {
					return nil, errors.New("invalid xml document: several root elements")
				}
				root = node
			} else {
				current.Children = append(current.Children, node)
			}
			current = node
		case xml.EndElement:
			if current == nil {
				return nil, errors.New("invalid xml document: unexpected closing tag")
			}
			current = current.parent
		case xml.CharData:
			if current != nil {
				current.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("invalid xml document: no root element")
	}
	return &Document{Root: root}, nil
}

// ParseFile reads the XML document from the named file.
func ParseFile(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parent returns the parent element, nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Attr returns the value of the first attribute with
// the given local name, ignoring its namespace.
func (n *Node) Attr(local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// AttrNS returns the value of the attribute with the given
// namespace url and local name.
func (n *Node) AttrNS(space, local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Space == space && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// ID returns the id attribute of the element, which may be empty.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return id
}

// FindAll walks the subtree in document order and returns
// the elements with the given namespace and local name.
// An empty `space` matches any namespace.
func (n *Node) FindAll(space, local string) []*Node {
	var out []*Node
	n.Walk(func(node *Node) {
		if node.Name.Local == local && (space == "" || node.Name.Space == space) {
			out = append(out, node)
		}
	})
	return out
}

// Walk calls fn on the element and its subtree, in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, kid := range n.Children {
		kid.Walk(fn)
	}
}

// CloneWithout returns a deep copy of the document, omitting
// every element (with its subtree) for which `exclude` returns true.
// The root is never excluded.
func (d *Document) CloneWithout(exclude func(*Node) bool) *Document {
	return &Document{Root: d.Root.cloneWithout(nil, exclude)}
}

func (n *Node) cloneWithout(parent *Node, exclude func(*Node) bool) *Node {
	out := &Node{
		Name:   n.Name,
		Attrs:  append([]xml.Attr{}, n.Attrs...),
		Text:   n.Text,
		parent: parent,
	}
	for _, kid := range n.Children {
		if exclude(kid) {
			continue
		}
		out.Children = append(out.Children, kid.cloneWithout(out, exclude))
	}
	return out
}
