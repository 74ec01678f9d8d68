package svgtree

import (
	"bytes"
	"encoding/xml"
	"io"
	"sort"
	"strings"
)

// Serialization of the tree back to XML.
// The encoding/xml decoder resolves namespace prefixes to their url;
// the prefixes declared by xmlns attributes are collected again
// so that the output matches the input notation.

const xmlHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"

// WriteTo serializes the document, with an XML declaration.
func (d *Document) WriteTo(target io.Writer) error {
	prefixes := map[string]string{} // namespace url -> prefix ("" for the default namespace)
	d.Root.Walk(func(n *Node) {
		for _, attr := range n.Attrs {
			if attr.Name.Space == "xmlns" {
				prefixes[attr.Value] = attr.Name.Local
			} else if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
				prefixes[attr.Value] = ""
			}
		}
	})
	// xml namespace attributes have an implicit prefix
	prefixes["http://www.w3.org/XML/1998/namespace"] = "xml"

	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	d.Root.write(&buf, prefixes)
	buf.WriteByte('\n')
	_, err := target.Write(buf.Bytes())
	return err
}

// String returns the document as an XML string.
func (d *Document) String() string {
	var buf strings.Builder
	_ = d.WriteTo(&buf)
	return buf.String()
}

func qualify(name xml.Name, prefixes map[string]string) string {
	if name.Space == "" {
		return name.Local
	}
	if name.Space == "xmlns" { // namespace declaration
		return "xmlns:" + name.Local
	}
	prefix, ok := prefixes[name.Space]
	if !ok { // unknown namespace, keep the local name only
		return name.Local
	}
	if prefix == "" {
		return name.Local
	}
	return prefix + ":" + name.Local
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func (n *Node) write(buf *bytes.Buffer, prefixes map[string]string) {
	tag := qualify(n.Name, prefixes)
	buf.WriteByte('<')
	buf.WriteString(tag)
	// sort the attributes for a stable output
	attrs := append([]xml.Attr{}, n.Attrs...)
	sort.SliceStable(attrs, func(i, j int) bool {
		return qualify(attrs[i].Name, prefixes) < qualify(attrs[j].Name, prefixes)
	})
	for _, attr := range attrs {
		if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			buf.WriteString(` xmlns="` + escape(attr.Value) + `"`)
			continue
		}
		buf.WriteString(" " + qualify(attr.Name, prefixes) + `="` + escape(attr.Value) + `"`)
	}
	text := strings.TrimSpace(n.Text)
	if len(n.Children) == 0 && text == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if text != "" {
		buf.WriteString(escape(text))
	}
	for _, kid := range n.Children {
		kid.write(buf, prefixes)
	}
	buf.WriteString("</" + tag + ">")
}
