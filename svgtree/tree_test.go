package svgtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="100" height="50">
	<defs id="defs1">
		<path id="glyph0" d="M 0 0 L 1 1"/>
	</defs>
	<g id="layer1">
		<text id="text1" x="5" y="10">
			<tspan id="span1" x="5" y="10">hello</tspan>
		</text>
		<rect id="rect1" x="0" y="0" width="10" height="10"/>
	</g>
</svg>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	assert.Equal(t, "svg", doc.Root.Name.Local)
	assert.Equal(t, SVG, doc.Root.Name.Space)
	w, ok := doc.Root.Attr("width")
	require.True(t, ok)
	assert.Equal(t, "100", w)

	texts := doc.Root.FindAll(SVG, "text")
	require.Len(t, texts, 1)
	assert.Equal(t, "text1", texts[0].ID())
	assert.Equal(t, "layer1", texts[0].Parent().ID())

	spans := texts[0].FindAll(SVG, "tspan")
	require.Len(t, spans, 1)
	assert.Equal(t, "hello", strings.TrimSpace(spans[0].Text))
}

func TestCloneWithout(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	stripped := doc.CloneWithout(func(n *Node) bool {
		return n.ID() == "text1"
	})
	assert.Empty(t, stripped.Root.FindAll(SVG, "text"))
	assert.Len(t, stripped.Root.FindAll(SVG, "rect"), 1)

	// the source tree is left intact
	assert.Len(t, doc.Root.FindAll(SVG, "text"), 1)
}

func TestSerialize(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	out := doc.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, out, ">hello</tspan>")

	// the serialized document parses back to the same structure
	doc2, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	assert.Len(t, doc2.Root.FindAll(SVG, "tspan"), 1)

	// serialization is deterministic
	assert.Equal(t, out, doc.String())
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"plain text",
		"<a><b></a></b>",
	} {
		_, err := Parse(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}

func TestAttrNS(t *testing.T) {
	const nsDoc = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:custom="http://example.com/ns">
		<g custom:data="payload"/>
	</svg>`
	doc, err := Parse(strings.NewReader(nsDoc))
	require.NoError(t, err)
	g := doc.Root.FindAll(SVG, "g")
	require.Len(t, g, 1)
	v, ok := g[0].AttrNS("http://example.com/ns", "data")
	require.True(t, ok)
	assert.Equal(t, "payload", v)
}
