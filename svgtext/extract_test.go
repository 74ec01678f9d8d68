package svgtext

import (
	"strings"
	"testing"

	"github.com/benoitkugler/svglatex/svgtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" width="96" height="96">
	<defs id="defs4">
		<path id="glyph0-1" d="M 0 0 L 1 1"/>
	</defs>
	<g transform="translate(5,5)">
		<rect id="rect9" x="0" y="0" width="80" height="80" style="fill:#c0c0c0"/>
		<text id="text12" style="fill:#ff0000;font-size:12px">
			<tspan id="tspan13" x="10" y="20">hello</tspan>
			<tspan id="tspan14" x="10" y="35">world</tspan>
		</text>
	</g>
</svg>`

func TestExtractText(t *testing.T) {
	doc, err := svgtree.Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	res, err := ExtractText(doc, DefaultFonts())
	require.NoError(t, err)

	assert.Equal(t, 96., res.Width)
	assert.Equal(t, 96., res.Height)
	assert.Equal(t, map[string]bool{"text12": true}, res.ConsumedIDs)
	assert.Equal(t, map[string]bool{"glyph0-1": true}, res.IgnoredIDs)
	assert.Empty(t, res.Warnings)

	require.Len(t, res.Labels, 1)
	label, ok := res.Labels[0].(TexLabel)
	require.True(t, ok)
	// first run position, through the group translation
	assert.Equal(t, 15., label.X)
	assert.Equal(t, 25., label.Y)
	assert.Equal(t, 0., label.Angle)
	assert.Equal(t, "hello world", label.Text)
	assert.Equal(t, [3]uint8{255, 0, 0}, label.Color)
	assert.Equal(t, `\normalsize`, label.FontSize)
	assert.Equal(t, AlignLeft, label.Align)
	code := label.TexCode()
	assert.NotContains(t, code, `\rotatebox`)
	assert.Contains(t, code, `\color[RGB]{255,0,0}`)
	assert.Contains(t, code, `\normalsize`)
	assert.Contains(t, code, `\makebox(0,0)[bl]{\smash{hello world}}`)

	// the residual document keeps the geometry only
	assert.Empty(t, res.Stripped.Root.FindAll(svgtree.SVG, "text"))
	assert.Len(t, res.Stripped.Root.FindAll(svgtree.SVG, "rect"), 1)
	// the input document is intact
	assert.Len(t, doc.Root.FindAll(svgtree.SVG, "text"), 1)
}

func TestExtractRunStyleOverride(t *testing.T) {
	const input = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<text id="a" style="fill:#000000;text-anchor:middle">
			<tspan x="1" y="2" style="fill:#0000ff">blue</tspan>
		</text>
	</svg>`
	doc, err := svgtree.Parse(strings.NewReader(input))
	require.NoError(t, err)
	res, err := ExtractText(doc, DefaultFonts())
	require.NoError(t, err)
	require.Len(t, res.Labels, 1)
	label := res.Labels[0].(TexLabel)
	assert.Equal(t, [3]uint8{0, 0, 255}, label.Color)
	assert.Equal(t, AlignCenter, label.Align)
}

func TestExtractPlainText(t *testing.T) {
	// no tspan wrapper: the element is its own run
	const input = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<text id="a" x="3" y="4">direct</text>
		<text id="b" x="0" y="0">   </text>
	</svg>`
	doc, err := svgtree.Parse(strings.NewReader(input))
	require.NoError(t, err)
	res, err := ExtractText(doc, DefaultFonts())
	require.NoError(t, err)

	// the empty element yields no label but is still consumed
	require.Len(t, res.Labels, 1)
	label := res.Labels[0].(TexLabel)
	assert.Equal(t, 3., label.X)
	assert.Equal(t, 4., label.Y)
	assert.Equal(t, "direct", label.Text)
	assert.Equal(t, map[string]bool{"a": true, "b": true}, res.ConsumedIDs)
	assert.Empty(t, res.Stripped.Root.FindAll(svgtree.SVG, "text"))
}

func TestExtractRotated(t *testing.T) {
	const input = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<g transform="rotate(30)">
			<text id="a"><tspan x="0" y="0">tilted</tspan></text>
		</g>
	</svg>`
	doc, err := svgtree.Parse(strings.NewReader(input))
	require.NoError(t, err)
	res, err := ExtractText(doc, DefaultFonts())
	require.NoError(t, err)
	require.Len(t, res.Labels, 1)
	label := res.Labels[0].(TexLabel)
	assert.Equal(t, -30., label.Angle)
	assert.Contains(t, label.TexCode(), `\rotatebox{-30}{`)
}

func TestExtractTextext(t *testing.T) {
	const input = `<svg xmlns="http://www.w3.org/2000/svg"
			xmlns:xlink="http://www.w3.org/1999/xlink"
			xmlns:textext="http://www.iki.fi/pav/software/textext/"
			width="10" height="10">
		<g id="tex1" textext:text="$\\frac{1}{2}$" transform="translate(2,3)">
			<use x="1" y="4" xlink:href="#glyph0-1"/>
			<use x="5" y="6" xlink:href="#glyph0-2"/>
		</g>
	</svg>`
	doc, err := svgtree.Parse(strings.NewReader(input))
	require.NoError(t, err)
	res, err := ExtractText(doc, DefaultFonts())
	require.NoError(t, err)

	require.Len(t, res.Labels, 1)
	label, ok := res.Labels[0].(RawTexLabel)
	require.True(t, ok)
	assert.Equal(t, `$\frac{1}{2}$`, label.Code)
	// min x, max y over the mapped use positions
	assert.Equal(t, 3., label.X)
	assert.Equal(t, 9., label.Y)
	assert.True(t, res.ConsumedIDs["tex1"])
	assert.Empty(t, res.Stripped.Root.FindAll(svgtree.SVG, "g"))
}

func TestExtractErrors(t *testing.T) {
	for _, input := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
			<g transform="skewX(10)"><text id="a"><tspan x="0" y="0">t</tspan></text></g>
		</svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
			<text id="a" style="fill:blue"><tspan x="0" y="0">t</tspan></text>
		</svg>`,
		`<svg xmlns="http://www.w3.org/2000/svg" width="ten" height="10"/>`,
	} {
		doc, err := svgtree.Parse(strings.NewReader(input))
		require.NoError(t, err)
		_, err = ExtractText(doc, DefaultFonts())
		assert.Error(t, err)
	}

	// the transform error names the attribute text
	doc, err := svgtree.Parse(strings.NewReader(
		`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
			<g transform="skewX(10)"><text id="a"><tspan x="0" y="0">t</tspan></text></g>
		</svg>`))
	require.NoError(t, err)
	_, err = ExtractText(doc, DefaultFonts())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skewX(10)")
}

func TestExtractLaterRunErrors(t *testing.T) {
	// fatal style and transform errors abort even when they sit
	// on a run which does not drive the label placement
	for _, test := range []struct {
		secondRun string
		substring string
	}{
		{`<tspan x="0" y="15" style="fill:junk">b</tspan>`, "junk"},
		{`<tspan x="0" y="15" style="font-weight:heavy">b</tspan>`, "heavy"},
		{`<tspan x="0" y="15" transform="skewX(10)">b</tspan>`, "skewX(10)"},
	} {
		input := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
			<text id="a">
				<tspan x="0" y="0" style="fill:#000000">a</tspan>
				` + test.secondRun + `
			</text>
		</svg>`
		doc, err := svgtree.Parse(strings.NewReader(input))
		require.NoError(t, err)
		_, err = ExtractText(doc, DefaultFonts())
		require.Error(t, err, "second run %s", test.secondRun)
		assert.Contains(t, err.Error(), test.substring)
	}

	// warnings of later runs are collected too, without
	// touching the first run's style
	const input = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10">
		<text id="a">
			<tspan x="0" y="0" style="font-family:CMU Serif">a</tspan>
			<tspan x="0" y="15" style="font-family:Comic Sans">b</tspan>
		</text>
	</svg>`
	doc, err := svgtree.Parse(strings.NewReader(input))
	require.NoError(t, err)
	res, err := ExtractText(doc, DefaultFonts())
	require.NoError(t, err)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Comic Sans")
	require.Len(t, res.Labels, 1)
	assert.Equal(t, "rm", res.Labels[0].(TexLabel).FontFamily)
	assert.Equal(t, "a b", res.Labels[0].(TexLabel).Text)
}

func TestParseLength(t *testing.T) {
	for _, test := range []struct {
		input    string
		expected float64
	}{
		{"96", 96},
		{"96px", 96},
		{"1in", 96},
		{"25.4mm", 96},
		{"2.54cm", 96},
		{"72pt", 96},
	} {
		v, err := ParseLength(test.input)
		require.NoError(t, err, "length %q", test.input)
		assert.InDelta(t, test.expected, v, 1e-9, "length %q", test.input)
	}
	_, err := ParseLength("wide")
	assert.Error(t, err)
}
