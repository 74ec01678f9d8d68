package svgtext

import (
	"strings"
	"testing"

	"github.com/benoitkugler/svglatex/svgtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransform(t *testing.T) {
	m, err := ParseTransform("translate(5, 5)")
	require.NoError(t, err)
	x, y := m.Apply(1, 2)
	assert.Equal(t, 6., x)
	assert.Equal(t, 7., y)

	m, err = ParseTransform("translate(3)")
	require.NoError(t, err)
	x, y = m.Apply(0, 0)
	assert.Equal(t, 3., x)
	assert.Equal(t, 0., y)

	m, err = ParseTransform("scale(2)")
	require.NoError(t, err)
	x, y = m.Apply(1, 1)
	assert.Equal(t, 2., x)
	assert.Equal(t, 2., y)

	m, err = ParseTransform("matrix(1,0,0,1,10,20)")
	require.NoError(t, err)
	x, y = m.Apply(0, 0)
	assert.Equal(t, 10., x)
	assert.Equal(t, 20., y)

	m, err = ParseTransform("rotate(90)")
	require.NoError(t, err)
	x, y = m.Apply(1, 0)
	assert.InDelta(t, 0., x, 1e-9)
	assert.InDelta(t, 1., y, 1e-9)

	// rotation about a center leaves the center in place
	m, err = ParseTransform("rotate(90, 3, 4)")
	require.NoError(t, err)
	x, y = m.Apply(3, 4)
	assert.InDelta(t, 3., x, 1e-9)
	assert.InDelta(t, 4., y, 1e-9)
}

func TestParseTransformErrors(t *testing.T) {
	for _, attribute := range []string{
		"skewX(10)",
		"skewY(4)",
		"frobnicate(1, 2)",
		"matrix(1,0,0,1)",
		"translate()",
		"translate(1, 2, 3)",
		"rotate(10, 3)",
		"translate(5, 5) scale(2)", // chains are not supported
		"translate 5 5",
		"",
	} {
		_, err := ParseTransform(attribute)
		require.Error(t, err, "attribute %q", attribute)
		if attribute != "" {
			assert.Contains(t, err.Error(), attribute)
		}
	}
}

func TestAccumulatedTransform(t *testing.T) {
	const input = `<svg xmlns="http://www.w3.org/2000/svg">
		<g transform="translate(5,5)">
			<g transform="scale(2,2)">
				<text id="t" x="0" y="0">hi</text>
			</g>
		</g>
	</svg>`
	doc, err := svgtree.Parse(strings.NewReader(input))
	require.NoError(t, err)
	texts := doc.Root.FindAll(svgtree.SVG, "text")
	require.Len(t, texts, 1)

	m, err := AccumulatedTransform(texts[0])
	require.NoError(t, err)
	x, y := m.Apply(0, 0)
	assert.Equal(t, 5., x)
	assert.Equal(t, 5., y)
	x, y = m.Apply(1, 0)
	assert.Equal(t, 7., x)
	assert.Equal(t, 5., y)

	assert.Equal(t, 0., m.RotationDegrees())
}
