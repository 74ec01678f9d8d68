package svgtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTexLabelCode(t *testing.T) {
	label := NewTexLabel(0, 0)
	label.Text = "hello"
	assert.Equal(t, `\rmfamily\makebox(0,0)[bl]{\smash{hello}}`, label.TexCode())

	label.Color = [3]uint8{255, 0, 0}
	label.FontSize = `\normalsize`
	assert.Equal(t,
		`\rmfamily\normalsize\color[RGB]{255,0,0}\makebox(0,0)[bl]{\smash{hello}}`,
		label.TexCode())

	label = NewTexLabel(0, 0)
	label.Text = "x"
	label.FontFamily = "tt"
	label.FontWeight = WeightBold
	label.FontStyle = StyleItalic
	label.Align = AlignCenter
	assert.Equal(t, `\ttfamily\bfseries\itshape\makebox(0,0)[b]{\smash{x}}`, label.TexCode())

	label.FontStyle = StyleOblique
	label.Align = AlignRight
	assert.Equal(t, `\ttfamily\bfseries\slshape\makebox(0,0)[br]{\smash{x}}`, label.TexCode())
}

func TestTexLabelRotation(t *testing.T) {
	label := NewTexLabel(0, 0)
	label.Text = "up"
	label.Angle = -90
	assert.Equal(t, `\rotatebox{-90}{\rmfamily\makebox(0,0)[bl]{\smash{up}}}`, label.TexCode())
}

func TestRawTexLabelCode(t *testing.T) {
	label := RawTexLabel{Code: `$\alpha$`, X: 2, Y: 3}
	assert.Equal(t, "\\scalebox{0.75}{\\makebox(0,0)[bl]{%\n$\\alpha$%\n}}", label.TexCode())
	x, y := label.Position()
	assert.Equal(t, 2., x)
	assert.Equal(t, 3., y)
}

func TestDecodeEscapes(t *testing.T) {
	assert.Equal(t, "a\nb", decodeEscapes(`a\nb`))
	assert.Equal(t, `\alpha`, decodeEscapes(`\\alpha`))
	assert.Equal(t, `\frac{1}{2}`, decodeEscapes(`\\frac{1}{2}`))
	assert.Equal(t, "A", decodeEscapes(`\x41`))
	assert.Equal(t, "é", decodeEscapes(`é`))
	// unknown escapes are kept as written
	assert.Equal(t, `\q`, decodeEscapes(`\q`))
	assert.Equal(t, "plain", decodeEscapes("plain"))
}
