package svgtext

import "strconv"

// Label is one unit of extracted text, to be placed in the
// output overlay: either a TexLabel built from a styled text
// element, or a RawTexLabel passing through embedded LaTeX.
// Its position is expressed in document root coordinates.
type Label interface {
	// Position returns the anchor point, in SVG user units.
	Position() (x, y float64)
	// TexCode returns the LaTeX markup of the label,
	// without its positioning directive.
	TexCode() string

	isLabel()
}

func (TexLabel) isLabel()    {}
func (RawTexLabel) isLabel() {}

// TexLabel is a text run with resolved style attributes.
type TexLabel struct {
	Text string
	X, Y float64
	// Angle is the rotation in degrees, counter clockwise
	// in the output coordinate system.
	Angle      float64
	Color      [3]uint8 // RGB, black by default
	Align      Alignment
	FontFamily string // family abbreviation, "rm" by default
	FontWeight int
	FontStyle  FontStyle
	FontSize   string // size command, empty to inherit
	Scale      float64
}

// NewTexLabel returns a label with the default style:
// black, left aligned, roman family at normal weight.
func NewTexLabel(x, y float64) TexLabel {
	return TexLabel{
		X: x, Y: y,
		FontFamily: "rm",
		FontWeight: WeightNormal,
		Scale:      1.0,
	}
}

func (l TexLabel) Position() (float64, float64) { return l.X, l.Y }

func (l TexLabel) TexCode() string {
	font := `\` + l.FontFamily + "family"
	if l.FontWeight >= WeightBold {
		font += `\bfseries`
	}
	switch l.FontStyle {
	case StyleItalic:
		font += `\itshape`
	case StyleOblique:
		font += `\slshape`
	}
	font += l.FontSize

	var color string
	if l.Color != [3]uint8{} {
		color = `\color[RGB]{` + strconv.Itoa(int(l.Color[0])) +
			"," + strconv.Itoa(int(l.Color[1])) +
			"," + strconv.Itoa(int(l.Color[2])) + "}"
	}

	var align string
	switch l.Align {
	case AlignLeft:
		align = `\makebox(0,0)[bl]`
	case AlignCenter:
		align = `\makebox(0,0)[b]`
	case AlignRight:
		align = `\makebox(0,0)[br]`
	}

	code := font + color + align + `{\smash{` + l.Text + "}}"
	if l.Angle != 0 {
		code = `\rotatebox{` + formatFloat(l.Angle) + "}{" + code + "}"
	}
	return code
}

// RawTexLabel is pre-escaped LaTeX markup embedded in the
// document, emitted untouched inside a fixed scale box.
type RawTexLabel struct {
	Code string
	X, Y float64
}

func (l RawTexLabel) Position() (float64, float64) { return l.X, l.Y }

func (l RawTexLabel) TexCode() string {
	return `\scalebox{` + formatFloat(72.0/Dpi) + `}{\makebox(0,0)[bl]{%` + "\n" +
		l.Code + "%\n}}"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
