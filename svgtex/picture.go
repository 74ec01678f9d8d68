package svgtex

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglatex/svgtext"
)

// picturePreamble opens every emitted .pdf_tex file. The unit
// length is bound to \svgwidth, to be set by the including
// document before \input.
const picturePreamble = `% Picture generated by svglatex
\makeatletter
\providecommand\color[2][]{%
  \errmessage{(svglatex) Color is used for the text in Inkscape,
    but the package 'color.sty' is not loaded}%
  \renewcommand\color[2][]{}}%
\providecommand\transparent[1]{%
  \errmessage{
    (svglatex) Transparency is used for the text in Inkscape,
    but the package 'transparent.sty' is not loaded}%
  \renewcommand\transparent[1]{}}%
\setlength{\unitlength}{\svgwidth}%
\global\let\svgwidth\undefined%
\makeatother
`

// TeXPicture is the LaTeX overlay of one converted document:
// the background graphics and the labels, placed in the
// coordinates of the canonical frame.
type TeXPicture struct {
	// Background is the graphics file included behind
	// the labels, empty to omit it.
	Background string
	Frame      BBox // canonical frame, from CanonicalFrame
	PdfBox     BBox // sub region actually rendered
	Labels     []svgtext.Label
}

// Dumps serializes the picture environment.
//
// Every coordinate is normalized by the frame: shifted to the
// frame origin, flipped (the SVG origin is at the top left corner,
// the picture origin at the lower left one), divided by the frame
// width and rounded to 3 decimals. The normalized frame width must
// come out as exactly 1; a deviation reveals a reconciliation bug
// upstream and fails instead of emitting a skewed picture.
func (p TeXPicture) Dumps() (string, error) {
	unit := p.Frame.Width
	xmin, ymin := p.Frame.X, p.Frame.Y
	h := p.Frame.Height

	// the comparison is written to also reject a degenerate
	// frame, for which the division yields NaN
	if width := p.Frame.Width / unit; !(math.Abs(width-1) <= 1e-9) {
		return "", fmt.Errorf("normalized picture width is %g, not 1", width)
	}

	var lines []string
	if p.Background != "" {
		x := p.PdfBox.X - xmin
		y := (h + ymin) - (p.PdfBox.Height + p.PdfBox.Y)
		scale := p.PdfBox.Width / unit
		lines = append(lines, fmt.Sprintf(`\put(%s, %s){\includegraphics[width=%s\unitlength]{%s}}%%`,
			roundCoord(x, unit), roundCoord(y, unit), formatFloat(scale), p.Background))
	}
	for _, label := range p.Labels {
		x, y := label.Position()
		x = x - xmin
		y = (h + ymin) - y
		lines = append(lines, fmt.Sprintf(`\put(%s, %s){%s}%%`,
			roundCoord(x, unit), roundCoord(y, unit), label.TexCode()))
	}

	var out strings.Builder
	out.WriteString("\\begingroup%\n")
	out.WriteString(picturePreamble)
	out.WriteString(fmt.Sprintf("\\begin{picture}(%s, %s)%%\n",
		roundCoord(p.Frame.Width, unit), roundCoord(p.Frame.Height, unit)))
	out.WriteString(strings.Join(lines, "\n"))
	out.WriteString("\n\\end{picture}%\n\\endgroup%\n")
	return out.String(), nil
}

// roundCoord normalizes x by the unit and rounds to 3 decimals.
func roundCoord(x, unit float64) string {
	return formatFloat(math.Round(x/unit*1000) / 1000)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
