// Package svgpdf implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/benoitkugler/svglatex/svgicon"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = Renderer{}
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
)

// pdfPointsPerUnit converts SVG user units (96 per inch)
// to PDF points (72 per inch).
const pdfPointsPerUnit = 72. / 96.

// Renderer implements the svgicon.Driver interface
// by emitting PDF path operators.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer returns a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (svgicon.Filler, svgicon.Stroker) {
	var (
		f svgicon.Filler
		s svgicon.Stroker
	)
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b, c, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// gradients are rendered with their average color,
// a close enough approximation for the target documents
func patternToRGB(pattern svgicon.Pattern) (r, g, b int, alpha float64) {
	switch pattern := pattern.(type) {
	case svgicon.PlainColor:
		return int(pattern.R), int(pattern.G), int(pattern.B), float64(pattern.A) / 255.
	case svgicon.Gradient:
		var sr, sg, sb, sa float64
		n := 0
		for _, stop := range pattern.Stops {
			if stop.StopColor == nil {
				continue
			}
			cr, cg, cb, _ := stop.StopColor.RGBA()
			sr += float64(cr >> 8)
			sg += float64(cg >> 8)
			sb += float64(cb >> 8)
			sa += stop.Opacity
			n++
		}
		if n == 0 {
			return 0, 0, 0, 1
		}
		return int(sr / float64(n)), int(sg / float64(n)), int(sb / float64(n)), sa / float64(n)
	}
	return 0, 0, 0, 1
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

func (f *filler) SetColor(color svgicon.Pattern, opacity float64) {
	r, g, b, alpha := patternToRGB(color)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(opacity*alpha, "")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

// implements the stroking operation
type stroker struct {
	pather
}

func (s *stroker) SetColor(color svgicon.Pattern, opacity float64) {
	r, g, b, alpha := patternToRGB(color)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(opacity*alpha, "")
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}

var (
	capToString = [...]string{
		svgicon.NilCap:       "butt",
		svgicon.ButtCap:      "butt",
		svgicon.SquareCap:    "square",
		svgicon.RoundCap:     "round",
		svgicon.CubicCap:     "round", // not supported by PDF
		svgicon.QuadraticCap: "round", // not supported by PDF
	}

	joinToString = [...]string{
		svgicon.Arc:       "round", // not supported by PDF
		svgicon.Round:     "round",
		svgicon.Bevel:     "bevel",
		svgicon.Miter:     "miter",
		svgicon.MiterClip: "miter", // not supported by PDF
		svgicon.ArcClip:   "miter", // not supported by PDF
	}
)

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capToString[options.Join.TrailLineCap])
	s.pdf.SetLineJoinStyle(joinToString[options.Join.LineJoin])
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

// RenderSVGIconToPDF reads an SVG document and renders it as
// a single page PDF, sized from the icon view box
// (one SVG user unit giving 1/96 inch).
func RenderSVGIconToPDF(icon io.Reader, target io.Writer) error {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return err
	}
	wPt := parsedIcon.ViewBox.W * pdfPointsPerUnit
	hPt := parsedIcon.ViewBox.H * pdfPointsPerUnit
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: wPt, Ht: hPt},
	})
	pdf.AddPage()
	parsedIcon.SetTarget(0, 0, wPt, hPt)
	renderer := NewRenderer(pdf)
	parsedIcon.Draw(renderer, 1.0)
	if pdf.Err() {
		return pdf.Error()
	}
	return pdf.Output(target)
}
