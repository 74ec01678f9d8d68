// Package svgraster implements a raster backend to render SVG images,
// by wrapping github.com/srwiley/rasterx.
package svgraster

import (
	"image"
	"image/png"
	"io"

	"github.com/benoitkugler/svglatex/svgicon"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = (*Renderer)(nil)
	_ svgicon.Filler  = fillDrawer{}
	_ svgicon.Stroker = strokeDrawer{}
)

// Renderer implements the svgicon.Driver interface
// by rasterizing the paths into an image.
type Renderer struct {
	dasher *rasterx.Dasher // stroking
	filler *rasterx.Filler // filling, with a separated instance to avoid shared state
}

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If `scanner` is nil, a default rasterx.ScannerGV is used.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		dasher: rasterx.NewDasher(width, height, scanner),
		filler: rasterx.NewFiller(width, height, scanner),
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgicon.Filler, svgicon.Stroker) {
	var (
		f svgicon.Filler
		s svgicon.Stroker
	)
	if willFill {
		f = fillDrawer{rd.filler}
	}
	if willStroke {
		s = strokeDrawer{rd.dasher}
	}
	return f, s
}

func toRasterxGradient(grad svgicon.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgicon.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case svgicon.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i, s := range grad.Stops {
		stops[i] = rasterx.GradStop{StopColor: s.StopColor, Offset: s.Offset, Opacity: s.Opacity}
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   struct{ X, Y, W, H float64 }{X: grad.Bounds.X, Y: grad.Bounds.Y, W: grad.Bounds.W, H: grad.Bounds.H},
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgicon.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case svgicon.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case svgicon.Gradient:
		if fillerColor.Units == svgicon.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			fillerColor.Bounds.X, fillerColor.Bounds.Y = mnx, mny
			fillerColor.Bounds.W, fillerColor.Bounds.H = mxx-mnx, mxy-mny
		}
		rasterxGradient := toRasterxGradient(fillerColor)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

type fillDrawer struct {
	f *rasterx.Filler
}

func (d fillDrawer) Clear()                          { d.f.Clear() }
func (d fillDrawer) Start(a fixed.Point26_6)         { d.f.Start(a) }
func (d fillDrawer) Line(b fixed.Point26_6)          { d.f.Line(b) }
func (d fillDrawer) QuadBezier(b, c fixed.Point26_6) { d.f.QuadBezier(b, c) }
func (d fillDrawer) CubeBezier(b, c, e fixed.Point26_6) {
	d.f.CubeBezier(b, c, e)
}
func (d fillDrawer) Stop(closeLoop bool)               { d.f.Stop(closeLoop) }
func (d fillDrawer) Draw()                             { d.f.Draw() }
func (d fillDrawer) SetWinding(useNonZeroWinding bool) { d.f.SetWinding(useNonZeroWinding) }
func (d fillDrawer) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, d.f.Scanner)
}

type strokeDrawer struct {
	d *rasterx.Dasher
}

func (d strokeDrawer) Clear()                          { d.d.Clear() }
func (d strokeDrawer) Start(a fixed.Point26_6)         { d.d.Start(a) }
func (d strokeDrawer) Line(b fixed.Point26_6)          { d.d.Line(b) }
func (d strokeDrawer) QuadBezier(b, c fixed.Point26_6) { d.d.QuadBezier(b, c) }
func (d strokeDrawer) CubeBezier(b, c, e fixed.Point26_6) {
	d.d.CubeBezier(b, c, e)
}
func (d strokeDrawer) Stop(closeLoop bool) { d.d.Stop(closeLoop) }
func (d strokeDrawer) Draw()               { d.d.Draw() }
func (d strokeDrawer) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, d.d.Scanner)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.Arc:       rasterx.Arc,
		svgicon.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgicon.NilCap:       rasterx.ButtCap,
		svgicon.ButtCap:      rasterx.ButtCap,
		svgicon.SquareCap:    rasterx.SquareCap,
		svgicon.RoundCap:     rasterx.RoundCap,
		svgicon.CubicCap:     rasterx.CubicCap,
		svgicon.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgicon.NilGap:       rasterx.FlatGap,
		svgicon.FlatGap:      rasterx.FlatGap,
		svgicon.RoundGap:     rasterx.RoundGap,
		svgicon.CubicGap:     rasterx.CubicGap,
		svgicon.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (d strokeDrawer) SetStrokeOptions(options svgicon.StrokeOptions) {
	d.d.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// RasterIconToImage renders `parsedIcon` into a new image,
// of size `width` x `height`, honoring the icon Transform field.
func RasterIconToImage(parsedIcon *svgicon.SvgIcon, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	renderer := NewRenderer(width, height, scanner)
	parsedIcon.Draw(renderer, 1.0)
	return img
}

// RasterSVGIconToImage uses a ScannerGV instance to render the
// icon into an image and returns it.
func RasterSVGIconToImage(icon io.Reader) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	w, h := int(parsedIcon.ViewBox.W), int(parsedIcon.ViewBox.H)
	return RasterIconToImage(parsedIcon, w, h), nil
}

// RasterSVGIconToPNG renders the icon and encodes it
// as PNG into `target`.
func RasterSVGIconToPNG(icon io.Reader, target io.Writer) error {
	img, err := RasterSVGIconToImage(icon)
	if err != nil {
		return err
	}
	return png.Encode(target, img)
}
