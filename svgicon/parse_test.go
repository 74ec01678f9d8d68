package svgicon

import (
	"math"
	"strings"
	"testing"
)

const rectIcon = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" id="root" width="40" height="30">
	<rect id="box" x="10" y="5" width="20" height="10" style="fill:#ff0000"/>
</svg>`

func TestParseRect(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(rectIcon), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if icon.ID != "root" {
		t.Fatalf("unexpected icon id %s", icon.ID)
	}
	if icon.ViewBox.W != 40 || icon.ViewBox.H != 30 {
		t.Fatalf("unexpected view box %v", icon.ViewBox)
	}
	if len(icon.SVGPaths) != 1 {
		t.Fatalf("expected one path, got %d", len(icon.SVGPaths))
	}
	p := icon.SVGPaths[0]
	if p.ID != "box" {
		t.Fatalf("unexpected path id %s", p.ID)
	}
	fill, ok := p.Style.FillerColor.(PlainColor)
	if !ok {
		t.Fatalf("expected plain color, got %v", p.Style.FillerColor)
	}
	if fill.R != 0xff || fill.G != 0 || fill.B != 0 {
		t.Fatalf("unexpected fill %v", fill)
	}
	bounds, ok := p.Path.Bounds(Identity)
	if !ok {
		t.Fatal("expected non empty path")
	}
	if !almostEqual(bounds.X, 10) || !almostEqual(bounds.Y, 5) ||
		!almostEqual(bounds.W, 20) || !almostEqual(bounds.H, 10) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
}

const groupIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<g transform="translate(10,20)" fill="#0000ff" opacity="0.5">
		<path id="p1" d="M 0 0 L 10 0 L 10 10 Z"/>
	</g>
</svg>`

func TestStyleCascade(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(groupIcon), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(icon.SVGPaths) != 1 {
		t.Fatalf("expected one path, got %d", len(icon.SVGPaths))
	}
	p := icon.SVGPaths[0]
	fill, ok := p.Style.FillerColor.(PlainColor)
	if !ok || fill.B != 0xff {
		t.Fatalf("group fill not inherited: %v", p.Style.FillerColor)
	}
	if !almostEqual(p.Style.FillOpacity, 0.5) {
		t.Fatalf("group opacity not inherited: %f", p.Style.FillOpacity)
	}
	x, y := p.Style.transform.Apply(0, 0)
	if !almostEqual(x, 10) || !almostEqual(y, 20) {
		t.Fatalf("group transform not inherited: (%f, %f)", x, y)
	}
}

const shapesIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<circle id="c" cx="50" cy="50" r="10"/>
	<ellipse cx="20" cy="20" rx="5" ry="10"/>
	<line x1="0" y1="0" x2="10" y2="10"/>
	<polyline points="0,0 10,0 10,10"/>
	<polygon points="0,0 10,0 10,10"/>
	<rect x="1" y="1" width="8" height="8" rx="2" ry="2"/>
	<path d="M 10 10 C 20 20, 40 20, 50 10 S 60 0, 70 10 Q 80 20 90 10 T 95 10 A 5 5 0 0 1 100 15 H 90 V 20 l 5 5 z"/>
</svg>`

func TestParseShapes(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(shapesIcon), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(icon.SVGPaths) != 7 {
		t.Fatalf("expected 7 paths, got %d", len(icon.SVGPaths))
	}
	bounds, ok := icon.SVGPaths[0].Path.Bounds(Identity)
	if !ok {
		t.Fatal("empty circle path")
	}
	// the circle is approximated by bezier curves
	if math.Abs(bounds.X-40) > 1e-2 || math.Abs(bounds.Y-40) > 1e-2 {
		t.Fatalf("unexpected circle bounds %v", bounds)
	}
}

func TestParseTransforms(t *testing.T) {
	for _, attr := range []string{
		"translate(5)",
		"translate(5, 6)",
		"scale(2)",
		"scale(2, 3)",
		"rotate(45)",
		"rotate(45, 10, 10)",
		"matrix(1,0,0,1,10,10)",
		"skewX(10)",
		"skewY(10)",
		"translate(5,5) scale(2,2)",
	} {
		doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
			<rect x="0" y="0" width="1" height="1" transform="` + attr + `"/></svg>`
		_, err := ReadIconStream(strings.NewReader(doc), StrictErrorMode)
		if err != nil {
			t.Errorf("transform %s: %s", attr, err)
		}
	}

	for _, attr := range []string{
		"translate()",
		"translate(1,2,3)",
		"rotate(1,2)",
		"matrix(1,0,0,1,10)",
		"garbage(1)",
	} {
		doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
			<rect x="0" y="0" width="1" height="1" transform="` + attr + `"/></svg>`
		_, err := ReadIconStream(strings.NewReader(doc), StrictErrorMode)
		if err == nil {
			t.Errorf("transform %s: expected an error", attr)
		}
	}
}

func TestLengthUnits(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="10cm" height="10mm">
		<rect x="1in" y="0" width="72pt" height="16px"/></svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if icon.Width != "10cm" || icon.Height != "10mm" {
		t.Fatalf("raw dimensions not kept: %s x %s", icon.Width, icon.Height)
	}
	if !almostEqual(icon.ViewBox.W, 10*96/2.54) {
		t.Fatalf("unexpected width %f", icon.ViewBox.W)
	}
	bounds, _ := icon.SVGPaths[0].Path.Bounds(Identity)
	if !almostEqual(bounds.X, 96) || !almostEqual(bounds.W, 96) || !almostEqual(bounds.H, 16) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
}

func TestInvalidXML(t *testing.T) {
	if _, err := ReadIconStream(strings.NewReader("not svg at all"), IgnoreErrorMode); err == nil {
		t.Fatal("expected an error on invalid input")
	}
}

func TestErrorModes(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10">
		<foreignObject width="5" height="5"/></svg>`
	if _, err := ReadIconStream(strings.NewReader(doc), IgnoreErrorMode); err != nil {
		t.Fatalf("unexpected error in ignore mode: %s", err)
	}
	if _, err := ReadIconStream(strings.NewReader(doc), StrictErrorMode); err == nil {
		t.Fatal("expected an error in strict mode")
	}
}

const gradientIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<defs>
		<linearGradient id="grad" x1="0" y1="0" x2="1" y2="0">
			<stop offset="0%" stop-color="#ff0000"/>
			<stop offset="100%" stop-color="#0000ff" stop-opacity="0.5"/>
		</linearGradient>
	</defs>
	<rect x="0" y="0" width="100" height="100" fill="url(#grad)"/>
</svg>`

func TestGradient(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(gradientIcon), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(icon.SVGPaths) != 1 {
		t.Fatalf("expected one path, got %d", len(icon.SVGPaths))
	}
	grad, ok := icon.SVGPaths[0].Style.FillerColor.(Gradient)
	if !ok {
		t.Fatalf("expected gradient fill, got %v", icon.SVGPaths[0].Style.FillerColor)
	}
	if len(grad.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(grad.Stops))
	}
	if grad.Direction.isRadial() {
		t.Fatal("expected linear gradient")
	}
}

const useIcon = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<defs>
		<rect id="unit" x="0" y="0" width="10" height="10"/>
	</defs>
	<use href="#unit" x="20" y="30"/>
</svg>`

func TestUse(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(useIcon), StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(icon.SVGPaths) != 1 {
		t.Fatalf("expected one path, got %d", len(icon.SVGPaths))
	}
	bounds, _ := icon.SVGPaths[0].Path.Bounds(Identity)
	if !almostEqual(bounds.X, 20) || !almostEqual(bounds.Y, 30) {
		t.Fatalf("unexpected bounds %v", bounds)
	}
}
