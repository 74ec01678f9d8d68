package svgraster

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20">
	<rect x="5" y="5" width="10" height="10" fill="#ff0000"/>
</svg>`

func TestRasterSquare(t *testing.T) {
	img, err := RasterSVGIconToImage(strings.NewReader(redSquare))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
	r, _, _, a := img.At(10, 10).RGBA()
	if a == 0 || r == 0 {
		t.Fatal("center pixel should be painted red")
	}
	_, _, _, a = img.At(1, 1).RGBA()
	if a != 0 {
		t.Fatal("corner pixel should be transparent")
	}
}

const strokedLine = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 20">
	<line x1="0" y1="10" x2="20" y2="10" stroke="#000000" stroke-width="4" fill="none"/>
</svg>`

func TestRasterStroke(t *testing.T) {
	img, err := RasterSVGIconToImage(strings.NewReader(strokedLine))
	if err != nil {
		t.Fatal(err)
	}
	_, _, _, a := img.At(10, 10).RGBA()
	if a == 0 {
		t.Fatal("stroked line should cover the center")
	}
}

func TestEncodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := RasterSVGIconToPNG(strings.NewReader(redSquare), &buf); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("invalid png produced: %s", err)
	}
	if img.Bounds().Dx() != 20 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
}
