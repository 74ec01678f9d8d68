// Package svgtex turns an SVG document into a background image
// and a LaTeX overlay reproducing its text.
//
// The overlay coordinates are normalized against a canonical frame,
// reconciling the bounding box of the rendered background with the
// boxes of the extracted text elements, as queried on the original
// document. The rendering itself is delegated to a Renderer,
// such as svglatex/inkscape or svglatex/svgrender.
package svgtex

import (
	"fmt"
	"sort"
	"strings"
)

// BBox is an axis aligned bounding box, in SVG user units.
type BBox struct {
	X, Y, Width, Height float64
}

// Corners returns the extreme coordinates of the box.
func (b BBox) Corners() (xmin, xmax, ymin, ymax float64) {
	return b.X, b.X + b.Width, b.Y, b.Y + b.Height
}

// DrawingBox selects the box of the root drawing area from the
// boxes of a (stripped) document, that is the entry whose id has
// prefix "svg". Ties are resolved by id order, so that the
// selection is deterministic.
func DrawingBox(boxes map[string]BBox) (BBox, error) {
	var ids []string
	for id := range boxes {
		if strings.HasPrefix(id, "svg") {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return BBox{}, fmt.Errorf("no drawing area box (id with prefix svg) among %d boxes", len(boxes))
	}
	sort.Strings(ids)
	return boxes[ids[0]], nil
}

// CanonicalFrame reconciles the drawing box of the stripped
// document with the boxes of the consumed text elements, queried
// on the original document. The frame contains the drawing box
// and both corners of every consumed, non ignored element, so
// that text anchors cropped away by the renderer stay inside
// the normalized unit square.
func CanonicalFrame(originalBoxes map[string]BBox, pdfBox BBox, consumedIDs, ignoredIDs map[string]bool) BBox {
	xmin, xmax, ymin, ymax := pdfBox.Corners()
	for id := range consumedIDs {
		if ignoredIDs[id] {
			continue
		}
		box, has := originalBoxes[id]
		if !has {
			continue
		}
		x0, x1, y0, y1 := box.Corners()
		xmin, xmax = min2(xmin, x0), max2(xmax, x1)
		ymin, ymax = min2(ymin, y0), max2(ymax, y1)
	}
	return BBox{X: xmin, Y: ymin, Width: xmax - xmin, Height: ymax - ymin}
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
