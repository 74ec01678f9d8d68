// Package svgrender is a rendering engine backed by the in-repo
// SVG library, so that documents may be converted without an
// Inkscape installation. Bounding boxes are computed from the
// path geometry (svglatex/svgicon); exports go through
// svglatex/svgpdf and svglatex/svgraster.
package svgrender

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/svglatex/svgicon"
	"github.com/benoitkugler/svglatex/svgpdf"
	"github.com/benoitkugler/svglatex/svgraster"
	"github.com/benoitkugler/svglatex/svgtex"
)

// Renderer implements svgtex.Renderer on the in-repo engine.
type Renderer struct {
	// Mode controls the strictness of the SVG parser,
	// svgicon.IgnoreErrorMode by default.
	Mode svgicon.ErrorMode
}

var _ svgtex.Renderer = Renderer{}

// QueryBoxes computes the bounding box of every element carrying
// an id, from its path geometry. The box of the whole drawing is
// reported under the root id, or under "svg" when the root
// carries none, matching the naming of the Inkscape queries.
func (r Renderer) QueryBoxes(svgPath string) (map[string]svgtex.BBox, error) {
	icon, err := svgicon.ReadIcon(svgPath, r.Mode)
	if err != nil {
		return nil, err
	}

	boxes := map[string]svgtex.BBox{}
	for id, bounds := range icon.PathBounds() {
		boxes[id] = toBBox(bounds)
	}
	if drawing, ok := icon.DrawingBounds(); ok {
		rootID := icon.ID
		if !strings.HasPrefix(rootID, "svg") {
			rootID = "svg"
		}
		boxes[rootID] = toBBox(drawing)
	}
	return boxes, nil
}

func toBBox(b svgicon.Bounds) svgtex.BBox {
	return svgtex.BBox{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
}

// Render exports the document to PDF or PNG, from the extension
// of `outPath`.
func (r Renderer) Render(svgPath, outPath string) error {
	input, err := os.Open(svgPath)
	if err != nil {
		return err
	}
	defer input.Close()

	output, err := os.Create(outPath)
	if err != nil {
		return err
	}

	switch ext := filepath.Ext(outPath); ext {
	case ".pdf":
		err = svgpdf.RenderSVGIconToPDF(input, output)
	case ".png":
		err = svgraster.RasterSVGIconToPNG(input, output)
	default:
		output.Close()
		os.Remove(outPath)
		return fmt.Errorf("unsupported export format %q", ext)
	}
	if closeErr := output.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outPath)
	}
	return err
}
