package svgtex

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/benoitkugler/svglatex/svgtext"
	"github.com/benoitkugler/svglatex/svgtree"
	"github.com/google/uuid"
)

// Renderer is the external engine producing the graphics:
// Inkscape (svglatex/inkscape) or the in-repo rasterizer
// (svglatex/svgrender).
type Renderer interface {
	// QueryBoxes returns the bounding box of every element
	// of the document, indexed by element id.
	QueryBoxes(svgPath string) (map[string]BBox, error)
	// Render exports the document to `outPath`, whose
	// extension selects the format.
	Render(svgPath, outPath string) error
}

// Converter runs the conversion pipeline of one or more documents.
// Distinct Converter values may run in parallel: each conversion
// works on its own uniquely named temporary file.
type Converter struct {
	Renderer Renderer
	Fonts    svgtext.FontConfig
	// TempDir receives the stripped working copies,
	// os.TempDir() if empty.
	TempDir string
}

// Convert extracts the text of the document at `svgPath`, renders
// the remaining graphics to `imgPath` and writes the matching
// LaTeX overlay to `texPath`.
// The overlay file is only written once the whole conversion has
// succeeded: on error no partial output is left behind.
func (c Converter) Convert(svgPath, imgPath, texPath string) error {
	doc, err := svgtree.ParseFile(svgPath)
	if err != nil {
		return err
	}
	extraction, err := svgtext.ExtractText(doc, c.Fonts)
	if err != nil {
		return err
	}
	logDimensions(extraction.Width, extraction.Height)

	originalBoxes, err := c.Renderer.QueryBoxes(svgPath)
	if err != nil {
		return err
	}

	stripped, err := c.writeStripped(extraction.Stripped)
	if err != nil {
		return err
	}
	defer os.Remove(stripped)

	strippedBoxes, err := c.Renderer.QueryBoxes(stripped)
	if err != nil {
		return err
	}
	if err := c.Renderer.Render(stripped, imgPath); err != nil {
		return err
	}

	pdfBox, err := DrawingBox(strippedBoxes)
	if err != nil {
		return err
	}
	frame := CanonicalFrame(originalBoxes, pdfBox, extraction.ConsumedIDs, extraction.IgnoredIDs)

	picture := TeXPicture{
		Background: imgPath,
		Frame:      frame,
		PdfBox:     pdfBox,
		Labels:     extraction.Labels,
	}
	content, err := picture.Dumps()
	if err != nil {
		return err
	}
	return os.WriteFile(texPath, []byte(content), 0o644)
}

// Export renders the whole document to `outPath`, text included.
func (c Converter) Export(svgPath, outPath string) error {
	if _, err := os.Stat(svgPath); err != nil {
		return err
	}
	return c.Renderer.Render(svgPath, outPath)
}

// writeStripped saves the residual document under a unique
// name, so that concurrent conversions never collide.
func (c Converter) writeStripped(doc *svgtree.Document) (string, error) {
	dir := c.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, uuid.NewString()+".svg")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("writing stripped document: %w", err)
	}
	defer f.Close()
	if err := doc.WriteTo(f); err != nil {
		return "", err
	}
	return path, nil
}

func logDimensions(w, h float64) {
	const bigPoints = 72. / svgtext.Dpi
	log.Printf("width = %.2f px, height = %.2f px", w, h)
	log.Printf("width = %.2f in, height = %.2f in", w/svgtext.Dpi, h/svgtext.Dpi)
	log.Printf("width = %.2f bp, height = %.2f bp", w*bigPoints, h*bigPoints)
}
