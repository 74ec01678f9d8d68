package svgrender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" id="svg1" width="100" height="100" viewBox="0 0 100 100">
	<rect id="rect9" x="10" y="10" width="30" height="20" fill="#ff0000"/>
	<rect id="rect10" x="50" y="40" width="20" height="20" fill="#0000ff"/>
</svg>`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "figure.svg")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))
	return path
}

func TestQueryBoxes(t *testing.T) {
	boxes, err := Renderer{}.QueryBoxes(writeSample(t))
	require.NoError(t, err)

	rect, ok := boxes["rect9"]
	require.True(t, ok)
	assert.InDelta(t, 10., rect.X, 1e-6)
	assert.InDelta(t, 10., rect.Y, 1e-6)
	assert.InDelta(t, 30., rect.Width, 1e-6)
	assert.InDelta(t, 20., rect.Height, 1e-6)

	// the whole drawing is reported under the root id
	drawing, ok := boxes["svg1"]
	require.True(t, ok)
	assert.InDelta(t, 10., drawing.X, 1e-6)
	assert.InDelta(t, 70., drawing.X+drawing.Width, 1e-6)
	assert.InDelta(t, 10., drawing.Y, 1e-6)
	assert.InDelta(t, 60., drawing.Y+drawing.Height, 1e-6)
}

func TestRenderFormats(t *testing.T) {
	svgPath := writeSample(t)
	dir := filepath.Dir(svgPath)

	pdfPath := filepath.Join(dir, "figure.pdf")
	require.NoError(t, Renderer{}.Render(svgPath, pdfPath))
	content, err := os.ReadFile(pdfPath)
	require.NoError(t, err)
	assert.True(t, len(content) > 4 && string(content[:4]) == "%PDF")

	pngPath := filepath.Join(dir, "figure.png")
	require.NoError(t, Renderer{}.Render(svgPath, pngPath))
	content, err = os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.True(t, len(content) > 4 && string(content[1:4]) == "PNG")

	err = Renderer{}.Render(svgPath, filepath.Join(dir, "figure.gif"))
	assert.Error(t, err)
}

func TestQueryBoxesMissing(t *testing.T) {
	_, err := Renderer{}.QueryBoxes("no-such-file.svg")
	assert.Error(t, err)
}
