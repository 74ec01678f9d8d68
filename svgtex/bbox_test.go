package svgtex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawingBox(t *testing.T) {
	boxes := map[string]BBox{
		"rect2": {X: 0, Y: 0, Width: 10, Height: 10},
		"svg5":  {X: 1, Y: 2, Width: 30, Height: 40},
	}
	box, err := DrawingBox(boxes)
	require.NoError(t, err)
	assert.Equal(t, BBox{X: 1, Y: 2, Width: 30, Height: 40}, box)

	// deterministic choice among several candidates
	boxes["svg9"] = BBox{X: 9, Y: 9, Width: 9, Height: 9}
	box, err = DrawingBox(boxes)
	require.NoError(t, err)
	assert.Equal(t, BBox{X: 1, Y: 2, Width: 30, Height: 40}, box)

	_, err = DrawingBox(map[string]BBox{"rect2": {}})
	assert.Error(t, err)
}

func TestCanonicalFrame(t *testing.T) {
	pdfBox := BBox{X: 10, Y: 10, Width: 50, Height: 20}
	original := map[string]BBox{
		"text1":  {X: 0, Y: 5, Width: 8, Height: 4},   // extends left and up
		"text2":  {X: 55, Y: 25, Width: 20, Height: 8}, // extends right and down
		"glyph1": {X: -100, Y: -100, Width: 1, Height: 1},
	}
	consumed := map[string]bool{"text1": true, "text2": true, "glyph1": true, "gone": true}
	ignored := map[string]bool{"glyph1": true}

	frame := CanonicalFrame(original, pdfBox, consumed, ignored)
	assert.Equal(t, BBox{X: 0, Y: 5, Width: 75, Height: 28}, frame)

	// every consumed, non ignored box stays inside the frame
	for id, box := range original {
		if ignored[id] || !consumed[id] {
			continue
		}
		x0, x1, y0, y1 := box.Corners()
		assert.GreaterOrEqual(t, x0, frame.X)
		assert.GreaterOrEqual(t, y0, frame.Y)
		assert.LessOrEqual(t, x1, frame.X+frame.Width)
		assert.LessOrEqual(t, y1, frame.Y+frame.Height)
	}

	// without text boxes the frame is the drawing box
	frame = CanonicalFrame(nil, pdfBox, nil, nil)
	assert.Equal(t, pdfBox, frame)
}
