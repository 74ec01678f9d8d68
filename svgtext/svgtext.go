// Package svgtext extracts the text of an SVG document
// into LaTeX labels, and strips it from the document tree.
//
// The geometry of each label is resolved through the affine
// transforms of its ancestors (svglatex/svgicon.Matrix2D);
// its appearance through the cascading style attributes,
// mapped to LaTeX commands by a FontConfig.
package svgtext

import "fmt"

// Dpi is the number of SVG user units (px) per inch.
const Dpi = 96

// Alignment is the horizontal alignment of a label.
type Alignment uint8

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// FontStyle is the slant of a label font.
type FontStyle uint8

const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

// Font weights, using the CSS numeric scale.
const (
	WeightNormal = 500
	WeightBold   = 700
)

// TransformError is returned for a malformed or
// unsupported transform attribute.
type TransformError struct {
	Attribute string // the full attribute text
}

func (e TransformError) Error() string {
	return fmt.Sprintf("unsupported transform attribute (%s)", e.Attribute)
}

// ColorError is returned for a fill color which
// is not an hexadecimal triplet.
type ColorError struct {
	Value string
}

func (e ColorError) Error() string {
	return fmt.Sprintf("unsupported color format %q: only #rrggbb colors are supported", e.Value)
}

// WeightError is returned for an invalid font-weight value.
type WeightError struct {
	Value string
}

func (e WeightError) Error() string {
	return fmt.Sprintf("invalid font-weight %q", e.Value)
}
