package svgicon

import (
	"encoding/xml"
	"image/color"
	"strings"
)

// GradientUnits is the type for gradient units
type GradientUnits byte

// SVG bounds parameter constants
const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the type for spread parameters
type SpreadMethod byte

// SVG spread parameter constants
const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

// GradStop represents a stop in the SVG 2.0 gradient specification
type GradStop struct {
	StopColor color.Color
	Offset    float64
	Opacity   float64
}

// Gradient holds a description of an SVG 2.0 gradient
type Gradient struct {
	Direction gradientDirecter
	Stops     []GradStop
	Bounds    Bounds
	Matrix    Matrix2D
	Spread    SpreadMethod
	Units     GradientUnits
}

// radial or linear
type gradientDirecter interface {
	isRadial() bool
}

// x1, y1, x2, y2
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// cx, cy, fx, fy, r, fr
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// readGradURL reads an url reference string and,
// if it refers to a known gradient, returns it as a pattern.
// `defaultColor` is used to resolve the stops currentColor keyword.
func (c *iconCursor) readGradURL(v string, defaultColor Pattern) (grad Gradient, ok bool) {
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		urlStr := strings.TrimSpace(v[4 : len(v)-1])
		if strings.HasPrefix(urlStr, "#") {
			var g *Gradient
			g, ok = c.icon.grads[urlStr[1:]]
			if ok {
				grad = *g
				grad.resolveStopColors(defaultColor)
			}
		}
	}
	return
}

// resolve the "currentColor" keyword of the stops
func (g *Gradient) resolveStopColors(defaultColor Pattern) {
	plain, isPlain := defaultColor.(PlainColor)
	if !isPlain {
		return
	}
	for i, stop := range g.Stops {
		if stop.StopColor == nil {
			g.Stops[i].StopColor = plain
		}
	}
}

// readGradAttr reads the gradient attributes shared
// by linear and radial gradients.
func (c *iconCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(attr.Value)
	case "gradientUnits":
		switch strings.TrimSpace(attr.Value) {
		case "userSpaceOnUse":
			c.grad.Units = UserSpaceOnUse
		case "objectBoundingBox":
			c.grad.Units = ObjectBoundingBox
		}
	case "spreadMethod":
		switch strings.TrimSpace(attr.Value) {
		case "repeat":
			c.grad.Spread = RepeatSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "pad":
			c.grad.Spread = PadSpread
		}
	}
	return
}
