package svgtext

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglatex/svgicon"
	"github.com/benoitkugler/svglatex/svgtree"
)

// a transform attribute is one function call: name(arg, arg...)
var transformRe = regexp.MustCompile(`^\s*(\w+)\(([0-9eE,\s\.\-]*)\)\s*$`)

// ParseTransform parses a transform attribute restricted to a single
// function call among matrix, translate, scale and rotate.
// Any other form is rejected with a TransformError naming `attribute`.
func ParseTransform(attribute string) (svgicon.Matrix2D, error) {
	m := transformRe.FindStringSubmatch(attribute)
	if m == nil {
		return svgicon.Identity, TransformError{Attribute: attribute}
	}
	fields := strings.Fields(strings.ReplaceAll(m[2], ",", " "))
	args := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return svgicon.Identity, TransformError{Attribute: attribute}
		}
		args[i] = v
	}
	switch m[1] {
	case "matrix":
		if len(args) != 6 {
			return svgicon.Identity, TransformError{Attribute: attribute}
		}
		return svgicon.Matrix2D{
			A: args[0], B: args[1], C: args[2],
			D: args[3], E: args[4], F: args[5],
		}, nil
	case "translate":
		switch len(args) {
		case 1:
			return svgicon.Identity.Translate(args[0], 0), nil
		case 2:
			return svgicon.Identity.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch len(args) {
		case 1:
			return svgicon.Identity.Scale(args[0], args[0]), nil
		case 2:
			return svgicon.Identity.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch len(args) {
		case 1:
			return svgicon.Identity.Rotate(args[0] * math.Pi / 180), nil
		case 3:
			angle, cx, cy := args[0]*math.Pi/180, args[1], args[2]
			return svgicon.Identity.Translate(cx, cy).Rotate(angle).Translate(-cx, -cy), nil
		}
	}
	return svgicon.Identity, TransformError{Attribute: attribute}
}

// AccumulatedTransform composes the transform attributes found
// on `node` and its ancestors, so that the returned matrix maps
// node local coordinates into document root coordinates.
func AccumulatedTransform(node *svgtree.Node) (svgicon.Matrix2D, error) {
	out := svgicon.Identity
	for el := node; el != nil; el = el.Parent() {
		attr, has := el.Attr("transform")
		if !has {
			continue
		}
		t, err := ParseTransform(attr)
		if err != nil {
			return svgicon.Identity, err
		}
		out = t.Mult(out)
	}
	return out, nil
}
