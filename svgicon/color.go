package svgicon

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Pattern describes how to paint a shape. It is either
// a PlainColor or a Gradient.
type Pattern interface {
	isPattern()
}

// PlainColor is a simple solid color,
// implementing both Pattern and color.Color.
type PlainColor struct {
	color.NRGBA
}

func (PlainColor) isPattern() {}
func (Gradient) isPattern()   {}

// NewPlainColor builds an opaque color from its components.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}
}

// optionnalColor distinguishes a valid color from
// the "none" keyword, which disables painting entirely.
type optionnalColor struct {
	color PlainColor
	valid bool
}

func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return o.color
}

func (o optionnalColor) asColor() color.Color {
	if !o.valid {
		return nil
	}
	return o.color
}

// svgColors is a restricted set of the CSS named colors,
// which covers what Inkscape emits in practice.
var svgColors = map[string]PlainColor{
	"black":   NewPlainColor(0x00, 0x00, 0x00, 0xff),
	"white":   NewPlainColor(0xff, 0xff, 0xff, 0xff),
	"red":     NewPlainColor(0xff, 0x00, 0x00, 0xff),
	"green":   NewPlainColor(0x00, 0x80, 0x00, 0xff),
	"blue":    NewPlainColor(0x00, 0x00, 0xff, 0xff),
	"yellow":  NewPlainColor(0xff, 0xff, 0x00, 0xff),
	"cyan":    NewPlainColor(0x00, 0xff, 0xff, 0xff),
	"magenta": NewPlainColor(0xff, 0x00, 0xff, 0xff),
	"gray":    NewPlainColor(0x80, 0x80, 0x80, 0xff),
	"grey":    NewPlainColor(0x80, 0x80, 0x80, 0xff),
	"orange":  NewPlainColor(0xff, 0xa5, 0x00, 0xff),
	"purple":  NewPlainColor(0x80, 0x00, 0x80, 0xff),
	"brown":   NewPlainColor(0xa5, 0x2a, 0x2a, 0xff),
	"pink":    NewPlainColor(0xff, 0xc0, 0xcb, 0xff),
}

func parseColorComponent(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		per, err := parseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, err
		}
		return uint8(per * 255 / 100), nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return uint8(n), nil
}

// parseSVGColor parses an SVG color which may be
// a keyword, an hexadecimal triplet or an rgb() call.
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "":
		// nil signals not to paint
		return optionnalColor{}, nil
	case "currentcolor", "inherit":
		// not resolved, painted as the default
		return optionnalColor{color: NewPlainColor(0, 0, 0, 0xff), valid: true}, nil
	}
	if named, ok := svgColors[v]; ok {
		return optionnalColor{color: named, valid: true}, nil
	}
	switch {
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 { // expand #abc to #aabbcc
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return optionnalColor{}, fmt.Errorf("invalid hexadecimal color %s", colorStr)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return optionnalColor{}, err
		}
		c := NewPlainColor(uint8(n>>16), uint8(n>>8&0xff), uint8(n&0xff), 0xff)
		return optionnalColor{color: c, valid: true}, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		cs := strings.Split(v[4:len(v)-1], ",")
		if len(cs) != 3 {
			return optionnalColor{}, fmt.Errorf("invalid rgb() color %s", colorStr)
		}
		var out [3]uint8
		for i, comp := range cs {
			c, err := parseColorComponent(comp)
			if err != nil {
				return optionnalColor{}, err
			}
			out[i] = c
		}
		return optionnalColor{color: NewPlainColor(out[0], out[1], out[2], 0xff), valid: true}, nil
	default:
		return optionnalColor{}, errors.New("unsupported color style " + colorStr)
	}
}
