package svgtext

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitStyle parses a style attribute into a property mapping.
// Clauses are separated by ';' and split on the first ':';
// a property repeated in the attribute keeps its last value.
func SplitStyle(style string) map[string]string {
	out := map[string]string{}
	for _, clause := range strings.Split(style, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		key, value, _ := strings.Cut(clause, ":")
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}

// MergeStyles returns the parent properties overridden by the child's.
// Both inputs are left unchanged.
func MergeStyles(parent, child map[string]string) map[string]string {
	out := make(map[string]string, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

// parseHexColor decodes a #rrggbb triplet.
func parseHexColor(value string) ([3]uint8, error) {
	if len(value) != 7 || value[0] != '#' {
		return [3]uint8{}, ColorError{Value: value}
	}
	var out [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(value[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return [3]uint8{}, ColorError{Value: value}
		}
		out[i] = uint8(v)
	}
	return out, nil
}

// applyStyle resolves the recognized text properties of `style`
// onto the label. Unknown font families and sizes are left at
// their previous value; the returned warnings describe them.
func (fc FontConfig) applyStyle(label *TexLabel, style map[string]string) (warnings []string, err error) {
	if fill, has := style["fill"]; has {
		label.Color, err = parseHexColor(fill)
		if err != nil {
			return warnings, err
		}
	}
	if weight, has := style["font-weight"]; has {
		switch weight {
		case "bold":
			label.FontWeight = WeightBold
		case "normal":
			label.FontWeight = WeightNormal
		default:
			w, err := strconv.Atoi(weight)
			if err != nil {
				return warnings, WeightError{Value: weight}
			}
			label.FontWeight = w
		}
	}
	switch style["font-style"] {
	case "normal":
		label.FontStyle = StyleNormal
	case "italic":
		label.FontStyle = StyleItalic
	case "oblique":
		label.FontStyle = StyleOblique
	}
	switch style["text-anchor"] {
	case "start":
		label.Align = AlignLeft
	case "end":
		label.Align = AlignRight
	case "middle":
		label.Align = AlignCenter
	}
	if family, has := style["font-family"]; has {
		if mapped, ok := fc.Families[family]; ok {
			label.FontFamily = mapped
		} else {
			warnings = append(warnings, fmt.Sprintf("could not match font-family %q", family))
		}
	}
	if size, has := style["font-size"]; has {
		if mapped, ok := fc.Sizes[size]; ok {
			label.FontSize = mapped
		} else {
			warnings = append(warnings, fmt.Sprintf("could not match font-size %q", size))
		}
	}
	return warnings, nil
}
