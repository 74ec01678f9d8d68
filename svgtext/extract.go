package svgtext

import (
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglatex/svgtree"
)

// Textext is the namespace of the textext Inkscape extension,
// which stores LaTeX source alongside its rendered glyphs.
const Textext = "http://www.iki.fi/pav/software/textext/"

// Extraction is the result of ExtractText: the labels found in a
// document and the residual, geometry only document to render.
type Extraction struct {
	// Stripped is a copy of the input document without
	// its text elements.
	Stripped *svgtree.Document
	Labels   []Label
	// ConsumedIDs are the ids of the elements converted
	// to labels and removed from Stripped.
	ConsumedIDs map[string]bool
	// IgnoredIDs are the ids of path elements under defs,
	// never painted directly, to exclude from bounding
	// box aggregation.
	IgnoredIDs map[string]bool
	// Warnings are the non-fatal style lookup misses.
	Warnings []string
	// Width, Height are the root dimensions in user units.
	Width, Height float64
}

// ParseLength converts a root length attribute to user units (px).
// Physical suffixes are resolved at Dpi user units per inch.
func ParseLength(value string) (float64, error) {
	factor := 1.0
	number := value
	for _, unit := range [...]struct {
		suffix string
		factor float64
	}{
		{"px", 1},
		{"mm", Dpi / 25.4},
		{"cm", Dpi / 2.54},
		{"in", Dpi},
		{"pt", Dpi / 72.},
	} {
		if strings.HasSuffix(value, unit.suffix) {
			factor = unit.factor
			number = strings.TrimSpace(strings.TrimSuffix(value, unit.suffix))
			break
		}
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", value)
	}
	return v * factor, nil
}

// ExtractText walks the document, converting every text element and
// every textext element into a Label, and returns the residual tree.
// The input document is not modified.
func ExtractText(doc *svgtree.Document, fonts FontConfig) (*Extraction, error) {
	out := &Extraction{
		ConsumedIDs: map[string]bool{},
		IgnoredIDs:  map[string]bool{},
	}

	var err error
	if w, has := doc.Root.Attr("width"); has {
		if out.Width, err = ParseLength(w); err != nil {
			return nil, err
		}
	}
	if h, has := doc.Root.Attr("height"); has {
		if out.Height, err = ParseLength(h); err != nil {
			return nil, err
		}
	}

	for _, defs := range doc.Root.FindAll(svgtree.SVG, "defs") {
		for _, path := range defs.FindAll(svgtree.SVG, "path") {
			if id := path.ID(); id != "" {
				out.IgnoredIDs[id] = true
			}
		}
	}

	// two phases: collect the labels and the elements to remove
	// first, then build the residual document by exclusion
	toRemove := map[*svgtree.Node]bool{}
	for _, text := range doc.Root.FindAll(svgtree.SVG, "text") {
		label, ok, err := fonts.interpretText(text, out)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Labels = append(out.Labels, label)
		}
		if id := text.ID(); id != "" {
			out.ConsumedIDs[id] = true
		}
		toRemove[text] = true
	}
	var textexts []*svgtree.Node
	doc.Root.Walk(func(n *svgtree.Node) {
		if _, has := n.AttrNS(Textext, "text"); has {
			textexts = append(textexts, n)
		}
	})
	for _, el := range textexts {
		label, err := interpretTextext(el)
		if err != nil {
			return nil, err
		}
		out.Labels = append(out.Labels, label)
		if id := el.ID(); id != "" {
			out.ConsumedIDs[id] = true
		}
		toRemove[el] = true
	}

	out.Stripped = doc.CloneWithout(func(n *svgtree.Node) bool { return toRemove[n] })
	return out, nil
}

// interpretText builds one label per text element. The first run
// supplies position, rotation and style; the text of all the runs
// is joined with single spaces. `ok` is false for an element
// without any text.
func (fc FontConfig) interpretText(text *svgtree.Node, out *Extraction) (label TexLabel, ok bool, err error) {
	elementStyle := map[string]string{}
	if style, has := text.Attr("style"); has {
		elementStyle = SplitStyle(style)
	}

	runs := text.FindAll(svgtree.SVG, "tspan")
	if len(runs) == 0 {
		// plain SVG without tspan wrappers: the element is its own run
		runs = []*svgtree.Node{text}
	}

	// every run is resolved, so that a malformed transform or
	// style on any of them aborts the conversion; only the first
	// one supplies the label placement and style
	var parts []string
	for i, run := range runs {
		if part := strings.TrimSpace(run.Text); part != "" {
			parts = append(parts, part)
		}
		x, err := floatAttr(run, "x")
		if err != nil {
			return label, false, err
		}
		y, err := floatAttr(run, "y")
		if err != nil {
			return label, false, err
		}
		xform, err := AccumulatedTransform(run)
		if err != nil {
			return label, false, err
		}
		runLabel := NewTexLabel(xform.Apply(x, y))
		// rotations turn the other way round in the picture environment
		runLabel.Angle = -round3(xform.RotationDegrees())

		style := elementStyle
		if runStyle, has := run.Attr("style"); has && run != text {
			style = MergeStyles(elementStyle, SplitStyle(runStyle))
		}
		warnings, err := fc.applyStyle(&runLabel, style)
		if err != nil {
			return label, false, err
		}
		for _, w := range warnings {
			log.Println(w)
		}
		out.Warnings = append(out.Warnings, warnings...)
		if i == 0 {
			label = runLabel
		}
	}
	if len(parts) == 0 {
		return label, false, nil
	}
	label.Text = strings.Join(parts, " ")
	return label, true, nil
}

// interpretTextext builds a raw label from a textext element,
// anchored at the lowest left corner of its placed glyphs.
func interpretTextext(el *svgtree.Node) (RawTexLabel, error) {
	code, _ := el.AttrNS(Textext, "text")
	label := RawTexLabel{Code: decodeEscapes(code)}

	xform, err := AccumulatedTransform(el)
	if err != nil {
		return label, err
	}
	minX, maxY := math.Inf(1), math.Inf(-1)
	for _, use := range el.FindAll(svgtree.SVG, "use") {
		ux, err := floatAttr(use, "x")
		if err != nil {
			return label, err
		}
		uy, err := floatAttr(use, "y")
		if err != nil {
			return label, err
		}
		x, y := xform.Apply(ux, uy)
		minX = math.Min(minX, x)
		maxY = math.Max(maxY, y)
	}
	if !math.IsInf(minX, 1) {
		label.X, label.Y = minX, maxY
	}
	return label, nil
}

// decodeEscapes resolves the backslash escapes used by textext
// to store LaTeX source in an XML attribute. Unknown escapes
// are kept as written.
func decodeEscapes(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\\':
			out.WriteByte('\\')
		case '\'', '"':
			out.WriteByte(s[i])
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					out.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			out.WriteString(`\x`)
		case 'u':
			if i+4 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+5], 16, 32); err == nil {
					out.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			out.WriteString(`\u`)
		default:
			out.WriteByte('\\')
			out.WriteByte(s[i])
		}
	}
	return out.String()
}

func floatAttr(n *svgtree.Node, name string) (float64, error) {
	value, has := n.Attr(name)
	if !has {
		return 0, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s attribute %q", name, value)
	}
	return v, nil
}

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
