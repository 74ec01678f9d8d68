package svgicon

import (
	"math"
	"unicode"
)

// Parsing of the SVG path syntax (the `d` attribute),
// compiled into a Path.

// pathCursor tracks the state of an in-progress path,
// embedded in the XML parsing cursor.
type pathCursor struct {
	path                   Path
	points                 []float64
	curX, curY             float64 // offset applied to all coordinates (used by `use` elements)
	placeX, placeY         float64
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	lastKey                uint8
	errorMode              ErrorMode
	inPath                 bool
}

func (c *pathCursor) init() {
	c.placeX = 0.0
	c.placeY = 0.0
	c.points = c.points[0:0]
	c.lastKey = ' '
	c.path.Clear()
	c.inPath = false
}

// getPoints reads a set of floating point values from the SVG format number string,
// and add them to the cursor's points slice.
func (c *pathCursor) getPoints(dataPoints string) error {
	lastIndex := -1
	c.points = c.points[0:0]
	lr := ' '
	for i, r := range dataPoints {
		if !unicode.IsNumber(r) && r != '.' && !(r == '-' && (lr == 'e' || lr == 'E')) && r != 'e' && r != 'E' {
			if lastIndex != -1 {
				value, err := parseFloat(dataPoints[lastIndex:i], 64)
				if err != nil {
					return err
				}
				c.points = append(c.points, value)
			}
			if r == '-' {
				lastIndex = i
			} else {
				lastIndex = -1
			}
		} else if lastIndex == -1 {
			lastIndex = i
		}
		lr = r
	}
	if lastIndex != -1 && lastIndex != len(dataPoints) {
		value, err := parseFloat(dataPoints[lastIndex:], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, value)
	}
	return nil
}

// reflectControlQuad reflects the last quadratic control point
// for the T command.
func (c *pathCursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		c.cntlPtX, c.cntlPtY = c.placeX*2-c.cntlPtX, c.placeY*2-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// reflectControlCube reflects the last cubic control point
// for the S command.
func (c *pathCursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = c.placeX*2-c.cntlPtX, c.placeY*2-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// compilePath translates the svgPath description string into a path.
// All valid SVG path elements are interpreted to draw commands.
func (c *pathCursor) compilePath(svgPath string) error {
	c.init()
	lastIndex := -1
	for i, v := range svgPath {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	return nil
}

// valsToAbs converts relative arguments to absolute
func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

// pointsToAbs converts relative pairs of arguments to absolute
func (c *pathCursor) pointsToAbs(sz int) {
	lastX := c.placeX
	lastY := c.placeY
	for j := 0; j < len(c.points); j += sz {
		for i := 0; i < sz; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX = c.points[(j+sz)-2]
		lastY = c.points[(j+sz)-1]
	}
}

// hasSetsOrPoints verifies the argument count
// for commands taking a multiple of `sz` arguments
func (c *pathCursor) hasSetsOrPoints(sz int) error {
	if len(c.points)%sz != 0 || len(c.points) == 0 {
		return errParamMismatch
	}
	return nil
}

func (c *pathCursor) addSeg(segString string) error {
	// Parse the string describing the numeric points in SVG format
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z':
		fallthrough
	case 'Z':
		if len(c.points) != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm':
		c.pointsToAbs(2)
		fallthrough
	case 'M':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		c.pathStartX, c.pathStartY = c.points[0], c.points[1]
		c.inPath = true
		c.path.Start(toFixedP(c.pathStartX+c.curX, c.pathStartY+c.curY))
		for i := 2; i < l-1; i += 2 {
			c.path.Line(toFixedP(c.points[i]+c.curX, c.points[i+1]+c.curY))
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'l':
		rel = true
		fallthrough
	case 'L':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		if rel {
			c.pointsToAbs(2)
		}
		for i := 0; i < l-1; i += 2 {
			c.path.Line(toFixedP(c.points[i]+c.curX, c.points[i+1]+c.curY))
		}
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if len(c.points) == 0 {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.path.Line(toFixedP(c.placeX+c.curX, p+c.curY))
		}
		c.placeY = c.points[l-1]
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if len(c.points) == 0 {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.path.Line(toFixedP(p+c.curX, c.placeY+c.curY))
		}
		c.placeX = c.points[l-1]
	case 'q':
		rel = true
		fallthrough
	case 'Q':
		if err := c.hasSetsOrPoints(4); err != nil {
			return err
		}
		if rel {
			c.pointsToAbs(4)
		}
		for i := 0; i < l-3; i += 4 {
			c.path.QuadBezier(
				toFixedP(c.points[i]+c.curX, c.points[i+1]+c.curY),
				toFixedP(c.points[i+2]+c.curX, c.points[i+3]+c.curY))
		}
		c.cntlPtX, c.cntlPtY = c.points[l-4], c.points[l-3]
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 't':
		rel = true
		fallthrough
	case 'T':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		if rel {
			c.pointsToAbs(2)
		}
		for i := 0; i < l-1; i += 2 {
			c.reflectControlQuad()
			c.path.QuadBezier(
				toFixedP(c.cntlPtX+c.curX, c.cntlPtY+c.curY),
				toFixedP(c.points[i]+c.curX, c.points[i+1]+c.curY))
			c.lastKey = k
			c.placeX = c.points[i]
			c.placeY = c.points[i+1]
		}
	case 'c':
		rel = true
		fallthrough
	case 'C':
		if err := c.hasSetsOrPoints(6); err != nil {
			return err
		}
		if rel {
			c.pointsToAbs(6)
		}
		for i := 0; i < l-5; i += 6 {
			c.path.CubeBezier(
				toFixedP(c.points[i]+c.curX, c.points[i+1]+c.curY),
				toFixedP(c.points[i+2]+c.curX, c.points[i+3]+c.curY),
				toFixedP(c.points[i+4]+c.curX, c.points[i+5]+c.curY))
		}
		c.cntlPtX, c.cntlPtY = c.points[l-4], c.points[l-3]
		c.placeX = c.points[l-2]
		c.placeY = c.points[l-1]
	case 's':
		rel = true
		fallthrough
	case 'S':
		if err := c.hasSetsOrPoints(4); err != nil {
			return err
		}
		if rel {
			c.pointsToAbs(4)
		}
		for i := 0; i < l-3; i += 4 {
			c.reflectControlCube()
			c.path.CubeBezier(toFixedP(c.cntlPtX+c.curX, c.cntlPtY+c.curY),
				toFixedP(c.points[i]+c.curX, c.points[i+1]+c.curY),
				toFixedP(c.points[i+2]+c.curX, c.points[i+3]+c.curY))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX = c.points[i+2]
			c.placeY = c.points[i+3]
		}
	case 'a', 'A':
		if err := c.hasSetsOrPoints(7); err != nil {
			return err
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.addArcFromA(c.points[i:])
		}
	default:
		if c.errorMode == StrictErrorMode {
			return errCommandUnknown
		}
		// quietly ignore, the path may still be usable
	}
	if k != 'c' && k != 'C' && k != 's' && k != 'S' &&
		k != 'q' && k != 'Q' && k != 't' && k != 'T' {
		c.cntlPtX, c.cntlPtY = 0, 0
	}
	c.lastKey = k
	return nil
}

// ellipseAt adds a closed ellipse of the given center and radii to the path.
func (c *pathCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.placeX, c.placeY = cx+rx, cy
	c.points = c.points[0:0]
	c.points = append(c.points, rx, ry, 0.0, 0.0, 0.0, c.placeX, c.placeY)
	c.path.Start(toFixedP(c.placeX, c.placeY))
	c.placeX, c.placeY = c.path.addArc(c.points, cx, cy, c.placeX, c.placeY)
	c.path.Stop(true)
}

// addArcFromA adds an arc command (A) to the current path,
// locating the ellipse center from the two end points.
func (c *pathCursor) addArcFromA(points []float64) {
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180, c.placeX,
		c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	c.placeX, c.placeY = c.path.addArc(points, cx+c.curX, cy+c.curY, c.placeX+c.curX, c.placeY+c.curY)
	c.placeX -= c.curX // remove the transform of the placeX placeY
	c.placeY -= c.curY
}
