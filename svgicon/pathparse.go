package svgicon

import (
	"errors"
	"math"
	"strings"
)

// Parsing of the path `d` attribute into the Path operation list.

var (
	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errZeroLengthID   = errors.New("zero length id")
)

// pathCursor holds the state of one `d` attribute scan: the current
// point, the start of the current subpath, and the last control point
// for the smooth curve shorthands.
type pathCursor struct {
	path                   Path
	placeX, placeY         float64
	pathStartX, pathStartY float64
	cntlPtX, cntlPtY       float64
	curX, curY             float64 // offset applied by the use element
	points                 []float64
	lastKey                byte
	inPath                 bool
	errorMode              ErrorMode
}

func (c *pathCursor) init() {
	c.placeX, c.placeY = 0, 0
	c.pathStartX, c.pathStartY = -1, -1
	c.points = c.points[:0]
	c.lastKey = ' '
	c.inPath = false
}

// getPoints parses a list of numbers separated by commas, spaces or
// sign characters, filling c.points.
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	last := 0
	isFirst := true
	for i, n := range dataPoints {
		switch n {
		case ',', ' ', '\t', '\n', '\r':
			if !isFirst {
				value, err := parseBasicFloat(dataPoints[last:i])
				if err != nil {
					return err
				}
				c.points = append(c.points, value)
			}
			last = i + 1
			isFirst = true
		case '-', '+':
			// a sign starts a new number, unless it follows an exponent
			if !isFirst && i > 0 && dataPoints[i-1] != 'e' && dataPoints[i-1] != 'E' {
				value, err := parseBasicFloat(dataPoints[last:i])
				if err != nil {
					return err
				}
				c.points = append(c.points, value)
				last = i
			}
			isFirst = false
		default:
			isFirst = false
		}
	}
	if last < len(dataPoints) && strings.TrimSpace(dataPoints[last:]) != "" {
		value, err := parseBasicFloat(dataPoints[last:])
		if err != nil {
			return err
		}
		c.points = append(c.points, value)
	}
	return nil
}

// hasSetsOrPoints verifies the points list holds a multiple of n values
func (c *pathCursor) hasSetsOrPoints(n int) error {
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return errParamMismatch
	}
	return nil
}

// compilePath translates the svgPath `d` description into the
// cursor's path
func (c *pathCursor) compilePath(svgPath string) error {
	c.init()
	lastIndex := -1
	for i, v := range svgPath {
		if strings.ContainsRune("MmLlHhVvCcSsQqTtAaZz", v) {
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

// reflectControlQuad reflects the last quadratic control point around
// the current point, for the T shorthand.
func (c *pathCursor) reflectControlQuad() {
	switch c.lastKey {
	case 'q', 'Q', 'T', 't':
		c.cntlPtX, c.cntlPtY = c.placeX*2-c.cntlPtX, c.placeY*2-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// reflectControlCube is the cubic version, for the S shorthand.
func (c *pathCursor) reflectControlCube() {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = c.placeX*2-c.cntlPtX, c.placeY*2-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
}

// addSeg decodes an SVG segment and appends it to the cursor's path
func (c *pathCursor) addSeg(segString string) error {
	k := segString[0]
	rel := k >= 'a' // lowercase commands are relative
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	rx, ry := 0.0, 0.0
	if rel {
		rx, ry = c.placeX, c.placeY
	}
	switch k {
	case 'z', 'Z':
		if len(c.points) != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm', 'M':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 2 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.placeX = c.points[i] + rx
			c.placeY = c.points[i+1] + ry
			if i == 0 {
				c.pathStartX, c.pathStartY = c.placeX, c.placeY
				c.path.Start(toFixedP(c.placeX+c.curX, c.placeY+c.curY))
				c.inPath = true
			} else {
				// extra coordinate pairs are implicit line-to commands
				c.path.Line(toFixedP(c.placeX+c.curX, c.placeY+c.curY))
			}
		}
	case 'l', 'L':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 2 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.placeX = c.points[i] + rx
			c.placeY = c.points[i+1] + ry
			c.path.Line(toFixedP(c.placeX+c.curX, c.placeY+c.curY))
		}
	case 'v', 'V':
		if err := c.hasSetsOrPoints(1); err != nil {
			return err
		}
		for _, p := range c.points {
			if rel {
				ry = c.placeY
			}
			c.placeY = p + ry
			c.path.Line(toFixedP(c.placeX+c.curX, c.placeY+c.curY))
		}
	case 'h', 'H':
		if err := c.hasSetsOrPoints(1); err != nil {
			return err
		}
		for _, p := range c.points {
			if rel {
				rx = c.placeX
			}
			c.placeX = p + rx
			c.path.Line(toFixedP(c.placeX+c.curX, c.placeY+c.curY))
		}
	case 'q', 'Q':
		if err := c.hasSetsOrPoints(4); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 4 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.cntlPtX = c.points[i] + rx
			c.cntlPtY = c.points[i+1] + ry
			c.placeX = c.points[i+2] + rx
			c.placeY = c.points[i+3] + ry
			c.path.QuadBezier(
				toFixedP(c.cntlPtX+c.curX, c.cntlPtY+c.curY),
				toFixedP(c.placeX+c.curX, c.placeY+c.curY))
		}
	case 't', 'T':
		if err := c.hasSetsOrPoints(2); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 2 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.reflectControlQuad()
			endX := c.points[i] + rx
			endY := c.points[i+1] + ry
			c.path.QuadBezier(
				toFixedP(c.cntlPtX+c.curX, c.cntlPtY+c.curY),
				toFixedP(endX+c.curX, endY+c.curY))
			c.lastKey = k
			c.placeX, c.placeY = endX, endY
		}
	case 'c', 'C':
		if err := c.hasSetsOrPoints(6); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 6 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.path.CubeBezier(
				toFixedP(c.points[i]+rx+c.curX, c.points[i+1]+ry+c.curY),
				toFixedP(c.points[i+2]+rx+c.curX, c.points[i+3]+ry+c.curY),
				toFixedP(c.points[i+4]+rx+c.curX, c.points[i+5]+ry+c.curY))
			c.cntlPtX, c.cntlPtY = c.points[i+2]+rx, c.points[i+3]+ry
			c.placeX = c.points[i+4] + rx
			c.placeY = c.points[i+5] + ry
		}
	case 's', 'S':
		if err := c.hasSetsOrPoints(4); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 4 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.reflectControlCube()
			c.path.CubeBezier(
				toFixedP(c.cntlPtX+c.curX, c.cntlPtY+c.curY),
				toFixedP(c.points[i]+rx+c.curX, c.points[i+1]+ry+c.curY),
				toFixedP(c.points[i+2]+rx+c.curX, c.points[i+3]+ry+c.curY))
			c.lastKey = k
			c.cntlPtX, c.cntlPtY = c.points[i]+rx, c.points[i+1]+ry
			c.placeX = c.points[i+2] + rx
			c.placeY = c.points[i+3] + ry
		}
	case 'a', 'A':
		if err := c.hasSetsOrPoints(7); err != nil {
			return err
		}
		for i := 0; i < len(c.points); i += 7 {
			if rel {
				rx, ry = c.placeX, c.placeY
			}
			c.points[i+5] += rx
			c.points[i+6] += ry
			c.addArcFromCurrent(c.points[i : i+7])
		}
	default:
		if c.errorMode == StrictErrorMode {
			return errCommandUnknown
		}
	}
	c.lastKey = k
	return nil
}

// addArcFromCurrent adds an arc from the current point, the points
// slice holding rx, ry, rotation, large-arc, sweep, endX, endY.
func (c *pathCursor) addArcFromCurrent(points []float64) {
	cx, cy := findEllipseCenter(&points[0], &points[1], points[2]*math.Pi/180,
		c.placeX, c.placeY, points[5], points[6], points[4] == 0, points[3] == 0)
	c.placeX, c.placeY = c.path.addArc(points, cx+c.curX, cy+c.curY, c.placeX+c.curX, c.placeY+c.curY)
	c.placeX -= c.curX
	c.placeY -= c.curY
}

// ellipseAt adds a full ellipse, as two arc halves, to the cursor path
func (c *pathCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.placeX, c.placeY = cx+rx, cy
	c.points = c.points[:0]
	c.points = append(c.points, rx, ry, 0, 0, 0, cx-rx, cy)
	c.path.Start(toFixedP(c.placeX, c.placeY))
	c.path.addArc(c.points, cx, cy, c.placeX, c.placeY)
	c.points[5], c.points[6] = cx+rx, cy
	c.path.addArc(c.points, cx, cy, cx-rx, cy)
	c.path.Stop(true)
	c.placeX, c.placeY = cx+rx, cy
}
