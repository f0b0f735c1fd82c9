package svgicon

import (
	"encoding/xml"
	"errors"
	"log"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// ErrorMode controls the behaviour of the parser when it finds an
// element or an attribute it does not handle.
type ErrorMode uint8

const (
	IgnoreErrorMode ErrorMode = iota
	WarnErrorMode
	StrictErrorMode
)

// PathStyle holds the state of the SVG style
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor Pattern // either PlainColor or Gradient

	// marker definitions selected by the marker-start, marker-mid and
	// marker-end properties; nil when none applies
	MarkerStart, MarkerMid, MarkerEnd *Marker

	// OverflowVisible disables the clip normally applied
	// around marker content.
	OverflowVisible bool

	transform Matrix2D // current transform
}

// iconCursor is used while parsing SVG files
type iconCursor struct {
	pathCursor
	icon       *SvgIcon
	styleStack []PathStyle
	grad       *Gradient

	inTitleText, inDescText, inGrad bool

	// targets tracks where parsed nodes are appended: the visible
	// element list, a group, a marker's content or the defs scratch
	targets     []*[]node
	defsScratch []node
}

// target returns the node list new elements are appended to.
func (c *iconCursor) target() *[]node {
	return c.targets[len(c.targets)-1]
}

func (c *iconCursor) appendNode(n node) {
	t := c.target()
	*t = append(*t, n)
}

func (c *iconCursor) readTransformAttr(m1 Matrix2D, k string) (Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(c.points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

func (c *iconCursor) parseTransform(v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := c.styleStack[len(c.styleStack)-1].transform
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func (c *iconCursor) readStyleAttr(curStyle *PathStyle, k, v string) error {
	switch k {
	case "fill":
		gradient, ok := c.readGradURL(v)
		if ok {
			curStyle.FillerColor = gradient
			break
		}
		optCol, err := parseSVGColor(v)
		curStyle.FillerColor = optCol.asPattern()
		return err
	case "stroke":
		gradient, ok := c.readGradURL(v)
		if ok {
			curStyle.LinerColor = gradient
			break
		}
		col, errc := parseSVGColor(v)
		if errc != nil {
			return errc
		}
		curStyle.LinerColor = col.asPattern()
	case "marker-start":
		curStyle.MarkerStart = c.icon.findMarker(v)
	case "marker-mid":
		curStyle.MarkerMid = c.icon.findMarker(v)
	case "marker-end":
		curStyle.MarkerEnd = c.icon.findMarker(v)
	case "marker": // shorthand for the three positions
		m := c.icon.findMarker(v)
		curStyle.MarkerStart, curStyle.MarkerMid, curStyle.MarkerEnd = m, m, m
	case "overflow":
		curStyle.OverflowVisible = v == "visible" || v == "auto"
	case "stroke-linegap":
		switch v {
		case "flat":
			curStyle.Join.LineGap = FlatGap
		case "round":
			curStyle.Join.LineGap = RoundGap
		case "cubic":
			curStyle.Join.LineGap = CubicGap
		case "quadratic":
			curStyle.Join.LineGap = QuadraticGap
		}
	case "stroke-leadlinecap":
		switch v {
		case "butt":
			curStyle.Join.LeadLineCap = ButtCap
		case "round":
			curStyle.Join.LeadLineCap = RoundCap
		case "square":
			curStyle.Join.LeadLineCap = SquareCap
		case "cubic":
			curStyle.Join.LeadLineCap = CubicCap
		case "quadratic":
			curStyle.Join.LeadLineCap = QuadraticCap
		}
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.Join.TrailLineCap = ButtCap
		case "round":
			curStyle.Join.TrailLineCap = RoundCap
		case "square":
			curStyle.Join.TrailLineCap = SquareCap
		case "cubic":
			curStyle.Join.TrailLineCap = CubicCap
		case "quadratic":
			curStyle.Join.TrailLineCap = QuadraticCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v != "none" {
			dashes := splitOnCommaOrSpace(v)
			dList := make([]float64, len(dashes))
			for i, dstr := range dashes {
				d, err := parseBasicFloat(dstr)
				if err != nil {
					return err
				}
				dList[i] = d
			}
			curStyle.Dash.Dash = dList
			break
		}
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack. Only color and opacity are supported
// for fill. Note that this parses both the contents of a style attribute plus
// direct fill and opacity attributes.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, pair := range pairs {
		kv := strings.Split(pair, ":")
		if len(kv) >= 2 {
			k := strings.ToLower(kv[0])
			k = strings.TrimSpace(k)
			v := strings.TrimSpace(kv[1])
			err := c.readStyleAttr(&curStyle, k, v)
			if err != nil {
				return err
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func (c *iconCursor) readStartElement(se xml.StartElement) (err error) {
	id := ""
	for _, attr := range se.Attr {
		if attr.Name.Local == "id" {
			id = attr.Value
		}
	}

	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		errStr := "Cannot process svg element " + se.Name.Local
		if c.errorMode == StrictErrorMode {
			return errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			log.Println(errStr)
		}
		return nil
	}
	err = df(c, se.Attr)

	if len(c.path) > 0 {
		// the cursor parsed a path from the xml element
		shape := &shapeNode{
			path:  append(Path{}, c.path...),
			style: c.styleStack[len(c.styleStack)-1],
		}
		c.appendNode(shape)
		c.icon.registerName(id, shape)
		c.path = c.path[:0]
	}
	return
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"marker":         markerF,
	"use":            useF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        circleF, //circleF handles ellipse also
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

func svgF(c *iconCursor, attrs []xml.Attr) error {
	c.icon.ViewBox.X = 0
	c.icon.ViewBox.Y = 0
	c.icon.ViewBox.W = 0
	c.icon.ViewBox.H = 0
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if len(c.points) != 4 {
				return errParamMismatch
			}
			c.icon.ViewBox.X = c.points[0]
			c.icon.ViewBox.Y = c.points[1]
			c.icon.ViewBox.W = c.points[2]
			c.icon.ViewBox.H = c.points[3]
		case "width":
			c.icon.Width = attr.Value
			var l Length
			l, err = parseLength(attr.Value)
			if l.Unit != Perc { // percentages have no outer reference here
				width = l.Value * absoluteUnits[l.Unit]
			}
		case "height":
			c.icon.Height = attr.Value
			var l Length
			l, err = parseLength(attr.Value)
			if l.Unit != Perc {
				height = l.Value * absoluteUnits[l.Unit]
			}
		}
		if err != nil {
			return err
		}
	}
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = height
	}
	return nil
}

// g pushes a scope for its children; the style part is handled by the
// shared style stack
func gF(c *iconCursor, attrs []xml.Attr) error {
	g := &groupNode{}
	c.appendNode(g)
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			c.icon.registerName(attr.Value, g)
		}
	}
	c.targets = append(c.targets, &g.children)
	return nil
}

// markerF parses a marker definition. The element contributes nothing
// to the visible tree: it only registers the definition and collects
// its children, to be stamped later on marked paths.
func markerF(c *iconCursor, attrs []xml.Attr) error {
	m := newMarker()
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			m.ID = attr.Value
		case "refX":
			m.RefX, err = parseLength(attr.Value)
		case "refY":
			m.RefY, err = parseLength(attr.Value)
		case "markerWidth":
			m.Width, err = parseLength(attr.Value)
		case "markerHeight":
			m.Height, err = parseLength(attr.Value)
		case "orient":
			if strings.TrimSpace(attr.Value) == "auto" {
				m.Orient = OrientAuto{}
			} else {
				var angle float64
				angle, err = parseAngle(attr.Value)
				m.Orient = OrientAngle(angle)
			}
		case "markerUnits":
			switch strings.TrimSpace(attr.Value) {
			case "userSpaceOnUse":
				m.Units = MarkerUserSpace
			case "strokeWidth":
				m.Units = StrokeWidthRelative
			default:
				err = errParamMismatch
			}
		case "viewBox":
			err = c.getPoints(attr.Value)
			if err == nil && len(c.points) != 4 {
				err = errParamMismatch
			}
			if err == nil {
				m.ViewBox = ViewBox{
					Rect:   Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]},
					Active: true,
				}
			}
		case "preserveAspectRatio":
			m.AspectRatio, err = parseAspectRatio(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if m.ID == "" {
		return errZeroLengthID
	}
	// the style in effect here is reconstructed when the marker is stamped
	m.style = c.styleStack[len(c.styleStack)-1]
	c.icon.registerName(m.ID, m)
	c.targets = append(c.targets, &m.children)
	return nil
}

func rectF(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseBasicFloat(attr.Value)
		case "y":
			y, err = parseBasicFloat(attr.Value)
		case "width":
			w, err = parseBasicFloat(attr.Value)
		case "height":
			h, err = parseBasicFloat(attr.Value)
		case "rx":
			rx, err = parseBasicFloat(attr.Value)
		case "ry":
			ry, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	c.path.addRoundRect(x+c.curX, y+c.curY, w+x+c.curX, h+y+c.curY, rx, ry, 0)
	return nil
}

func circleF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseBasicFloat(attr.Value)
		case "cy":
			cy, err = parseBasicFloat(attr.Value)
		case "r":
			rx, err = parseBasicFloat(attr.Value)
			ry = rx
		case "rx":
			rx, err = parseBasicFloat(attr.Value)
		case "ry":
			ry, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.ellipseAt(cx+c.curX, cy+c.curY, rx, ry)
	return nil
}

func lineF(c *iconCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseBasicFloat(attr.Value)
		case "x2":
			x2, err = parseBasicFloat(attr.Value)
		case "y1":
			y1, err = parseBasicFloat(attr.Value)
		case "y2":
			y2, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.path.Start(fixed.Point26_6{
		X: fixed.Int26_6((x1 + c.curX) * 64),
		Y: fixed.Int26_6((y1 + c.curY) * 64)})
	c.path.Line(fixed.Point26_6{
		X: fixed.Int26_6((x2 + c.curX) * 64),
		Y: fixed.Int26_6((y2 + c.curY) * 64)})
	return nil
}

func polylineF(c *iconCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "points":
			err = c.getPoints(attr.Value)
			if len(c.points)%2 != 0 {
				return errors.New("polygon has odd number of points")
			}
		}
		if err != nil {
			return err
		}
	}
	if len(c.points) > 4 {
		c.path.Start(fixed.Point26_6{
			X: fixed.Int26_6((c.points[0] + c.curX) * 64),
			Y: fixed.Int26_6((c.points[1] + c.curY) * 64)})
		for i := 2; i < len(c.points)-1; i += 2 {
			c.path.Line(fixed.Point26_6{
				X: fixed.Int26_6((c.points[i] + c.curX) * 64),
				Y: fixed.Int26_6((c.points[i+1] + c.curY) * 64)})
		}
	}
	return nil
}

func polygonF(c *iconCursor, attrs []xml.Attr) error {
	err := polylineF(c, attrs)
	if len(c.points) > 4 {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *iconCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "d":
			err = c.compilePath(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func descF(c *iconCursor, attrs []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func titleF(c *iconCursor, attrs []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

// defsF redirects the following nodes to a scratch list: they are
// registered by id but not drawn directly.
func defsF(c *iconCursor, attrs []xml.Attr) error {
	c.targets = append(c.targets, &c.defsScratch)
	return nil
}

func useF(c *iconCursor, attrs []xml.Attr) error {
	var (
		href string
		x, y float64
		err  error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "href":
			href = attr.Value
		case "x":
			x, err = parseBasicFloat(attr.Value)
		case "y":
			y, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if href == "" {
		return errors.New("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return errors.New("only the ID CSS selector is supported")
	}
	// resolved at render time, so a use may precede its target
	c.appendNode(&useNode{href: href, x: x, y: y})
	return nil
}

func linearGradientF(c *iconCursor, attrs []xml.Attr) error {
	var err error
	c.inGrad = true
	direction := Linear{0, 0, 1, 0}
	c.grad = &Gradient{Direction: direction, Bounds: c.icon.ViewBox, Matrix: Identity}
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.icon.grads[attr.Value] = c.grad
		case "x1":
			direction[0], err = readFraction(attr.Value)
		case "y1":
			direction[1], err = readFraction(attr.Value)
		case "x2":
			direction[2], err = readFraction(attr.Value)
		case "y2":
			direction[3], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	c.grad.Direction = direction
	return nil
}

func radialGradientF(c *iconCursor, attrs []xml.Attr) error {
	c.inGrad = true
	direction := Radial{0.5, 0.5, 0.5, 0.5, 0.5, 0.5}
	c.grad = &Gradient{Direction: direction, Bounds: c.icon.ViewBox, Matrix: Identity}
	var setFx, setFy bool
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "id":
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.icon.grads[attr.Value] = c.grad
		case "cx":
			direction[0], err = readFraction(attr.Value)
		case "cy":
			direction[1], err = readFraction(attr.Value)
		case "fx":
			setFx = true
			direction[2], err = readFraction(attr.Value)
		case "fy":
			setFy = true
			direction[3], err = readFraction(attr.Value)
		case "r":
			direction[4], err = readFraction(attr.Value)
		case "fr":
			direction[5], err = readFraction(attr.Value)
		default:
			err = c.readGradAttr(attr)
		}
		if err != nil {
			return err
		}
	}
	if !setFx { // set fx to cx by default
		direction[2] = direction[0]
	}
	if !setFy { // set fy to cy by default
		direction[3] = direction[1]
	}
	c.grad.Direction = direction
	return nil
}

func stopF(c *iconCursor, attrs []xml.Attr) error {
	var err error
	if c.inGrad {
		stop := GradStop{Opacity: 1.0}
		for _, attr := range attrs {
			switch attr.Name.Local {
			case "offset":
				stop.Offset, err = readFraction(attr.Value)
			case "stop-color":
				var optColor optionnalColor
				optColor, err = parseSVGColor(attr.Value)
				stop.StopColor = optColor.asColor()
			case "stop-opacity":
				stop.Opacity, err = parseBasicFloat(attr.Value)
			}
			if err != nil {
				return err
			}
		}
		c.grad.Stops = append(c.grad.Stops, stop)
	}
	return nil
}

// readGradURL reads an url(#id) gradient reference; ok is false for
// any other value, including unresolved references, and the shape then
// keeps its inherited pattern.
func (c *iconCursor) readGradURL(v string) (grad *Gradient, ok bool) {
	if strings.HasPrefix(v, "url(") && strings.HasSuffix(v, ")") {
		urlStr := strings.TrimSpace(v[4 : len(v)-1])
		if strings.HasPrefix(urlStr, "#") {
			grad, ok = c.icon.grads[urlStr[1:]]
		}
	}
	return
}

// readGradAttr reads the attributes shared by linear and radial
// gradient elements.
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
		case "pad":
			c.grad.Spread = PadSpread
		case "reflect":
			c.grad.Spread = ReflectSpread
		case "repeat":
			c.grad.Spread = RepeatSpread
		}
	case "href":
		// inherit stops and direction from the referenced gradient
		id := strings.TrimPrefix(strings.TrimSpace(attr.Value), "#")
		if base, ok := c.icon.grads[id]; ok {
			stops := append([]GradStop{}, base.Stops...)
			c.grad.Stops = stops
			c.grad.Spread = base.Spread
			c.grad.Units = base.Units
		}
	}
	return
}
