// Implements a raster backend to render SVG images,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"io"
	"math"

	"github.com/benoitkugler/svgmark/svgicon"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

var _ svgicon.Driver = (*Renderer)(nil) // assert interface conformance

// layer is one isolated compositing scope: drawing targets its own
// image, composited onto the parent when the layer is popped.
type layer struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	clip   *svgicon.Bounds // device space; nil means no clip
}

// Renderer implements the painting driver on top of rasterx.
// Isolation scopes are honored with a stack of full size images,
// so that a clip applies to a scope's content as a whole.
type Renderer struct {
	width, height int
	layers        []*layer
}

// NewRenderer returns a renderer with default values,
// drawing to a blank image of the given size.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int) *Renderer {
	rd := &Renderer{width: width, height: height}
	rd.layers = []*layer{rd.newLayer()}
	return rd
}

// Image returns the root image the renderer draws to.
func (rd *Renderer) Image() *image.RGBA {
	return rd.layers[0].img
}

func (rd *Renderer) newLayer() *layer {
	img := image.NewRGBA(image.Rect(0, 0, rd.width, rd.height))
	scanner := rasterx.NewScannerGV(rd.width, rd.height, img, img.Bounds())
	return &layer{
		img:    img,
		filler: rasterx.NewFiller(rd.width, rd.height, scanner),
		dasher: rasterx.NewDasher(rd.width, rd.height, scanner),
	}
}

func (rd *Renderer) top() *layer {
	return rd.layers[len(rd.layers)-1]
}

// RasterSVGIconToImage uses the viewport size of the icon to render it
// into a new image
func RasterSVGIconToImage(icon io.Reader) (*image.RGBA, error) {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	w, h := int(parsedIcon.ViewBox.W), int(parsedIcon.ViewBox.H)
	renderer := NewRenderer(w, h)
	parsedIcon.Draw(renderer, 1.0)
	return renderer.Image(), nil
}

// SetupDrawers returns the filling and stroking drawers of the
// current layer, or nil for the operations not requested.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (svgicon.Filler, svgicon.Stroker) {
	var (
		f svgicon.Filler
		s svgicon.Stroker
	)
	if willFill {
		f = fillerDriver{rd}
	}
	if willStroke {
		s = strokerDriver{rd}
	}
	return f, s
}

// PushLayer opens a new drawing scope; the clip in effect keeps
// applying to the content drawn inside it.
func (rd *Renderer) PushLayer() {
	l := rd.newLayer()
	l.clip = rd.top().clip
	rd.layers = append(rd.layers, l)
}

// PopLayer composites the top layer onto its parent, restricted to the
// clip rectangle in effect on the layer.
func (rd *Renderer) PopLayer() {
	if len(rd.layers) == 1 {
		return
	}
	top := rd.top()
	rd.layers = rd.layers[:len(rd.layers)-1]
	dst := rd.top().img

	r := top.img.Bounds()
	if top.clip != nil {
		r = r.Intersect(clipToRect(*top.clip))
	}
	if r.Empty() {
		return
	}
	xdraw.Draw(dst, r, top.img, r.Min, xdraw.Over)
}

// SetClip replaces the clip rectangle of the current layer. It applies
// when the layer is composited, not to each draw operation.
func (rd *Renderer) SetClip(rect *svgicon.Bounds) {
	if rect != nil {
		copied := *rect
		rd.top().clip = &copied
	} else {
		rd.top().clip = nil
	}
}

// clipToRect conservatively rounds a device space rectangle outwards.
func clipToRect(b svgicon.Bounds) image.Rectangle {
	return image.Rect(
		int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.W)), int(math.Ceil(b.Y+b.H)),
	)
}

func toRasterxGradient(grad svgicon.Gradient) rasterx.Gradient {
	var (
		points   [5]float64
		isRadial bool
	)
	switch dir := grad.Direction.(type) {
	case svgicon.Linear:
		points[0], points[1], points[2], points[3] = dir[0], dir[1], dir[2], dir[3]
		isRadial = false
	case svgicon.Radial:
		points[0], points[1], points[2], points[3], points[4] = dir[0], dir[1], dir[2], dir[3], dir[4] // in rasterx fr is ignored
		isRadial = true
	}
	stops := make([]rasterx.GradStop, len(grad.Stops))
	for i := range grad.Stops {
		stops[i] = rasterx.GradStop(grad.Stops[i])
	}
	return rasterx.Gradient{
		Points:   points,
		Stops:    stops,
		Bounds:   grad.Bounds,
		Matrix:   rasterx.Matrix2D(grad.Matrix),
		Spread:   rasterx.SpreadMethod(grad.Spread),
		Units:    rasterx.GradientUnits(grad.Units),
		IsRadial: isRadial,
	}
}

// resolve gradient color
func setColorFromPattern(color svgicon.Pattern, opacity float64, scanner rasterx.Scanner) {
	switch fillerColor := color.(type) {
	case svgicon.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(fillerColor, opacity))
	case *svgicon.Gradient:
		grad := *fillerColor
		if grad.Units == svgicon.ObjectBoundingBox {
			fRect := scanner.GetPathExtent()
			mnx, mny := float64(fRect.Min.X)/64, float64(fRect.Min.Y)/64
			mxx, mxy := float64(fRect.Max.X)/64, float64(fRect.Max.Y)/64
			grad.Bounds.X, grad.Bounds.Y = mnx, mny
			grad.Bounds.W, grad.Bounds.H = mxx-mnx, mxy-mny
		}
		rasterxGradient := toRasterxGradient(grad)
		scanner.SetColor(rasterxGradient.GetColorFunction(opacity))
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.Arc:       rasterx.Arc,
		svgicon.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgicon.NilCap:       rasterx.ButtCap,
		svgicon.ButtCap:      rasterx.ButtCap,
		svgicon.SquareCap:    rasterx.SquareCap,
		svgicon.RoundCap:     rasterx.RoundCap,
		svgicon.CubicCap:     rasterx.CubicCap,
		svgicon.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgicon.NilGap:       rasterx.FlatGap,
		svgicon.FlatGap:      rasterx.FlatGap,
		svgicon.RoundGap:     rasterx.RoundGap,
		svgicon.CubicGap:     rasterx.CubicGap,
		svgicon.QuadraticGap: rasterx.QuadraticGap,
	}
)

// fillerDriver adapts the current layer's rasterx.Filler.
type fillerDriver struct {
	rd *Renderer
}

func (f fillerDriver) Clear()                     { f.rd.top().filler.Clear() }
func (f fillerDriver) Start(a fixed.Point26_6)    { f.rd.top().filler.Start(a) }
func (f fillerDriver) Line(b fixed.Point26_6)     { f.rd.top().filler.Line(b) }
func (f fillerDriver) QuadBezier(b, c fixed.Point26_6) {
	f.rd.top().filler.QuadBezier(b, c)
}
func (f fillerDriver) CubeBezier(b, c, d fixed.Point26_6) {
	f.rd.top().filler.CubeBezier(b, c, d)
}
func (f fillerDriver) Stop(closeLoop bool) { f.rd.top().filler.Stop(closeLoop) }
func (f fillerDriver) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, f.rd.top().filler.Scanner)
}
func (f fillerDriver) Draw() { f.rd.top().filler.Draw() }
func (f fillerDriver) SetWinding(useNonZeroWinding bool) {
	f.rd.top().filler.SetWinding(useNonZeroWinding)
}

// strokerDriver adapts the current layer's rasterx.Dasher.
type strokerDriver struct {
	rd *Renderer
}

func (s strokerDriver) Clear()                  { s.rd.top().dasher.Clear() }
func (s strokerDriver) Start(a fixed.Point26_6) { s.rd.top().dasher.Start(a) }
func (s strokerDriver) Line(b fixed.Point26_6)  { s.rd.top().dasher.Line(b) }
func (s strokerDriver) QuadBezier(b, c fixed.Point26_6) {
	s.rd.top().dasher.QuadBezier(b, c)
}
func (s strokerDriver) CubeBezier(b, c, d fixed.Point26_6) {
	s.rd.top().dasher.CubeBezier(b, c, d)
}
func (s strokerDriver) Stop(closeLoop bool) { s.rd.top().dasher.Stop(closeLoop) }
func (s strokerDriver) SetColor(color svgicon.Pattern, opacity float64) {
	setColorFromPattern(color, opacity, s.rd.top().dasher.Scanner)
}
func (s strokerDriver) Draw() { s.rd.top().dasher.Draw() }
func (s strokerDriver) SetStrokeOptions(options svgicon.StrokeOptions) {
	s.rd.top().dasher.SetStroke(
		options.LineWidth, options.Join.MiterLimit, capToFunc[options.Join.LeadLineCap],
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}
