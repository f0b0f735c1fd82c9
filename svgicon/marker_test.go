package svgicon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// recordDriver counts the layer operations and keeps the clip values it
// received, so tests can check stack balance without rasterizing.
type recordDriver struct {
	pushes, pops int
	clips        []*Bounds
}

func (d *recordDriver) SetupDrawers(willFill, willStroke bool) (Filler, Stroker) {
	var (
		f Filler
		s Stroker
	)
	if willFill {
		f = nopDrawer{}
	}
	if willStroke {
		s = nopDrawer{}
	}
	return f, s
}

func (d *recordDriver) PushLayer() { d.pushes++ }
func (d *recordDriver) PopLayer()  { d.pops++ }
func (d *recordDriver) SetClip(rect *Bounds) {
	d.clips = append(d.clips, rect)
}

type nopDrawer struct{}

func (nopDrawer) Clear()                                 {}
func (nopDrawer) Start(a fixed.Point26_6)                {}
func (nopDrawer) Line(b fixed.Point26_6)                 {}
func (nopDrawer) QuadBezier(b, c fixed.Point26_6)        {}
func (nopDrawer) CubeBezier(b, c, d fixed.Point26_6)     {}
func (nopDrawer) Stop(closeLoop bool)                    {}
func (nopDrawer) SetColor(color Pattern, opacity float64) {}
func (nopDrawer) Draw()                                  {}
func (nopDrawer) SetWinding(useNonZeroWinding bool)      {}
func (nopDrawer) SetStrokeOptions(options StrokeOptions) {}

// probeNode records the transform and viewport in effect when rendered.
type probeNode struct {
	transforms []Matrix2D
	viewports  []Bounds
}

func (p *probeNode) render(ctx *RenderContext) {
	p.transforms = append(p.transforms, ctx.currentState().transform)
	p.viewports = append(p.viewports, ctx.viewport())
}

func newTestContext(d Driver) *RenderContext {
	icon := &SvgIcon{
		ViewBox:   Bounds{W: 100, H: 100},
		Transform: Identity,
		named:     make(map[string]node),
		grads:     make(map[string]*Gradient),
	}
	return newRenderContext(d, icon, 1)
}

func requireMatrix(t *testing.T, expected, got Matrix2D) {
	t.Helper()
	const eps = 1e-9
	require.InDelta(t, expected.A, got.A, eps)
	require.InDelta(t, expected.B, got.B, eps)
	require.InDelta(t, expected.C, got.C, eps)
	require.InDelta(t, expected.D, got.D, eps)
	require.InDelta(t, expected.E, got.E, eps)
	require.InDelta(t, expected.F, got.F, eps)
}

func TestBisectorAngle(t *testing.T) {
	right := Vec2{X: 1, Y: 0}
	up := Vec2{X: 0, Y: 1}
	require.InDelta(t, math.Pi/4, bisectorAngle(right, up), 1e-12)
	require.InDelta(t, -math.Pi/4, bisectorAngle(Vec2{X: 0, Y: -1}, right), 1e-12)

	// opposite tangents: the sum carries no direction, the incoming
	// tangent wins
	require.InDelta(t, 0, bisectorAngle(right, Vec2{X: -1, Y: 0}), 1e-12)
	require.InDelta(t, math.Pi/2, bisectorAngle(up, Vec2{X: 0, Y: -1}), 1e-12)
}

func markerWithProbe(orient Orientation, units MarkerUnits) (*Marker, *probeNode) {
	m := newMarker()
	m.Orient = orient
	m.Units = units
	m.style.OverflowVisible = true // keep the test free of clip noise
	probe := &probeNode{}
	m.children = []node{probe}
	return m, probe
}

func TestMiddleMarkerCornerAngle(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(1, 0))
	p.Line(toFixedP(1, 1))

	m, probe := markerWithProbe(OrientAuto{}, StrokeWidthRelative)

	ctx := newTestContext(&recordDriver{})
	st := ctx.currentState()
	st.MarkerMid = m
	st.LineWidth = 2

	PlaceMarkers(ctx, p.Tessellate())

	require.Len(t, probe.transforms, 1)
	expected := Identity.Translate(1, 0).Rotate(math.Pi / 4).Scale(2, 2)
	requireMatrix(t, expected, probe.transforms[0])
}

func TestOpenPathEndpointAngles(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(0, 5))

	m, probe := markerWithProbe(OrientAuto{}, MarkerUserSpace)

	ctx := newTestContext(&recordDriver{})
	st := ctx.currentState()
	st.MarkerStart = m
	st.MarkerEnd = m

	PlaceMarkers(ctx, p.Tessellate())

	// both endpoints see the single vertical tangent
	require.Len(t, probe.transforms, 2)
	requireMatrix(t, Identity.Rotate(math.Pi/2), probe.transforms[0])
	requireMatrix(t, Identity.Translate(0, 5).Rotate(math.Pi/2), probe.transforms[1])
}

func TestClosedSubpathBisectors(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(1, 0))
	p.Line(toFixedP(0, 1))
	p.Stop(true)

	m, probe := markerWithProbe(OrientAuto{}, MarkerUserSpace)

	ctx := newTestContext(&recordDriver{})
	st := ctx.currentState()
	st.MarkerStart = m
	st.MarkerEnd = m

	PlaceMarkers(ctx, p.Tessellate())

	// the subpath is closed: both boundary markers bisect the corner
	// between the closing segment (0,-1) and the first segment (1,0)
	require.Len(t, probe.transforms, 2)
	requireMatrix(t, Identity.Rotate(-math.Pi/4), probe.transforms[0])
	requireMatrix(t, Identity.Rotate(-math.Pi/4), probe.transforms[1])
}

func TestZeroStrokeWidthSuppressesScaledMarkers(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(1, 0))
	seq := p.Tessellate()

	scaled, scaledProbe := markerWithProbe(OrientAngle(0), StrokeWidthRelative)
	userSpace, userProbe := markerWithProbe(OrientAngle(0), MarkerUserSpace)

	ctx := newTestContext(&recordDriver{})
	st := ctx.currentState()
	st.LineWidth = 0
	st.MarkerStart = scaled
	st.MarkerEnd = userSpace

	PlaceMarkers(ctx, seq)

	require.Empty(t, scaledProbe.transforms)
	require.Len(t, userProbe.transforms, 1)
}

func TestEmptySequenceIsNoop(t *testing.T) {
	m, probe := markerWithProbe(OrientAngle(0), MarkerUserSpace)
	ctx := newTestContext(&recordDriver{})
	st := ctx.currentState()
	st.MarkerStart, st.MarkerMid, st.MarkerEnd = m, m, m

	PlaceMarkers(ctx, nil)
	require.Empty(t, probe.transforms)
}

func TestFixedOrientationIgnoresTangents(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(0, 7))

	m, probe := markerWithProbe(OrientAngle(90), MarkerUserSpace)

	ctx := newTestContext(&recordDriver{})
	ctx.currentState().MarkerStart = m

	PlaceMarkers(ctx, p.Tessellate())

	require.Len(t, probe.transforms, 1)
	requireMatrix(t, Identity.Rotate(math.Pi/2), probe.transforms[0])
}

func TestRenderAtBalancesStacks(t *testing.T) {
	for _, withViewBox := range []bool{false, true} {
		for _, overflow := range []bool{false, true} {
			m := newMarker()
			m.style.OverflowVisible = overflow
			m.children = []node{&probeNode{}, &probeNode{}}
			if withViewBox {
				m.ViewBox = ViewBox{Rect: Bounds{W: 10, H: 10}, Active: true}
			}

			driver := &recordDriver{}
			ctx := newTestContext(driver)

			states, viewports := len(ctx.states), len(ctx.viewports)
			m.RenderAt(ctx, 5, 5, 0, 1)

			require.Equal(t, states, len(ctx.states))
			require.Equal(t, viewports, len(ctx.viewports))
			require.Equal(t, driver.pushes, driver.pops)
			if !overflow {
				// a clip was installed, and removed when the layer closed
				require.NotEmpty(t, driver.clips)
				require.Nil(t, driver.clips[len(driver.clips)-1])
			}
		}
	}
}

func TestMarkerViewBoxFit(t *testing.T) {
	m := newMarker()
	m.Width = Length{Value: 1}
	m.Height = Length{Value: 1}
	m.ViewBox = ViewBox{Rect: Bounds{W: 4, H: 4}, Active: true}
	m.style.OverflowVisible = true
	probe := &probeNode{}
	m.children = []node{probe}

	ctx := newTestContext(&recordDriver{})
	m.RenderAt(ctx, 0, 0, 0, 1)

	require.Len(t, probe.transforms, 1)
	// a 4x4 view box fit into a 1x1 viewport scales content by 0.25
	requireMatrix(t, Identity.Scale(0.25, 0.25), probe.transforms[0])
	require.Equal(t, Bounds{W: 4, H: 4}, probe.viewports[0])
}

func TestRefTranslationAndUnits(t *testing.T) {
	m := newMarker()
	m.RefX = Length{Value: 1}
	m.RefY = Length{Value: 2}
	m.style.OverflowVisible = true
	probe := &probeNode{}
	m.children = []node{probe}

	ctx := newTestContext(&recordDriver{})
	m.RenderAt(ctx, 10, 20, 0, 3)

	require.Len(t, probe.transforms, 1)
	// stroke width scale applies before the reference point shift
	expected := Identity.Translate(10, 20).Scale(3, 3).Translate(-1, -2)
	requireMatrix(t, expected, probe.transforms[0])
}
