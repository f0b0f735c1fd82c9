package svgicon

import "math"

// Markers are reusable symbols stamped on the vertices of stroked
// paths: an arrowhead on the last point, a dot on every interior point,
// and so on. A definition is selected through the marker-start,
// marker-mid and marker-end style properties and placed by PlaceMarkers
// once the owning path has been tessellated.

// Orientation is the rotation policy of a marker: either a fixed angle
// or a rotation following the local path tangent.
type Orientation interface {
	isOrientation()
}

// OrientAuto rotates each marker instance to the local path direction.
type OrientAuto struct{}

// OrientAngle is a fixed rotation, in degrees.
type OrientAngle float64

func (OrientAuto) isOrientation()  {}
func (OrientAngle) isOrientation() {}

// MarkerUnits controls the coordinate space of marker content.
type MarkerUnits uint8

const (
	// StrokeWidthRelative scales the whole marker by the current
	// stroke width, so markers grow with the line they decorate.
	StrokeWidthRelative MarkerUnits = iota
	// MarkerUserSpace leaves marker content in plain user units.
	MarkerUserSpace
)

// Marker is the definition of one marker symbol. It is filled during
// its parse pass and never mutated afterwards, so several paths may
// safely reference the same definition within a render pass.
type Marker struct {
	ID string

	// RefX, RefY is the point of the marker content translated onto
	// the anchor vertex.
	RefX, RefY Length

	// Width, Height is the marker viewport; only meaningful as a
	// scale target when ViewBox is active, and as the default clip
	// box otherwise.
	Width, Height Length

	Orient      Orientation
	Units       MarkerUnits
	ViewBox     ViewBox
	AspectRatio AspectRatio

	style    PathStyle // style captured at the definition site
	children []node
}

// newMarker returns a definition with the SVG attribute defaults.
func newMarker() *Marker {
	return &Marker{
		Width:       Length{Value: 3},
		Height:      Length{Value: 3},
		Orient:      OrientAngle(0),
		Units:       StrokeWidthRelative,
		AspectRatio: defaultAspectRatio,
		style:       DefaultStyle,
	}
}

// a marker draws nothing where it is defined; instances are
// rendered by PlaceMarkers only
func (m *Marker) render(ctx *RenderContext) {}

// oppositeEps bounds the coordinates of the tangent sum under which the
// incoming and outgoing directions are considered exactly opposite. The
// tangents are unit vectors, so the threshold need not track path scale;
// it is a tunable constant, not a derived one.
const oppositeEps = 1e-12

// bisectorAngle returns the angle of the sum of the two unit tangents,
// the bisector of the corner they form. When the tangents are opposite
// the sum carries no direction, and the angle of the incoming tangent
// alone is returned instead.
func bisectorAngle(in, out Vec2) float64 {
	if math.Abs(in.X+out.X) < oppositeEps && math.Abs(in.Y+out.Y) < oppositeEps {
		return math.Atan2(in.Y, in.X)
	}
	return math.Atan2(in.Y+out.Y, in.X+out.X)
}

// RenderAt draws one instance of the marker anchored at (x, y) in user
// space. orient is the auto-orientation angle in radians, used only when
// the marker is auto-oriented; linewidth scales stroke-width-relative
// markers. The context stacks are restored exactly on every return path.
func (m *Marker) RenderAt(ctx *RenderContext, x, y, orient, linewidth float64) {
	state := ctx.currentState()

	rotation := orient
	if angle, ok := m.Orient.(OrientAngle); ok {
		rotation = float64(angle) * math.Pi / 180
	}

	affine := state.transform.Translate(x, y).Rotate(rotation)
	if m.Units == StrokeWidthRelative {
		affine = affine.Scale(linewidth, linewidth)
	}
	if m.ViewBox.Active {
		// width and height resolve against the outer viewport, then the
		// view box is fit into them and becomes the children's viewport
		w := m.Width.resolve(ctx, widthPercentage)
		h := m.Height.resolve(ctx, heightPercentage)
		w, h, _, _ = m.AspectRatio.fit(m.ViewBox.Rect.W, m.ViewBox.Rect.H, w, h, x, y)
		affine = affine.Scale(w/m.ViewBox.Rect.W, h/m.ViewBox.Rect.H)
		ctx.pushViewport(m.ViewBox.Rect.W, m.ViewBox.Rect.H)
		defer ctx.popViewport()
	}
	affine = affine.Translate(-m.RefX.resolve(ctx, widthPercentage), -m.RefY.resolve(ctx, heightPercentage))

	ctx.pushState()
	defer ctx.popState()

	ctx.resetState()
	ctx.reconstructStyle(m.style)
	st := ctx.currentState()
	st.transform = affine

	ctx.pushLayer()
	defer ctx.popLayer()

	if !st.OverflowVisible {
		if m.ViewBox.Active {
			ctx.clipRect(m.ViewBox.Rect)
		} else {
			ctx.clipRect(Bounds{
				W: m.Width.resolve(ctx, widthPercentage),
				H: m.Height.resolve(ctx, heightPercentage),
			})
		}
	}

	for _, child := range m.children {
		ctx.pushState()
		child.render(ctx)
		ctx.popState()
	}
}

// PlaceMarkers walks a tessellated path once and renders the start,
// middle and end markers selected by the current style state at each
// applicable vertex.
//
// At open path ends only one tangent exists and it is used directly; at
// the boundary of a closed subpath both sides exist and are bisected,
// using the linkage lengths to reach across the move-to: the incoming
// direction of a move-to opening a closed subpath is the end tangent of
// its close-path, and the outgoing direction of a close-path followed
// by a move-to is the start tangent of the first segment of its own
// subpath, not the unrelated jump to the next one.
func PlaceMarkers(ctx *RenderContext, seq VertexSeq) {
	state := ctx.currentState()
	linewidth := state.LineWidth

	start, middle, end := state.MarkerStart, state.MarkerMid, state.MarkerEnd

	if linewidth == 0 {
		// a marker scaled to the stroke width collapses at width zero;
		// skip it instead of rendering a degenerate instance
		if start != nil && start.Units == StrokeWidthRelative {
			start = nil
		}
		if middle != nil && middle.Units == StrokeWidthRelative {
			middle = nil
		}
		if end != nil && end.Units == StrokeWidthRelative {
			end = nil
		}
	}

	if len(seq) == 0 {
		return
	}
	n := len(seq)

	if start != nil {
		angle := 0.
		if _, auto := start.Orient.(OrientAuto); auto && n > 1 {
			out := seq[1].StartDir
			if seq[0].NextLength != 0 {
				in := seq[seq[0].NextLength].EndDir
				angle = bisectorAngle(in, out)
			} else {
				angle = math.Atan2(out.Y, out.X)
			}
		}
		start.RenderAt(ctx, seq[0].X, seq[0].Y, angle, linewidth)
	}

	if middle != nil {
		for i := 1; i < n-1; i++ {
			angle := 0.
			if _, auto := middle.Orient.(OrientAuto); auto {
				var in, out Vec2
				if seq[i].Kind == VertexMove && seq[i].NextLength != 0 {
					in = seq[i+seq[i].NextLength].EndDir
				} else {
					in = seq[i].EndDir
				}
				if seq[i].Kind == VertexClose && seq[i+1].Kind == VertexMove {
					out = seq[i-seq[i].PrevLength+1].StartDir
				} else {
					out = seq[i+1].StartDir
				}
				angle = bisectorAngle(in, out)
			}
			middle.RenderAt(ctx, seq[i].X, seq[i].Y, angle, linewidth)
		}
	}

	if end != nil {
		i := n - 1
		angle := 0.
		if _, auto := end.Orient.(OrientAuto); auto && n > 1 {
			in := seq[i].EndDir
			if seq[i].Kind == VertexClose {
				out := seq[i-seq[i].PrevLength+1].StartDir
				angle = bisectorAngle(in, out)
			} else {
				angle = math.Atan2(in.Y, in.X)
			}
		}
		end.RenderAt(ctx, seq[i].X, seq[i].Y, angle, linewidth)
	}
}
