package svgicon

import (
	"math"
	"strings"
)

// The parsed document is a tree of graphics nodes, a closed set of
// variants sharing one capability: drawing themselves into a render
// context. Rendering walks the tree with an explicit, balanced
// state stack, mirroring the style stack used during parsing.

// node is a graphics element of the parsed document.
type node interface {
	render(ctx *RenderContext)
}

// shapeNode binds a path to the style it was declared with.
type shapeNode struct {
	path  Path
	style PathStyle
}

// groupNode renders each of its children under its own scope.
type groupNode struct {
	children []node
}

// useNode is a reference to a named node, drawn at an offset.
type useNode struct {
	href string
	x, y float64
}

func (s *shapeNode) render(ctx *RenderContext) {
	st := ctx.currentState()
	base := st.transform
	*st = s.style
	st.transform = base.Mult(s.style.transform)
	ctx.drawPath(s.path, st)
	if st.MarkerStart != nil || st.MarkerMid != nil || st.MarkerEnd != nil {
		PlaceMarkers(ctx, s.path.Tessellate())
	}
}

func (g *groupNode) render(ctx *RenderContext) {
	for _, child := range g.children {
		ctx.pushState()
		child.render(ctx)
		ctx.popState()
	}
}

func (u *useNode) render(ctx *RenderContext) {
	target := ctx.icon.lookupName(u.href)
	if target == nil {
		return // dangling references are not an error
	}
	st := ctx.currentState()
	st.transform = st.transform.Translate(u.x, u.y)
	target.render(ctx)
}

// name registry

func (s *SvgIcon) registerName(id string, n node) {
	if id == "" {
		return
	}
	s.named[id] = n
}

func (s *SvgIcon) lookupName(id string) node {
	return s.named[id]
}

// findMarker resolves a url(#id) or #id reference to a marker
// definition. Unknown names and nodes of another kind yield nil:
// the shape is simply drawn without that marker.
func (s *SvgIcon) findMarker(ref string) *Marker {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "url(") && strings.HasSuffix(ref, ")") {
		ref = strings.TrimSpace(ref[4 : len(ref)-1])
	}
	if !strings.HasPrefix(ref, "#") {
		return nil
	}
	m, _ := s.lookupName(ref[1:]).(*Marker)
	return m
}

// RenderContext carries the driver and the shared state stacks of one
// render pass. It is the only mutable resource while drawing; helpers
// below keep every push paired with exactly one pop.
type RenderContext struct {
	driver  Driver
	icon    *SvgIcon
	opacity float64

	states    []PathStyle
	viewports []Bounds  // only W and H are used, for percentage resolution
	clips     []*Bounds // device space, one entry per open layer (nil: no clip)
}

func newRenderContext(d Driver, icon *SvgIcon, opacity float64) *RenderContext {
	root := DefaultStyle
	root.transform = icon.Transform
	return &RenderContext{
		driver:    d,
		icon:      icon,
		opacity:   opacity,
		states:    []PathStyle{root},
		viewports: []Bounds{{W: icon.ViewBox.W, H: icon.ViewBox.H}},
		clips:     []*Bounds{nil},
	}
}

// currentState returns the mutable style state on top of the stack.
func (ctx *RenderContext) currentState() *PathStyle {
	return &ctx.states[len(ctx.states)-1]
}

// pushState duplicates the current state.
func (ctx *RenderContext) pushState() {
	ctx.states = append(ctx.states, *ctx.currentState())
}

func (ctx *RenderContext) popState() {
	ctx.states = ctx.states[:len(ctx.states)-1]
}

// resetState reinitializes the current state from the document default,
// erasing anything inherited from the referencing element.
func (ctx *RenderContext) resetState() {
	*ctx.currentState() = DefaultStyle
}

// reconstructStyle rebuilds the current state from the style captured at
// a node's position in the tree, so that content is styled as declared
// there and not at the point of reference. The transform is left
// untouched: placement is the caller's concern.
func (ctx *RenderContext) reconstructStyle(style PathStyle) {
	st := ctx.currentState()
	transform := st.transform
	*st = style
	st.transform = transform
}

func (ctx *RenderContext) viewport() Bounds {
	return ctx.viewports[len(ctx.viewports)-1]
}

// pushViewport establishes a new viewport for percentage resolution.
func (ctx *RenderContext) pushViewport(w, h float64) {
	ctx.viewports = append(ctx.viewports, Bounds{W: w, H: h})
}

func (ctx *RenderContext) popViewport() {
	ctx.viewports = ctx.viewports[:len(ctx.viewports)-1]
}

// pushLayer opens an isolated compositing layer; the clip in effect is
// saved and restored by the matching popLayer.
func (ctx *RenderContext) pushLayer() {
	ctx.driver.PushLayer()
	ctx.clips = append(ctx.clips, ctx.clips[len(ctx.clips)-1])
}

func (ctx *RenderContext) popLayer() {
	ctx.driver.PopLayer()
	ctx.clips = ctx.clips[:len(ctx.clips)-1]
	ctx.driver.SetClip(ctx.clips[len(ctx.clips)-1])
}

// clipRect intersects the current clip with a rectangle given in the
// current user space.
func (ctx *RenderContext) clipRect(rect Bounds) {
	dev := ctx.currentState().transform.transformBounds(rect)
	if cur := ctx.clips[len(ctx.clips)-1]; cur != nil {
		dev = intersectBounds(dev, *cur)
	}
	ctx.clips[len(ctx.clips)-1] = &dev
	ctx.driver.SetClip(&dev)
}

func intersectBounds(a, b Bounds) Bounds {
	minX := math.Max(a.X, b.X)
	minY := math.Max(a.Y, b.Y)
	maxX := math.Min(a.X+a.W, b.X+b.W)
	maxY := math.Min(a.Y+a.H, b.Y+b.H)
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return Bounds{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
