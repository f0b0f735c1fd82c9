package svgicon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const markerDoc = `
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <defs>
    <marker id="arrow" refX="1" refY="2" markerWidth="6" markerHeight="5"
            orient="auto" markerUnits="userSpaceOnUse"
            viewBox="0 0 10 10" overflow="visible" fill="red">
      <path d="M0,0 L10,5 L0,10 Z"/>
    </marker>
    <marker id="dot"/>
  </defs>
  <path d="M10,10 L90,10" marker-start="url(#arrow)" marker-mid="url(#dot)"
        marker-end="url(#missing)"/>
</svg>`

func TestParseMarkerDefinition(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(markerDoc), WarnErrorMode)
	require.NoError(t, err)

	arrow := icon.findMarker("url(#arrow)")
	require.NotNil(t, arrow)
	require.Equal(t, "arrow", arrow.ID)
	require.Equal(t, Length{Value: 1}, arrow.RefX)
	require.Equal(t, Length{Value: 2}, arrow.RefY)
	require.Equal(t, Length{Value: 6}, arrow.Width)
	require.Equal(t, Length{Value: 5}, arrow.Height)
	require.Equal(t, MarkerUserSpace, arrow.Units)
	require.IsType(t, OrientAuto{}, arrow.Orient)
	require.True(t, arrow.ViewBox.Active)
	require.Equal(t, Bounds{W: 10, H: 10}, arrow.ViewBox.Rect)
	require.True(t, arrow.style.OverflowVisible)
	require.Len(t, arrow.children, 1)

	// attribute defaults
	dot := icon.findMarker("#dot")
	require.NotNil(t, dot)
	require.Equal(t, Length{Value: 3}, dot.Width)
	require.Equal(t, Length{Value: 3}, dot.Height)
	require.Equal(t, StrokeWidthRelative, dot.Units)
	require.Equal(t, OrientAngle(0), dot.Orient)
	require.False(t, dot.ViewBox.Active)
	require.False(t, dot.style.OverflowVisible)
}

func TestParseMarkerProperties(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(markerDoc), WarnErrorMode)
	require.NoError(t, err)

	require.Len(t, icon.elements, 1)
	shape, ok := icon.elements[0].(*shapeNode)
	require.True(t, ok)

	require.Same(t, icon.findMarker("#arrow"), shape.style.MarkerStart)
	require.Same(t, icon.findMarker("#dot"), shape.style.MarkerMid)
	// an unresolved reference is silently dropped
	require.Nil(t, shape.style.MarkerEnd)
}

func TestParseMarkerShorthand(t *testing.T) {
	doc := `
<svg viewBox="0 0 10 10">
  <defs><marker id="m"><circle cx="1" cy="1" r="1"/></marker></defs>
  <path d="M0,0 L5,5" marker="url(#m)"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), WarnErrorMode)
	require.NoError(t, err)

	shape := icon.elements[0].(*shapeNode)
	m := icon.findMarker("#m")
	require.NotNil(t, m)
	require.Same(t, m, shape.style.MarkerStart)
	require.Same(t, m, shape.style.MarkerMid)
	require.Same(t, m, shape.style.MarkerEnd)
}

func TestParseOrientAngle(t *testing.T) {
	doc := `
<svg viewBox="0 0 10 10">
  <defs><marker id="m" orient="45"/></defs>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), WarnErrorMode)
	require.NoError(t, err)
	require.Equal(t, OrientAngle(45), icon.findMarker("#m").Orient)
}

func TestFindMarkerRejectsOtherNodes(t *testing.T) {
	doc := `
<svg viewBox="0 0 10 10">
  <g id="grp"><path d="M0,0 L1,1"/></g>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), WarnErrorMode)
	require.NoError(t, err)
	require.Nil(t, icon.findMarker("#grp"))
	require.Nil(t, icon.findMarker("plainred"))
}

func TestDefsContentIsNotRendered(t *testing.T) {
	icon, err := ReadIconStream(strings.NewReader(markerDoc), WarnErrorMode)
	require.NoError(t, err)

	driver := &recordDriver{}
	icon.Draw(driver, 1.0)
	// one layer pair per marker instance: only the start marker is
	// stamped, a two vertices path has no interior and the end
	// reference does not resolve
	require.Equal(t, driver.pushes, driver.pops)
	require.Equal(t, 1, driver.pushes)
}

func TestParseUse(t *testing.T) {
	doc := `
<svg viewBox="0 0 10 10">
  <defs><rect id="box" width="2" height="2"/></defs>
  <use href="#box" x="3" y="4"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), WarnErrorMode)
	require.NoError(t, err)

	require.Len(t, icon.elements, 1)
	use, ok := icon.elements[0].(*useNode)
	require.True(t, ok)
	require.Equal(t, "#box", use.href)
	require.Equal(t, 3.0, use.x)
	require.Equal(t, 4.0, use.y)
	require.NotNil(t, icon.lookupName("box"))
}

func TestParseGradient(t *testing.T) {
	doc := `
<svg viewBox="0 0 10 10">
  <linearGradient id="lg" x1="0" y1="0" x2="1" y2="0">
    <stop offset="0" stop-color="black"/>
    <stop offset="100%" stop-color="white" stop-opacity="0.5"/>
  </linearGradient>
  <rect width="4" height="4" fill="url(#lg)"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), WarnErrorMode)
	require.NoError(t, err)

	grad, ok := icon.grads["lg"]
	require.True(t, ok)
	require.Len(t, grad.Stops, 2)
	require.Equal(t, 1.0, grad.Stops[1].Offset)
	require.Equal(t, 0.5, grad.Stops[1].Opacity)

	shape := icon.elements[0].(*shapeNode)
	require.Same(t, grad, shape.style.FillerColor)
}

func TestParsePathCommands(t *testing.T) {
	var c pathCursor
	err := c.compilePath("M1,2 l2,0 h3 v4 q1,1 2,0 t2,0 c1,1 2,1 3,0 s2,-1 3,0 a1,1 0 0 1 2,0 z")
	require.NoError(t, err)
	require.NotEmpty(t, c.path)
	require.IsType(t, MoveTo{}, c.path[0])
	require.IsType(t, Close{}, c.path[len(c.path)-1])

	err = c.compilePath("M1,2 L3")
	require.Error(t, err)
}

func TestParseTransformAttr(t *testing.T) {
	doc := `
<svg viewBox="0 0 10 10">
  <path d="M0,0 L1,0" transform="translate(2,3) scale(2)"/>
</svg>`
	icon, err := ReadIconStream(strings.NewReader(doc), WarnErrorMode)
	require.NoError(t, err)

	shape := icon.elements[0].(*shapeNode)
	x, y := shape.style.transform.transform(1, 1)
	require.InDelta(t, 4.0, x, 1e-12)
	require.InDelta(t, 5.0, y, 1e-12)
}
