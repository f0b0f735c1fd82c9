package svgicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireDir(t *testing.T, expected Vec2, got Vec2) {
	t.Helper()
	require.InDelta(t, expected.X, got.X, 1e-9)
	require.InDelta(t, expected.Y, got.Y, 1e-9)
}

func TestTessellateLineTangents(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(2, 0))
	p.Line(toFixedP(2, 3))

	seq := p.Tessellate()
	require.Len(t, seq, 3)

	require.Equal(t, VertexMove, seq[0].Kind)
	require.Equal(t, Vec2{}, seq[0].StartDir)
	require.Equal(t, Vec2{}, seq[0].EndDir)

	requireDir(t, Vec2{X: 1}, seq[1].StartDir)
	requireDir(t, Vec2{X: 1}, seq[1].EndDir)
	requireDir(t, Vec2{Y: 1}, seq[2].StartDir)
	requireDir(t, Vec2{Y: 1}, seq[2].EndDir)
}

func TestTessellateCurveTangents(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.QuadBezier(toFixedP(1, 0), toFixedP(1, 1))

	seq := p.Tessellate()
	require.Len(t, seq, 2)
	require.Equal(t, VertexCurve, seq[1].Kind)
	// tangents follow the control polygon at each end
	requireDir(t, Vec2{X: 1}, seq[1].StartDir)
	requireDir(t, Vec2{Y: 1}, seq[1].EndDir)
}

func TestTessellateCubicDegenerateControls(t *testing.T) {
	var p Path
	// first control point coincides with the start: the tangent is
	// taken from the next control polygon edge
	p.Start(toFixedP(0, 0))
	p.CubeBezier(toFixedP(0, 0), toFixedP(3, 0), toFixedP(3, 3))

	seq := p.Tessellate()
	require.Len(t, seq, 2)
	requireDir(t, Vec2{X: 1}, seq[1].StartDir)
}

func TestTessellateClosedSubpathLinkage(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(1, 0))
	p.Stop(true)
	p.Start(toFixedP(5, 5))
	p.Line(toFixedP(6, 5))
	p.Line(toFixedP(6, 6))
	p.Stop(true)

	seq := p.Tessellate()
	require.Len(t, seq, 7)

	// first subpath: move(0) .. close(2)
	require.Equal(t, 2, seq[0].NextLength)
	require.Equal(t, VertexClose, seq[2].Kind)
	require.Equal(t, 2, seq[2].PrevLength)
	// the close vertex sits on the subpath start
	require.Equal(t, 0.0, seq[2].X)
	require.Equal(t, 0.0, seq[2].Y)

	// second subpath: move(3) .. close(6)
	require.Equal(t, 3, seq[3].NextLength)
	require.Equal(t, 3, seq[6].PrevLength)
	require.Equal(t, 5.0, seq[6].X)
	require.Equal(t, 5.0, seq[6].Y)

	// linkage round trips with plain index arithmetic
	require.Equal(t, VertexClose, seq[0+seq[0].NextLength].Kind)
	require.Equal(t, VertexMove, seq[6-seq[6].PrevLength].Kind)
}

func TestTessellateOpenSubpathHasNoLinkage(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.Line(toFixedP(1, 1))

	seq := p.Tessellate()
	require.Len(t, seq, 2)
	require.Equal(t, 0, seq[0].NextLength)
}
