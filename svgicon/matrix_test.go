package svgicon

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatrixCompositionOrder(t *testing.T) {
	// chained operations apply right to left on points: the scale
	// first, then the translation
	m := Identity.Translate(2, 3).Scale(2, 2)
	x, y := m.transform(1, 1)
	require.InDelta(t, 4.0, x, 1e-12)
	require.InDelta(t, 5.0, y, 1e-12)
}

func TestMatrixMult(t *testing.T) {
	a := Identity.Rotate(math.Pi / 3).Translate(-4, 7)
	b := Identity.Scale(2, 5).SkewX(0.3)

	bx, by := b.transform(1.5, -2)
	x1, y1 := a.transform(bx, by)
	x2, y2 := a.Mult(b).transform(1.5, -2)
	require.InDelta(t, x1, x2, 1e-12)
	require.InDelta(t, y1, y2, 1e-12)
}

func TestTransformBounds(t *testing.T) {
	m := Identity.Rotate(math.Pi / 2)
	b := m.transformBounds(Bounds{X: 0, Y: 0, W: 2, H: 1})
	require.InDelta(t, -1.0, b.X, 1e-12)
	require.InDelta(t, 0.0, b.Y, 1e-12)
	require.InDelta(t, 1.0, b.W, 1e-12)
	require.InDelta(t, 2.0, b.H, 1e-12)
}
