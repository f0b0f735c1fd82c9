package svgicon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAspectRatio(t *testing.T) {
	ar, err := parseAspectRatio("xMidYMid meet")
	require.NoError(t, err)
	require.Equal(t, defaultAspectRatio, ar)

	ar, err = parseAspectRatio("none")
	require.NoError(t, err)
	require.Equal(t, FitNone, ar.Mode)

	ar, err = parseAspectRatio("xMinYMax slice")
	require.NoError(t, err)
	require.Equal(t, AspectRatio{X: AlignMin, Y: AlignMax, Mode: FitSlice}, ar)

	_, err = parseAspectRatio("sideways")
	require.Error(t, err)
}

func TestAspectRatioFit(t *testing.T) {
	// meet: uniform scale, limited by the tighter axis
	w, h, x, y := defaultAspectRatio.fit(4, 2, 8, 8, 0, 0)
	require.Equal(t, 8.0, w)
	require.Equal(t, 4.0, h)
	require.Equal(t, 0.0, x)
	require.Equal(t, 2.0, y) // centered on the free axis

	// slice: uniform scale, covering the whole box
	slice := AspectRatio{X: AlignMin, Y: AlignMin, Mode: FitSlice}
	w, h, x, y = slice.fit(4, 2, 8, 8, 0, 0)
	require.Equal(t, 16.0, w)
	require.Equal(t, 8.0, h)
	require.Equal(t, 0.0, x)
	require.Equal(t, 0.0, y)

	// none: the box is used as-is
	none := AspectRatio{Mode: FitNone}
	w, h, x, y = none.fit(4, 2, 8, 6, 1, 1)
	require.Equal(t, 8.0, w)
	require.Equal(t, 6.0, h)
	require.Equal(t, 1.0, x)
	require.Equal(t, 1.0, y)
}
