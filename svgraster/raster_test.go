package svgraster

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const arrowDoc = `
<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">
  <defs>
    <marker id="dot" refX="1.5" refY="1.5" markerUnits="userSpaceOnUse">
      <circle cx="1.5" cy="1.5" r="1.5" fill="red"/>
    </marker>
  </defs>
  <path d="M10,50 L90,50" fill="none" stroke="black" stroke-width="4"
        marker-end="url(#dot)"/>
</svg>`

func TestRasterMarkedPath(t *testing.T) {
	img, err := RasterSVGIconToImage(strings.NewReader(arrowDoc))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

	// the stroked line covers the viewport center
	_, _, _, a := img.At(50, 50).RGBA()
	require.NotZero(t, a)

	// the marker content is composited at the path end
	r, _, _, _ := img.At(90, 50).RGBA()
	require.NotZero(t, r)

	// nothing is drawn far from the line
	_, _, _, a = img.At(50, 10).RGBA()
	require.Zero(t, a)
}

func TestRasterPlainShapes(t *testing.T) {
	doc := `
<svg viewBox="0 0 20 20">
  <rect x="2" y="2" width="16" height="16" fill="blue"/>
</svg>`
	img, err := RasterSVGIconToImage(strings.NewReader(doc))
	require.NoError(t, err)

	_, _, b, _ := img.At(10, 10).RGBA()
	require.NotZero(t, b)
	_, _, _, a := img.At(0, 0).RGBA()
	require.Zero(t, a)
}

func TestRasterInvalidInput(t *testing.T) {
	_, err := RasterSVGIconToImage(strings.NewReader(""))
	require.Error(t, err)
}
