package svgicon

import (
	"math"
	"strings"
)

// ViewBox is a coordinate-remapping rectangle. When active, the content
// of the element is fit into its allotted box following an aspect-ratio
// policy, and the rectangle becomes the viewport of its children.
type ViewBox struct {
	Rect   Bounds
	Active bool
}

// FitMode controls how the viewBox ratio is reconciled with the ratio of
// the target box.
type FitMode uint8

const (
	FitMeet  FitMode = iota // uniform scale, whole viewBox visible
	FitSlice                // uniform scale, whole box covered
	FitNone                 // non-uniform scale, ratio not preserved
)

// Align places the scaled viewBox inside the leftover space on one axis.
type Align uint8

const (
	AlignMin Align = iota
	AlignMid
	AlignMax
)

func (a Align) fraction() float64 {
	switch a {
	case AlignMid:
		return 0.5
	case AlignMax:
		return 1
	default:
		return 0
	}
}

// AspectRatio is a parsed preserveAspectRatio policy. It is only
// consulted when a viewBox is active.
type AspectRatio struct {
	X, Y Align
	Mode FitMode
}

// the SVG initial value
var defaultAspectRatio = AspectRatio{X: AlignMid, Y: AlignMid, Mode: FitMeet}

// fit maps a viewBox of size (vbW, vbH) into the box (x, y, w, h),
// returning the effective size of the scaled content and its aligned
// origin. With FitNone the box is returned unchanged.
func (a AspectRatio) fit(vbW, vbH, w, h, x, y float64) (float64, float64, float64, float64) {
	if a.Mode == FitNone || vbW <= 0 || vbH <= 0 {
		return w, h, x, y
	}
	scale := math.Min(w/vbW, h/vbH)
	if a.Mode == FitSlice {
		scale = math.Max(w/vbW, h/vbH)
	}
	neww, newh := vbW*scale, vbH*scale
	x += a.X.fraction() * (w - neww)
	y += a.Y.fraction() * (h - newh)
	return neww, newh, x, y
}

// parseAspectRatio reads a preserveAspectRatio attribute, such as
// "xMidYMid meet" or "none". Unknown values fall back to the default.
func parseAspectRatio(v string) (AspectRatio, error) {
	out := defaultAspectRatio
	fields := strings.Fields(v)
	if len(fields) != 0 && fields[0] == "defer" { // only meaningful on image references
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return out, errParamMismatch
	}
	align := fields[0]
	if align == "none" {
		out.Mode = FitNone
		return out, nil
	}
	if len(align) != 8 || !strings.HasPrefix(align, "x") {
		return out, errParamMismatch
	}
	var err error
	out.X, err = parseAlign(align[1:4])
	if err != nil {
		return defaultAspectRatio, err
	}
	out.Y, err = parseAlign(align[5:8])
	if err != nil {
		return defaultAspectRatio, err
	}
	if len(fields) > 1 && fields[1] == "slice" {
		out.Mode = FitSlice
	}
	return out, nil
}

func parseAlign(v string) (Align, error) {
	switch v {
	case "Min":
		return AlignMin, nil
	case "Mid":
		return AlignMid, nil
	case "Max":
		return AlignMax, nil
	}
	return AlignMid, errParamMismatch
}
