package svgicon

import (
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Pattern is the painting material of a fill or stroke:
// either a PlainColor or a Gradient
type Pattern interface {
	isPattern()
}

// PlainColor is a solid color fill
type PlainColor struct {
	color.NRGBA
}

func (PlainColor) isPattern() {}
func (Gradient) isPattern()   {}

// NewPlainColor builds a PlainColor from its components
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{NRGBA: color.NRGBA{R: r, G: g, B: b, A: a}}
}

// optionnalColor distinguishes a parsed color from the
// explicit "none" value.
type optionnalColor struct {
	color PlainColor
	valid bool
}

func (o optionnalColor) asColor() color.Color {
	if !o.valid {
		return nil
	}
	return o.color
}

func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return o.color
}

// parseSVGColor reads a CSS color value; "none" and "transparent"
// yield an invalid (absent) color, not an error.
func parseSVGColor(v string) (optionnalColor, error) {
	switch strings.TrimSpace(v) {
	case "none", "transparent":
		return optionnalColor{}, nil
	case "currentColor":
		// color property cascade is not supported; fall back to black
		return optionnalColor{color: NewPlainColor(0, 0, 0, 0xff), valid: true}, nil
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return optionnalColor{}, err
	}
	r, g, b, a := c.RGBA255()
	return optionnalColor{color: NewPlainColor(r, g, b, a), valid: true}, nil
}
