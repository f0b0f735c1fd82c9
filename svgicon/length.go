package svgicon

import (
	"math"
	"strconv"
	"strings"
)

// Attribute values carrying a unit (refX, markerWidth, ...) are stored
// unresolved: percentages and font-relative units depend on the viewport
// in effect when the element is rendered, not when it is parsed.

// Unit is the unit of a Length value
type Unit uint8

const (
	Px Unit = iota // user units, the default
	Perc
	Em
	Ex
	Inch
	Cm
	Mm
	Pt
	Pc
)

// absoluteUnits maps each non-relative unit to user units (CSS pixel sizes)
var absoluteUnits = [...]float64{
	Px:   1,
	Inch: 96,
	Cm:   96 / 2.54,
	Mm:   96 / 25.4,
	Pt:   96. / 72.,
	Pc:   16,
}

// defaultFontSize is used for em and ex units; font styling is out
// of scope so the CSS initial value applies.
const defaultFontSize = 16.

// Length is a value with its unit, as parsed from an attribute.
type Length struct {
	Value float64
	Unit  Unit
}

// percentageReference tells against which dimension of the current
// viewport a percentage resolves.
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// resolve normalizes the length to user units, using the viewport on
// top of the context stack for relative units.
func (l Length) resolve(ctx *RenderContext, ref percentageReference) float64 {
	switch l.Unit {
	case Perc:
		vp := ctx.viewport()
		switch ref {
		case widthPercentage:
			return l.Value / 100 * vp.W
		case heightPercentage:
			return l.Value / 100 * vp.H
		default:
			return l.Value / 100 * math.Hypot(vp.W, vp.H) / math.Sqrt2
		}
	case Em:
		return l.Value * defaultFontSize
	case Ex:
		return l.Value * defaultFontSize / 2
	default:
		return l.Value * absoluteUnits[l.Unit]
	}
}

var lengthSuffixes = []struct {
	suffix string
	unit   Unit
}{
	{"%", Perc},
	{"em", Em},
	{"ex", Ex},
	{"px", Px},
	{"in", Inch},
	{"cm", Cm},
	{"mm", Mm},
	{"pt", Pt},
	{"pc", Pc},
}

// parseLength reads a number with an optional unit suffix.
func parseLength(v string) (Length, error) {
	v = strings.TrimSpace(v)
	unit := Px
	for _, su := range lengthSuffixes {
		if strings.HasSuffix(v, su.suffix) {
			unit = su.unit
			v = strings.TrimSuffix(v, su.suffix)
			break
		}
	}
	value, err := parseBasicFloat(v)
	return Length{Value: value, Unit: unit}, err
}

// parseAngle reads an angle attribute and returns degrees.
// Plain numbers and the deg suffix are degrees; grad and rad convert.
func parseAngle(v string) (float64, error) {
	v = strings.TrimSpace(v)
	factor := 1.
	switch {
	case strings.HasSuffix(v, "deg"):
		v = strings.TrimSuffix(v, "deg")
	case strings.HasSuffix(v, "grad"):
		v = strings.TrimSuffix(v, "grad")
		factor = 360. / 400.
	case strings.HasSuffix(v, "rad"):
		v = strings.TrimSuffix(v, "rad")
		factor = 180. / math.Pi
	}
	value, err := parseBasicFloat(v)
	return value * factor, err
}

func parseBasicFloat(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}
