package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Tessellation reduces a path to the flat vertex records needed to place
// markers: one entry per operation, with unit tangents at both ends of
// each segment and precomputed index offsets linking the boundaries of
// closed subpaths. Traversal can then jump from a move-to to its
// close-path (and back) with plain index arithmetic.

// Vec2 is a direction in user space.
type Vec2 struct {
	X, Y float64
}

// VertexKind tags the operation that produced a vertex.
type VertexKind uint8

const (
	VertexMove VertexKind = iota
	VertexLine
	VertexCurve
	VertexClose
)

// Vertex is one record of a tessellated path. StartDir and EndDir are
// the unit tangents at the start and the end of the segment ending at
// this vertex; they are zero on move-to records, which end no segment.
type Vertex struct {
	X, Y             float64
	Kind             VertexKind
	StartDir, EndDir Vec2

	// NextLength, set on a move-to opening a closed subpath, is the
	// index distance to its close-path (0 when the subpath is open).
	// PrevLength, set on a close-path, is the distance back to its
	// move-to.
	NextLength, PrevLength int
}

// VertexSeq is the read-only vertex sequence of a tessellated path.
type VertexSeq []Vertex

func unfix(p fixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// direction returns the unit vector from (x0, y0) to (x1, y1); ok is
// false when the points coincide.
func direction(x0, y0, x1, y1 float64) (Vec2, bool) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return Vec2{}, false
	}
	return Vec2{X: dx / l, Y: dy / l}, true
}

// firstDirection walks the control polygon from (x0,y0) until it finds
// a non-degenerate direction.
func firstDirection(x0, y0 float64, pts ...float64) Vec2 {
	for i := 0; i+1 < len(pts); i += 2 {
		if d, ok := direction(x0, y0, pts[i], pts[i+1]); ok {
			return d
		}
	}
	return Vec2{}
}

// lastDirection walks the control polygon backwards from its end point.
func lastDirection(x1, y1 float64, pts ...float64) Vec2 {
	for i := 0; i+1 < len(pts); i += 2 {
		if d, ok := direction(pts[i], pts[i+1], x1, y1); ok {
			return d
		}
	}
	return Vec2{}
}

// Tessellate flattens the path into its vertex sequence.
func (p Path) Tessellate() VertexSeq {
	var (
		seq            VertexSeq
		curX, curY     float64
		startX, startY float64
		lastMove       = -1 // index of the move-to opening the current subpath
	)
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			curX, curY = unfix(fixed.Point26_6(op))
			startX, startY = curX, curY
			seq = append(seq, Vertex{X: curX, Y: curY, Kind: VertexMove})
			lastMove = len(seq) - 1
		case LineTo:
			x, y := unfix(fixed.Point26_6(op))
			d, _ := direction(curX, curY, x, y)
			seq = append(seq, Vertex{X: x, Y: y, Kind: VertexLine, StartDir: d, EndDir: d})
			curX, curY = x, y
		case QuadTo:
			bx, by := unfix(op[0])
			x, y := unfix(op[1])
			seq = append(seq, Vertex{
				X: x, Y: y, Kind: VertexCurve,
				StartDir: firstDirection(curX, curY, bx, by, x, y),
				EndDir:   lastDirection(x, y, bx, by, curX, curY),
			})
			curX, curY = x, y
		case CubicTo:
			bx, by := unfix(op[0])
			cx, cy := unfix(op[1])
			x, y := unfix(op[2])
			seq = append(seq, Vertex{
				X: x, Y: y, Kind: VertexCurve,
				StartDir: firstDirection(curX, curY, bx, by, cx, cy, x, y),
				EndDir:   lastDirection(x, y, cx, cy, bx, by, curX, curY),
			})
			curX, curY = x, y
		case Close:
			if lastMove < 0 {
				continue
			}
			d, _ := direction(curX, curY, startX, startY)
			length := len(seq) - lastMove
			seq = append(seq, Vertex{
				X: startX, Y: startY, Kind: VertexClose,
				StartDir: d, EndDir: d,
				PrevLength: length,
			})
			seq[lastMove].NextLength = length
			curX, curY = startX, startY
			lastMove = -1
		}
	}
	return seq
}
