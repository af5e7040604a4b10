package tessera

import (
	"fmt"
	"math"
)

// Point is a location in the resolution independent coordinate space.
// Both components are expected to lie in the [0, 100] range.
type Point struct {
	X, Y float64
}

// RGB holds the three color components of a sampled pixel.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color as a lowercase, zero padded, six digit hex string without the leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// CellKind tells apart the geometry variants a Cell can have.
type CellKind int

const (
	// KindRect is a grid aligned rectangle.
	KindRect CellKind = iota
	// KindTriangle is a triangle of the Delaunay mesh.
	KindTriangle
	// KindPolygon is a clipped Voronoi cell.
	KindPolygon
)

// Cell is a piece of geometry which gets a single color.
// SamplePoint returns the representative point the color is sampled from.
type Cell interface {
	Kind() CellKind
	SamplePoint() Point
}

// RectCell is a rectangle of the mosaic grid.
type RectCell struct {
	X, Y          float64
	Width, Height float64
}

// Kind implements Cell.
func (r RectCell) Kind() CellKind { return KindRect }

// SamplePoint returns the top-left corner of the rectangle.
func (r RectCell) SamplePoint() Point { return Point{r.X, r.Y} }

// TriangleCell is a triangle of the triangulated mesh.
type TriangleCell struct {
	Corners [3]Point
}

// Kind implements Cell.
func (t TriangleCell) Kind() CellKind { return KindTriangle }

// SamplePoint returns the centroid of the triangle with both components floored.
func (t TriangleCell) SamplePoint() Point {
	p0, p1, p2 := t.Corners[0], t.Corners[1], t.Corners[2]
	return Point{
		X: math.Floor((p0.X + p1.X + p2.X) / 3),
		Y: math.Floor((p0.Y + p1.Y + p2.Y) / 3),
	}
}

// Area returns the unsigned area of the triangle.
func (t TriangleCell) Area() float64 {
	p0, p1, p2 := t.Corners[0], t.Corners[1], t.Corners[2]
	return math.Abs(orient(p0, p1, p2)) / 2
}

// PolygonCell is a Voronoi cell clipped to the bounding box.
// Vertices form a closed loop; the first vertex is not repeated at the end.
type PolygonCell struct {
	Site     Point
	Vertices []Point
}

// Kind implements Cell.
func (p PolygonCell) Kind() CellKind { return KindPolygon }

// SamplePoint returns the generating site of the cell.
func (p PolygonCell) SamplePoint() Point { return p.Site }

// Area returns the unsigned area of the polygon using the shoelace formula.
func (p PolygonCell) Area() float64 {
	var sum float64
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// ColoredCell is a cell with its resolved color, ready to be rendered.
type ColoredCell struct {
	Cell
	Color string
}

// orient returns twice the signed area of the triangle abc.
// The result is positive when c lies to the left of the directed line ab.
func orient(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
