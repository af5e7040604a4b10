package tessera

import (
	"math"
)

// Triangle is a counter-clockwise triple of indices into the triangulated point set.
type Triangle [3]int

// edge is a directed edge between two vertex indices.
type edge struct {
	a, b int
}

// key returns an orientation independent identifier of the edge.
func (e edge) key() [2]int {
	if e.a < e.b {
		return [2]int{e.a, e.b}
	}
	return [2]int{e.b, e.a}
}

// Delaunay defines the main components for the triangulation.
// A zero value is ready to use; it is not safe for concurrent use.
type Delaunay struct {
	nodes     []Point
	triangles []Triangle
	inputs    int
}

// Triangulate computes the Delaunay triangulation of the points.
// The returned triangles index into points and tile the bounding box of the points
// whenever its four corners belong to the set, as it happens for every Grid.
// Coincident duplicates are tolerated: only their first occurrence takes part in the mesh.
func (d *Delaunay) Triangulate(points []Point) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, invalidf("triangulation needs at least 3 points, got %d", len(points))
	}
	for i, p := range points {
		if !isFinite(p) {
			return nil, invalidf("point %d is not finite: (%v, %v)", i, p.X, p.Y)
		}
	}

	corners, err := d.init(points)
	if err != nil {
		return nil, err
	}

	seen := make(map[Point]struct{}, len(points))
	for _, c := range corners {
		seen[d.nodes[c]] = struct{}{}
	}
	for i, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		d.insert(i)
	}

	result := make([]Triangle, 0, len(d.triangles))
	for _, t := range d.triangles {
		if t[0] >= d.inputs || t[1] >= d.inputs || t[2] >= d.inputs {
			continue
		}
		result = append(result, t)
	}
	if len(result) == 0 {
		return nil, invalidf("all %d points are collinear", len(points))
	}
	return result, nil
}

// init seeds the mesh with the two triangles spanning the bounding box of the points.
// The box corners are looked up in the input; the missing ones become auxiliary nodes
// which are removed together with their triangles once every point has been inserted.
func (d *Delaunay) init(points []Point) ([4]int, error) {
	var corners [4]int

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = Min(minX, p.X), Max(maxX, p.X)
		minY, maxY = Min(minY, p.Y), Max(maxY, p.Y)
	}
	if minX == maxX || minY == maxY {
		return corners, invalidf("all %d points are collinear", len(points))
	}

	d.inputs = len(points)
	d.nodes = append(d.nodes[:0], points...)
	d.triangles = d.triangles[:0]

	box := [4]Point{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
	for i, c := range box {
		corners[i] = -1
		for j, p := range points {
			if p == c {
				corners[i] = j
				break
			}
		}
		if corners[i] < 0 {
			d.nodes = append(d.nodes, c)
			corners[i] = len(d.nodes) - 1
		}
	}
	d.triangles = append(d.triangles,
		Triangle{corners[0], corners[1], corners[2]},
		Triangle{corners[0], corners[2], corners[3]},
	)
	return corners, nil
}

// insert adds the node at index k to the mesh.
func (d *Delaunay) insert(k int) {
	p := d.nodes[k]

	var (
		edges []edge
		temps = make([]Triangle, 0, len(d.triangles)+2)
	)
	for _, t := range d.triangles {
		// Triangles whose circumcircle encloses the point form the cavity.
		if inCircle(d.nodes[t[0]], d.nodes[t[1]], d.nodes[t[2]], p) {
			edges = append(edges, edge{t[0], t[1]}, edge{t[1], t[2]}, edge{t[2], t[0]})
		} else {
			temps = append(temps, t)
		}
	}
	if len(edges) == 0 {
		return
	}

	// Edges shared by two cavity triangles are interior; the rest bound the cavity.
	count := make(map[[2]int]int, len(edges))
	for _, e := range edges {
		count[e.key()]++
	}
	for _, e := range edges {
		if count[e.key()] != 1 {
			continue
		}
		// A point lying on a hull edge would close a zero-area triangle with it.
		if orient(d.nodes[e.a], d.nodes[e.b], p) <= 0 {
			continue
		}
		temps = append(temps, Triangle{e.a, e.b, k})
	}
	d.triangles = temps
}

// inCircle reports whether d lies strictly inside the circumcircle of the counter-clockwise triangle abc.
func inCircle(a, b, c, d Point) bool {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	ad := adx*adx + ady*ady
	bd := bdx*bdx + bdy*bdy
	cd := cdx*cdx + cdy*cdy

	det := adx*(bdy*cd-bd*cdy) - ady*(bdx*cd-bd*cdx) + ad*(bdx*cdy-bdy*cdx)
	return det > 0
}

func isFinite(p Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// TriangleCells resolves the index triples into triangle geometry.
func TriangleCells(points []Point, triangles []Triangle) ([]TriangleCell, error) {
	cells := make([]TriangleCell, len(triangles))
	for i, t := range triangles {
		for j, idx := range t {
			if idx < 0 || idx >= len(points) {
				return nil, &CellError{Index: i, Err: invalidf("vertex index %d outside of %d points", idx, len(points))}
			}
			cells[i].Corners[j] = points[idx]
		}
	}
	return cells, nil
}
