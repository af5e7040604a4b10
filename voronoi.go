package tessera

import (
	"log"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// vertexEpsilon is the distance under which two consecutive cell vertices are merged.
const vertexEpsilon = 1e-9

// Box is the axis aligned rectangle the Voronoi cells are clipped to.
type Box struct {
	Left, Right, Top, Bottom float64
}

// DefaultBox spans the whole normalized coordinate space.
var DefaultBox = Box{Left: lowerBound, Right: upperBound, Top: lowerBound, Bottom: upperBound}

func (b Box) validate() error {
	if !(b.Left < b.Right) || !(b.Top < b.Bottom) {
		return invalidf("malformed bounding box {%v %v %v %v}", b.Left, b.Right, b.Top, b.Bottom)
	}
	return nil
}

func (b Box) contains(p Point) bool {
	return p.X >= b.Left && p.X <= b.Right && p.Y >= b.Top && p.Y <= b.Bottom
}

// polygon returns the corners of the box in positive orientation.
func (b Box) polygon() []Point {
	return []Point{
		{b.Left, b.Top},
		{b.Right, b.Top},
		{b.Right, b.Bottom},
		{b.Left, b.Bottom},
	}
}

// Voronoi computes Voronoi partitions clipped to a bounding box.
// It holds no state between calls and is safe for concurrent use.
type Voronoi struct {
	// Strict turns a degenerate cell into an error instead of skipping it.
	Strict bool
	// Logger receives the warnings about skipped cells. Nil disables them.
	Logger *log.Logger
}

type neighbor struct {
	index int
	dist  float64
}

// Partition returns one cell per site, in site order. Every location of the box belongs
// to the cell of its nearest site. Coincident sites get identical, overlapping cells.
func (v *Voronoi) Partition(sites []Point, box Box) ([]PolygonCell, error) {
	if len(sites) < 3 {
		return nil, invalidf("partition needs at least 3 sites, got %d", len(sites))
	}
	if err := box.validate(); err != nil {
		return nil, err
	}
	for i, s := range sites {
		if !isFinite(s) || !box.contains(s) {
			return nil, invalidf("site %d (%v, %v) outside of the bounding box", i, s.X, s.Y)
		}
	}

	cells := make([]PolygonCell, 0, len(sites))
	neighbors := make([]neighbor, 0, len(sites)-1)

	for i, site := range sites {
		neighbors = neighbors[:0]
		for j, other := range sites {
			if j == i {
				continue
			}
			dx, dy := other.X-site.X, other.Y-site.Y
			neighbors = append(neighbors, neighbor{index: j, dist: dx*dx + dy*dy})
		}
		slices.SortFunc(neighbors, func(a, b neighbor) bool {
			if a.dist == b.dist {
				return a.index < b.index
			}
			return a.dist < b.dist
		})

		poly := box.polygon()
		for _, n := range neighbors {
			if n.dist == 0 {
				continue
			}
			// A bisector farther than the farthest vertex cannot cut the cell anymore.
			if n.dist/4 > farthest(site, poly) {
				break
			}
			poly = clipHalfPlane(poly, site, sites[n.index])
		}
		poly = dedupVertices(poly)

		if len(poly) < 3 {
			err := &CellError{
				Index: i,
				Err:   errors.Wrapf(ErrDegenerateGeometry, "site (%v, %v) has %d vertices", site.X, site.Y, len(poly)),
			}
			if v.Strict {
				return nil, err
			}
			if v.Logger != nil {
				v.Logger.Printf("voronoi: skipping %v", err)
			}
			continue
		}
		cells = append(cells, PolygonCell{Site: site, Vertices: poly})
	}
	return cells, nil
}

// farthest returns the squared distance between p and the farthest polygon vertex.
func farthest(p Point, poly []Point) float64 {
	var r float64
	for _, q := range poly {
		dx, dy := q.X-p.X, q.Y-p.Y
		r = Max(r, dx*dx+dy*dy)
	}
	return r
}

// clipHalfPlane keeps the part of the convex polygon which is closer to site than to other.
func clipHalfPlane(poly []Point, site, other Point) []Point {
	mx, my := (site.X+other.X)/2, (site.Y+other.Y)/2
	nx, ny := other.X-site.X, other.Y-site.Y

	side := func(q Point) float64 {
		return (q.X-mx)*nx + (q.Y-my)*ny
	}

	out := make([]Point, 0, len(poly)+1)
	for i, cur := range poly {
		next := poly[(i+1)%len(poly)]
		fc, fn := side(cur), side(next)

		if fc <= 0 {
			out = append(out, cur)
		}
		if (fc < 0 && fn > 0) || (fc > 0 && fn < 0) {
			t := fc / (fc - fn)
			out = append(out, Point{
				X: cur.X + (next.X-cur.X)*t,
				Y: cur.Y + (next.Y-cur.Y)*t,
			})
		}
	}
	return out
}

// dedupVertices drops consecutive vertices closer than vertexEpsilon, the closing pair included.
func dedupVertices(poly []Point) []Point {
	out := poly[:0]
	for _, p := range poly {
		if len(out) > 0 && near(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && near(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < vertexEpsilon && math.Abs(a.Y-b.Y) < vertexEpsilon
}
