package tessera

import (
	"bytes"
	"log"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniqueSites drops the repeated points of a grid, keeping the first occurrence.
func uniqueSites(grid Grid) []Point {
	seen := make(map[Point]bool, len(grid))
	sites := make([]Point, 0, len(grid))
	for _, p := range grid {
		if seen[p] {
			continue
		}
		seen[p] = true
		sites = append(sites, p)
	}
	return sites
}

func TestVoronoi_OneCellPerSite(t *testing.T) {
	grid, err := NewGrid(5, 10, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	cells, err := new(Voronoi).Partition(grid, DefaultBox)
	require.NoError(t, err)
	require.Len(t, cells, len(grid))
	for i, c := range cells {
		assert.Equal(t, grid[i], c.Site)
		assert.GreaterOrEqual(t, len(c.Vertices), 3)
	}
}

func TestVoronoi_QuadrantSites(t *testing.T) {
	sites := []Point{{25, 25}, {75, 25}, {75, 75}, {25, 75}}
	cells, err := new(Voronoi).Partition(sites, DefaultBox)
	require.NoError(t, err)
	require.Len(t, cells, 4)

	assert.ElementsMatch(t, []Point{{0, 0}, {50, 0}, {50, 50}, {0, 50}}, cells[0].Vertices)
	for _, c := range cells {
		assert.InDelta(t, 2500, c.Area(), 1e-9)
	}
}

func TestVoronoi_CellsShouldTileTheBox(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		grid, err := NewGrid(5, 10, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)

		cells, err := new(Voronoi).Partition(uniqueSites(grid), DefaultBox)
		require.NoError(t, err)

		var area float64
		for _, c := range cells {
			area += c.Area()
		}
		assert.InDelta(t, 10000, area, 1e-6, "seed %d", seed)
	}
}

func TestVoronoi_PointsShouldBelongToTheNearestSite(t *testing.T) {
	grid, err := NewGrid(10, 10, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	sites := uniqueSites(grid)

	cells, err := new(Voronoi).Partition(sites, DefaultBox)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 200; n++ {
		q := Point{rng.Float64() * 100, rng.Float64() * 100}

		nearest, best := 0, -1.0
		for i, s := range sites {
			d := (s.X-q.X)*(s.X-q.X) + (s.Y-q.Y)*(s.Y-q.Y)
			if best < 0 || d < best {
				nearest, best = i, d
			}
		}
		poly := cells[nearest].Vertices
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			assert.GreaterOrEqual(t, orient(a, b, q), -1e-6, "point %v outside of the cell of %v", q, sites[nearest])
		}
	}
}

func TestVoronoi_DuplicateSitesShareTheirCell(t *testing.T) {
	sites := []Point{{25, 25}, {75, 25}, {75, 75}, {25, 75}, {75, 75}}
	cells, err := new(Voronoi).Partition(sites, DefaultBox)
	require.NoError(t, err)
	require.Len(t, cells, 5)
	assert.Equal(t, cells[2].Vertices, cells[4].Vertices)
	assert.InDelta(t, 2500, cells[4].Area(), 1e-9)
}

func TestVoronoi_DegenerateCells(t *testing.T) {
	sites := []Point{{0, 0}, {1e-10, 0}, {0, 1e-10}, {50, 50}}

	var buf bytes.Buffer
	v := &Voronoi{Logger: log.New(&buf, "", 0)}
	cells, err := v.Partition(sites, DefaultBox)
	require.NoError(t, err)
	assert.Len(t, cells, 3)
	assert.Contains(t, buf.String(), "voronoi: skipping")
	for _, c := range cells {
		assert.NotEqual(t, Point{0, 0}, c.Site)
	}

	v.Strict = true
	_, err = v.Partition(sites, DefaultBox)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDegenerateGeometry))

	var cellErr *CellError
	require.True(t, errors.As(err, &cellErr))
	assert.Equal(t, 0, cellErr.Index)
}

func TestVoronoi_InvalidInput(t *testing.T) {
	v := new(Voronoi)
	sites := []Point{{10, 10}, {20, 20}, {30, 10}}

	_, err := v.Partition(sites[:2], DefaultBox)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = v.Partition(sites, Box{Left: 100, Right: 0, Top: 0, Bottom: 100})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = v.Partition(sites, Box{Left: 0, Right: 100, Top: 50, Bottom: 50})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = v.Partition(append(sites, Point{120, 10}), DefaultBox)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDedupVertices(t *testing.T) {
	poly := []Point{{0, 0}, {0, 0}, {1, 0}, {1, 1e-12}, {1, 1}, {0, 1e-12}}
	assert.Equal(t, []Point{{0, 0}, {1, 0}, {1, 1}}, dedupVertices(poly))
}
