package tessera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(width, height int, c RGB) *SourceImage {
	return newTestImage(width, height, func(x, y int) RGB { return c })
}

func TestColorize_ShouldKeepTheCellOrder(t *testing.T) {
	rects, err := RectGrid(50)
	require.NoError(t, err)

	c, err := NewColorizer(coordImage(10, 10))
	require.NoError(t, err)

	colored, err := c.Colorize(Cells(rects))
	require.NoError(t, err)
	require.Len(t, colored, 4)

	expected := []string{"000007", "000507", "050007", "050507"}
	for i, cell := range colored {
		assert.Equal(t, rects[i], cell.Cell)
		assert.Equal(t, expected[i], cell.Color)
	}
}

func TestColorize_UniformImage(t *testing.T) {
	grid, err := NewGrid(100, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, grid, 4)

	c, err := NewColorizer(solidImage(4, 4, RGB{}))
	require.NoError(t, err)

	triangles, err := new(Delaunay).Triangulate(grid)
	require.NoError(t, err)
	tris, err := TriangleCells(grid, triangles)
	require.NoError(t, err)

	polygons, err := new(Voronoi).Partition(grid, DefaultBox)
	require.NoError(t, err)

	for _, cells := range [][]Cell{Cells(tris), Cells(polygons)} {
		colored, err := c.Colorize(cells)
		require.NoError(t, err)
		require.Len(t, colored, len(cells))
		for _, cell := range colored {
			assert.Equal(t, "000000", cell.Color)
		}
	}
}

func TestColorize_ShouldSampleUnderTheSite(t *testing.T) {
	img := newTestImage(100, 50, func(x, y int) RGB {
		if x < 50 {
			return RGB{R: 255}
		}
		return RGB{B: 255}
	})
	c, err := NewColorizer(img)
	require.NoError(t, err)

	sites := []Point{{25, 25}, {75, 25}, {75, 75}, {25, 75}, {100, 100}}
	cells, err := new(Voronoi).Partition(sites, DefaultBox)
	require.NoError(t, err)

	colored, err := c.Colorize(Cells(cells))
	require.NoError(t, err)
	require.Len(t, colored, 5)

	assert.Equal(t, "ff0000", colored[0].Color)
	assert.Equal(t, "0000ff", colored[1].Color)
	assert.Equal(t, "0000ff", colored[2].Color)
	assert.Equal(t, "ff0000", colored[3].Color)
	assert.Equal(t, "0000ff", colored[4].Color)
}

func TestColorize_ShouldReportTheFailingCell(t *testing.T) {
	c, err := NewColorizer(coordImage(10, 10))
	require.NoError(t, err)

	cells := []Cell{
		RectCell{X: 0, Y: 0, Width: 5, Height: 5},
		PolygonCell{Site: Point{X: math.NaN(), Y: 3}, Vertices: []Point{{0, 0}, {5, 0}, {5, 5}}},
	}
	colored, err := c.Colorize(cells)
	assert.Nil(t, colored)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	var cellErr *CellError
	require.True(t, errors.As(err, &cellErr))
	assert.Equal(t, 1, cellErr.Index)

	_, err = c.Colorize([]Cell{nil})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestColorize_InvalidImage(t *testing.T) {
	_, err := NewColorizer(&SourceImage{Width: 2, Height: 2, Stride: StrideRGBA, Pix: make([]uint8, 4)})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = NewColorizer(nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestPaletteColorize(t *testing.T) {
	rects, err := RectGrid(10)
	require.NoError(t, err)
	palette := []RGB{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}}

	first, err := PaletteColorize(rects, palette, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Len(t, first, 100)

	used := make(map[string]bool)
	for i, c := range first {
		assert.Equal(t, rects[i], c.Cell)
		assert.Contains(t, []string{"ff0000", "00ff00", "0000ff"}, c.Color)
		used[c.Color] = true
	}
	assert.Len(t, used, 3)

	second, err := PaletteColorize(rects, palette, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPaletteColorize_InvalidInput(t *testing.T) {
	rects, err := RectGrid(50)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	_, err = PaletteColorize(rects, nil, rng)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = PaletteColorize(rects, make([]RGB, maxPaletteSize+1), rng)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = PaletteColorize(rects, []RGB{{}}, nil)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
