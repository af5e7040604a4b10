package tessera

import (
	"math/rand"
)

// maxPaletteSize is the largest palette the flat mosaic accepts.
const maxPaletteSize = 16

// Colorizer assigns a color sampled from the source image to every cell.
type Colorizer struct {
	sampler *Sampler
}

// NewColorizer creates a colorizer sampling from img.
func NewColorizer(img *SourceImage) (*Colorizer, error) {
	s, err := NewSampler(img)
	if err != nil {
		return nil, err
	}
	return &Colorizer{sampler: s}, nil
}

// Colorize returns the colored cells in the order of the input.
// The color of a cell is the pixel under its representative point.
// If a single cell cannot be sampled no result is returned at all.
func (c *Colorizer) Colorize(cells []Cell) ([]ColoredCell, error) {
	colored := make([]ColoredCell, len(cells))
	for i, cell := range cells {
		if cell == nil {
			return nil, &CellError{Index: i, Err: invalidf("nil cell")}
		}
		rgb, err := c.sampler.At(cell.SamplePoint())
		if err != nil {
			return nil, &CellError{Index: i, Err: err}
		}
		colored[i] = ColoredCell{Cell: cell, Color: rgb.Hex()}
	}
	return colored, nil
}

// PaletteColorize paints every rectangle with a color picked uniformly at random from the palette.
// Unlike Colorize there is no relation between the position of a cell and its color:
// this is the low fidelity flat mosaic rendering.
func PaletteColorize(rects []RectCell, palette []RGB, rng *rand.Rand) ([]ColoredCell, error) {
	if len(palette) == 0 || len(palette) > maxPaletteSize {
		return nil, invalidf("palette size %d outside of [1, %d]", len(palette), maxPaletteSize)
	}
	if rng == nil {
		return nil, invalidf("missing randomness source")
	}
	colors := make([]string, len(palette))
	for i, c := range palette {
		colors[i] = c.Hex()
	}

	colored := make([]ColoredCell, len(rects))
	for i, r := range rects {
		colored[i] = ColoredCell{Cell: r, Color: colors[rng.Intn(len(colors))]}
	}
	return colored, nil
}

// Cells converts a slice of concrete cells into the Cell interface type.
func Cells[T Cell](cells []T) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}
