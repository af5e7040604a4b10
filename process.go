package tessera

import (
	"log"
	"math/rand"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Mode names a rendering of the source image.
type Mode string

const (
	// ModeOneColor fills the canvas with the dominant color.
	ModeOneColor Mode = "one-color"
	// ModeGradient blends the two most representative colors.
	ModeGradient Mode = "gradient"
	// ModeMosaic paints a coarse grid with random palette colors.
	ModeMosaic Mode = "mosaic"
	// ModeImprovedMosaic paints a grid with the colors sampled under each rectangle.
	ModeImprovedMosaic Mode = "improved-mosaic"
	// ModeTriangulation paints the Delaunay triangulation of a jittered grid.
	ModeTriangulation Mode = "triangulation"
	// ModeVoronoi paints the Voronoi partition of a jittered grid.
	ModeVoronoi Mode = "voronoi"
	// ModeBlurredMosaic is the sampled mosaic, blurred by the renderers.
	ModeBlurredMosaic Mode = "blurred-mosaic"
)

// Modes lists every supported rendering mode.
var Modes = []Mode{
	ModeOneColor,
	ModeGradient,
	ModeMosaic,
	ModeImprovedMosaic,
	ModeTriangulation,
	ModeVoronoi,
	ModeBlurredMosaic,
}

// ParseModes parses a comma separated list of mode names. "all" selects every mode.
func ParseModes(list string) ([]Mode, error) {
	var modes []Mode
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if name == "all" {
			return append([]Mode(nil), Modes...), nil
		}
		if modeIndex(Mode(name)) < 0 {
			return nil, invalidf("unknown mode %q", name)
		}
		modes = append(modes, Mode(name))
	}
	if len(modes) == 0 {
		return nil, invalidf("no mode selected")
	}
	return modes, nil
}

func modeIndex(m Mode) int {
	for i, mode := range Modes {
		if mode == m {
			return i
		}
	}
	return -1
}

// Artwork is the outcome of a rendering mode, handed over to a Renderer.
// Tessellating modes fill Cells; the one color and gradient modes fill Colors.
type Artwork struct {
	Mode   Mode
	Width  int
	Height int
	Cells  []ColoredCell
	Colors []string
}

// Processor type with processing options
type Processor struct {
	// Step is the lattice spacing of the sampled mosaics and of the tessellated grids.
	Step int
	// MosaicStep is the lattice spacing of the flat palette mosaic.
	MosaicStep int
	// Jitter is the amplitude of the random move applied to the inner grid points.
	Jitter int
	// PaletteSize is the number of colors of the flat mosaic palette.
	PaletteSize int
	// Seed initializes the random generators. A processor with the same seed renders the same output.
	Seed int64
	// Grayscale samples the colors from a grayscale copy of the image.
	Grayscale bool
	// Strict makes degenerate Voronoi cells fail the mode instead of being skipped.
	Strict bool
	// Workers bounds the number of modes rendered in parallel. Zero means one per CPU.
	Workers int
	// Logger receives progress and warning messages. Nil disables them.
	Logger *log.Logger
}

// DefaultProcessor returns a processor initialized with the default options.
func DefaultProcessor() *Processor {
	return &Processor{
		Step:        5,
		MosaicStep:  10,
		Jitter:      10,
		PaletteSize: 16,
	}
}

// Result holds the outcome of a single mode.
type Result struct {
	Mode    Mode
	Artwork *Artwork
	Err     error
}

// Process renders the requested modes over the same source image. The modes run in parallel
// and independently: the failure of one of them is reported in its Result and leaves the others intact.
// Results are returned in the order of the requested modes.
func (p *Processor) Process(src *SourceImage, modes ...Mode) []Result {
	results := make([]Result, len(modes))
	for i, m := range modes {
		results[i].Mode = m
	}

	img, err := p.source(src)
	if err != nil {
		for i := range results {
			results[i].Err = err
		}
		return results
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var g errgroup.Group
	g.SetLimit(workers)

	for i := range modes {
		i := i
		g.Go(func() error {
			results[i].Artwork, results[i].Err = p.render(img, src.Width, src.Height, modes[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Render renders a single mode synchronously.
func (p *Processor) Render(src *SourceImage, mode Mode) (*Artwork, error) {
	img, err := p.source(src)
	if err != nil {
		return nil, err
	}
	return p.render(img, src.Width, src.Height, mode)
}

// source validates the image and returns the buffer the colors are sampled from.
func (p *Processor) source(src *SourceImage) (*SourceImage, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if !p.Grayscale {
		return src, nil
	}
	return NewSourceImage(Grayscale(src.NRGBA())), nil
}

// rng returns the random generator of a mode. Every mode owns its generator,
// so the output does not depend on which modes are rendered alongside.
func (p *Processor) rng(mode Mode) *rand.Rand {
	return rand.New(rand.NewSource(p.Seed + int64(modeIndex(mode))))
}

func (p *Processor) render(img *SourceImage, width, height int, mode Mode) (*Artwork, error) {
	art := &Artwork{Mode: mode, Width: width, Height: height}

	var err error
	switch mode {
	case ModeOneColor:
		var c RGB
		if c, err = DominantColor(img); err == nil {
			art.Colors = []string{c.Hex()}
		}
	case ModeGradient:
		var palette []RGB
		if palette, err = ExtractPalette(img, 2); err == nil {
			art.Colors = []string{palette[0].Hex(), palette[1].Hex()}
		}
	case ModeMosaic:
		art.Cells, err = p.mosaic(img, p.rng(mode))
	case ModeImprovedMosaic, ModeBlurredMosaic:
		art.Cells, err = p.sampledMosaic(img)
	case ModeTriangulation:
		art.Cells, err = p.triangulation(img, p.rng(mode))
	case ModeVoronoi:
		art.Cells, err = p.voronoi(img, p.rng(mode))
	default:
		err = invalidf("unknown mode %q", mode)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s", mode)
	}
	if p.Logger != nil {
		p.Logger.Printf("%s: %d cells, %d colors", mode, len(art.Cells), len(art.Colors))
	}
	return art, nil
}

func (p *Processor) mosaic(img *SourceImage, rng *rand.Rand) ([]ColoredCell, error) {
	rects, err := RectGrid(p.MosaicStep)
	if err != nil {
		return nil, err
	}
	if p.PaletteSize < 1 || p.PaletteSize > maxPaletteSize {
		return nil, invalidf("palette size %d outside of [1, %d]", p.PaletteSize, maxPaletteSize)
	}
	palette, err := ExtractPalette(img, p.PaletteSize)
	if err != nil {
		return nil, err
	}
	return PaletteColorize(rects, palette, rng)
}

func (p *Processor) sampledMosaic(img *SourceImage) ([]ColoredCell, error) {
	rects, err := RectGrid(p.Step)
	if err != nil {
		return nil, err
	}
	return colorize(img, Cells(rects))
}

func (p *Processor) triangulation(img *SourceImage, rng *rand.Rand) ([]ColoredCell, error) {
	grid, err := NewGrid(p.Step, p.Jitter, rng)
	if err != nil {
		return nil, err
	}
	triangles, err := new(Delaunay).Triangulate(grid)
	if err != nil {
		return nil, err
	}
	cells, err := TriangleCells(grid, triangles)
	if err != nil {
		return nil, err
	}
	return colorize(img, Cells(cells))
}

func (p *Processor) voronoi(img *SourceImage, rng *rand.Rand) ([]ColoredCell, error) {
	grid, err := NewGrid(p.Step, p.Jitter, rng)
	if err != nil {
		return nil, err
	}
	v := &Voronoi{Strict: p.Strict, Logger: p.Logger}
	cells, err := v.Partition(grid, DefaultBox)
	if err != nil {
		return nil, err
	}
	return colorize(img, Cells(cells))
}

func colorize(img *SourceImage, cells []Cell) ([]ColoredCell, error) {
	c, err := NewColorizer(img)
	if err != nil {
		return nil, err
	}
	return c.Colorize(cells)
}
