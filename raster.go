package tessera

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/pkg/errors"
)

const (
	// WithoutWireframe - generates cells without stroke
	WithoutWireframe = iota
	// WithWireframe - generates cells with stroke
	WithWireframe
	// WireframeOnly - generates cells only with wireframe
	WireframeOnly
)

// Raster renders artworks as PNG images with the size of the source image.
type Raster struct {
	Wireframe   int
	StrokeWidth float64
	// IsSolid draws the wireframe in black instead of the cell color.
	IsSolid bool
	// Noise is the amount of grain applied over the final image. Zero disables it.
	Noise int
	// Blur is the blur radius of the blurred mosaic, in pixels.
	Blur float64
	// Seed initializes the noise generator.
	Seed int64
}

// Render draws the artwork and encodes it as PNG.
func (r *Raster) Render(w io.Writer, art *Artwork) error {
	img, err := r.Draw(art)
	if err != nil {
		return err
	}
	return errors.Wrap(png.Encode(w, img), "png")
}

// Draw draws the artwork over a white canvas.
func (r *Raster) Draw(art *Artwork) (image.Image, error) {
	if art.Width <= 0 || art.Height <= 0 {
		return nil, invalidf("canvas size %dx%d", art.Width, art.Height)
	}
	width, height := art.Width, art.Height
	sx, sy := float64(width)/upperBound, float64(height)/upperBound

	ctx := gg.NewContext(width, height)
	ctx.DrawRectangle(0, 0, float64(width), float64(height))
	ctx.SetRGBA(1, 1, 1, 1)
	ctx.Fill()

	switch art.Mode {
	case ModeOneColor:
		if len(art.Colors) < 1 {
			return nil, invalidf("%s: missing color", art.Mode)
		}
		c, err := parseHex(art.Colors[0])
		if err != nil {
			return nil, err
		}
		ctx.SetColor(c)
		ctx.DrawRectangle(0, 0, float64(width), float64(height))
		ctx.Fill()
	case ModeGradient:
		if len(art.Colors) < 2 {
			return nil, invalidf("%s: missing gradient colors", art.Mode)
		}
		start, err := parseHex(art.Colors[0])
		if err != nil {
			return nil, err
		}
		end, err := parseHex(art.Colors[1])
		if err != nil {
			return nil, err
		}
		grad := gg.NewLinearGradient(0, 0, float64(width), float64(height))
		grad.AddColorStop(0, start)
		grad.AddColorStop(1, end)
		ctx.SetFillStyle(grad)
		ctx.DrawRectangle(0, 0, float64(width), float64(height))
		ctx.Fill()
	}

	for i, c := range art.Cells {
		fill, err := parseHex(c.Color)
		if err != nil {
			return nil, &CellError{Index: i, Err: err}
		}

		ctx.Push()
		switch cell := c.Cell.(type) {
		case RectCell:
			ctx.DrawRectangle(cell.X*sx, cell.Y*sy, cell.Width*sx, cell.Height*sy)
		case TriangleCell:
			drawPolygon(ctx, cell.Corners[:], sx, sy)
		case PolygonCell:
			drawPolygon(ctx, cell.Vertices, sx, sy)
		default:
			ctx.Pop()
			return nil, &CellError{Index: i, Err: invalidf("unsupported cell %T", c.Cell)}
		}

		var strokeColor color.NRGBA
		if r.IsSolid {
			strokeColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
		} else {
			strokeColor = fill
		}

		switch r.Wireframe {
		case WithoutWireframe:
			// Stroke with the fill color, otherwise seams show up between the cells.
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(fill))
			ctx.SetLineWidth(1)
			ctx.FillPreserve()
			ctx.Stroke()
		case WithWireframe:
			ctx.SetFillStyle(gg.NewSolidPattern(fill))
			ctx.SetStrokeStyle(gg.NewSolidPattern(color.NRGBA{R: 0, G: 0, B: 0, A: 20}))
			ctx.SetLineWidth(r.StrokeWidth)
			ctx.FillPreserve()
			ctx.Stroke()
		case WireframeOnly:
			ctx.SetStrokeStyle(gg.NewSolidPattern(strokeColor))
			ctx.SetLineWidth(r.StrokeWidth)
			ctx.Stroke()
		default:
			ctx.Pop()
			return nil, invalidf("unknown wireframe mode %d", r.Wireframe)
		}
		ctx.Pop()
	}

	var img image.Image = ctx.Image()
	if art.Mode == ModeBlurredMosaic && r.Blur > 0 {
		img = imaging.Blur(img, r.Blur)
	}
	// Apply a noise on the final image. This will give it a more artistic look.
	if r.Noise > 0 {
		img = Noise(r.Noise, img, rand.New(rand.NewSource(r.Seed)))
	}
	return img, nil
}

// drawPolygon traces the closed path of the points scaled to pixels.
func drawPolygon(ctx *gg.Context, points []Point, sx, sy float64) {
	for i, p := range points {
		if i == 0 {
			ctx.MoveTo(p.X*sx, p.Y*sy)
			continue
		}
		ctx.LineTo(p.X*sx, p.Y*sy)
	}
	ctx.ClosePath()
}

// parseHex parses a six digit hex color, with or without the leading '#'.
func parseHex(s string) (color.NRGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.NRGBA{}, invalidf("malformed color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, invalidf("malformed color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
