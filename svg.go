package tessera

import (
	"html"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Renderer turns an artwork into an output document.
type Renderer interface {
	Render(w io.Writer, art *Artwork) error
}

const svgHeader = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" version="1.1"
     width="{{.Width}}" height="{{.Height}}" viewBox="0 0 100 100" preserveAspectRatio="none">
  <title>{{escape .Title}}</title>
  <desc>{{escape .Description}}</desc>
`

const svgFooter = `</svg>
`

// svgBodies holds the template of every mode; the blurred mosaic shares the rectangles with the mosaics.
var svgBodies = map[Mode]string{
	ModeOneColor: `  <rect x="0" y="0" width="100" height="100" fill="#{{index .Colors 0}}"/>
`,
	ModeGradient: `  <defs>
    <linearGradient id="gradient" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0%" stop-color="#{{index .Colors 0}}"/>
      <stop offset="100%" stop-color="#{{index .Colors 1}}"/>
    </linearGradient>
  </defs>
  <rect x="0" y="0" width="100" height="100" fill="url(#gradient)"/>
`,
	ModeMosaic:         `{{template "rects" .}}`,
	ModeImprovedMosaic: `{{template "rects" .}}`,
	ModeBlurredMosaic: `  <defs>
    <filter id="blur" x="0" y="0" width="100%" height="100%">
      <feGaussianBlur stdDeviation="{{.Blur}}"/>
    </filter>
  </defs>
  <g filter="url(#blur)">
{{template "rects" .}}  </g>
`,
	ModeTriangulation: `{{template "polygons" .}}`,
	ModeVoronoi:       `{{template "polygons" .}}`,
}

const svgShapes = `{{define "rects"}}{{range .Shapes}}  <rect x="{{.X}}" y="{{.Y}}" width="{{.W}}" height="{{.H}}" fill="#{{.Color}}" stroke="#{{.Color}}" stroke-width="{{$.StrokeWidth}}"/>
{{end}}{{end}}{{define "polygons"}}{{range .Shapes}}  <polygon points="{{.Points}}" fill="#{{.Color}}" stroke="#{{.Color}}" stroke-width="{{$.StrokeWidth}}" stroke-linejoin="round"/>
{{end}}{{end}}`

var svgTemplates = func() map[Mode]*template.Template {
	funcs := template.FuncMap{"escape": html.EscapeString}

	tmpls := make(map[Mode]*template.Template, len(svgBodies))
	for mode, body := range svgBodies {
		tmpls[mode] = template.Must(template.New(string(mode)).Funcs(funcs).Parse(svgHeader + body + svgFooter + svgShapes))
	}
	return tmpls
}()

// SVG renders artworks as scalable vector graphics.
type SVG struct {
	Title       string
	Description string
	// StrokeWidth of the cell outlines in normalized units. It hides the seams between neighbor cells.
	StrokeWidth float64
	// Blur is the standard deviation of the blurred mosaic filter in normalized units.
	Blur float64
}

// svgShape is the template view of a colored cell.
type svgShape struct {
	X, Y, W, H string
	Points     string
	Color      string
}

type svgData struct {
	*SVG
	Width  int
	Height int
	Colors []string
	Shapes []svgShape
}

// Render writes the artwork as an SVG document.
func (s *SVG) Render(w io.Writer, art *Artwork) error {
	tmpl, ok := svgTemplates[art.Mode]
	if !ok {
		return invalidf("no svg template for mode %q", art.Mode)
	}
	switch art.Mode {
	case ModeOneColor:
		if len(art.Colors) < 1 {
			return invalidf("%s: missing color", art.Mode)
		}
	case ModeGradient:
		if len(art.Colors) < 2 {
			return invalidf("%s: missing gradient colors", art.Mode)
		}
	}

	data := svgData{
		SVG:    s,
		Width:  art.Width,
		Height: art.Height,
		Colors: art.Colors,
		Shapes: make([]svgShape, 0, len(art.Cells)),
	}
	for i, c := range art.Cells {
		shape, err := newSVGShape(c)
		if err != nil {
			return &CellError{Index: i, Err: err}
		}
		data.Shapes = append(data.Shapes, shape)
	}
	return errors.Wrap(tmpl.Execute(w, data), "svg")
}

func newSVGShape(c ColoredCell) (svgShape, error) {
	shape := svgShape{Color: c.Color}

	switch cell := c.Cell.(type) {
	case RectCell:
		shape.X, shape.Y = formatCoord(cell.X, -1), formatCoord(cell.Y, -1)
		shape.W, shape.H = formatCoord(cell.Width, -1), formatCoord(cell.Height, -1)
	case TriangleCell:
		shape.Points = formatPoints(cell.Corners[:], -1)
	case PolygonCell:
		if len(cell.Vertices) < 3 {
			return shape, errors.Wrapf(ErrDegenerateGeometry, "polygon with %d vertices", len(cell.Vertices))
		}
		shape.Points = formatPoints(cell.Vertices, 2)
	default:
		return shape, invalidf("unsupported cell %T", c.Cell)
	}
	return shape, nil
}

// formatCoord prints a coordinate with the given number of decimals, -1 meaning as many as needed.
func formatCoord(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func formatPoints(points []Point, prec int) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatCoord(p.X, prec))
		sb.WriteByte(',')
		sb.WriteString(formatCoord(p.Y, prec))
	}
	return sb.String()
}
