package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/esimov/tessera"
	"github.com/esimov/tessera/utils"
	"golang.org/x/term"
)

const banner = `
┌┬┐┌─┐┌─┐┌─┐┌─┐┬─┐┌─┐
 │ ├┤ └─┐└─┐├┤ ├┬┘├─┤
 ┴ └─┘└─┘└─┘└─┘┴└─┴ ┴

Photographs to vector art through jittered grids.
`

// pipeName is the file name that indicates stdin is being used.
const pipeName = "-"

func main() {
	var (
		// Flags
		source      = flag.String("in", "", "Source image, or - to read it from stdin")
		destination = flag.String("out", ".", "Destination directory")
		name        = flag.String("name", "", "Output file name prefix (defaults to the source name)")
		modeList    = flag.String("modes", "all", "Comma separated rendering modes: "+modeNames())
		step        = flag.Int("step", 5, "Grid step of the sampled mosaics and tessellations")
		mosaicStep  = flag.Int("mosaic", 10, "Grid step of the flat palette mosaic")
		jitter      = flag.Int("jitter", 10, "Jitter amplitude of the inner grid points")
		paletteSize = flag.Int("palette", 16, "Number of palette colors of the flat mosaic (max 16)")
		seed        = flag.Int64("seed", 0, "Random seed (0 picks a time based seed)")
		grayscale   = flag.Bool("gray", false, "Sample the colors from a grayscale image")
		strict      = flag.Bool("strict", false, "Fail the Voronoi mode on degenerate cells")
		workers     = flag.Int("workers", 0, "Number of modes rendered in parallel (0 = one per CPU)")
		svgStroke   = flag.Float64("svg-stroke", 0.1, "SVG cell outline width, in normalized units")
		svgBlur     = flag.Float64("svg-blur", 1.5, "SVG blurred mosaic deviation, in normalized units")
		toPNG       = flag.Bool("png", false, "Also render PNG images")
		wireframe   = flag.Int("wireframe", 0, "PNG wireframe mode: 0 without, 1 with, 2 only")
		strokeWidth = flag.Float64("stroke", 1, "PNG wireframe line width")
		isSolid     = flag.Bool("solid", false, "PNG solid line color")
		noise       = flag.Int("noise", 0, "PNG noise factor")
		blur        = flag.Float64("blur", 8, "PNG blurred mosaic radius")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)

	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, banner)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*source) == 0 {
		log.Fatal("Usage: tessera -in input.jpg -out outdir")
	}
	modes, err := tessera.ParseModes(*modeList)
	if err != nil {
		log.Fatalf("Invalid modes: %v", err)
	}

	if fs, err := os.Stat(*destination); err != nil || !fs.IsDir() {
		log.Fatalf("Please specify an existing directory as destination: %s", *destination)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	proc := tessera.DefaultProcessor()
	proc.Step = *step
	proc.MosaicStep = *mosaicStep
	proc.Jitter = *jitter
	proc.PaletteSize = *paletteSize
	proc.Seed = *seed
	proc.Grayscale = *grayscale
	proc.Strict = *strict
	proc.Workers = *workers
	if *verbose {
		proc.Logger = log.New(os.Stderr, "tessera: ", 0)
	}

	renderers := map[string]tessera.Renderer{
		".svg": &tessera.SVG{
			Title:       "tessera",
			Description: "Vector art generated from a jittered sampling grid.",
			StrokeWidth: *svgStroke,
			Blur:        *svgBlur,
		},
	}
	if *toPNG {
		renderers[".png"] = &tessera.Raster{
			Wireframe:   *wireframe,
			StrokeWidth: *strokeWidth,
			IsSolid:     *isSolid,
			Noise:       *noise,
			Blur:        *blur,
			Seed:        *seed,
		}
	}

	prefix := *name
	if prefix == "" {
		prefix = "stdin"
		if *source != pipeName {
			prefix = strings.TrimSuffix(filepath.Base(*source), filepath.Ext(*source))
		}
	}

	start := time.Now()
	spinner := utils.NewSpinner(os.Stderr, "Generating vector art...", time.Millisecond*100)
	spinner.Start()

	// The image is decoded once and shared by every mode.
	src, err := decode(*source)
	if err != nil {
		spinner.Stop(utils.Decorate("Generating vector art... failed ✗\n", utils.ErrorColor))
		log.Fatalf("Unable to decode the source image: %v", err)
	}

	results := proc.Process(src, modes...)
	spinner.Stop(utils.Decorate("Generating vector art... done ✔\n", utils.SuccessColor))

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			log.Printf("%s %s", utils.Decorate("✗ "+string(res.Mode)+":", utils.ErrorColor), res.Err)
			continue
		}
		for ext, r := range renderers {
			out := filepath.Join(*destination, prefix+"-"+string(res.Mode)+ext)
			if err := write(out, r, res.Artwork); err != nil {
				failed++
				log.Printf("%s %s", utils.Decorate("✗ "+string(res.Mode)+":", utils.ErrorColor), err)
				continue
			}
			log.Printf("%s %s (%d cells)", utils.Decorate("✔", utils.SuccessColor), out, len(res.Artwork.Cells))
		}
	}
	log.Printf("\nGenerated in: %s", utils.Decorate(utils.FormatTime(time.Since(start)), utils.SuccessColor))

	if failed > 0 {
		os.Exit(1)
	}
}

// decode reads the source image from a file or from stdin.
func decode(source string) (*tessera.SourceImage, error) {
	if source != pipeName {
		return tessera.Open(source)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
	}
	return tessera.Decode(os.Stdin)
}

// write renders the artwork into the file at path.
func write(path string, r tessera.Renderer, art *tessera.Artwork) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return r.Render(f, art)
}

func modeNames() string {
	names := make([]string, 0, len(tessera.Modes))
	for _, m := range tessera.Modes {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
