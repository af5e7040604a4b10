/*
Package tessera is an image processing library which converts photographs to vector art
by sampling colors over a jittered grid and painting rectangles, delaunay triangles or voronoi cells.

The package provides a command line utility supporting various customization options.
Check the supported commands by typing:

	$ tessera --help

Every rendering works in a resolution independent space where both axes go from 0 to 100.
The source image is decoded once and shared, read only, by all the rendering modes.

Example to triangulate an image and output the result as SVG:

	package main

	import (
		"log"
		"os"

		"github.com/esimov/tessera"
	)

	func main() {
		src, err := tessera.Open("input.jpg")
		if err != nil {
			log.Fatal(err)
		}

		p := tessera.DefaultProcessor()
		art, err := p.Render(src, tessera.ModeTriangulation)
		if err != nil {
			log.Fatalf("Error on triangulation process: %v", err)
		}

		svg := &tessera.SVG{Title: "Delaunay image triangulator", StrokeWidth: 0.1}
		if err := svg.Render(os.Stdout, art); err != nil {
			log.Fatal(err)
		}
	}

The building blocks can be used on their own as well:

	grid, _ := tessera.NewGrid(5, 10, rand.New(rand.NewSource(1)))
	triangles, _ := new(tessera.Delaunay).Triangulate(grid)
	cells, _ := tessera.TriangleCells(grid, triangles)

	c, _ := tessera.NewColorizer(src)
	colored, _ := c.Colorize(tessera.Cells(cells))
*/
package tessera
