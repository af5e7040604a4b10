package tessera

import (
	"image"
	"io"

	// Register the image formats supported besides the ones imaging brings in.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
)

// Decode reads an image and converts it into a source buffer with four channels per pixel.
// The EXIF orientation of JPEG files is applied.
func Decode(r io.Reader) (*SourceImage, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return decoded("", src)
}

// Open loads the image file found at path. See Decode.
func Open(path string) (*SourceImage, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return decoded(path, src)
}

func decoded(path string, src image.Image) (*SourceImage, error) {
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	if width <= 1 || height <= 1 {
		return nil, &DecodeError{
			Path: path,
			Err:  invalidf("the image width and height must be greater than 1px, got %dx%d", width, height),
		}
	}
	return NewSourceImage(src), nil
}
