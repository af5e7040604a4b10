package tessera

import (
	"image"
	"math"

	"github.com/pkg/errors"
)

const (
	// StrideRGBA is the channel stride of a buffer holding four bytes per pixel.
	StrideRGBA = 4
	// StrideRGB is the channel stride of a buffer holding three bytes per pixel.
	StrideRGB = 3
)

// SourceImage is a decoded image buffer in row-major order.
// It is never modified once created, so it can be shared between concurrent readers.
type SourceImage struct {
	Width  int
	Height int
	Stride int
	Pix    []uint8
}

// NewSourceImage converts img into a tightly packed RGBA buffer.
// An *image.NRGBA anchored at the origin is wrapped without copying its pixels.
func NewSourceImage(img image.Image) *SourceImage {
	nrgba := ImgToNRGBA(img)
	return &SourceImage{
		Width:  nrgba.Bounds().Dx(),
		Height: nrgba.Bounds().Dy(),
		Stride: StrideRGBA,
		Pix:    nrgba.Pix,
	}
}

// NRGBA returns the buffer as an image. RGB buffers are expanded to opaque NRGBA.
func (s *SourceImage) NRGBA() *image.NRGBA {
	if s.Stride == StrideRGBA {
		return &image.NRGBA{
			Pix:    s.Pix,
			Stride: s.Width * StrideRGBA,
			Rect:   image.Rect(0, 0, s.Width, s.Height),
		}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for i, j := 0, 0; i+2 < len(s.Pix) && j+3 < len(dst.Pix); i, j = i+s.Stride, j+4 {
		dst.Pix[j] = s.Pix[i]
		dst.Pix[j+1] = s.Pix[i+1]
		dst.Pix[j+2] = s.Pix[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

func (s *SourceImage) validate() error {
	if s == nil {
		return invalidf("missing source image")
	}
	if s.Width <= 0 || s.Height <= 0 {
		return invalidf("image size %dx%d", s.Width, s.Height)
	}
	if s.Stride != StrideRGBA && s.Stride != StrideRGB {
		return invalidf("unsupported channel stride %d", s.Stride)
	}
	if need := s.Width * s.Height * s.Stride; len(s.Pix) < need {
		return invalidf("pixel buffer holds %d bytes, %d expected", len(s.Pix), need)
	}
	return nil
}

// Sampler maps normalized coordinates to pixels of the source image.
type Sampler struct {
	img *SourceImage
}

// NewSampler creates a sampler over the image after validating its dimensions.
func NewSampler(img *SourceImage) (*Sampler, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	return &Sampler{img: img}, nil
}

// pixelCoord converts a normalized coordinate into a pixel index along an axis of the given size.
// The upper boundary is remapped to 99 since the normalized space includes it but the pixels do not.
func pixelCoord(v float64, size int) int {
	v = clamp(v, lowerBound, upperBound)
	if v == upperBound {
		v = upperBound - 1
	}
	return int(math.Floor(v * float64(size) / upperBound))
}

// At returns the color of the pixel under the normalized point p.
func (s *Sampler) At(p Point) (RGB, error) {
	img := s.img
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return RGB{}, errors.Wrapf(ErrOutOfBounds, "point (%v, %v)", p.X, p.Y)
	}
	realX := pixelCoord(p.X, img.Width)
	realY := pixelCoord(p.Y, img.Height)

	if realX < 0 || realX >= img.Width || realY < 0 || realY >= img.Height {
		return RGB{}, errors.Wrapf(ErrOutOfBounds, "pixel (%d, %d) of %dx%d image", realX, realY, img.Width, img.Height)
	}
	offset := img.Stride * (realY*img.Width + realX)
	if offset < 0 || offset+2 >= len(img.Pix) {
		return RGB{}, errors.Wrapf(ErrOutOfBounds, "offset %d of %d byte buffer", offset, len(img.Pix))
	}
	return RGB{R: img.Pix[offset], G: img.Pix[offset+1], B: img.Pix[offset+2]}, nil
}
