package tessera

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestImage builds an RGBA source image colored by fn.
func newTestImage(width, height int, fn func(x, y int) RGB) *SourceImage {
	pix := make([]uint8, width*height*StrideRGBA)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := fn(x, y)
			i := (y*width + x) * StrideRGBA
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, 0xff
		}
	}
	return &SourceImage{Width: width, Height: height, Stride: StrideRGBA, Pix: pix}
}

// coordImage encodes the pixel position in the red and green channels.
func coordImage(width, height int) *SourceImage {
	return newTestImage(width, height, func(x, y int) RGB {
		return RGB{R: uint8(x), G: uint8(y), B: 7}
	})
}

func TestSampler_CornersShouldMapInsideTheImage(t *testing.T) {
	s, err := NewSampler(coordImage(10, 20))
	require.NoError(t, err)

	c, err := s.At(Point{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 0, 7}, c)

	// 100 is remapped to 99: floor(99*10/100) = 9, floor(99*20/100) = 19.
	c, err = s.At(Point{100, 100})
	require.NoError(t, err)
	assert.Equal(t, RGB{9, 19, 7}, c)

	c, err = s.At(Point{100, 0})
	require.NoError(t, err)
	assert.Equal(t, RGB{9, 0, 7}, c)

	c, err = s.At(Point{50, 50})
	require.NoError(t, err)
	assert.Equal(t, RGB{5, 10, 7}, c)
}

func TestSampler_ShouldClampOutOfSpacePoints(t *testing.T) {
	s, err := NewSampler(coordImage(10, 10))
	require.NoError(t, err)

	c, err := s.At(Point{-20, 250})
	require.NoError(t, err)
	assert.Equal(t, RGB{0, 9, 7}, c)
}

func TestSampler_ShouldSupportRGBBuffers(t *testing.T) {
	img := &SourceImage{
		Width:  2,
		Height: 2,
		Stride: StrideRGB,
		Pix: []uint8{
			1, 2, 3, 4, 5, 6,
			7, 8, 9, 10, 11, 12,
		},
	}
	s, err := NewSampler(img)
	require.NoError(t, err)

	c, err := s.At(Point{0, 0})
	require.NoError(t, err)
	assert.Equal(t, RGB{1, 2, 3}, c)

	c, err = s.At(Point{100, 100})
	require.NoError(t, err)
	assert.Equal(t, RGB{10, 11, 12}, c)

	c, err = s.At(Point{60, 10})
	require.NoError(t, err)
	assert.Equal(t, RGB{4, 5, 6}, c)
}

func TestSampler_ShouldNotReadOutsideTheBuffer(t *testing.T) {
	// Bypass the validation of NewSampler to simulate a truncated buffer.
	s := &Sampler{img: &SourceImage{Width: 4, Height: 4, Stride: StrideRGBA, Pix: make([]uint8, 16)}}

	_, err := s.At(Point{0, 0})
	assert.NoError(t, err)

	_, err = s.At(Point{100, 100})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSampler_InvalidImages(t *testing.T) {
	_, err := NewSampler(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewSampler(&SourceImage{Width: 0, Height: 3, Stride: StrideRGBA})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewSampler(&SourceImage{Width: 2, Height: 2, Stride: 2, Pix: make([]uint8, 8)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewSampler(&SourceImage{Width: 2, Height: 2, Stride: StrideRGBA, Pix: make([]uint8, 15)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSourceImage_NRGBA(t *testing.T) {
	img := &SourceImage{Width: 2, Height: 1, Stride: StrideRGB, Pix: []uint8{1, 2, 3, 4, 5, 6}}
	nrgba := img.NRGBA()

	assert.Equal(t, []uint8{1, 2, 3, 255, 4, 5, 6, 255}, nrgba.Pix)

	back := NewSourceImage(nrgba)
	assert.Equal(t, StrideRGBA, back.Stride)
	assert.Equal(t, nrgba.Pix, back.Pix)
}
