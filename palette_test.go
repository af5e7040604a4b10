package tessera

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = RGB{R: 255}
	blue  = RGB{B: 255}
	white = RGB{R: 255, G: 255, B: 255}
)

// splitImage paints the left half of the image with left and the right half with right.
func splitImage(width, height int, left, right RGB) *SourceImage {
	return newTestImage(width, height, func(x, y int) RGB {
		if x < width/2 {
			return left
		}
		return right
	})
}

func TestExtractPalette_TwoColors(t *testing.T) {
	palette, err := ExtractPalette(splitImage(20, 10, red, blue), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []RGB{red, blue}, palette)
}

func TestExtractPalette_ShouldRepeatColorsWhenShort(t *testing.T) {
	palette, err := ExtractPalette(splitImage(20, 10, red, blue), 5)
	require.NoError(t, err)
	require.Len(t, palette, 5)

	assert.ElementsMatch(t, []RGB{red, blue}, palette[:2])
	assert.Equal(t, palette[0], palette[2])
	assert.Equal(t, palette[1], palette[3])
	assert.Equal(t, palette[0], palette[4])
}

func TestExtractPalette_ShouldIgnoreWhite(t *testing.T) {
	palette, err := ExtractPalette(splitImage(20, 10, white, red), 1)
	require.NoError(t, err)
	assert.Equal(t, []RGB{red}, palette)

	c, err := DominantColor(splitImage(20, 10, white, red))
	require.NoError(t, err)
	assert.Equal(t, red, c)
}

func TestExtractPalette_WhiteImage(t *testing.T) {
	c, err := DominantColor(solidImage(20, 10, white))
	require.NoError(t, err)
	assert.Equal(t, white, c)
}

func TestExtractPalette_ShouldIgnoreTransparentPixels(t *testing.T) {
	img := splitImage(20, 10, red, blue)
	for i := 0; i < img.Width*img.Height; i++ {
		if img.Pix[i*StrideRGBA] == 255 {
			img.Pix[i*StrideRGBA+3] = 0
		}
	}
	palette, err := ExtractPalette(img, 1)
	require.NoError(t, err)
	assert.Equal(t, []RGB{blue}, palette)
}

func TestExtractPalette_InvalidInput(t *testing.T) {
	_, err := ExtractPalette(solidImage(4, 4, red), 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = ExtractPalette(nil, 2)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
