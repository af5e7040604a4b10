package tessera

import (
	"image"
	"math/rand"
)

// Noise applies a noise factor, like adobe's grain filter.
// The same generator state always produces the same grain.
func Noise(amount int, src image.Image, rng *rand.Rand) *image.NRGBA {
	img := ImgToNRGBA(src)
	dst := image.NewNRGBA(img.Bounds())

	for i := 0; i+3 < len(img.Pix); i += 4 {
		noise := (rng.Float64() - 0.1) * float64(amount)
		r, g, b := float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])

		// Check if the color does not overflow the maximum limit after the noise has been applied.
		if r+noise < 255 && g+noise < 255 && b+noise < 255 {
			r += noise
			g += noise
			b += noise
		}
		dst.Pix[i] = uint8(clamp(r, 0, 255))
		dst.Pix[i+1] = uint8(clamp(g, 0, 255))
		dst.Pix[i+2] = uint8(clamp(b, 0, 255))
		dst.Pix[i+3] = img.Pix[i+3]
	}
	return dst
}
