package tessera

import (
	"golang.org/x/exp/slices"
)

const (
	// sigBits is the number of significant bits per channel kept in the color histogram.
	sigBits = 5
	rshift  = 8 - sigBits

	// quality is the pixel sampling interval: only every quality-th pixel gets counted.
	quality = 10
	// fractByPopulation is the share of boxes split by population before switching
	// to population times volume.
	fractByPopulation = 0.75
	// dominantPaletteSize is the palette size used to pick the dominant color.
	dominantPaletteSize = 5
)

// bucket accumulates the pixels falling into one histogram cell.
type bucket struct {
	q     [3]int
	count int
	sum   [3]int
}

// vbox is a box of the quantized color space holding a set of histogram buckets.
type vbox struct {
	buckets []*bucket
	count   int
	lo, hi  [3]int
}

func newVbox(buckets []*bucket) *vbox {
	v := &vbox{buckets: buckets}
	v.lo = [3]int{1 << sigBits, 1 << sigBits, 1 << sigBits}
	for _, b := range buckets {
		v.count += b.count
		for c := 0; c < 3; c++ {
			v.lo[c] = Min(v.lo[c], b.q[c])
			v.hi[c] = Max(v.hi[c], b.q[c])
		}
	}
	return v
}

func (v *vbox) volume() int {
	return (v.hi[0] - v.lo[0] + 1) * (v.hi[1] - v.lo[1] + 1) * (v.hi[2] - v.lo[2] + 1)
}

// average returns the mean color of the pixels in the box.
func (v *vbox) average() RGB {
	var sum [3]int
	for _, b := range v.buckets {
		for c := 0; c < 3; c++ {
			sum[c] += b.sum[c]
		}
	}
	if v.count == 0 {
		return RGB{}
	}
	return RGB{
		R: uint8(sum[0] / v.count),
		G: uint8(sum[1] / v.count),
		B: uint8(sum[2] / v.count),
	}
}

// split cuts the box at the population median of its widest channel.
func (v *vbox) split() (*vbox, *vbox) {
	channel := 0
	for c := 1; c < 3; c++ {
		if v.hi[c]-v.lo[c] > v.hi[channel]-v.lo[channel] {
			channel = c
		}
	}
	buckets := append([]*bucket(nil), v.buckets...)
	slices.SortFunc(buckets, func(a, b *bucket) bool {
		if a.q[channel] == b.q[channel] {
			return a.count > b.count
		}
		return a.q[channel] < b.q[channel]
	})

	var acc, cut int
	for i, b := range buckets {
		acc += b.count
		if acc*2 >= v.count {
			cut = i + 1
			break
		}
	}
	// Both halves must keep at least one bucket.
	cut = clamp(cut, 1, len(buckets)-1)

	return newVbox(buckets[:cut]), newVbox(buckets[cut:])
}

// ExtractPalette returns exactly count representative colors of the image, most populated first.
// Transparent and almost white pixels are ignored unless nothing else is left.
// When the image has fewer distinct colors than requested the palette repeats itself.
func ExtractPalette(img *SourceImage, count int) ([]RGB, error) {
	if count < 1 {
		return nil, invalidf("palette size %d, at least 1 expected", count)
	}
	if err := img.validate(); err != nil {
		return nil, err
	}

	buckets := histogram(img, true)
	if len(buckets) == 0 {
		buckets = histogram(img, false)
	}
	boxes := []*vbox{newVbox(buckets)}

	split := func(target int, priority func(*vbox) int) {
		for len(boxes) < target {
			best := -1
			for i, b := range boxes {
				if len(b.buckets) < 2 {
					continue
				}
				if best < 0 || priority(b) > priority(boxes[best]) {
					best = i
				}
			}
			if best < 0 {
				return
			}
			lo, hi := boxes[best].split()
			boxes[best] = lo
			boxes = append(boxes, hi)
		}
	}
	split(Max(1, int(fractByPopulation*float64(count))), func(b *vbox) int {
		return b.count
	})
	split(count, func(b *vbox) int {
		return b.count * b.volume()
	})

	slices.SortFunc(boxes, func(a, b *vbox) bool {
		return a.count > b.count
	})

	palette := make([]RGB, 0, count)
	for _, b := range boxes {
		palette = append(palette, b.average())
	}
	for n := len(palette); len(palette) < count; {
		palette = append(palette, palette[len(palette)%n])
	}
	return palette, nil
}

// DominantColor returns the most representative color of the image.
func DominantColor(img *SourceImage) (RGB, error) {
	palette, err := ExtractPalette(img, dominantPaletteSize)
	if err != nil {
		return RGB{}, err
	}
	return palette[0], nil
}

// histogram counts every quality-th pixel into the quantized color buckets.
func histogram(img *SourceImage, filter bool) []*bucket {
	var (
		index   = make(map[int]*bucket)
		buckets []*bucket
	)
	for i := 0; i < img.Width*img.Height; i += quality {
		offset := i * img.Stride
		r, g, b := img.Pix[offset], img.Pix[offset+1], img.Pix[offset+2]

		if filter {
			if img.Stride == StrideRGBA && img.Pix[offset+3] < 125 {
				continue
			}
			if r > 250 && g > 250 && b > 250 {
				continue
			}
		}
		q := [3]int{int(r >> rshift), int(g >> rshift), int(b >> rshift)}
		key := q[0]<<(2*sigBits) | q[1]<<sigBits | q[2]

		bk, ok := index[key]
		if !ok {
			bk = &bucket{q: q}
			index[key] = bk
			buckets = append(buckets, bk)
		}
		bk.count++
		bk.sum[0] += int(r)
		bk.sum[1] += int(g)
		bk.sum[2] += int(b)
	}
	return buckets
}
