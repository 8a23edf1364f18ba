package render

import (
	"image"
	"math"
)

// blurPasses box passes approximate a gaussian
const blurPasses = 3

// boxRadius converts a gaussian standard deviation into a per-pass box radius
func boxRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	w := math.Sqrt(12*sigma*sigma/blurPasses + 1)
	return int(math.Round((w - 1) / 2))
}

// Blurrer runs separable box blurs on premultiplied RGBA buffers
// Zero value is ready; the scratch row buffer grows on demand
type Blurrer struct {
	scratch []uint8
}

// Blur applies an approximate gaussian of standard deviation sigma (pixels) in place
func (bl *Blurrer) Blur(img *image.RGBA, sigma float64) {
	r := boxRadius(sigma)
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if r <= 0 || w == 0 || h == 0 {
		return
	}

	size := len(img.Pix)
	if cap(bl.scratch) < size {
		bl.scratch = make([]uint8, size)
	}
	tmp := bl.scratch[:size]

	for pass := 0; pass < blurPasses; pass++ {
		boxBlurH(img.Pix, tmp, w, h, img.Stride, r)
		boxBlurV(tmp, img.Pix, w, h, img.Stride, r)
	}
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}

// boxBlurH slides a (2r+1) window along each row, edge pixels extend
func boxBlurH(src, dst []uint8, w, h, stride, r int) {
	div := 2*r + 1
	half := div / 2
	for y := 0; y < h; y++ {
		row := y * stride
		var sum [4]int
		for k := -r; k <= r; k++ {
			i := row + clampIndex(k, w-1)*4
			sum[0] += int(src[i])
			sum[1] += int(src[i+1])
			sum[2] += int(src[i+2])
			sum[3] += int(src[i+3])
		}
		for x := 0; x < w; x++ {
			o := row + x*4
			dst[o] = uint8((sum[0] + half) / div)
			dst[o+1] = uint8((sum[1] + half) / div)
			dst[o+2] = uint8((sum[2] + half) / div)
			dst[o+3] = uint8((sum[3] + half) / div)

			out := row + clampIndex(x-r, w-1)*4
			in := row + clampIndex(x+r+1, w-1)*4
			for c := 0; c < 4; c++ {
				sum[c] += int(src[in+c]) - int(src[out+c])
			}
		}
	}
}

// boxBlurV slides a (2r+1) window down each column, edge pixels extend
func boxBlurV(src, dst []uint8, w, h, stride, r int) {
	div := 2*r + 1
	half := div / 2
	for x := 0; x < w; x++ {
		col := x * 4
		var sum [4]int
		for k := -r; k <= r; k++ {
			i := clampIndex(k, h-1)*stride + col
			sum[0] += int(src[i])
			sum[1] += int(src[i+1])
			sum[2] += int(src[i+2])
			sum[3] += int(src[i+3])
		}
		for y := 0; y < h; y++ {
			o := y*stride + col
			dst[o] = uint8((sum[0] + half) / div)
			dst[o+1] = uint8((sum[1] + half) / div)
			dst[o+2] = uint8((sum[2] + half) / div)
			dst[o+3] = uint8((sum[3] + half) / div)

			out := clampIndex(y-r, h-1)*stride + col
			in := clampIndex(y+r+1, h-1)*stride + col
			for c := 0; c < 4; c++ {
				sum[c] += int(src[in+c]) - int(src[out+c])
			}
		}
	}
}
