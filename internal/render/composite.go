package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// paintOver blends col through mask onto dst with the given opacity.
func paintOver(dst *image.RGBA, mask *image.Alpha, col color.RGBA, alpha float64) {
	r := mask.Bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	src := image.NewUniform(color.NRGBA{R: col.R, G: col.G, B: col.B, A: opacityByte(alpha)})
	xdraw.DrawMask(dst, r, src, image.Point{}, mask, r.Min, xdraw.Over)
}

// erase removes coverage from dst wherever mask is set (destination-out).
// The alpha channel drops as well, so erased pixels become transparent.
func erase(dst *image.RGBA, mask *image.Alpha, alpha float64) {
	r := mask.Bounds().Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	k := uint32(opacityByte(alpha))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := mask.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, mi, di = x+1, mi+1, di+4 {
			m := uint32(mask.Pix[mi]) * k / 255
			if m == 0 {
				continue
			}
			keep := 255 - m
			p := dst.Pix[di : di+4 : di+4]
			for c := range p {
				p[c] = uint8((uint32(p[c])*keep + 127) / 255)
			}
		}
	}
}

func opacityByte(alpha float64) uint8 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 255
	}
	return uint8(math.Round(alpha * 255))
}

// fillWhite paints r of dst opaque white.
func fillWhite(dst *image.RGBA, r image.Rectangle) {
	xdraw.Draw(dst, r, image.White, image.Point{}, xdraw.Src)
}

// copyRect copies r from src into dst. Both images must share bounds.
func copyRect(dst, src *image.RGBA, r image.Rectangle) {
	r = r.Intersect(dst.Bounds()).Intersect(src.Bounds())
	if r.Empty() {
		return
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := dst.PixOffset(r.Min.X, y)
		j := src.PixOffset(r.Min.X, y)
		copy(dst.Pix[i:i+n], src.Pix[j:j+n])
	}
}
