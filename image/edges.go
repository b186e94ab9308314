// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"image"
)

// FixAlphaEdges sets the color of every fully transparent pixel to the
// average of its opaque neighbours, wrapping around the borders like a tiled
// texture. Alpha values are not changed.
func FixAlphaEdges(img *image.NRGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	at := func(x, y int) []uint8 {
		x = (x + w) % w
		y = (y + h) % h
		i := y*img.Stride + x*4
		return img.Pix[i : i+4 : i+4]
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := at(x, y)
			if p[3] != 0 {
				continue
			}
			var r, g, b, n int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					q := at(x+dx, y+dy)
					if q[3] == 0 {
						continue
					}
					r += int(q[0])
					g += int(q[1])
					b += int(q[2])
					n++
				}
			}
			if n != 0 {
				p[0], p[1], p[2] = uint8(r/n), uint8(g/n), uint8(b/n)
			}
		}
	}
}
