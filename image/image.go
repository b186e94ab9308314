// SPDX-License-Identifier: GPL-2.0-or-later

// Package image turns indexed pixels into images for export.
package image

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"multiasset/palette"
)

// FromIndexed expands width*height palette indices to NRGBA. With alpha set
// index 255 is transparent.
func FromIndexed(pix []byte, width, height int, pal palette.Palette, alpha bool) (*image.NRGBA, error) {
	if width < 0 || height < 0 {
		return nil, errors.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) < width*height {
		return nil, errors.Errorf("%d pixels for a %dx%d image", len(pix), width, height)
	}
	table := pal.Table(alpha)
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range pix[:width*height] {
		copy(img.Pix[i*4:i*4+4], table[int(p)*4:int(p)*4+4])
	}
	return img, nil
}

// ToPaletted wraps width*height palette indices without expanding them.
// Missing palette entries are opaque black.
func ToPaletted(pix []byte, width, height int, pal palette.Palette) (*image.Paletted, error) {
	if width < 0 || height < 0 {
		return nil, errors.Errorf("invalid image size %dx%d", width, height)
	}
	if len(pix) < width*height {
		return nil, errors.Errorf("%d pixels for a %dx%d image", len(pix), width, height)
	}
	m := pal.Model()
	for len(m) < palette.Size {
		m = append(m, color.NRGBA{A: 255})
	}
	img := image.NewPaletted(image.Rect(0, 0, width, height), m)
	copy(img.Pix, pix[:width*height])
	return img, nil
}

// Encode writes img as png.
func Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func WritePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", name)
	}
	if err := f.Close(); err != nil {
		return err
	}
	slog.Debug("wrote image", slog.String("name", name), slog.Int("width", img.Bounds().Dx()), slog.Int("height", img.Bounds().Dy()))
	return nil
}
