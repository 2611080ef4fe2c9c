// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package rasterio is the external collaborator spec.md §1 excludes
// from the core: it decodes and encodes the image formats the CLI
// accepts and converts between the standard library's image.Image and
// this module's packed imgdiff.Image buffer. The core package never
// imports this one.
package rasterio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/deepteams/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/crhym3/rasterdiff"
)

// ErrUnsupportedFormat is returned for recognized-but-unimplemented
// extensions, currently .qoi: no QOI codec exists in this module's
// dependency lineage.
var ErrUnsupportedFormat = errors.New("rasterio: unsupported image format")

// Load decodes the image at path into a packed imgdiff.Image.
func Load(path string) (imgdiff.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".qoi") {
		return imgdiff.Image{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return imgdiff.Image{}, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return imgdiff.Image{}, fmt.Errorf("%s: %w", path, err)
	}
	return toRaster(src), nil
}

// Save encodes img in the given format ("png", "jpg"/"jpeg", "bmp",
// "tif"/"tiff", or "webp") to path. "qoi" is recognized but returns
// ErrUnsupportedFormat.
func Save(path, format string, img imgdiff.Image, compression, quality int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	nrgba := toNRGBA(img)
	switch strings.ToLower(format) {
	case "png":
		enc := &png.Encoder{CompressionLevel: pngLevel(compression)}
		return enc.Encode(f, nrgba)
	case "jpg", "jpeg":
		return jpeg.Encode(f, nrgba, &jpeg.Options{Quality: quality})
	case "bmp":
		return bmp.Encode(f, nrgba)
	case "tif", "tiff":
		return tiff.Encode(f, nrgba, nil)
	case "webp":
		return webp.Encode(f, nrgba, &webp.Options{Quality: float32(quality)})
	case "qoi":
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	default:
		return fmt.Errorf("%s: unrecognized output format %q", path, format)
	}
}

// toRaster converts a decoded image.Image into a packed imgdiff.Image
// whose byte layout matches image.NRGBA exactly (R,G,B,A per pixel,
// no padding), reusing the decoder's pixel buffer when it already is
// one.
func toRaster(src image.Image) imgdiff.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*w {
		return imgdiff.Image{Width: w, Height: h, Pix: n.Pix}
	}

	n := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(n, n.Bounds(), src, b.Min, draw.Src)
	return imgdiff.Image{Width: w, Height: h, Pix: n.Pix}
}

// toNRGBA is the inverse of toRaster: it wraps a packed imgdiff.Image
// in an *image.NRGBA without copying, for handoff to the standard
// library encoders.
func toNRGBA(img imgdiff.Image) *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pix,
		Stride: 4 * img.Width,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}

// pngLevel maps the CLI's 0-9 zlib-style compression knob onto the
// handful of levels image/png actually exposes.
func pngLevel(n int) png.CompressionLevel {
	switch {
	case n <= 0:
		return png.NoCompression
	case n >= 9:
		return png.BestCompression
	case n <= 3:
		return png.BestSpeed
	default:
		return png.DefaultCompression
	}
}
