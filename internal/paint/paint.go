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

// Package paint holds the three output-pixel primitives shared by the
// cold and hot passes: a flat marker color, a desaturated "whitened"
// background pixel, and a block-wide application of the latter. Every
// primitive here must produce bit-identical results regardless of
// which lane width called it, so none of them branch on lane width at
// all.
package paint

import "github.com/crhym3/rasterdiff/internal/raster"

// Marker writes an opaque RGB triple at (x, y) in output.
func Marker(output raster.Image, x, y int, rgb [3]byte) {
	off := output.PixOffset(x, y)
	p := output.Pix[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = rgb[0], rgb[1], rgb[2], 255
}

// Desaturate writes the "whitened" luminance of src's pixel at (x, y)
// into output at the same coordinates: an opaque gray blended toward
// white by alpha * (srcAlpha/255).
func Desaturate(output, src raster.Image, x, y int, alpha float64) {
	r, g, b, a := src.At(x, y)
	y64 := float64(r)*0.29889531 + float64(g)*0.58662247 + float64(b)*0.11448223
	v := 255 + (y64-255)*alpha*(float64(a)/255)
	off := output.PixOffset(x, y)
	p := output.Pix[off : off+4 : off+4]
	gray := clampByte(v)
	p[0], p[1], p[2], p[3] = gray, gray, gray, 255
}

// DesaturateBlock applies Desaturate to every pixel within
// [x0,x1) x [y0,y1).
func DesaturateBlock(output, src raster.Image, x0, y0, x1, y1 int, alpha float64) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			Desaturate(output, src, x, y, alpha)
		}
	}
}

// clampByte clamps v to [0,255] and truncates toward zero, matching
// the rounding rule scalar and batched callers must agree on.
func clampByte(v float64) byte {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return byte(v)
}
