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

package aa

import (
	"testing"

	"github.com/crhym3/rasterdiff/internal/raster"
)

func solid(w, h int, r, g, b, a byte) raster.Image {
	pix := make([]byte, 4*w*h)
	for i := 0; i < w*h; i++ {
		pix[4*i], pix[4*i+1], pix[4*i+2], pix[4*i+3] = r, g, b, a
	}
	return raster.Image{Width: w, Height: h, Pix: pix}
}

func TestClassifySolidFieldIsNotAA(t *testing.T) {
	a := solid(10, 10, 0, 0, 0, 255)
	b := solid(10, 10, 255, 255, 255, 255)
	if Classify(a, b, 5, 5) {
		t.Fatal("a uniform field has no bidirectional gradient; want false")
	}
}

func TestClassifyOnePixelImageHasNoNeighbors(t *testing.T) {
	a := solid(1, 1, 0, 0, 0, 255)
	b := solid(1, 1, 255, 255, 255, 255)
	if Classify(a, b, 0, 0) {
		t.Fatal("a 1x1 image has no neighbors to form a gradient; want false")
	}
}

func TestClassifyGradientEdgeIsAA(t *testing.T) {
	// A 5x5 diagonal black/white split with a gray pixel at the
	// boundary (2,2): its neighborhood has both a strictly brighter
	// and a strictly darker sibling, and each of those sits in a
	// solid (3+ identical neighbors) region - the textbook
	// anti-aliased edge pattern from spec.md §4.3 / the GLOSSARY.
	rows := [][]byte{
		{0, 0, 0, 0, 0},
		{0, 0, 0, 255, 255},
		{0, 0, 128, 255, 255},
		{0, 255, 255, 255, 255},
		{255, 255, 255, 255, 255},
	}
	img := gray5x5(rows)

	if !Classify(img, img, 2, 2) {
		t.Fatal("want true for a pixel straddling two solid regions of opposite luminance")
	}
}

func gray5x5(rows [][]byte) raster.Image {
	pix := make([]byte, 4*5*5)
	for y, row := range rows {
		for x, v := range row {
			off := 4 * (y*5 + x)
			pix[off], pix[off+1], pix[off+2], pix[off+3] = v, v, v, 255
		}
	}
	return raster.Image{Width: 5, Height: 5, Pix: pix}
}

func setPixel(img raster.Image, x, y int, r, g, b, a byte) {
	off := img.PixOffset(x, y)
	img.Pix[off], img.Pix[off+1], img.Pix[off+2], img.Pix[off+3] = r, g, b, a
}
