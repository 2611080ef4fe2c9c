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

// Package aa classifies whether a differing pixel lies on an
// anti-aliased edge, based on a 3x3 luminance-gradient probe: one
// strictly brighter and one strictly darker sibling, each itself
// sitting in a solid region in both images.
package aa

import (
	"github.com/crhym3/rasterdiff/internal/metric"
	"github.com/crhym3/rasterdiff/internal/raster"
)

// Classify reports whether (x, y) lies on an anti-aliased edge in
// img1 or img2. It runs the probe twice, with the two images in each
// role, and returns true if either pass does.
func Classify(img1, img2 raster.Image, x, y int) bool {
	return probe(img1, img2, x, y) || probe(img2, img1, x, y)
}

// probe examines the 3x3 neighborhood of (x, y) in a (the "center"
// image), comparing the center pixel against its own neighbors in a;
// b is consulted only for the sibling check on the gradient extremes.
func probe(a, b raster.Image, x, y int) bool {
	w, h := a.Width, a.Height
	x0, y0 := max(x-1, 0), max(y-1, 0)
	x1, y1 := min(x+1, w-1), min(y+1, h-1)

	zeroes := 0
	if x == x0 || x == x1 || y == y0 || y == y1 {
		zeroes = 1
	}

	c := a.Word32(x, y)
	var dmin, dmax float64
	var minX, minY, maxX, maxY int

	for yy := y0; yy <= y1; yy++ {
		for xx := x0; xx <= x1; xx++ {
			if xx == x && yy == y {
				continue
			}
			n := a.Word32(xx, yy)
			if n == c {
				zeroes++
				if zeroes > 2 {
					return false
				}
				continue
			}
			d := metric.Luminance(c, n)
			if d < dmin {
				dmin, minX, minY = d, xx, yy
			} else if d > dmax {
				dmax, maxX, maxY = d, xx, yy
			}
		}
	}

	if dmin == 0 || dmax == 0 {
		return false
	}

	return (hasManySiblings(a, minX, minY) && hasManySiblings(b, minX, minY)) ||
		(hasManySiblings(a, maxX, maxY) && hasManySiblings(b, maxX, maxY))
}

// hasManySiblings reports whether (x, y) in img has 3 or more
// neighbors (within its 3x3 window, seeded at 1 if on the image
// boundary) whose packed pixel equals img's pixel at (x, y).
func hasManySiblings(img raster.Image, x, y int) bool {
	w, h := img.Width, img.Height
	x0, y0 := max(x-1, 0), max(y-1, 0)
	x1, y1 := min(x+1, w-1), min(y+1, h-1)

	count := 0
	if x == x0 || x == x1 || y == y0 || y == y1 {
		count = 1
	}

	c := img.Word32(x, y)
	for yy := y0; yy <= y1; yy++ {
		for xx := x0; xx <= x1; xx++ {
			if xx == x && yy == y {
				continue
			}
			if img.Word32(xx, yy) == c {
				count++
				if count > 2 {
					return true
				}
			}
		}
	}
	return false
}
