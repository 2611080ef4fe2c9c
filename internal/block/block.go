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

// Package block implements the two-pass, block-tiled traversal: a
// cold pass that rejects identical or sub-threshold blocks cheaply,
// and a hot pass that runs the full metric, anti-aliasing classifier,
// and painter inside blocks the cold pass flagged as changed.
package block

import (
	"context"
	"log/slog"
	"math"

	"github.com/crhym3/rasterdiff/internal/aa"
	"github.com/crhym3/rasterdiff/internal/metric"
	"github.com/crhym3/rasterdiff/internal/paint"
	"github.com/crhym3/rasterdiff/internal/raster"
	"github.com/crhym3/rasterdiff/internal/simd"
)

// Size computes the block side length for a W x H image: a power of
// two in [8, 128].
func Size(w, h int) int {
	s := math.Sqrt(float64(w)*float64(h)) / 100
	r := 16 * math.Sqrt(s)
	exp := math.Round(math.Log2(r))
	size := int(math.Pow(2, exp))
	if size < 8 {
		return 8
	}
	if size > 128 {
		return 128
	}
	return size
}

type rect struct{ x0, y0, x1, y1 int }

// Run scans img1 against img2 in raster-ordered blocks, painting
// output (if non-nil) and returning the total differing-pixel count.
func Run(ctx context.Context, img1, img2 raster.Image, output *raster.Image, opts raster.Options) (uint32, error) {
	w, h := img1.Width, img1.Height
	bsize := Size(w, h)
	backend := simd.Select()
	lane := backend.Width()
	background := opts.Background()

	if opts.Logger != nil {
		opts.Logger.Debug("block scan starting",
			"block_size", bsize, "backend", backend.String(), "width", w, "height", h)
	}

	var changed []rect
	for y0 := 0; y0 < h; y0 += bsize {
		y1 := min(y0+bsize, h)
		for x0 := 0; x0 < w; x0 += bsize {
			x1 := min(x0+bsize, w)
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			r := rect{x0, y0, x1, y1}
			if coldPass(img1, img2, opts, r, lane) {
				changed = append(changed, r)
			} else if background && output != nil {
				paint.DesaturateBlock(*output, img1, x0, y0, x1, y1, opts.Alpha)
			}
		}
	}

	if opts.Logger != nil {
		opts.Logger.Debug("cold pass complete", "changed_blocks", len(changed))
	}

	if len(changed) == 0 {
		return 0, nil
	}

	var total uint32
	for _, r := range changed {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		total += hotPass(img1, img2, output, opts, r, lane, background)
	}
	return total, nil
}

// coldPass reports whether the block contains at least one
// perceptually differing pixel. It walks each row in lanes, using the
// alpha-blind opaque metric as a fast pre-screen, and falls back to
// the alpha-aware scalar metric for the ragged tail. The lane
// pre-screen compares RGB only, so inside a lane a pair that differs
// in alpha alone (opaque black against fully transparent black) is
// not flagged.
func coldPass(img1, img2 raster.Image, opts raster.Options, r rect, lane int) bool {
	for y := r.y0; y < r.y1; y++ {
		x := r.x0
		for ; x+lane <= r.x1; x += lane {
			equal := true
			for i := 0; i < lane; i++ {
				if img1.Word32(x+i, y) != img2.Word32(x+i, y) {
					equal = false
					break
				}
			}
			if equal {
				continue
			}
			for i := 0; i < lane; i++ {
				d := metric.DeltaOpaque(img1.Word32(x+i, y), img2.Word32(x+i, y))
				if math.Abs(d) > opts.MaxDelta {
					return true
				}
			}
		}
		for ; x < r.x1; x++ {
			p1, p2 := img1.Word32(x, y), img2.Word32(x, y)
			if p1 == p2 {
				continue
			}
			if math.Abs(metric.Delta(p1, p2)) > opts.MaxDelta {
				return true
			}
		}
	}
	return false
}

// hotPass runs the full per-pixel metric, classifier, and painter
// over a block already known to contain a difference, returning the
// number of pixels counted as differing.
func hotPass(img1, img2 raster.Image, output *raster.Image, opts raster.Options, r rect, lane int, background bool) uint32 {
	var count uint32
	for y := r.y0; y < r.y1; y++ {
		x := r.x0
		for ; x+lane <= r.x1; x += lane {
			allEqual := true
			for i := 0; i < lane; i++ {
				if img1.Word32(x+i, y) != img2.Word32(x+i, y) {
					allEqual = false
					break
				}
			}
			if allEqual {
				if background && output != nil {
					for i := 0; i < lane; i++ {
						paint.Desaturate(*output, img1, x+i, y, opts.Alpha)
					}
				}
				continue
			}
			for i := 0; i < lane; i++ {
				count += processPixel(img1, img2, output, opts, x+i, y, background)
			}
		}
		for ; x < r.x1; x++ {
			count += processPixel(img1, img2, output, opts, x, y, background)
		}
	}
	return count
}

// processPixel applies the metric, classifier, and painter to a
// single pixel, returning 1 if it counts toward the diff total.
func processPixel(img1, img2 raster.Image, output *raster.Image, opts raster.Options, x, y int, background bool) uint32 {
	p1, p2 := img1.Word32(x, y), img2.Word32(x, y)
	if p1 == p2 {
		if background && output != nil {
			paint.Desaturate(*output, img1, x, y, opts.Alpha)
		}
		return 0
	}

	delta := metric.Delta(p1, p2)
	if math.Abs(delta) > opts.MaxDelta {
		if !opts.IncludeAA && aa.Classify(img1, img2, x, y) {
			if background && output != nil {
				paint.Marker(*output, x, y, opts.AAColor)
			}
			return 0
		}
		if output != nil {
			color := opts.DiffColor
			if delta < 0 {
				color = opts.DiffColorAlt
			}
			paint.Marker(*output, x, y, color)
		}
		return 1
	}

	if background && output != nil {
		paint.Desaturate(*output, img1, x, y, opts.Alpha)
	}
	return 0
}
