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

package imgdiff

import (
	"log/slog"

	"github.com/crhym3/rasterdiff/internal/metric"
	"github.com/crhym3/rasterdiff/internal/raster"
)

// Image is an immutable-during-diff rectangular raster of RGBA8
// pixels in row-major order: the byte at offset 4*(y*Width+x)+c holds
// channel c (R=0, G=1, B=2, A=3) of pixel (x, y). Pix must have length
// 4*Width*Height.
type Image = raster.Image

// SizeMismatchError is returned when two images (or an image and the
// requested output buffer) do not share width and height.
type SizeMismatchError = raster.SizeMismatchError

// InvalidDataSizeError is returned when a pixel buffer's length does
// not equal 4*Width*Height.
type InvalidDataSizeError = raster.InvalidDataSizeError

// DiffOptions configures a Diff call. The pointer-typed numeric and
// color fields distinguish "not set, use the documented default" from
// an explicit zero value (a threshold of exactly 0.0 is a meaningful,
// distinct request from "use the default 0.1"); this mirrors the
// optional-field-with-defaulting convention used throughout the
// Kubernetes API types for the same reason.
type DiffOptions struct {
	// Threshold is the perceptual tolerance in [0,1]. Nil means 0.1.
	Threshold *float64

	// IncludeAA, if true, skips anti-aliasing classification: AA
	// pixels are counted as diffs like any other differing pixel.
	IncludeAA bool

	// Alpha is the opacity used when painting the desaturated
	// background. Nil means 0.1.
	Alpha *float64

	// AAColor is the RGB marker for detected anti-aliased pixels.
	// Nil means {255,255,0}.
	AAColor *[3]byte

	// DiffColor is the RGB marker for genuine differences. Nil means
	// {255,0,0}.
	DiffColor *[3]byte

	// DiffColorAlt is the RGB marker used instead of DiffColor when
	// the difference is "lightening" (signed delta < 0). Nil means
	// DiffColor is reused.
	DiffColorAlt *[3]byte

	// DiffMask, if true, starts the output fully transparent and
	// paints only differing pixels; anti-aliased pixels and the
	// desaturated background are not painted.
	DiffMask bool

	// Logger receives Debug-level diagnostics (block size, selected
	// lane width, changed-block count). Nil disables logging.
	Logger *slog.Logger
}

// DiffResult is the outcome of a Diff call.
type DiffResult struct {
	DiffCount      uint32
	DiffPercentage float64
	Identical      bool
}

const (
	defaultThreshold = 0.1
	defaultAlpha     = 0.1
)

var (
	defaultAAColor   = [3]byte{255, 255, 0}
	defaultDiffColor = [3]byte{255, 0, 0}
)

// resolveOptions fills in defaults and precomputes max_delta = 35215
// * threshold^2, per spec.md §3.
func resolveOptions(o *DiffOptions) raster.Options {
	threshold := defaultThreshold
	alpha := defaultAlpha
	aaColor := defaultAAColor
	diffColor := defaultDiffColor
	var includeAA, diffMask bool
	var logger *slog.Logger

	if o != nil {
		if o.Threshold != nil {
			threshold = *o.Threshold
		}
		if o.Alpha != nil {
			alpha = *o.Alpha
		}
		if o.AAColor != nil {
			aaColor = *o.AAColor
		}
		if o.DiffColor != nil {
			diffColor = *o.DiffColor
		}
		includeAA = o.IncludeAA
		diffMask = o.DiffMask
		logger = o.Logger
	}

	diffColorAlt := diffColor
	if o != nil && o.DiffColorAlt != nil {
		diffColorAlt = *o.DiffColorAlt
	}

	return raster.Options{
		MaxDelta:     metric.MaxMagnitude * threshold * threshold,
		IncludeAA:    includeAA,
		Alpha:        alpha,
		AAColor:      aaColor,
		DiffColor:    diffColor,
		DiffColorAlt: diffColorAlt,
		DiffMask:     diffMask,
		Logger:       logger,
	}
}
