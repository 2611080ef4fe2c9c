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

// Package metric computes the YIQ perceptual color distance between
// two packed RGBA pixels, per the algorithm in Y. Kotsarenko and
// F. Ramos, "Measuring perceived color difference using YIQ NTSC
// transmission color space in mobile applications".
package metric

// unpack splits a little-endian packed pixel (R in the low byte, A in
// the high byte) into its four channels as float64.
func unpack(p uint32) (r, g, b, a float64) {
	return float64(p & 0xff),
		float64((p >> 8) & 0xff),
		float64((p >> 16) & 0xff),
		float64((p >> 24) & 0xff)
}

// blend composes a channel value over an opaque white background
// given the pixel's alpha (0-255 scale throughout).
func blend(c, a float64) float64 {
	return 255 + (c-255)*a/255
}

// channelDiffs returns dr, dg, db for the pair of pixels, blending
// over white when either pixel is not fully opaque.
func channelDiffs(pA, pB uint32) (dr, dg, db float64) {
	r1, g1, b1, a1 := unpack(pA)
	r2, g2, b2, a2 := unpack(pB)
	if a1 == 255 && a2 == 255 {
		return r1 - r2, g1 - g2, b1 - b2
	}
	return blend(r1, a1) - blend(r2, a2),
		blend(g1, a1) - blend(g2, a2),
		blend(b1, a1) - blend(b2, a2)
}

// magnitude turns a channel-difference triple into the signed YIQ
// delta: the sign carries whether pA is lighter (negative) or darker
// (non-negative) than pB.
func magnitude(dr, dg, db float64) float64 {
	y := dr*0.29889531 + dg*0.58662247 + db*0.11448223
	i := dr*0.59597799 - dg*0.2741761 - db*0.32180189
	q := dr*0.21147017 - dg*0.52261711 + db*0.31114694
	m := 0.5053*y*y + 0.299*i*i + 0.1957*q*q
	if y <= 0 {
		return m
	}
	return -m
}

// Delta returns the alpha-aware signed YIQ delta between two packed
// pixels, bounded in magnitude by 35215 for fully opaque inputs.
func Delta(pA, pB uint32) float64 {
	if pA == pB {
		return 0
	}
	dr, dg, db := channelDiffs(pA, pB)
	return magnitude(dr, dg, db)
}

// Luminance returns the Y-only component of the alpha-aware delta,
// used by the anti-aliasing classifier's gradient probe.
func Luminance(pA, pB uint32) float64 {
	if pA == pB {
		return 0
	}
	dr, dg, db := channelDiffs(pA, pB)
	return dr*0.29889531 + dg*0.58662247 + db*0.11448223
}

// DeltaOpaque is the cold-pass pre-screen variant: it ignores alpha
// entirely, treating both pixels as fully opaque. It never produces a
// false negative relative to Delta when both pixels genuinely are
// opaque (or both fully transparent), but it can produce a false
// positive for semi-transparent pixels; the hot pass re-tests with
// Delta and is authoritative.
func DeltaOpaque(pA, pB uint32) float64 {
	if pA == pB {
		return 0
	}
	r1, g1, b1, _ := unpack(pA)
	r2, g2, b2, _ := unpack(pB)
	return magnitude(r1-r2, g1-g2, b1-b2)
}

// MaxMagnitude is the maximum possible squared YIQ delta between two
// fully opaque colors; threshold conversion (max_delta = MaxMagnitude
// * threshold^2) relies on this bound.
const MaxMagnitude = 35215
