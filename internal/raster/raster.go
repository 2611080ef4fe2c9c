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

// Package raster holds the packed-pixel image representation shared by
// every other internal package, plus the two error kinds the driver can
// surface. The public imgdiff package re-exports these types verbatim
// so that callers never need to import an internal path.
package raster

import (
	"encoding/binary"
	"fmt"
	"log/slog"
)

// Image is an immutable-during-diff rectangular raster of RGBA8 pixels
// in row-major order, 4 bytes per pixel, no padding.
type Image struct {
	Width, Height int
	Pix           []byte
}

// PixOffset returns the index into Pix of the first (red) byte of the
// pixel at (x, y).
func (img Image) PixOffset(x, y int) int {
	return 4 * (y*img.Width + x)
}

// Word32 returns the pixel at (x, y) packed into a 32-bit word with R
// in the least-significant byte and A in the most-significant byte.
func (img Image) Word32(x, y int) uint32 {
	off := img.PixOffset(x, y)
	return binary.LittleEndian.Uint32(img.Pix[off : off+4])
}

// At unpacks the pixel at (x, y) into its four channels.
func (img Image) At(x, y int) (r, g, b, a uint8) {
	off := img.PixOffset(x, y)
	p := img.Pix[off : off+4 : off+4]
	return p[0], p[1], p[2], p[3]
}

// SameBuffer reports whether a and b share the same backing array,
// which lets the driver skip all per-pixel work for a diff against
// itself.
func SameBuffer(a, b Image) bool {
	if len(a.Pix) == 0 || len(b.Pix) == 0 {
		return len(a.Pix) == 0 && len(b.Pix) == 0
	}
	return &a.Pix[0] == &b.Pix[0]
}

// SizeMismatchError reports that two images (or an image and the
// requested output buffer) do not share width and height.
type SizeMismatchError struct {
	W1, H1, W2, H2 int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("raster: size mismatch: %dx%d vs %dx%d", e.W1, e.H1, e.W2, e.H2)
}

// InvalidDataSizeError reports that a pixel buffer's length does not
// match 4*Width*Height.
type InvalidDataSizeError struct {
	Expected, Actual int
}

func (e *InvalidDataSizeError) Error() string {
	return fmt.Sprintf("raster: invalid pixel buffer length: want %d, got %d", e.Expected, e.Actual)
}

// Validate checks that img's pixel buffer has the length its
// dimensions imply.
func Validate(img Image) error {
	want := 4 * img.Width * img.Height
	if len(img.Pix) != want {
		return &InvalidDataSizeError{Expected: want, Actual: len(img.Pix)}
	}
	return nil
}

// Options is the fully-resolved, defaulted form of the public
// imgdiff.DiffOptions, used by every internal package downstream of
// the driver so that none of them need to know about pointer-optional
// fields or default values.
type Options struct {
	MaxDelta     float64
	IncludeAA    bool
	Alpha        float64
	AAColor      [3]byte
	DiffColor    [3]byte
	DiffColorAlt [3]byte
	DiffMask     bool
	Logger       *slog.Logger
}

// Background reports whether unchanged and anti-aliased pixels should
// be painted (true) or left for the caller's diff-mask semantics
// (false).
func (o Options) Background() bool {
	return !o.DiffMask
}
