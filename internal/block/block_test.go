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

package block

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/crhym3/rasterdiff/internal/raster"
)

func TestSizeIsPowerOfTwoInRange(t *testing.T) {
	for _, dim := range [][2]int{{1, 1}, {100, 100}, {4000, 3000}, {1, 10000}, {16384, 16384}} {
		s := Size(dim[0], dim[1])
		if s < 8 || s > 128 {
			t.Fatalf("Size(%d,%d) = %d, want in [8,128]", dim[0], dim[1], s)
		}
		if s&(s-1) != 0 {
			t.Fatalf("Size(%d,%d) = %d, not a power of two", dim[0], dim[1], s)
		}
	}
}

func randomImage(r *rand.Rand, w, h int) raster.Image {
	pix := make([]byte, 4*w*h)
	r.Read(pix)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return raster.Image{Width: w, Height: h, Pix: pix}
}

func defaultOpts() raster.Options {
	return raster.Options{
		MaxDelta:     35215 * 0.1 * 0.1,
		IncludeAA:    false,
		Alpha:        0.1,
		AAColor:      [3]byte{255, 255, 0},
		DiffColor:    [3]byte{255, 0, 0},
		DiffColorAlt: [3]byte{0, 255, 0},
	}
}

// TestBackendsAgree verifies the lane width chosen for the cold pass's
// pre-screen never changes the final result: scalar, 4-wide and 8-wide
// runs over the same image pair must report the same diff count and
// paint the same output buffer.
func TestBackendsAgree(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	img1 := randomImage(r, 37, 53)
	img2 := randomImage(r, 37, 53)
	// The two random images already differ almost everywhere; also
	// flip the red channel at a few points, including the last column
	// and row.
	for _, p := range [][2]int{{0, 0}, {5, 7}, {36, 0}, {18, 26}, {36, 52}} {
		off := img2.PixOffset(p[0], p[1])
		img2.Pix[off] ^= 0xFF
	}

	opts := defaultOpts()

	var results []uint32
	var outputs [][]byte
	for _, lanes := range []string{"1", "4", "8"} {
		t.Setenv("RASTERDIFF_LANES", lanes)
		out := raster.Image{Width: 37, Height: 53, Pix: make([]byte, 4*37*53)}
		count, err := Run(context.Background(), img1, img2, &out, opts)
		if err != nil {
			t.Fatalf("lanes=%s: %v", lanes, err)
		}
		results = append(results, count)
		outputs = append(outputs, out.Pix)
	}

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatalf("diff count mismatch across backends: %v", results)
		}
		if !bytes.Equal(outputs[i], outputs[0]) {
			t.Fatalf("output buffer mismatch across backends at index %d", i)
		}
	}
}

func TestRunContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img := raster.Image{Width: 16, Height: 16, Pix: make([]byte, 4*16*16)}
	_, err := Run(ctx, img, img, nil, defaultOpts())
	if err == nil {
		t.Fatal("want context error, got nil")
	}
}

func TestRunNoDifferences(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	img := randomImage(r, 64, 64)
	out := raster.Image{Width: 64, Height: 64, Pix: make([]byte, 4*64*64)}
	count, err := Run(context.Background(), img, img, &out, defaultOpts())
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0 for identical images", count)
	}
}
