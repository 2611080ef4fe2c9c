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

// Package simd selects the pixel-lane width the cold and hot passes
// batch their work into. It carries no actual assembly: every lane
// body in internal/block is a plain Go loop over the selected number
// of pixels. What this package
// contributes is the dispatch contract spec.md §5 requires — feature
// detection performed once per invocation, not per block or per row,
// and stored in a value threaded through the scan instead of read
// from a global on every pixel.
package simd

import (
	"os"
	"strconv"

	"golang.org/x/sys/cpu"
)

// Backend names the lane width a diff invocation will batch pixels
// into.
type Backend int

const (
	Scalar Backend = iota
	Lanes4
	Lanes8
)

func (b Backend) String() string {
	switch b {
	case Lanes8:
		return "lanes8"
	case Lanes4:
		return "lanes4"
	default:
		return "scalar"
	}
}

// Width returns the number of pixels processed per lane iteration (1
// for Scalar).
func (b Backend) Width() int {
	switch b {
	case Lanes8:
		return 8
	case Lanes4:
		return 4
	default:
		return 1
	}
}

// overrideEnv lets tests and benchmarks force a backend without
// depending on the host's actual CPU features.
const overrideEnv = "RASTERDIFF_LANES"

// Select detects the widest lane width the host CPU supports and
// returns it. It is meant to be called once per Diff invocation, with
// the result threaded through the cold and hot passes rather than
// re-queried per block.
func Select() Backend {
	if b, ok := forced(); ok {
		return b
	}
	switch {
	case cpu.X86.HasAVX2:
		return Lanes8
	case cpu.ARM64.HasASIMD:
		return Lanes4
	case cpu.X86.HasSSE41:
		return Lanes4
	default:
		return Scalar
	}
}

func forced() (Backend, bool) {
	v := os.Getenv(overrideEnv)
	if v == "" {
		return Scalar, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return Scalar, false
	}
	switch n {
	case 1:
		return Scalar, true
	case 4:
		return Lanes4, true
	case 8:
		return Lanes8, true
	default:
		return Scalar, false
	}
}
