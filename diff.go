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
	"context"

	"github.com/crhym3/rasterdiff/internal/block"
	"github.com/crhym3/rasterdiff/internal/paint"
	"github.com/crhym3/rasterdiff/internal/raster"
)

// Diff compares image1 and image2, returning a count of perceptually
// distinct pixels and, if output is non-nil, painting a visualization
// into it. ctx carries no suspension points for the core itself (it
// is compute-bound); it is checked once up front and again between
// blocks so a caller-imposed deadline or cancellation takes effect
// promptly without the core doing any I/O or locking of its own.
func Diff(ctx context.Context, image1, image2 Image, output *Image, options *DiffOptions) (DiffResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return DiffResult{}, err
	}

	if err := raster.Validate(image1); err != nil {
		return DiffResult{}, err
	}
	if err := raster.Validate(image2); err != nil {
		return DiffResult{}, err
	}
	if image1.Width != image2.Width || image1.Height != image2.Height {
		return DiffResult{}, &SizeMismatchError{
			W1: image1.Width, H1: image1.Height,
			W2: image2.Width, H2: image2.Height,
		}
	}
	if output != nil {
		if err := raster.Validate(*output); err != nil {
			return DiffResult{}, err
		}
		if output.Width != image1.Width || output.Height != image1.Height {
			return DiffResult{}, &SizeMismatchError{
				W1: image1.Width, H1: image1.Height,
				W2: output.Width, H2: output.Height,
			}
		}
	}

	resolved := resolveOptions(options)

	if output != nil && resolved.DiffMask {
		clear(output.Pix)
	}

	if raster.SameBuffer(image1, image2) {
		if output != nil && resolved.Background() {
			paint.DesaturateBlock(*output, image1, 0, 0, image1.Width, image1.Height, resolved.Alpha)
		}
		return DiffResult{Identical: true}, nil
	}

	count, err := block.Run(ctx, image1, image2, output, resolved)
	if err != nil {
		return DiffResult{}, err
	}

	total := image1.Width * image1.Height
	var pct float64
	if total > 0 {
		pct = 100 * float64(count) / float64(total)
	}
	return DiffResult{
		DiffCount:      count,
		DiffPercentage: pct,
		Identical:      count == 0,
	}, nil
}
