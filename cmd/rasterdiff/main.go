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

// Command rasterdiff compares two images and optionally writes a
// visualization of their differences.
//
// Usage:
//
//	rasterdiff [flags] IMAGE1 IMAGE2 [OUTPUT]
//
// Exit codes: 0 identical, 1 differ (including a size mismatch), 2
// loading or encoding error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/crhym3/rasterdiff"
	"github.com/crhym3/rasterdiff/internal/rasterio"
)

const usageText = `Compare two images and optionally write a diff visualization.

Supported formats by extension: .png, .jpg/.jpeg, .bmp, .tif/.tiff,
.webp, .qoi (recognized, decode/encode not implemented).

Usage: rasterdiff [flags] IMAGE1 IMAGE2 [OUTPUT]
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rasterdiff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	threshold := fs.Float64("threshold", 0.1, "perceptual tolerance in [0,1]")
	antialiasing := fs.Bool("antialiasing", false, "detect anti-aliased pixels and exclude them from the diff count")
	diffMask := fs.Bool("diff-mask", false, "paint only the diff over a transparent background")
	outputFormat := fs.String("output-format", "json", `result format: "json" or "text"`)
	compression := fs.Int("compression", 6, "PNG encode compression level, 0-9")
	quality := fs.Int("quality", 90, "JPEG encode quality, 1-100")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 2 || fs.NArg() > 3 {
		fs.Usage()
		return 2
	}

	img1, err := rasterio.Load(fs.Arg(0))
	if err != nil {
		emitFailure(stderr, err)
		return 2
	}
	img2, err := rasterio.Load(fs.Arg(1))
	if err != nil {
		emitFailure(stderr, err)
		return 2
	}

	var output *imgdiff.Image
	var outPath string
	if fs.NArg() == 3 {
		outPath = fs.Arg(2)
		out := imgdiff.Image{
			Width:  img1.Width,
			Height: img1.Height,
			Pix:    make([]byte, 4*img1.Width*img1.Height),
		}
		output = &out
	}

	opts := &imgdiff.DiffOptions{
		Threshold: threshold,
		IncludeAA: !*antialiasing,
		DiffMask:  *diffMask,
	}

	result, err := imgdiff.Diff(context.Background(), img1, img2, output, opts)
	if err != nil {
		emitFailure(stderr, err)
		var sizeErr *imgdiff.SizeMismatchError
		if errors.As(err, &sizeErr) {
			return 1
		}
		return 2
	}

	if output != nil {
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(outPath)), ".")
		if format == "" {
			format = "png"
		}
		if err := rasterio.Save(outPath, format, *output, *compression, *quality); err != nil {
			emitFailure(stderr, err)
			return 2
		}
	}

	emitSuccess(stdout, *outputFormat, result)
	if result.Identical {
		return 0
	}
	return 1
}

type jsonResult struct {
	DiffCount      uint32  `json:"diffCount"`
	DiffPercentage float64 `json:"diffPercentage"`
	Identical      bool    `json:"identical"`
	Error          string  `json:"error,omitempty"`
}

func emitSuccess(w io.Writer, format string, r imgdiff.DiffResult) {
	if strings.EqualFold(format, "text") {
		fmt.Fprintf(w, "diffCount=%d diffPercentage=%.6f identical=%t\n",
			r.DiffCount, r.DiffPercentage, r.Identical)
		return
	}
	_ = json.NewEncoder(w).Encode(jsonResult{
		DiffCount:      r.DiffCount,
		DiffPercentage: r.DiffPercentage,
		Identical:      r.Identical,
	})
}

func emitFailure(w io.Writer, err error) {
	_ = json.NewEncoder(w).Encode(jsonResult{Error: err.Error()})
}
