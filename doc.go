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

// Package imgdiff compares two raster images of identical dimensions
// and reports a count of perceptually distinct pixels, with an
// optional visualization image: unchanged regions desaturated toward
// white, detected anti-aliased edges in one marker color, and genuine
// differences in another.
//
// The package exposes exactly one entry point, Diff, and two data
// types, Image and DiffOptions; everything else (image decoding,
// CLI, JSON formatting) lives outside this module's core and is the
// caller's responsibility.
package imgdiff
