// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package upipe

// DefaultChunkSize is a reasonable chunk size for callers without
// sizing information.
//
// A chunk of 256 slots amortizes list maintenance and spare-slot
// traffic to one atomic exchange per 256 elements while keeping the
// worst-case idle footprint (at most two live chunks plus one spare)
// small for common element types.
const DefaultChunkSize = 256

// checkChunkSize validates a chunk size at construction time.
// Panics if n < 1. Unlike ring capacities there is no power-of-2
// requirement; chunks are walked, not masked.
func checkChunkSize(n int) {
	if n < 1 {
		panic("upipe: chunk size must be >= 1")
	}
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
