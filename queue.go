// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package upipe

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// chunk is the unit of queue growth: a fixed-size block of element
// slots linked into a doubly-linked list.
type chunk[T any] struct {
	values []T
	prev   *chunk[T]
	next   *chunk[T]
}

// queue is an unbounded FIFO over fixed-size chunks.
//
// Cursor ownership is split by role: the producer owns (backChunk,
// backPos) and (endChunk, endPos), the consumer owns (beginChunk,
// beginPos). The spare slot is the one piece of shared state: a
// single-entry free list holding at most one retired chunk, exchanged
// atomically so a chunk retired by the consumer in pop can be relinked
// by the producer in push without a round trip through the allocator.
//
// The chunk list is strictly forward-linked from beginChunk (head,
// prev == nil) to endChunk (tail). A chunk sitting in the spare slot
// is unreachable from the list; no cursor points into it.
type queue[T any] struct {
	beginChunk *chunk[T]
	beginPos   int

	backChunk *chunk[T]
	backPos   int

	endChunk *chunk[T]
	endPos   int

	n int

	spare atomic.Pointer[chunk[T]]

	allocs atomix.Uint64
	reuses atomix.Uint64
}

// init sets up the queue with one empty chunk of n slots.
func (q *queue[T]) init(n int) {
	q.n = n
	q.beginChunk = q.allocChunk()
	q.beginPos = 0
	q.backChunk = nil
	q.backPos = 0
	q.endChunk = q.beginChunk
	q.endPos = 0
}

func (q *queue[T]) allocChunk() *chunk[T] {
	q.allocs.Add(1)
	return &chunk[T]{values: make([]T, q.n)}
}

// front returns the address of the oldest occupied slot. The caller
// must have established non-emptiness through the hand-off protocol.
func (q *queue[T]) front() *T {
	return &q.beginChunk.values[q.beginPos]
}

// back returns the address of the most recently pushed slot.
// Valid only after at least one push.
func (q *queue[T]) back() *T {
	return &q.backChunk.values[q.backPos]
}

// push commits the current end slot as the new back and reserves the
// next free slot, growing the chunk list when the current chunk fills.
// A fresh chunk is taken from the spare slot when one is available,
// otherwise allocated. Producer only.
func (q *queue[T]) push() {
	q.backChunk = q.endChunk
	q.backPos = q.endPos

	q.endPos++
	if q.endPos != q.n {
		return
	}

	sc := q.spare.Swap(nil)
	if sc == nil {
		sc = q.allocChunk()
	} else {
		q.reuses.Add(1)
	}
	q.endChunk.next = sc
	sc.prev = q.endChunk
	q.endChunk = sc
	q.endPos = 0
}

// pop releases the oldest occupied slot. When the head chunk empties,
// it is unlinked and deposited into the spare slot; the chunk it
// displaces becomes garbage. Consumer only.
func (q *queue[T]) pop() {
	q.beginPos++
	if q.beginPos != q.n {
		return
	}

	o := q.beginChunk
	q.beginChunk = o.next
	q.beginChunk.prev = nil
	q.beginPos = 0

	// A retired chunk must not keep the live list reachable while it
	// waits in the spare slot.
	o.next = nil
	q.spare.Swap(o)
}

// Stats reports chunk recycling counters.
//
// In a steady-state workload where producer and consumer advance at
// equal rates, Allocs stays flat after warm-up: every chunk boundary
// is served by the spare slot and Reuses grows instead.
type Stats struct {
	// Allocs is the number of chunks obtained from the allocator.
	Allocs uint64
	// Reuses is the number of chunks recycled through the spare slot.
	Reuses uint64
}

func (q *queue[T]) stats() Stats {
	return Stats{
		Allocs: q.allocs.LoadRelaxed(),
		Reuses: q.reuses.LoadRelaxed(),
	}
}
