// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package upipe

import (
	"time"

	"code.hybscloud.com/spin"
)

// Chan layers stream semantics over a Pipe: Send accumulates, Flush
// publishes, Recv blocks until an element arrives.
//
// Exactly one goroutine sends and flushes; exactly one goroutine
// receives. The zero value is not usable; construct with NewChan.
//
// For callers that need the parked/running signal of the underlying
// protocol (for example to drive an eventfd or a condition variable),
// use Pipe directly; Chan discards it.
type Chan[T any] struct {
	pipe    Pipe[T]
	timeout time.Duration
}

// NewChan creates a channel whose queue grows in chunks of chunkSize
// slots. Use DefaultChunkSize when no sizing information is available.
// Panics if chunkSize < 1.
func NewChan[T any](chunkSize int) *Chan[T] {
	ch := &Chan[T]{}
	ch.pipe.init(chunkSize)
	return ch
}

// Send copies *elem into the channel. The element is not visible to
// the receiver until Flush. Sender only.
func (ch *Chan[T]) Send(elem *T) {
	ch.pipe.Write(elem)
}

// Flush publishes every element sent since the previous Flush.
// Sender only.
func (ch *Chan[T]) Flush() {
	ch.pipe.Flush()
}

// Recv blocks until a published element is available and returns it.
// Elements arrive in send order.
//
// The wait is a spin loop with CPU pause. Receivers that prefer to
// sleep while idle should use TryRecv with iox.Backoff instead.
// Receiver only.
func (ch *Chan[T]) Recv() T {
	sw := spin.Wait{}
	for {
		elem, err := ch.pipe.Read()
		if err == nil {
			return elem
		}
		sw.Once()
	}
}

// TryRecv removes and returns the next published element without
// blocking. Returns (zero-value, ErrWouldBlock) if the channel is
// empty. Receiver only.
func (ch *Chan[T]) TryRecv() (T, error) {
	return ch.pipe.Read()
}

// SetTimeout records a receive deadline hint.
//
// Reserved: no operation currently consults the value. It exists so
// deadline plumbing can be added without changing the surface; callers
// must not rely on any timeout behavior today. Sender only.
func (ch *Chan[T]) SetTimeout(d time.Duration) {
	ch.timeout = d
}

// Timeout returns the recorded deadline hint. See SetTimeout.
func (ch *Chan[T]) Timeout() time.Duration {
	return ch.timeout
}

// Stats reports chunk recycling counters of the backing queue.
func (ch *Chan[T]) Stats() Stats {
	return ch.pipe.Stats()
}
