// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package upipe

// Sender is the producer side of a channel.
//
// Send accumulates elements privately; Flush publishes everything
// accumulated since the previous Flush in one atomic step. The element
// is passed by pointer to avoid copying large structs; the channel
// stores a copy of the pointed-to value, so the original can be
// modified after Send returns.
//
// Send never blocks and never fails: the backing queue is unbounded.
// Callers needing backpressure must impose it at their own layer.
//
// All Sender methods must be called from a single goroutine.
type Sender[T any] interface {
	// Send copies *elem into the channel. Not visible to the receiver
	// until the next Flush.
	Send(elem *T)

	// Flush publishes every element sent since the previous Flush.
	// Flushing with nothing pending is a no-op.
	Flush()
}

// Receiver is the consumer side of a channel.
//
// Elements are returned by value in the exact order they were sent.
// The consumed slot is cleared so the channel does not retain
// references to delivered objects.
//
// All Receiver methods must be called from a single goroutine, which
// may not be the sending goroutine's.
type Receiver[T any] interface {
	// Recv blocks until a published element is available and returns it.
	Recv() T

	// TryRecv removes and returns the next published element without
	// blocking. Returns (zero-value, ErrWouldBlock) if none has been
	// published.
	TryRecv() (T, error)
}

// Channel is the combined sender-receiver interface of a
// single-producer single-consumer message channel.
//
// Exactly one goroutine uses the Sender side and exactly one goroutine
// uses the Receiver side. Any other configuration is undefined
// behavior.
type Channel[T any] interface {
	Sender[T]
	Receiver[T]

	// Stats reports chunk recycling counters of the backing queue.
	Stats() Stats
}
