// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package upipe provides an unbounded single-producer single-consumer
// message channel with batched lock-free publication.
//
// The package has two layers:
//
//   - Pipe: the hand-off protocol. Write accumulates elements on the
//     producer side, Flush publishes the batch with one compare-and-swap,
//     Read consumes. Non-blocking; empty is reported as ErrWouldBlock.
//   - Chan: a stream facade over Pipe with a blocking Recv.
//
// Storage is a chunked linked list that grows without bound under
// producer pressure, so Send never blocks and never fails. One retired
// chunk is kept in an atomic spare slot and recycled, which drives
// allocations to zero in steady state.
//
// # Quick Start
//
//	ch := upipe.NewChan[int](upipe.DefaultChunkSize)
//
//	// Producer goroutine
//	for i := range 100 {
//	    ch.Send(&i)
//	}
//	ch.Flush() // publish the batch to the receiver
//
//	// Consumer goroutine
//	for range 100 {
//	    v := ch.Recv()
//	    process(v)
//	}
//
// # Batched Publication
//
// Send (and Pipe.Write) is deliberately unsynchronized: elements stay
// private to the producer until Flush. A Flush publishes every element
// written since the previous Flush in one atomic step, so the receiver
// observes batches, never torn prefixes. Flushing after every Send
// gives per-element delivery at the cost of one compare-and-swap each.
//
// The underlying Pipe.Flush returns false when the consumer had
// observed emptiness and parked. That edge is exactly the moment a
// wakeup is needed; integrators attaching a parking primitive
// (condition variable, eventfd, ...) should signal it when Flush
// returns false. Chan.Recv does not need the signal: it spins with CPU
// pause until an element arrives.
//
// # Non-Blocking Consumption
//
// TryRecv (and Pipe.Read) returns immediately:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := ch.TryRecv()
//	    if err == nil {
//	        process(v)
//	        backoff.Reset()
//	        continue
//	    }
//	    backoff.Wait() // sleep while the channel stays empty
//	}
//
// # Error Handling
//
// The only error the package returns is [ErrWouldBlock], sourced from
// [code.hybscloud.com/iox] for ecosystem consistency. It is a control
// flow signal: the channel is empty right now. Sending cannot fail;
// the queue is unbounded and chunk allocation failure is a runtime
// abort, not an error path.
//
// For semantic classification (delegates to iox):
//
//	upipe.IsWouldBlock(err)  // true if the channel was empty
//	upipe.IsSemantic(err)    // true if control flow signal
//	upipe.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Capacity and Length
//
// There is no capacity: the queue grows by chunks of the size given at
// construction. Length is intentionally not provided because an
// accurate count would require cross-core synchronization the protocol
// avoids; track counts in application logic when needed. Stats exposes
// chunk allocation and reuse counters for observing recycling
// behavior.
//
// # Thread Safety
//
// Exactly one goroutine may use the producer side (Send, Flush, Write)
// and exactly one goroutine the consumer side (Recv, TryRecv, Read,
// CheckRead). The two may, and normally do, run in parallel. Multiple
// producers, multiple consumers, or concurrent use of a side from two
// goroutines is undefined behavior including data corruption; the
// package does not detect it.
//
// # Memory Model
//
// The shared state is two pointer cells: the hand-off cell (published
// frontier or nil when the consumer is parked) and the spare-chunk
// slot. Both use [sync/atomic] pointer operations, which are
// sequentially consistent, strictly stronger than the acquire-release
// pairing the protocol requires. Publication of slot contents
// happens-before consumption via the producer's store to the hand-off
// cell and the consumer's subsequent read of it; chunk recycling is
// ordered by the exchanges on the spare slot.
//
// Because every cross-goroutine edge goes through sync/atomic, the Go
// race detector observes the full synchronization graph: tests run
// clean under -race with no exclusions.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for relaxed statistic counters, and
// [code.hybscloud.com/spin] for CPU pause in the blocking receive.
package upipe
