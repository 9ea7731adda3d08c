// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package upipe_test

import (
	"fmt"
	"sync"
	"testing"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/upipe"
)

// =============================================================================
// Concurrent Correctness
// =============================================================================

// TestConcurrentFIFO runs one producer and one consumer goroutine in
// parallel. The consumer must observe exactly the sent sequence, for
// any flush batch size and chunk size.
func TestConcurrentFIFO(t *testing.T) {
	const total = 100000

	for _, tc := range []struct {
		chunkSize int
		batch     int
	}{
		{2, 1},
		{2, 7},
		{256, 1},
		{256, 64},
	} {
		t.Run(fmt.Sprintf("chunk%d_batch%d", tc.chunkSize, tc.batch), func(t *testing.T) {
			ch := upipe.NewChan[int](tc.chunkSize)

			var wg sync.WaitGroup
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < total; i++ {
					ch.Send(&i)
					if (i+1)%tc.batch == 0 {
						ch.Flush()
					}
				}
				ch.Flush()
			}()

			for i := 0; i < total; i++ {
				if got := ch.Recv(); got != i {
					t.Fatalf("Recv: got %d, want %d", got, i)
				}
			}
			wg.Wait()
		})
	}
}

// TestConcurrentNoLossNoDup counts every delivered value: after a
// final flush each sent value must arrive exactly once. The consumer
// uses the non-blocking API with adaptive backoff.
func TestConcurrentNoLossNoDup(t *testing.T) {
	const total = 50000

	ch := upipe.NewChan[int](32)
	seen := make([]atomix.Int32, total)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			ch.Send(&i)
			if i%13 == 0 {
				ch.Flush()
			}
		}
		ch.Flush()
	}()

	backoff := iox.Backoff{}
	for received := 0; received < total; {
		v, err := ch.TryRecv()
		if err != nil {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		seen[v].Add(1)
		received++
	}
	wg.Wait()

	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Fatalf("value %d delivered %d times, want exactly once", i, n)
		}
	}
}

// TestParkWakeupEdge pins down the flush-returns-false contract: the
// consumer parks first (observed via a sync channel), then the
// producer's flush must report the parked state, and the published
// element must still arrive.
func TestParkWakeupEdge(t *testing.T) {
	p := upipe.NewPipe[int](8)

	parked := make(chan struct{})
	got := make(chan int)
	go func() {
		if _, err := p.Read(); !upipe.IsWouldBlock(err) {
			t.Errorf("first Read: got %v, want ErrWouldBlock", err)
		}
		close(parked)

		backoff := iox.Backoff{}
		for {
			v, err := p.Read()
			if err == nil {
				got <- v
				return
			}
			backoff.Wait()
		}
	}()

	<-parked
	v := 42
	p.Write(&v)
	if p.Flush() {
		t.Fatal("Flush after consumer parked must return false")
	}

	if g := <-got; g != 42 {
		t.Fatalf("Recv after wakeup: got %d, want 42", g)
	}
}

// TestConcurrentChunkChurn runs the pathological chunk size where
// every element crosses a chunk boundary, under parallel producer and
// consumer pressure.
func TestConcurrentChunkChurn(t *testing.T) {
	const total = 20000

	ch := upipe.NewChan[uint64](1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range uint64(total) {
			ch.Send(&i)
			ch.Flush()
		}
	}()

	var sum uint64
	for range total {
		sum += ch.Recv()
	}
	wg.Wait()

	if want := uint64(total) * (total - 1) / 2; sum != want {
		t.Fatalf("sum: got %d, want %d", sum, want)
	}
}

// TestSteadyStateReuse drives producer and consumer at equal rates
// with small chunks: allocations must stay flat (served by the spare
// slot) while reuses grow.
func TestSteadyStateReuse(t *testing.T) {
	ch := upipe.NewChan[int](2)

	for i := range 10000 {
		ch.Send(&i)
		ch.Flush()
		if got := ch.Recv(); got != i {
			t.Fatalf("Recv: got %d, want %d", got, i)
		}
	}

	st := ch.Stats()
	if st.Allocs > 4 {
		t.Fatalf("Allocs: got %d, want <= 4 in steady state", st.Allocs)
	}
	if st.Reuses < 1000 {
		t.Fatalf("Reuses: got %d, want >= 1000", st.Reuses)
	}
}

// TestDrainedChanRemainsUsable drains a channel completely, lets it
// idle, then runs another full cycle: parking and republication must
// keep working across empty periods.
func TestDrainedChanRemainsUsable(t *testing.T) {
	ch := upipe.NewChan[int](4)

	for round := range 3 {
		base := round * 100
		for i := range 10 {
			v := base + i
			ch.Send(&v)
		}
		ch.Flush()

		for i := range 10 {
			if got := ch.Recv(); got != base+i {
				t.Fatalf("round %d Recv(%d): got %d", round, i, got)
			}
		}
		if _, err := ch.TryRecv(); !upipe.IsWouldBlock(err) {
			t.Fatalf("round %d: drained channel must report would-block, got %v", round, err)
		}
	}
}
