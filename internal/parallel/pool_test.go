package parallel

import (
	"sync/atomic"
	"testing"
)

func TestExecuteAll(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	var sum atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { sum.Add(int64(i)) }
	}
	p.ExecuteAll(work)
	if got := sum.Load(); got != 4950 {
		t.Errorf("sum = %d, want 4950", got)
	}
}

func TestExecuteAllResultsBySlot(t *testing.T) {
	p := NewWorkerPool(3)
	defer p.Close()

	out := make([]int, 10)
	work := make([]func(), len(out))
	for i := range work {
		work[i] = func() { out[i] = i * i }
	}
	p.ExecuteAll(work)
	for i, v := range out {
		if v != i*i {
			t.Errorf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestDefaultWorkers(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Close()
	if p.Workers() <= 0 {
		t.Errorf("Workers = %d", p.Workers())
	}
}

func TestClose(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()

	ran := 0
	p.ExecuteAll([]func(){func() { ran++ }, func() { ran++ }})
	if ran != 2 {
		t.Errorf("after Close ran %d items, want 2", ran)
	}
}

func BenchmarkExecuteAll(b *testing.B) {
	p := NewWorkerPool(0)
	defer p.Close()
	work := make([]func(), 64)
	for i := range work {
		work[i] = func() {}
	}
	b.ResetTimer()
	for range b.N {
		p.ExecuteAll(work)
	}
}
