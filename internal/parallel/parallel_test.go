package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16 // Force the parallel path with a small n.

	var counter int64
	n := 1000

	For(n, cfg, func(start, end int) {
		atomic.AddInt64(&counter, int64(end-start))
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForCoversEveryIndexOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 8

	n := 257 // Deliberately not a multiple of any worker count.
	seen := make([]int32, n)

	For(n, cfg, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Errorf("Index %d visited %d times", i, c)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	calls := 0
	For(100, cfg, func(start, end int) {
		calls++
		if start != 0 || end != 100 {
			t.Errorf("Expected single range [0, 100), got [%d, %d)", start, end)
		}
	})

	if calls != 1 {
		t.Errorf("Expected 1 sequential call, got %d", calls)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to a single sequential call.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, cfg, func(start, end int) {
		atomic.AddInt64(&counter, int64(end-start))
	})

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_ZeroAndNegative(t *testing.T) {
	cfg := DefaultConfig()

	For(0, cfg, func(start, end int) {
		t.Error("Callback must not run for n = 0")
	})
	For(-5, cfg, func(start, end int) {
		t.Error("Callback must not run for n < 0")
	})
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 256
	n := 1 << 20
	src := make([]float64, n)
	dst := make([]float64, n)

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			For(n, cfg, func(start, end int) {
				for j := start; j < end; j++ {
					dst[j] = src[j] * 2
				}
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			For(n, cfgSeq, func(start, end int) {
				for j := start; j < end; j++ {
					dst[j] = src[j] * 2
				}
			})
		}
	})
}
