package plan

import (
	"sync"
	"testing"

	"github.com/cwbudde/algo-signal/internal/testutil"
	"github.com/cwbudde/algo-signal/signal/core"
)

func TestCacheHitReturnsSamePlan(t *testing.T) {
	c := NewCache(4)
	key := Key{N: 32, Dir: Forward, DType: core.C128}

	p1, err := c.GetOrBuild(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := c.GetOrBuild(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p1 != p2 {
		t.Fatal("second lookup must return the cached plan")
	}
	if c.Len() != 1 {
		t.Fatalf("cache len: got %d, want 1", c.Len())
	}
}

func TestCacheNeverExceedsCapacity(t *testing.T) {
	c := NewCache(2)
	for _, n := range []int{8, 16, 32, 64, 128} {
		if _, err := c.GetOrBuild(Key{N: n, Dir: Forward, DType: core.C128}); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if c.Len() > 2 {
			t.Fatalf("cache len %d exceeds capacity 2", c.Len())
		}
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewCache(2)
	k8 := Key{N: 8, Dir: Forward, DType: core.C128}
	k16 := Key{N: 16, Dir: Forward, DType: core.C128}
	k32 := Key{N: 32, Dir: Forward, DType: core.C128}

	p8, _ := c.GetOrBuild(k8)
	if _, err := c.GetOrBuild(k16); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Touch k8 so k16 becomes the eviction candidate.
	if p, _ := c.GetOrBuild(k8); p != p8 {
		t.Fatal("touch must hit the cache")
	}
	if _, err := c.GetOrBuild(k32); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p, _ := c.GetOrBuild(k8); p != p8 {
		t.Fatal("recently used plan was evicted")
	}
}

func TestCacheShrinkEvictsImmediately(t *testing.T) {
	c := NewCache(4)
	for _, n := range []int{8, 16, 32, 64} {
		if _, err := c.GetOrBuild(Key{N: n, Dir: Forward, DType: core.C128}); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
	}
	c.SetCapacity(1)
	if c.Len() != 1 {
		t.Fatalf("cache len after shrink: got %d, want 1", c.Len())
	}
}

func TestCacheCapacityZeroDisablesCaching(t *testing.T) {
	c := NewCache(2)
	key := Key{N: 16, Dir: Forward, DType: core.C128}
	if _, err := c.GetOrBuild(key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c.SetCapacity(0)
	if c.Len() != 0 {
		t.Fatalf("cache len after disable: got %d, want 0", c.Len())
	}

	p1, err := c.GetOrBuild(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := c.GetOrBuild(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("disabled cache must stay empty, len %d", c.Len())
	}
	if p1 == p2 {
		t.Fatal("disabled cache must build fresh plans")
	}
}

// A capacity-1 cache must reproduce uncached numerics exactly: the plan
// is rebuilt on every alternation but carries identical tables.
func TestCapacityOneNumericallyIdentical(t *testing.T) {
	n := 40
	src := testutil.DeterministicComplexNoise(11, 1, n)

	uncached, err := Build(Key{N: n, Dir: Forward, DType: core.C128})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]complex128, n)
	if err := uncached.Execute(want, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c := NewCache(1)
	for i := 0; i < 3; i++ {
		// Alternate keys to force eviction between runs.
		if _, err := c.GetOrBuild(Key{N: 8, Dir: Forward, DType: core.C128}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p, err := c.GetOrBuild(Key{N: n, Dir: Forward, DType: core.C128})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := make([]complex128, n)
		if err := p.Execute(got, src); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for j := range got {
			if got[j] != want[j] {
				t.Fatalf("run %d index %d: got %v, want %v", i, j, got[j], want[j])
			}
		}
		if c.Len() > 1 {
			t.Fatalf("cache len %d exceeds capacity 1", c.Len())
		}
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(2)
	keys := []Key{
		{N: 64, Dir: Forward, DType: core.C128},
		{N: 64, Dir: Inverse, DType: core.C128},
		{N: 96, Dir: Forward, DType: core.C128},
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := keys[i%len(keys)]
			p, err := c.GetOrBuild(key)
			if err != nil {
				t.Errorf("key %v: %v", key, err)
				return
			}
			src := testutil.DeterministicComplexNoise(int64(i), 1, key.N)
			dst := make([]complex128, key.N)
			if err := p.Execute(dst, src); err != nil {
				t.Errorf("key %v: %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 2 {
		t.Fatalf("cache len %d exceeds capacity 2", c.Len())
	}
}

func TestCacheFlush(t *testing.T) {
	c := NewCache(4)
	if _, err := c.GetOrBuild(Key{N: 8, Dir: Forward, DType: core.C128}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Flush()
	if c.Len() != 0 {
		t.Fatalf("cache len after flush: got %d, want 0", c.Len())
	}
}
