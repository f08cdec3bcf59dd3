package cache

import (
	"sync"
	"testing"
)

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)
	var evicted []string
	c.OnEvict(func(k string, _ int) { evicted = append(evicted, k) })

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s missing", k)
		}
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}
}

func TestCacheSetOverwrites(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get = %d, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[int, string](0)
	calls := 0
	create := func() string { calls++; return "v" }
	c.GetOrCreate(1, create)
	c.GetOrCreate(1, create)
	if calls != 1 {
		t.Errorf("create called %d times", calls)
	}
	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.HitRate != 0.5 {
		t.Errorf("Stats = %+v", s)
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[int, int](10)
	for i := range 5 {
		c.Set(i, i)
	}
	if !c.Delete(3) || c.Delete(3) {
		t.Error("Delete result wrong")
	}
	removed := 0
	c.OnEvict(func(int, int) { removed++ })
	c.Clear()
	if c.Len() != 0 || removed != 4 {
		t.Errorf("after Clear Len=%d removed=%d", c.Len(), removed)
	}
	c.Set(9, 9)
	if v, ok := c.Get(9); !ok || v != 9 {
		t.Error("cache unusable after Clear")
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				c.GetOrCreate((g*1000+i)%100, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if c.Len() > 64 {
		t.Errorf("Len = %d exceeds capacity", c.Len())
	}
}

func BenchmarkCacheHit(b *testing.B) {
	c := New[int, int](256)
	for i := range 256 {
		c.Set(i, i)
	}
	b.ReportAllocs()
	i := 0
	for b.Loop() {
		c.Get(i & 255)
		i++
	}
}
