package lfu

import (
	"strconv"
	"testing"

	"golang.org/x/sync/errgroup"
)

func TestLFU_BasicPutGetRemove(t *testing.T) {
	t.Parallel()

	c := New[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)

	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if !c.Remove("a") {
		t.Fatal("Remove(a) should report true")
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d; want 1", c.Len())
	}
}

// Capacity 2, default max_average: a should survive because it was
// accessed more often than b, which should be evicted on the next insert.
func TestLFU_EvictsLeastFrequent(t *testing.T) {
	t.Parallel()

	c := New[string, string](2)
	c.Put("a", "A")
	c.Put("b", "B")
	c.Get("a")
	c.Get("a") // a freq=3, b freq=1

	c.Put("c", "C") // evicts b (min freq)

	if _, ok := c.Get("b"); ok {
		t.Fatal("b should have been evicted (lowest frequency)")
	}
	if v, ok := c.Get("a"); !ok || v != "A" {
		t.Fatal("a should still be resident")
	}
	if v, ok := c.Get("c"); !ok || v != "C" {
		t.Fatal("c should be resident")
	}
}

// Within a frequency bucket, ties break FIFO (oldest admitted evicts first).
func TestLFU_TiesWithinBucketBreakFIFO(t *testing.T) {
	t.Parallel()

	c := New[string, int](2)
	c.Put("a", 1) // freq 1
	c.Put("b", 2) // freq 1, both still at freq 1, a admitted first

	c.Put("c", 3) // no accesses since insert; evicts a (oldest at freq 1)

	if _, ok := c.Get("a"); ok {
		t.Fatal("a should have been evicted as the oldest freq-1 entry")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("b should still be resident")
	}
}

func TestLFU_ZeroCapacityIsNoOp(t *testing.T) {
	t.Parallel()

	c := New[string, int](0)
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("zero-capacity cache must never retain entries")
	}
}

// Driving the running average above max_average should age every node's
// frequency down without changing which keys are resident.
func TestLFU_AgingPreservesResidency(t *testing.T) {
	t.Parallel()

	c := New[string, int](2, 3) // max_average = 3
	c.Put("a", 1)
	c.Put("b", 2)
	for i := 0; i < 10; i++ {
		c.Get("a")
	}
	// curTotal/size now comfortably exceeds max_average(3); aging must have
	// triggered at least once, but both keys should still be present.
	if _, ok := c.Get("a"); !ok {
		t.Fatal("a should still be resident after aging")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatal("b should still be resident after aging")
	}
}

func TestLFU_Purge(t *testing.T) {
	t.Parallel()

	c := New[string, int](4)
	c.Put("a", 1)
	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("Len() after Purge = %d; want 0", c.Len())
	}
}

func TestLFU_ConcurrentAccessNoRace(t *testing.T) {
	c := New[string, int](64)

	var g errgroup.Group
	for w := 0; w < 8; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < 1000; i++ {
				k := strconv.Itoa((w*1000 + i) % 128)
				c.Put(k, i)
				c.Get(k)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
	if c.Len() > 64 {
		t.Fatalf("Len() = %d exceeds capacity 64", c.Len())
	}
}
