package arc

import "testing"

func TestARC_BasicPutGetRemove(t *testing.T) {
	t.Parallel()

	c := New[string, int](4)
	c.Put("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %v, %v; want 1, true", v, ok)
	}
	if !c.Remove("a") {
		t.Fatal("Remove(a) should report true")
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("a should be gone after Remove")
	}
}

func TestARC_ZeroCapacityIsNoOp(t *testing.T) {
	t.Parallel()

	c := New[string, int](0)
	c.Put("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("zero-capacity ARC must never retain entries")
	}
}

// Crossing the promotion threshold cross-installs into the frequency part
// without removing the key from recency main.
func TestARC_PromotionCrossInstallsWithoutRemovingFromRecency(t *testing.T) {
	t.Parallel()

	c := New[int, string](4, 2)
	c.Put(1, "one")
	c.Get(1)
	c.Get(1) // access count now 3, crossed threshold 2 on the first Get

	if c.recency.main[1] == nil {
		t.Fatal("1 should still be resident in the recency part")
	}
	if c.frequency.main[1] == nil {
		t.Fatal("1 should have been cross-installed into the frequency part")
	}
}

// Scenario 5 from the testable-properties list: a stale recency-ghost entry
// on a key that is still live in the frequency part triggers a plain
// frequency-part write, not a ghost-driven capacity shift; a genuine ghost
// hit on an unrelated key does shift capacity.
func TestARC_StaleGhostFallsThroughToFrequencyWrite(t *testing.T) {
	t.Parallel()

	c := New[int, string](4, 2)
	for k := 1; k <= 4; k++ {
		c.Put(k, "v")
	}
	c.Get(1)
	c.Get(1) // 1 crosses threshold 2, cross-installed into frequency

	for k := 5; k <= 8; k++ {
		c.Put(k, "v") // evicts 2, 3, 4, 1 (in that order) into recency ghost
	}

	if _, inGhost := c.recency.ghost[1]; !inGhost {
		t.Fatal("precondition: 1 should be sitting in the recency ghost")
	}

	rCapBefore, fCapBefore := c.recency.capacity, c.frequency.capacity
	c.Put(1, "updated")
	if c.recency.capacity != rCapBefore || c.frequency.capacity != fCapBefore {
		t.Fatalf("stale ghost hit on 1 must not shift capacity: got c_r=%d c_f=%d, want unchanged %d/%d",
			c.recency.capacity, c.frequency.capacity, rCapBefore, fCapBefore)
	}
	if got := c.frequency.main[1].Value; got != "updated" {
		t.Fatalf("1 should have been overwritten in the frequency part, got %q", got)
	}

	// 2's recency-ghost entry is not stale (2 was never cross-installed);
	// this hit should genuinely shift capacity.
	c.Put(2, "v2")
	if c.recency.capacity != rCapBefore+1 {
		t.Fatalf("c_r = %d; want %d after a genuine ghost hit", c.recency.capacity, rCapBefore+1)
	}
	if c.frequency.capacity != fCapBefore-1 {
		t.Fatalf("c_f = %d; want %d after a genuine ghost hit", c.frequency.capacity, fCapBefore-1)
	}
}

func TestARC_Purge(t *testing.T) {
	t.Parallel()

	c := New[string, int](4)
	c.Put("a", 1)
	c.Get("a")
	c.Purge()

	if c.Len() != 0 {
		t.Fatalf("Len() after Purge = %d; want 0", c.Len())
	}
	if c.recency.capacity != 4 || c.frequency.capacity != 4 {
		t.Fatalf("Purge should reset both parts to the original capacity, got c_r=%d c_f=%d",
			c.recency.capacity, c.frequency.capacity)
	}
}
