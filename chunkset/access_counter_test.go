package chunkset

import "testing"

func TestAccessCounterIncrement(t *testing.T) {
	c := NewAccessCounter(4)
	c.Increment()
	c.Increment()
	c.IncrementBy(5)
	if got := c.Counter(); got != 7 {
		t.Fatalf("Counter() = %d, want 7", got)
	}
}

func TestAccessCounterDefaultCapacity(t *testing.T) {
	c := NewAccessCounter(0)
	if c.cap != defaultHistoryCapacity {
		t.Fatalf("cap = %d, want %d", c.cap, defaultHistoryCapacity)
	}
}

func TestAccessCounterHistorySampleOrdering(t *testing.T) {
	c := NewAccessCounter(3)
	c.IncrementBy(10)
	c.Process() // sample0 = 10
	c.IncrementBy(10)
	c.Process() // sample1 = 20
	c.IncrementBy(10)
	c.Process() // sample2 = 30

	if got := c.HistorySample(0); got != 30 {
		t.Errorf("HistorySample(0) = %d, want 30", got)
	}
	if got := c.HistorySample(1); got != 20 {
		t.Errorf("HistorySample(1) = %d, want 20", got)
	}
	if got := c.HistorySample(2); got != 10 {
		t.Errorf("HistorySample(2) = %d, want 10", got)
	}
	if got := c.HistorySample(3); got != 0 {
		t.Errorf("HistorySample(3) (out of range) = %d, want 0", got)
	}
}

func TestAccessCounterHistoryWrapsRingBuffer(t *testing.T) {
	c := NewAccessCounter(2)
	for i := uint64(1); i <= 5; i++ {
		c.IncrementBy(i)
		c.Process()
	}
	// running totals after each Process: 1,3,6,10,15 — only the last two
	// (10,15) survive in a capacity-2 ring buffer.
	if got := c.HistorySample(0); got != 15 {
		t.Errorf("HistorySample(0) = %d, want 15", got)
	}
	if got := c.HistorySample(1); got != 10 {
		t.Errorf("HistorySample(1) = %d, want 10", got)
	}
	if got := c.HistorySample(2); got != 0 {
		t.Errorf("HistorySample(2) (evicted) = %d, want 0", got)
	}
}
