package heap

import (
	"bytes"
	"testing"
)

func TestAllocSplitsOversizedBlock(t *testing.T) {
	h := New(64)
	a, err := h.Alloc(8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(a) != 8 {
		t.Fatalf("len(a) = %d, want 8", len(a))
	}
	b, err := h.Alloc(8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(b) != 8 {
		t.Fatalf("len(b) = %d, want 8", len(b))
	}
	// two independent allocations must not alias
	a[0] = 0xAA
	b[0] = 0xBB
	if a[0] != 0xAA || b[0] != 0xBB {
		t.Fatal("allocations alias")
	}
}

func TestAllocRoundsOddSizeUp(t *testing.T) {
	h := New(64)
	a, err := h.Alloc(7)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(a) != 8 {
		t.Fatalf("len(a) = %d, want 8 (rounded up from 7)", len(a))
	}
}

func TestAllocFitsWithoutSplitWhenRemainderTooSmall(t *testing.T) {
	// region big enough for one tag + small payload, leaving a remainder
	// too small to hold another tag: the whole block should be handed out.
	h := New(tagSize + 10)
	a, err := h.Alloc(8)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(a) != 10 {
		t.Fatalf("len(a) = %d, want 10 (no split since remainder < tagSize)", len(a))
	}
}

func TestAllocOutOfMemory(t *testing.T) {
	h := New(16)
	if _, err := h.Alloc(100); err != ErrOutOfMemory {
		t.Fatalf("err = %v, want ErrOutOfMemory", err)
	}
}

func TestFreeCoalescesAdjacentBlocks(t *testing.T) {
	h := New(64)
	blocks := make([][]byte, 0, 4)
	for i := 0; i < 4; i++ {
		b, err := h.Alloc(8)
		if err != nil {
			t.Fatalf("Alloc %d: %v", i, err)
		}
		blocks = append(blocks, b)
	}
	for _, b := range blocks {
		h.Free(b)
	}
	// after freeing every allocation, the heap must return to a single
	// free block spanning the whole region.
	full, err := h.Alloc(h.Size() - tagSize)
	if err != nil {
		t.Fatalf("Alloc after coalescing: %v", err)
	}
	if len(full) != h.Size()-tagSize {
		t.Fatalf("len(full) = %d, want %d", len(full), h.Size()-tagSize)
	}
}

func TestFreeCoalescesOutOfOrder(t *testing.T) {
	h := New(64)
	a, _ := h.Alloc(8)
	b, _ := h.Alloc(8)
	c, _ := h.Alloc(8)
	h.Free(b)
	h.Free(a)
	h.Free(c)
	full, err := h.Alloc(h.Size() - tagSize)
	if err != nil {
		t.Fatalf("Alloc after coalescing: %v", err)
	}
	if len(full) != h.Size()-tagSize {
		t.Fatalf("len(full) = %d, want %d", len(full), h.Size()-tagSize)
	}
}

func TestResetDiscardsAllocations(t *testing.T) {
	h := New(32)
	if _, err := h.Alloc(8); err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	h.Reset()
	full, err := h.Alloc(h.Size() - tagSize)
	if err != nil {
		t.Fatalf("Alloc after reset: %v", err)
	}
	if len(full) != h.Size()-tagSize {
		t.Fatalf("len(full) = %d, want %d", len(full), h.Size()-tagSize)
	}
}

func TestAllocZeroedPayloadDoesNotOverlapTag(t *testing.T) {
	h := New(64)
	a, err := h.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	copy(a, []byte{1, 2, 3, 4})
	b, err := h.Alloc(4)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatal("second allocation aliases the first")
	}
}
