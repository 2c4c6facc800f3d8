package mbslave

import "testing"

func TestOptionsVerifyRejectsBroadcastAddress(t *testing.T) {
	opts := Options{Address: 0, Send: func([]byte) {}}
	if err := opts.Verify(); err != ErrInvalidParameter {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestOptionsVerifyRejectsNilSend(t *testing.T) {
	opts := Options{Address: 1}
	if err := opts.Verify(); err != ErrInvalidParameter {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestOptionsVerifyRejectsInvertedMap(t *testing.T) {
	opts := Options{
		Address: 1,
		Send:    func([]byte) {},
		Holding: RegisterMap{Start: 10, End: 5},
	}
	if err := opts.Verify(); err != ErrInvalidParameter {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestNewDefaultsHeapSize(t *testing.T) {
	d, err := New(Options{Address: 1, Send: func([]byte) {}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.heap.Size() != defaultHeapSize {
		t.Fatalf("heap size = %d, want %d", d.heap.Size(), defaultHeapSize)
	}
}

func TestNewAcceptsCustomHeapSize(t *testing.T) {
	d, err := New(Options{Address: 1, Send: func([]byte) {}, HeapSize: 256})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.heap.Size() != 256 {
		t.Fatalf("heap size = %d, want 256", d.heap.Size())
	}
}
