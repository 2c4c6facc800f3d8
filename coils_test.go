package mbslave

import "testing"

func TestCheckReadBitsAddrBounds(t *testing.T) {
	m := BitMap{Start: 0, End: 3, Backing: make([]byte, 3)}
	cases := []struct {
		addr, qty uint16
		want      bool
	}{
		{0, 1, true},
		{0, 24, true},   // exactly fills 3 bytes
		{0, 25, false},  // spills into byte 3, out of range
		{16, 8, true},   // last byte exactly
		{23, 1, true},  // byte index 2 (23/8=2), still in range
		{24, 1, false}, // byte index 3, out of range
	}
	for _, c := range cases {
		if got := checkReadBitsAddr(m, c.addr, c.qty); got != c.want {
			t.Errorf("checkReadBitsAddr(%d,%d) = %v, want %v", c.addr, c.qty, got, c.want)
		}
	}
}

func TestCheckReadBitsDataQtyRange(t *testing.T) {
	mk := func(qty uint16) []byte {
		p := make([]byte, 4)
		putMSBUint16(p[2:4], qty)
		return p
	}
	if checkReadBitsData(mk(0)) {
		t.Error("qty=0 should be rejected")
	}
	if !checkReadBitsData(mk(1)) {
		t.Error("qty=1 should be accepted")
	}
	if !checkReadBitsData(mk(maxReadBitQty)) {
		t.Error("qty=max should be accepted")
	}
	if checkReadBitsData(mk(maxReadBitQty + 1)) {
		t.Error("qty=max+1 should be rejected")
	}
}

func TestWriteSingleCoilSetAndClear(t *testing.T) {
	m := BitMap{Start: 0, End: 1, Backing: make([]byte, 1)}
	writeSingleCoil(m, 0, 0xFF00)
	if m.Backing[0] != 0x80 {
		t.Fatalf("backing = %08b, want 10000000", m.Backing[0])
	}
	writeSingleCoil(m, 0, 0x0000)
	if m.Backing[0] != 0x00 {
		t.Fatalf("backing = %08b, want 00000000", m.Backing[0])
	}
}

func TestReadBitsAllOnesAllZeros(t *testing.T) {
	m := BitMap{Start: 0, End: 3, Backing: []byte{0xFF, 0xFF, 0xFF}}
	out := readBits(m, 0, 24)
	for i, b := range out {
		if b != 0xFF {
			t.Fatalf("out[%d] = %#02x, want 0xff", i, b)
		}
	}
	m2 := BitMap{Start: 0, End: 3, Backing: []byte{0, 0, 0}}
	out2 := readBits(m2, 0, 24)
	for i, b := range out2 {
		if b != 0 {
			t.Fatalf("out2[%d] = %#02x, want 0", i, b)
		}
	}
}

func TestWriteMultipleCoilsThenReadBitsRoundTripAllAddresses(t *testing.T) {
	for start := uint16(0); start < 8; start++ {
		m := BitMap{Start: 0, End: 4, Backing: make([]byte, 4)}
		qty := uint16(17)
		src := []byte{0xA5, 0x3C, 0x01}
		writeBits(m, start, qty, src)
		out := readBits(m, start, qty)
		for i := uint16(0); i < qty; i++ {
			want := (src[i/8] >> (i % 8)) & 1
			got := (out[i/8] >> (i % 8)) & 1
			if want != got {
				t.Fatalf("start=%d bit %d: got %d want %d", start, i, got, want)
			}
		}
	}
}
