package mbslave

import "github.com/GoAethereal/mbslave/internal/heap"

// payloadKind distinguishes a decoded ADU's payload that still aliases the
// inbound buffer from one a handler has replaced with a freshly built
// response payload. The kind is recorded only; both kinds are ordinary Go
// slices, and the only heap block the dispatcher frees is the encoded frame
// returned by encodeADU.
type payloadKind int

const (
	borrowedPayload payloadKind = iota
	ownedPayload
)

// adu is the decoded form of one Modbus RTU application data unit:
// address, function code, and the payload between them and the CRC.
type adu struct {
	address  byte
	function byte
	payload  []byte
	kind     payloadKind
}

// minADUSize is the smallest possible frame: address, function, two CRC bytes.
const minADUSize = 4

// decodeADU splits a candidate frame into address, function, payload, and
// the trailing CRC field (still LSB-first as read off the wire). It does
// not validate the CRC — the dispatcher does that separately against the
// full buffer before decoding.
func decodeADU(buf []byte) (adu, uint16, error) {
	if len(buf) < minADUSize {
		return adu{}, 0, ErrFrameTooShort
	}
	a := adu{
		address:  buf[0],
		function: buf[1],
		payload:  buf[2 : len(buf)-2],
		kind:     borrowedPayload,
	}
	crc := lsbUint16(buf[len(buf)-2:])
	return a, crc, nil
}

// encodeADU serialises a into a freshly allocated wire frame, recomputing
// the CRC over address, function, and payload. The returned slice is owned
// by the caller (the dispatcher), which must Free it via the same heap
// once the frame has been handed to the send hook.
func encodeADU(h *heap.Heap, a adu) ([]byte, Exception) {
	n := len(a.payload) + minADUSize
	buf, err := h.Alloc(n)
	if err != nil {
		return nil, ExLocalMemory
	}
	buf[0] = a.address
	buf[1] = a.function
	copy(buf[2:], a.payload)
	crc := crc16(buf[:n-2])
	putLSBUint16(buf[n-2:], crc)
	// Alloc rounds n up to an even size; the frame is exactly n bytes.
	return buf[:n], ExOK
}

// exceptionFrame builds the five-byte exception response directly into out
// (which must be at least 5 bytes), without touching the allocator, per the
// dispatcher's requirement that exception replies never depend on heap
// availability.
func exceptionFrame(out []byte, address, function byte, code Exception) []byte {
	out[0] = address
	out[1] = function | 0x80
	out[2] = code.Code()
	crc := crc16(out[:3])
	putLSBUint16(out[3:5], crc)
	return out[:5]
}
