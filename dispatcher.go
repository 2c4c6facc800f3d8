package mbslave

// isWriteFunction reports whether code mutates device state, the
// distinction broadcast frames use: writes execute silently, reads are
// rejected (also silently, without incrementing exc_err).
func isWriteFunction(code byte) bool {
	switch code {
	case 0x05, 0x06, 0x0F, 0x10, 0x16:
		return true
	}
	return false
}

// HandleRequest processes one fully-delimited candidate frame: busy check,
// CRC verification, address routing, the function-supported/address/data
// validation chain, execution, and response emission. It calls
// Options.Send synchronously at most once per invocation and never
// returns with busy left set.
//
// Not safe for concurrent invocation — serialize calls externally on
// multi-threaded hosts.
func (d *Device) HandleRequest(frame []byte) {
	if d.busy {
		d.counters.SlaveBusy++
		d.logger.Debugf("mbslave: rejected request, device busy")
		return
	}
	d.busy = true
	defer func() { d.busy = false }()

	if len(frame) < minADUSize {
		d.counters.BusComErr++
		d.logger.Warnf("mbslave: frame too short (%d bytes)", len(frame))
		return
	}

	got := crc16(frame[:len(frame)-2])
	want := lsbUint16(frame[len(frame)-2:])
	if got != want {
		d.counters.BusComErr++
		d.logger.Warnf("mbslave: CRC mismatch (got %#04x want %#04x)", got, want)
		return
	}

	d.counters.BusMsg++
	a, _, err := decodeADU(frame)
	if err != nil {
		d.counters.BusComErr++
		return
	}

	broadcast := a.address == 0
	switch {
	case broadcast:
		d.counters.SlaveMsg++
		d.counters.SlaveNoResp++
	case a.address != d.address:
		return
	default:
		d.counters.SlaveMsg++
	}

	entry := lookupFunction(d.registry, a.function)

	if broadcast {
		if !entry.supported || !isWriteFunction(a.function) {
			return
		}
		if entry.checkAddr != nil && !entry.checkAddr(d, a.payload) {
			return
		}
		if entry.checkData != nil && !entry.checkData(a.payload) {
			return
		}
		entry.execute(d, a.payload)
		return
	}

	if !entry.supported {
		d.counters.ExcErr++
		d.sendException(a.address, a.function, ExIllegalFunction)
		return
	}
	if entry.checkAddr != nil && !entry.checkAddr(d, a.payload) {
		d.counters.ExcErr++
		d.sendException(a.address, a.function, ExIllegalDataAddress)
		return
	}
	if entry.checkData != nil && !entry.checkData(a.payload) {
		d.counters.ExcErr++
		d.sendException(a.address, a.function, ExIllegalDataValue)
		return
	}

	respPayload, exc := entry.execute(d, a.payload)
	if exc != ExOK {
		d.counters.ExcErr++
		d.sendException(a.address, a.function, exc)
		return
	}

	out, exc := encodeADU(d.heap, adu{address: a.address, function: a.function, payload: respPayload, kind: ownedPayload})
	if exc != ExOK {
		d.counters.ExcErr++
		d.logger.Errorf("mbslave: heap exhausted building response to fc %#02x", a.function)
		d.sendException(a.address, a.function, exc)
		return
	}
	d.send(out)
	d.heap.Free(out)
}

// sendException builds and sends the five-byte exception frame without
// touching the allocator, so an exception reply never itself depends on
// heap availability.
func (d *Device) sendException(address, function byte, code Exception) {
	var buf [5]byte
	d.send(exceptionFrame(buf[:], address, function, code))
}
