package mbslave

// functionEntry is one row of the function handler registry: function code
// mapped to whether it is supported at all, its address and data
// validators, and its executor. A nil checkAddr or checkData always
// passes — used by functions with no address field (0x07, 0x08, 0x11) or
// no structural payload constraint beyond what checkAddr already covers.
type functionEntry struct {
	code      byte
	supported bool
	checkAddr func(d *Device, payload []byte) bool
	checkData func(payload []byte) bool
	execute   func(d *Device, payload []byte) ([]byte, Exception)
}

// lookupFunction performs the bounded linear scan spec.md's registry
// describes (≤ 20 entries; no function code space is large enough to
// justify a jump table). A code absent from the table is indistinguishable
// from an explicit supported=false entry.
func lookupFunction(registry []functionEntry, code byte) functionEntry {
	for _, e := range registry {
		if e.code == code {
			return e
		}
	}
	return functionEntry{code: code, supported: false}
}

// defaultRegistry is the built-in function table, grounded directly on
// original_source's mb_validate_function_code dispatch table and its
// per-function check_addr/check_data/execute triples. Every checkAddr
// below guards against a too-short payload before indexing it — a
// malformed frame fails the address check rather than panicking.
//
// FC 0x0C (get comm event log) is present and marked supported, but its
// executor unconditionally returns illegal-function — reproducing the
// reference device's own behavior rather than silently dropping the code.
// FC 0x14, 0x15, 0x17, 0x18, 0x2B are intentionally absent: an absent code
// behaves identically to an explicit unsupported entry at dispatch time.
func defaultRegistry() []functionEntry {
	return []functionEntry{
		{
			code:      0x01,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 4 {
					return false
				}
				return checkReadBitsAddr(d.coils, msbUint16(p[0:2]), msbUint16(p[2:4]))
			},
			checkData: checkReadBitsData,
			execute:   executeReadCoils,
		},
		{
			code:      0x02,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 4 {
					return false
				}
				return checkReadBitsAddr(d.discreteInputs, msbUint16(p[0:2]), msbUint16(p[2:4]))
			},
			checkData: checkReadBitsData,
			execute:   executeReadDiscreteInputs,
		},
		{
			code:      0x03,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 4 {
					return false
				}
				return checkReadRegsAddr(d.holding, msbUint16(p[0:2]), msbUint16(p[2:4]))
			},
			checkData: checkReadRegsData,
			execute:   executeReadHoldingRegisters,
		},
		{
			code:      0x04,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 4 {
					return false
				}
				return checkReadRegsAddr(d.input, msbUint16(p[0:2]), msbUint16(p[2:4]))
			},
			checkData: checkReadRegsData,
			execute:   executeReadInputRegisters,
		},
		{
			code:      0x05,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 2 {
					return false
				}
				return checkWriteSingleCoilAddr(d.coils, msbUint16(p[0:2]))
			},
			checkData: checkWriteSingleCoilData,
			execute:   executeWriteSingleCoil,
		},
		{
			code:      0x06,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 2 {
					return false
				}
				return checkWriteSingleRegisterAddr(d.holding, msbUint16(p[0:2]))
			},
			checkData: func(p []byte) bool { return len(p) >= 4 },
			execute:   executeWriteSingleRegister,
		},
		{
			code:      0x07,
			supported: true,
			execute:   executeReadExceptionStatus,
		},
		{
			code:      0x08,
			supported: true,
			checkData: checkDiagnosticData,
			execute:   executeDiagnostic,
		},
		{
			code:      0x0C,
			supported: true,
			execute: func(d *Device, p []byte) ([]byte, Exception) {
				return nil, ExIllegalFunction
			},
		},
		{
			code:      0x0F,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 4 {
					return false
				}
				return checkWriteMultipleCoilsAddr(d.coils, msbUint16(p[0:2]), msbUint16(p[2:4]))
			},
			checkData: checkWriteMultipleCoilsData,
			execute:   executeWriteMultipleCoils,
		},
		{
			code:      0x10,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 4 {
					return false
				}
				return checkWriteMultipleRegistersAddr(d.holding, msbUint16(p[0:2]), msbUint16(p[2:4]))
			},
			checkData: checkWriteMultipleRegistersData,
			execute:   executeWriteMultipleRegisters,
		},
		{
			code:      0x11,
			supported: true,
			execute:   executeReportDeviceID,
		},
		{
			code:      0x16,
			supported: true,
			checkAddr: func(d *Device, p []byte) bool {
				if len(p) < 2 {
					return false
				}
				return checkMaskWriteRegisterAddr(d.holding, msbUint16(p[0:2]))
			},
			checkData: checkMaskWriteRegisterData,
			execute:   executeMaskWriteRegister,
		},
	}
}
