package mbslave

// FC 0x07 (read exception status) and FC 0x11 (report device id): neither
// takes address/quantity fields, so both skip the address-check stage.

func executeReadExceptionStatus(d *Device, _ []byte) ([]byte, Exception) {
	return []byte{d.exceptionStatus}, ExOK
}

// deviceIDRunIndicator is the run-indicator byte the reference device
// always reports as "running" — there is no self-test state this device
// tracks that would ever flip it off.
const deviceIDRunIndicator = 0xFF

func executeReportDeviceID(d *Device, _ []byte) ([]byte, Exception) {
	return []byte{d.address, deviceIDRunIndicator}, ExOK
}
