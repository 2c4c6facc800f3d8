package mbslave

import "fmt"

// Exception is a Modbus exception code. It implements error so executors
// can return it directly; ExOK (zero) means success and must
// never be written to the wire.
type Exception byte

const (
	// ExOK is the zero value: no exception, proceed with a normal response.
	ExOK Exception = 0x00
	// ExIllegalFunction - Exception code 0x01
	//
	// The function code received in the query is not an allowable action
	// for this device, either because it's not implemented at all or
	// because the registry entry for it is marked unsupported.
	ExIllegalFunction Exception = 0x01
	// ExIllegalDataAddress - Exception code 0x02
	//
	// The combination of starting address and quantity falls outside the
	// address map the function targets.
	ExIllegalDataAddress Exception = 0x02
	// ExIllegalDataValue - Exception code 0x03
	//
	// A field in the request payload is structurally invalid: an
	// out-of-range quantity, a byte count that doesn't match the
	// quantity, or a coil value other than 0x0000/0xFF00.
	ExIllegalDataValue Exception = 0x03
	// ExServiceDeviceFailure - Exception code 0x04
	//
	// An unrecoverable error occurred while executing the request.
	ExServiceDeviceFailure Exception = 0x04
	// ExAcknowledge - Exception code 0x05. Unused by this device; defined
	// for completeness of the exception set.
	ExAcknowledge Exception = 0x05
	// ExServerDeviceBusy - Exception code 0x06. Unused directly: a busy
	// request is rejected by silently counting slave_busy rather than by
	// an exception response, per the dispatcher's first pipeline step.
	ExServerDeviceBusy Exception = 0x06
	// ExMemoryParityError - Exception code 0x08. Unused by this device.
	ExMemoryParityError Exception = 0x08
	// ExGatewayPathUnavailable - Exception code 0x0A. Unused; this device
	// has no gateway role.
	ExGatewayPathUnavailable Exception = 0x0A
	// ExGatewayTargetDeviceFailedToRespond - Exception code 0x0B. Unused.
	ExGatewayTargetDeviceFailedToRespond Exception = 0x0B
	// ExLocalMemory - Exception code 0x0C. Nonstandard extension: the slab
	// allocator could not satisfy a transient allocation needed to build
	// the response.
	ExLocalMemory Exception = 0x0C
)

// Code returns the numerical exception code as written to the wire.
func (ex Exception) Code() byte {
	return byte(ex)
}

// Error returns a human readable string representing the exception.
func (ex Exception) Error() string {
	prefix := "mbslave: exception - "
	switch ex {
	case ExOK:
		return "mbslave: ok"
	case ExIllegalFunction:
		return prefix + "ILLEGAL FUNCTION"
	case ExIllegalDataAddress:
		return prefix + "ILLEGAL DATA ADDRESS"
	case ExIllegalDataValue:
		return prefix + "ILLEGAL DATA VALUE"
	case ExServiceDeviceFailure:
		return prefix + "SERVICE DEVICE FAILURE"
	case ExAcknowledge:
		return prefix + "ACKNOWLEDGE"
	case ExServerDeviceBusy:
		return prefix + "SERVER DEVICE BUSY"
	case ExMemoryParityError:
		return prefix + "MEMORY PARITY ERROR"
	case ExGatewayPathUnavailable:
		return prefix + "GATEWAY PATH UNAVAILABLE"
	case ExGatewayTargetDeviceFailedToRespond:
		return prefix + "GATEWAY TARGET DEVICE FAILED TO RESPOND"
	case ExLocalMemory:
		return prefix + "LOCAL MEMORY EXHAUSTED"
	}
	return prefix + fmt.Sprintf("CODE %#x UNDEFINED", byte(ex))
}
