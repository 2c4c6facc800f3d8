package mbslave

import "errors"

var (
	// ErrInvalidParameter signals a malformed Options value passed to New.
	ErrInvalidParameter = errors.New("mbslave: given parameter violates restriction")
	// ErrFrameTooShort is returned by decodeADU when a candidate frame is
	// shorter than the minimum ADU (address + function + CRC).
	ErrFrameTooShort = errors.New("mbslave: frame shorter than minimum ADU")
)
