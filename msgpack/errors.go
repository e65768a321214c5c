package msgpack

import (
	"fmt"
)

// UnsupportedTypeError is returned by Packb when a value contains a type with no
// conversion rule and no registered adapter claims it. This signals a programming
// error in the code producing the value, not bad client input.
type UnsupportedTypeError struct {
	// The value that could not be packed.
	Value interface{}
}

func (err *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("msgpack: cannot pack value of type %T", err.Value)
}

// DecodeError is returned by Unpackb on malformed input: truncated data, an
// unrecognized or unsupported tag byte, invalid UTF-8 in a string, or trailing
// garbage after the value.
type DecodeError struct {
	// Why decoding failed.
	Reason string
	// Byte offset at which the failure was detected.
	Offset int
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("msgpack: %v at offset %v", err.Reason, err.Offset)
}
