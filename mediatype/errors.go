package mediatype

// MalformedMediaTypeError is returned when a media type string cannot be parsed.
// At a service boundary this is a client error for header values and a
// configuration error for registration keys.
type MalformedMediaTypeError struct {
	// The raw string that failed to parse.
	Value string
	// Why parsing failed.
	Reason string
}

func (err *MalformedMediaTypeError) Error() string {
	return "malformed media type '" + err.Value + "': " + err.Reason
}
