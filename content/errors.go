package content

import (
	"net/http"

	"golang.org/x/xerrors"

	"github.com/illuscio-dev/contools-go/mediatype"
	"github.com/illuscio-dev/contools-go/transcoders"
)

// NotFoundError is returned by Settings.Lookup when no transcoder is registered
// for a media type. At the request boundary this is a 415 Unsupported Media
// Type condition.
type NotFoundError struct {
	// Normalized media type string that missed.
	ContentType string
}

func (err *NotFoundError) Error() string {
	return "no transcoder registered for '" + err.ContentType + "'"
}

// NoMatchError is returned when negotiation exhausts every acceptable range
// without matching an available type and no default content type is set. At the
// request boundary this is a 415 Unsupported Media Type condition.
type NoMatchError struct {
	// The Accept header value that could not be satisfied.
	Accept string
}

func (err *NoMatchError) Error() string {
	return "no available content type is acceptable for '" + err.Accept + "'"
}

/*
StatusCode maps an error from this package's operations onto the HTTP status the
boundary should surface:

• 415 for registry misses and failed negotiation.

• 400 for malformed media type headers and undecodable bodies.

• 500 for anything else, such as an encode-time unsupported type, which is a
programming error in the producing code rather than a client fault.
*/
func StatusCode(err error) int {
	var notFound *NotFoundError
	var noMatch *NoMatchError
	var malformed *mediatype.MalformedMediaTypeError
	var decodeErr *transcoders.DecodeError

	switch {
	case xerrors.As(err, &notFound), xerrors.As(err, &noMatch):
		return http.StatusUnsupportedMediaType
	case xerrors.As(err, &malformed), xerrors.As(err, &decodeErr):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
