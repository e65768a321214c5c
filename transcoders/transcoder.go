package transcoders

import (
	"fmt"

	"golang.org/x/xerrors"
)

/*
Transcoder converts between raw body bytes and a dynamic content value for one
specific media type.

Transcoders hold no per-request state; both methods are pure transformations and
safe for concurrent use. The encoding argument names a character set ("utf-8");
blank selects the transcoder's default. Binary transcoders ignore it.
*/
type Transcoder interface {
	// ContentType returns the normalized media type string the transcoder was
	// registered under.
	ContentType() string

	// ToBytes encodes value. The returned content type is the exact string to
	// place in an outbound Content-Type header and may extend the registered
	// type, e.g. with a charset parameter.
	ToBytes(value interface{}, encoding string) (contentType string, data []byte, err error)

	// FromBytes decodes data. On any underlying parse failure it returns a
	// DecodeError; a partially decoded value is never returned.
	FromBytes(data []byte, encoding string) (interface{}, error)
}

// DecodeError is returned by Transcoder.FromBytes when the body cannot be
// decoded. The cause carries the full diagnostic, which belongs in server-side
// logs, not in client responses.
type DecodeError struct {
	// Media type of the transcoder that failed.
	ContentType string
	// Underlying failure.
	Cause error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf(
		"cannot decode body as %v: %v", err.ContentType, err.Cause,
	)
}

func (err *DecodeError) Unwrap() error {
	return err.Cause
}

// Calls call while catching panics to return as errors. User-supplied dump /
// load / pack / unpack callbacks run inside this guard so a panicking callback
// degrades to an error result.
func safeCall(call func() error) (err error) {
	defer func() {
		recovered := recover()
		if recovered != nil {
			err = xerrors.Errorf("panic during transcode: %v", recovered)
		}
	}()

	err = call()
	return err
}
