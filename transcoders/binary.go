package transcoders

import (
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/contools-go/mediatype"
)

// PackFunc serializes a content value to raw bytes.
type PackFunc func(value interface{}) ([]byte, error)

// UnpackFunc deserializes a content value from raw bytes.
type UnpackFunc func(data []byte) (interface{}, error)

// BinaryTranscoder adapts a byte-based pack/unpack pair to the Transcoder
// interface. Character encoding does not apply to binary formats and is ignored;
// ToBytes always reports the registered content type verbatim.
type BinaryTranscoder struct {
	contentType string
	pack        PackFunc
	unpack      UnpackFunc
}

// NewBinaryTranscoder builds a transcoder for a binary media type. Returns a
// MalformedMediaTypeError when contentType does not parse.
func NewBinaryTranscoder(
	contentType string, pack PackFunc, unpack UnpackFunc,
) (*BinaryTranscoder, error) {
	parsed, err := mediatype.Parse(contentType)
	if err != nil {
		return nil, err
	}

	return &BinaryTranscoder{
		contentType: parsed.String(),
		pack:        pack,
		unpack:      unpack,
	}, nil
}

func (transcoder *BinaryTranscoder) ContentType() string {
	return transcoder.contentType
}

func (transcoder *BinaryTranscoder) ToBytes(
	value interface{}, encoding string,
) (string, []byte, error) {
	var data []byte
	err := safeCall(func() error {
		var packErr error
		data, packErr = transcoder.pack(value)
		return packErr
	})
	if err != nil {
		return "", nil, xerrors.Errorf(
			"error packing %v content: %w", transcoder.contentType, err,
		)
	}

	return transcoder.contentType, data, nil
}

func (transcoder *BinaryTranscoder) FromBytes(
	data []byte, encoding string,
) (interface{}, error) {
	var value interface{}
	err := safeCall(func() error {
		var unpackErr error
		value, unpackErr = transcoder.unpack(data)
		return unpackErr
	})
	if err != nil {
		return nil, &DecodeError{ContentType: transcoder.contentType, Cause: err}
	}

	return value, nil
}
