package transcoders

import (
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/contools-go/mediatype"
)

// DumpsFunc serializes a content value to a string.
type DumpsFunc func(value interface{}) (string, error)

// LoadsFunc deserializes a content value from a string.
type LoadsFunc func(text string) (interface{}, error)

// TextTranscoder adapts a string-based dumps/loads pair to the Transcoder
// interface, converting between the negotiated character set and the in-memory
// string on each call.
type TextTranscoder struct {
	contentType     string
	dumps           DumpsFunc
	loads           LoadsFunc
	defaultEncoding string
}

/*
NewTextTranscoder builds a transcoder for a textual media type.

Any charset parameter is stripped from contentType: the transcoder computes the
charset per call and appends it to the outbound content type itself. Returns a
MalformedMediaTypeError when contentType does not parse.
*/
func NewTextTranscoder(
	contentType string,
	defaultEncoding string,
	dumps DumpsFunc,
	loads LoadsFunc,
) (*TextTranscoder, error) {
	parsed, err := mediatype.Parse(contentType)
	if err != nil {
		return nil, err
	}
	delete(parsed.Parameters, "charset")

	return &TextTranscoder{
		contentType:     parsed.String(),
		dumps:           dumps,
		loads:           loads,
		defaultEncoding: defaultEncoding,
	}, nil
}

func (transcoder *TextTranscoder) ContentType() string {
	return transcoder.contentType
}

func (transcoder *TextTranscoder) ToBytes(
	value interface{}, encoding string,
) (string, []byte, error) {
	if encoding == "" {
		encoding = transcoder.defaultEncoding
	}

	var text string
	err := safeCall(func() error {
		var dumpsErr error
		text, dumpsErr = transcoder.dumps(value)
		return dumpsErr
	})
	if err != nil {
		return "", nil, xerrors.Errorf(
			"error dumping %v content: %w", transcoder.contentType, err,
		)
	}

	charset, err := htmlindex.Get(encoding)
	if err != nil {
		return "", nil, xerrors.Errorf("unknown charset '%v': %w", encoding, err)
	}

	data, err := charset.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return "", nil, xerrors.Errorf(
			"error encoding content to charset '%v': %w", encoding, err,
		)
	}

	return transcoder.contentType + "; charset=" + encoding, data, nil
}

func (transcoder *TextTranscoder) FromBytes(
	data []byte, encoding string,
) (interface{}, error) {
	if encoding == "" {
		encoding = transcoder.defaultEncoding
	}

	charset, err := htmlindex.Get(encoding)
	if err != nil {
		return nil, xerrors.Errorf("unknown charset '%v': %w", encoding, err)
	}

	decoded, err := charset.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &DecodeError{ContentType: transcoder.contentType, Cause: err}
	}

	var value interface{}
	err = safeCall(func() error {
		var loadsErr error
		value, loadsErr = transcoder.loads(string(decoded))
		return loadsErr
	})
	if err != nil {
		return nil, &DecodeError{ContentType: transcoder.contentType, Cause: err}
	}

	return value, nil
}
