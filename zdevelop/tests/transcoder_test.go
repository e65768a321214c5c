package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"encoding/base64"
	"strings"
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/contools-go/transcoders"
	"github.com/illuscio-dev/contools-go/wiretypes"
)

// Minimal dumps/loads pair for exercising the text transcoder without dragging
// a real document codec into the tests.
func echoDumps(value interface{}) (string, error) {
	text, ok := value.(string)
	if !ok {
		return "", xerrors.New("echo dumps only handles strings")
	}
	return text, nil
}

func echoLoads(text string) (interface{}, error) {
	return text, nil
}

func TestTextTranscoderAppendsCharset(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewTextTranscoder(
		"text/plain", "utf-8", echoDumps, echoLoads,
	)
	assert.Nil(err)
	assert.Equal("text/plain", transcoder.ContentType())

	contentType, data, err := transcoder.ToBytes("hello", "")
	assert.Nil(err)
	assert.Equal("text/plain; charset=utf-8", contentType)
	assert.Equal([]byte("hello"), data)
}

func TestTextTranscoderStripsCharsetOnRegistration(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewTextTranscoder(
		"text/plain; charset=UTF-8", "utf-8", echoDumps, echoLoads,
	)
	assert.Nil(err)
	assert.Equal("text/plain", transcoder.ContentType())
}

func TestTextTranscoderExplicitEncoding(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewTextTranscoder(
		"text/plain", "utf-8", echoDumps, echoLoads,
	)
	assert.Nil(err)

	// "é" is a single 0xe9 byte in latin1, two bytes in utf-8.
	contentType, data, err := transcoder.ToBytes("café", "iso-8859-1")
	assert.Nil(err)
	assert.Equal("text/plain; charset=iso-8859-1", contentType)
	assert.Equal([]byte{'c', 'a', 'f', 0xe9}, data)

	value, err := transcoder.FromBytes(data, "iso-8859-1")
	assert.Nil(err)
	assert.Equal("café", value)
}

func TestTextTranscoderUnknownCharset(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewTextTranscoder(
		"text/plain", "utf-8", echoDumps, echoLoads,
	)
	assert.Nil(err)

	_, _, err = transcoder.ToBytes("hello", "not-a-charset")
	assert.NotNil(err)
}

func TestTextTranscoderLoadsFailureIsDecodeError(test *testing.T) {
	assert := assert.New(test)

	failingLoads := func(text string) (interface{}, error) {
		return nil, xerrors.New("bad document")
	}

	transcoder, err := transcoders.NewTextTranscoder(
		"text/plain", "utf-8", echoDumps, failingLoads,
	)
	assert.Nil(err)

	_, err = transcoder.FromBytes([]byte("whatever"), "")
	assert.NotNil(err)

	var decodeErr *transcoders.DecodeError
	assert.True(xerrors.As(err, &decodeErr))
	assert.Equal("text/plain", decodeErr.ContentType)
}

func TestTextTranscoderPanickyLoadsRecovered(test *testing.T) {
	assert := assert.New(test)

	panickyLoads := func(text string) (interface{}, error) {
		panic(xerrors.New("loads panicked"))
	}

	transcoder, err := transcoders.NewTextTranscoder(
		"text/plain", "utf-8", echoDumps, panickyLoads,
	)
	assert.Nil(err)

	_, err = transcoder.FromBytes([]byte("whatever"), "")
	assert.NotNil(err)
	assert.True(strings.Contains(err.Error(), "panic during transcode"))
}

func TestBinaryTranscoderReturnsRegisteredType(test *testing.T) {
	assert := assert.New(test)

	pack := func(value interface{}) ([]byte, error) {
		return []byte{0x01}, nil
	}
	unpack := func(data []byte) (interface{}, error) {
		return "unpacked", nil
	}

	transcoder, err := transcoders.NewBinaryTranscoder(
		"application/Vendor+MsgPack; Version=2", pack, unpack,
	)
	assert.Nil(err)

	contentType, data, err := transcoder.ToBytes(nil, "ignored-encoding")
	assert.Nil(err)
	assert.Equal("application/vendor+msgpack; version=2", contentType)
	assert.Equal([]byte{0x01}, data)

	value, err := transcoder.FromBytes([]byte{0x01}, "ignored-encoding")
	assert.Nil(err)
	assert.Equal("unpacked", value)
}

func TestBinaryTranscoderMalformedType(test *testing.T) {
	_, err := transcoders.NewBinaryTranscoder(
		"not-a-media-type",
		func(interface{}) ([]byte, error) { return nil, nil },
		func([]byte) (interface{}, error) { return nil, nil },
	)
	assert.NotNil(test, err)
}

func TestMsgPackTranscoderRoundTrip(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewMsgPackTranscoder()
	assert.Nil(err)
	assert.Equal("application/msgpack", transcoder.ContentType())

	value := map[string]interface{}{"hi": "there"}

	contentType, data, err := transcoder.ToBytes(value, "")
	assert.Nil(err)
	assert.Equal("application/msgpack", contentType)
	assert.Equal(
		[]byte{0x81, 0xa2, 'h', 'i', 0xa5, 't', 'h', 'e', 'r', 'e'}, data,
	)

	decoded, err := transcoder.FromBytes(data, "")
	assert.Nil(err)
	assert.Equal(value, decoded)
}

func TestMsgPackTranscoderDecodeFailure(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewMsgPackTranscoder()
	assert.Nil(err)

	_, err = transcoder.FromBytes([]byte{0xc1}, "")
	assert.NotNil(err)

	var decodeErr *transcoders.DecodeError
	assert.True(xerrors.As(err, &decodeErr))
}

func TestJSONTranscoderRoundTrip(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewJSONTranscoder()
	assert.Nil(err)
	assert.Equal("application/json", transcoder.ContentType())

	value := map[string]interface{}{"name": "value"}

	contentType, data, err := transcoder.ToBytes(value, "")
	assert.Nil(err)
	assert.Equal("application/json; charset=utf-8", contentType)

	decoded, err := transcoder.FromBytes(data, "")
	assert.Nil(err)
	assert.Equal(value, decoded)
}

func TestJSONTranscoderDumpsUUIDAsString(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewJSONTranscoder()
	assert.Nil(err)

	id := uuid.NewV4()

	_, data, err := transcoder.ToBytes(map[string]interface{}{"id": id}, "")
	assert.Nil(err)
	assert.Equal("{\"id\":\""+id.String()+"\"}", string(data))
}

func TestJSONTranscoderDumpsBinDataAsBase64(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewJSONTranscoder()
	assert.Nil(err)

	blob := wiretypes.BinData{0x00, 0x01, 0x02}
	expected := base64.StdEncoding.EncodeToString(blob)

	_, data, err := transcoder.ToBytes(map[string]interface{}{"bin": blob}, "")
	assert.Nil(err)
	assert.Equal("{\"bin\":\""+expected+"\"}", string(data))
}

func TestJSONTranscoderDecodeFailure(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewJSONTranscoder()
	assert.Nil(err)

	_, err = transcoder.FromBytes([]byte("<not>json</not>"), "")
	assert.NotNil(err)

	var decodeErr *transcoders.DecodeError
	assert.True(xerrors.As(err, &decodeErr))
}

func TestYAMLTranscoderRoundTrip(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewYAMLTranscoder()
	assert.Nil(err)
	assert.Equal("application/yaml", transcoder.ContentType())

	value := map[string]interface{}{
		"name":  "value",
		"count": 12,
		"tags":  []interface{}{"a", "b"},
	}

	contentType, data, err := transcoder.ToBytes(value, "")
	assert.Nil(err)
	assert.Equal("application/yaml; charset=utf-8", contentType)

	decoded, err := transcoder.FromBytes(data, "")
	assert.Nil(err)
	assert.Equal(value, decoded)
}

func TestBSONTranscoderRoundTrip(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewBSONTranscoder()
	assert.Nil(err)
	assert.Equal("application/bson", transcoder.ContentType())

	value := map[string]interface{}{"first": "Harry", "last": "Potter"}

	contentType, data, err := transcoder.ToBytes(value, "")
	assert.Nil(err)
	assert.Equal("application/bson", contentType)

	decoded, err := transcoder.FromBytes(data, "")
	assert.Nil(err)
	assert.Equal(value, decoded)
}

func TestBSONTranscoderUUIDBinarySubtype(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewBSONTranscoder()
	assert.Nil(err)

	id := uuid.NewV4()

	_, data, err := transcoder.ToBytes(map[string]interface{}{"id": id}, "")
	assert.Nil(err)

	decoded, err := transcoder.FromBytes(data, "")
	assert.Nil(err)

	decodedMap, ok := decoded.(map[string]interface{})
	assert.True(ok)

	binValue, ok := decodedMap["id"].(primitive.Binary)
	assert.True(ok)
	assert.Equal(byte(0x3), binValue.Subtype)
	assert.Equal(id.Bytes(), binValue.Data)
}

func TestBSONTranscoderDecodeFailure(test *testing.T) {
	assert := assert.New(test)

	transcoder, err := transcoders.NewBSONTranscoder()
	assert.Nil(err)

	_, err = transcoder.FromBytes([]byte{0x01, 0x02, 0x03}, "")
	assert.NotNil(err)

	var decodeErr *transcoders.DecodeError
	assert.True(xerrors.As(err, &decodeErr))
}
