package transcoders

import (
	"encoding/base64"
	"reflect"

	uuid "github.com/satori/go.uuid"
	"github.com/ugorji/go/codec"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/contools-go/wiretypes"
)

// Converts UUID values to their standard textual representation in JSON
// documents.
type jsonExtUUID struct{}

func (ext *jsonExtUUID) ConvertExt(value interface{}) interface{} {
	switch typed := value.(type) {
	case *uuid.UUID:
		return typed.String()
	case uuid.UUID:
		return typed.String()
	}
	panic(xerrors.Errorf("unexpected uuid value %T", value))
}

func (ext *jsonExtUUID) UpdateExt(dest interface{}, value interface{}) {
	text, ok := value.(string)
	if !ok {
		panic(xerrors.New("uuid field must be decoded from a string"))
	}

	parsed, err := uuid.FromString(text)
	if err != nil {
		panic(xerrors.Errorf("error decoding uuid: %w", err))
	}

	*dest.(*uuid.UUID) = parsed
}

// Converts raw binary blobs to base64 strings in JSON documents.
type jsonExtBinData struct{}

func (ext *jsonExtBinData) ConvertExt(value interface{}) interface{} {
	switch typed := value.(type) {
	case *wiretypes.BinData:
		return base64.StdEncoding.EncodeToString(*typed)
	case wiretypes.BinData:
		return base64.StdEncoding.EncodeToString(typed)
	}
	panic(xerrors.Errorf("unexpected binary value %T", value))
}

func (ext *jsonExtBinData) UpdateExt(dest interface{}, value interface{}) {
	text, ok := value.(string)
	if !ok {
		panic(xerrors.New("binary field must be decoded from a base64 string"))
	}

	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		panic(xerrors.Errorf("error decoding base64 blob: %w", err))
	}

	*dest.(*wiretypes.BinData) = decoded
}

// Builds the JSON handle used by the JSON transcoder: documents decode to
// map[string]interface{} trees, UUIDs dump as canonical strings and binary
// blobs dump as base64 strings.
func newJSONHandle() (*codec.JsonHandle, error) {
	handle := &codec.JsonHandle{}
	handle.MapType = reflect.TypeOf(map[string]interface{}(nil))

	err := handle.SetInterfaceExt(
		reflect.TypeOf(uuid.UUID{}), 1, &jsonExtUUID{},
	)
	if err != nil {
		return nil, xerrors.Errorf("error adding uuid json extension: %w", err)
	}

	err = handle.SetInterfaceExt(
		reflect.TypeOf(wiretypes.BinData{}), 1, &jsonExtBinData{},
	)
	if err != nil {
		return nil, xerrors.Errorf("error adding binary json extension: %w", err)
	}

	return handle, nil
}

// NewJSONTranscoder builds the default application/json transcoder: a
// TextTranscoder whose dumps/loads pair runs on a JSON handle from
// github.com/ugorji/go/codec, defaulting to utf-8.
func NewJSONTranscoder() (*TextTranscoder, error) {
	handle, err := newJSONHandle()
	if err != nil {
		return nil, err
	}

	dumps := func(value interface{}) (string, error) {
		var data []byte
		if err := codec.NewEncoderBytes(&data, handle).Encode(value); err != nil {
			return "", err
		}
		return string(data), nil
	}

	loads := func(text string) (interface{}, error) {
		var value interface{}
		err := codec.NewDecoderBytes([]byte(text), handle).Decode(&value)
		if err != nil {
			return nil, err
		}
		return value, nil
	}

	return NewTextTranscoder("application/json", "utf-8", dumps, loads)
}
