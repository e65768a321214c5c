package transcoders

import (
	"reflect"

	uuid "github.com/satori/go.uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// Handles encoding and decoding of UUID values to and from bson binary fields
// with subtype 0x3.
type bsonCodecUUID struct{}

func (uuidCodec bsonCodecUUID) EncodeValue(
	encodeCTX bsoncodec.EncodeContext,
	valueWriter bsonrw.ValueWriter,
	value reflect.Value,
) error {
	valueUUID, _ := value.Interface().(uuid.UUID)
	return valueWriter.WriteBinaryWithSubtype(valueUUID.Bytes(), 0x3)
}

func (uuidCodec bsonCodecUUID) DecodeValue(
	decodeCTX bsoncodec.DecodeContext,
	valueReader bsonrw.ValueReader,
	value reflect.Value,
) error {
	bytesUUID, _, err := valueReader.ReadBinary()
	if err != nil {
		return err
	}

	uuidVal, err := uuid.FromBytes(bytesUUID)
	if err != nil {
		return err
	}

	value.Set(reflect.ValueOf(uuidVal))
	return nil
}

// Builds the bson registry used by the BSON transcoder: the driver defaults plus
// the UUID binary codec.
func newBSONRegistry() *bsoncodec.Registry {
	builder := bsoncodec.NewRegistryBuilder()
	bsoncodec.DefaultValueEncoders{}.RegisterDefaultEncoders(builder)
	bsoncodec.DefaultValueDecoders{}.RegisterDefaultDecoders(builder)
	builder.RegisterCodec(reflect.TypeOf(uuid.UUID{}), bsonCodecUUID{})
	return builder.Build()
}

// NewBSONTranscoder builds an application/bson transcoder on the mongo driver's
// bson codec with UUID support.
func NewBSONTranscoder() (*BinaryTranscoder, error) {
	registry := newBSONRegistry()

	pack := func(value interface{}) ([]byte, error) {
		return bson.MarshalWithRegistry(registry, value)
	}

	unpack := func(data []byte) (interface{}, error) {
		value := make(map[string]interface{})
		err := bson.UnmarshalWithRegistry(registry, data, &value)
		if err != nil {
			return nil, err
		}
		return value, nil
	}

	return NewBinaryTranscoder("application/bson", pack, unpack)
}
