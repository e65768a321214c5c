package msgpack

import (
	"bytes"
	"encoding/binary"
	"math"
	"reflect"
	"sort"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/illuscio-dev/contools-go/wiretypes"
)

// Adapter converts a caller-supplied value into one of the kinds the codec packs
// natively. Adapters are tried in registration order before the built-in kinds;
// the first adapter to return ok wins and its result is packed in the original
// value's place.
type Adapter func(value interface{}) (converted interface{}, ok bool)

// Codec packs and unpacks dynamic content trees. The zero value is usable; use
// NewCodec to attach adapters.
type Codec struct {
	adapters []Adapter
}

// NewCodec returns a codec with the given adapters registered, in order.
func NewCodec(adapters ...Adapter) *Codec {
	return &Codec{adapters: adapters}
}

// Timestamps render with an explicit numeric offset so zone-aware values keep
// their UTC offset on the wire ("+00:00" rather than "Z" for UTC).
const timeFormat = "2006-01-02T15:04:05.999999-07:00"

var defaultCodec = NewCodec()

// Packb encodes value with a codec that has no adapters registered.
func Packb(value interface{}) ([]byte, error) {
	return defaultCodec.Packb(value)
}

// Unpackb decodes data with a codec that has no adapters registered.
func Unpackb(data []byte) (interface{}, error) {
	return defaultCodec.Unpackb(data)
}

// Packb encodes value into its canonical MessagePack representation.
func (codec *Codec) Packb(value interface{}) ([]byte, error) {
	buffer := &bytes.Buffer{}
	if err := codec.packValue(buffer, value); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (codec *Codec) packValue(buffer *bytes.Buffer, value interface{}) error {
	for _, adapter := range codec.adapters {
		if converted, ok := adapter(value); ok {
			value = converted
			break
		}
	}

	switch typed := value.(type) {
	case nil:
		buffer.WriteByte(0xc0)
		return nil
	case bool:
		if typed {
			buffer.WriteByte(0xc3)
		} else {
			buffer.WriteByte(0xc2)
		}
		return nil
	case string:
		return packString(buffer, typed)
	case []byte:
		return packBin(buffer, typed)
	case wiretypes.BinData:
		return packBin(buffer, typed)
	case *bytes.Buffer:
		return packBin(buffer, typed.Bytes())
	case uuid.UUID:
		return packString(buffer, typed.String())
	case time.Time:
		return packString(buffer, typed.Format(timeFormat))
	case int:
		return packInt(buffer, int64(typed))
	case int8:
		return packInt(buffer, int64(typed))
	case int16:
		return packInt(buffer, int64(typed))
	case int32:
		return packInt(buffer, int64(typed))
	case int64:
		return packInt(buffer, typed)
	case uint:
		return packUint(buffer, uint64(typed))
	case uint8:
		return packUint(buffer, uint64(typed))
	case uint16:
		return packUint(buffer, uint64(typed))
	case uint32:
		return packUint(buffer, uint64(typed))
	case uint64:
		return packUint(buffer, typed)
	case float32:
		buffer.WriteByte(0xca)
		return writeUint32(buffer, math.Float32bits(typed))
	case float64:
		buffer.WriteByte(0xcb)
		return writeUint64(buffer, math.Float64bits(typed))
	case map[string]interface{}:
		return codec.packStringMap(buffer, typed)
	case []interface{}:
		return codec.packSlice(buffer, typed)
	}

	return codec.packReflected(buffer, value)
}

// Handles sequence and mapping kinds that arrive as concrete types other than
// []interface{} / map[string]interface{}, e.g. []string or map[string]int.
func (codec *Codec) packReflected(buffer *bytes.Buffer, value interface{}) error {
	reflected := reflect.ValueOf(value)

	switch reflected.Kind() {
	case reflect.Slice, reflect.Array:
		if reflected.Type().Elem().Kind() == reflect.Uint8 {
			data := make([]byte, reflected.Len())
			reflect.Copy(reflect.ValueOf(data), reflected)
			return packBin(buffer, data)
		}

		if err := packArrayHeader(buffer, reflected.Len()); err != nil {
			return err
		}
		for index := 0; index < reflected.Len(); index++ {
			element := reflected.Index(index).Interface()
			if err := codec.packValue(buffer, element); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		if reflected.Type().Key().Kind() != reflect.String {
			return &UnsupportedTypeError{Value: value}
		}

		converted := make(map[string]interface{}, reflected.Len())
		iterator := reflected.MapRange()
		for iterator.Next() {
			converted[iterator.Key().String()] = iterator.Value().Interface()
		}
		return codec.packStringMap(buffer, converted)
	}

	return &UnsupportedTypeError{Value: value}
}

func (codec *Codec) packSlice(buffer *bytes.Buffer, values []interface{}) error {
	if err := packArrayHeader(buffer, len(values)); err != nil {
		return err
	}
	for _, element := range values {
		if err := codec.packValue(buffer, element); err != nil {
			return err
		}
	}
	return nil
}

func (codec *Codec) packStringMap(
	buffer *bytes.Buffer, values map[string]interface{},
) error {
	if err := packMapHeader(buffer, len(values)); err != nil {
		return err
	}

	// Keys are written in sorted order so identical trees always encode to
	// identical bytes.
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := packString(buffer, key); err != nil {
			return err
		}
		if err := codec.packValue(buffer, values[key]); err != nil {
			return err
		}
	}
	return nil
}

// Integers always use the narrowest form that losslessly represents the value:
// fixint families for small magnitudes, then the 1/2/4/8 byte unsigned forms for
// non-negatives and signed forms for negatives.
func packInt(buffer *bytes.Buffer, value int64) error {
	if value >= 0 {
		return packUint(buffer, uint64(value))
	}

	switch {
	case value >= -32:
		buffer.WriteByte(byte(value))
	case value >= math.MinInt8:
		buffer.WriteByte(0xd0)
		buffer.WriteByte(byte(int8(value)))
	case value >= math.MinInt16:
		buffer.WriteByte(0xd1)
		return writeUint16(buffer, uint16(int16(value)))
	case value >= math.MinInt32:
		buffer.WriteByte(0xd2)
		return writeUint32(buffer, uint32(int32(value)))
	default:
		buffer.WriteByte(0xd3)
		return writeUint64(buffer, uint64(value))
	}
	return nil
}

func packUint(buffer *bytes.Buffer, value uint64) error {
	switch {
	case value <= 0x7f:
		buffer.WriteByte(byte(value))
	case value <= math.MaxUint8:
		buffer.WriteByte(0xcc)
		buffer.WriteByte(byte(value))
	case value <= math.MaxUint16:
		buffer.WriteByte(0xcd)
		return writeUint16(buffer, uint16(value))
	case value <= math.MaxUint32:
		buffer.WriteByte(0xce)
		return writeUint32(buffer, uint32(value))
	default:
		buffer.WriteByte(0xcf)
		return writeUint64(buffer, value)
	}
	return nil
}

func packString(buffer *bytes.Buffer, value string) error {
	length := len(value)
	switch {
	case length <= 31:
		buffer.WriteByte(0xa0 | byte(length))
	case length <= math.MaxUint8:
		buffer.WriteByte(0xd9)
		buffer.WriteByte(byte(length))
	case length <= math.MaxUint16:
		buffer.WriteByte(0xda)
		if err := writeUint16(buffer, uint16(length)); err != nil {
			return err
		}
	default:
		buffer.WriteByte(0xdb)
		if err := writeUint32(buffer, uint32(length)); err != nil {
			return err
		}
	}
	buffer.WriteString(value)
	return nil
}

// Byte blobs are always tagged with the bin family, never as strings, no matter
// their content.
func packBin(buffer *bytes.Buffer, value []byte) error {
	length := len(value)
	switch {
	case length <= math.MaxUint8:
		buffer.WriteByte(0xc4)
		buffer.WriteByte(byte(length))
	case length <= math.MaxUint16:
		buffer.WriteByte(0xc5)
		if err := writeUint16(buffer, uint16(length)); err != nil {
			return err
		}
	default:
		buffer.WriteByte(0xc6)
		if err := writeUint32(buffer, uint32(length)); err != nil {
			return err
		}
	}
	buffer.Write(value)
	return nil
}

func packArrayHeader(buffer *bytes.Buffer, count int) error {
	switch {
	case count <= 15:
		buffer.WriteByte(0x90 | byte(count))
	case count <= math.MaxUint16:
		buffer.WriteByte(0xdc)
		return writeUint16(buffer, uint16(count))
	default:
		buffer.WriteByte(0xdd)
		return writeUint32(buffer, uint32(count))
	}
	return nil
}

func packMapHeader(buffer *bytes.Buffer, count int) error {
	switch {
	case count <= 15:
		buffer.WriteByte(0x80 | byte(count))
	case count <= math.MaxUint16:
		buffer.WriteByte(0xde)
		return writeUint16(buffer, uint16(count))
	default:
		buffer.WriteByte(0xdf)
		return writeUint32(buffer, uint32(count))
	}
	return nil
}

func writeUint16(buffer *bytes.Buffer, value uint16) error {
	return binary.Write(buffer, binary.BigEndian, value)
}

func writeUint32(buffer *bytes.Buffer, value uint32) error {
	return binary.Write(buffer, binary.BigEndian, value)
}

func writeUint64(buffer *bytes.Buffer, value uint64) error {
	return binary.Write(buffer, binary.BigEndian, value)
}
