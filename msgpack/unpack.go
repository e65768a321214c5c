package msgpack

import (
	"encoding/binary"
	"math"
	"unicode/utf8"
)

// Unpackb decodes a single canonical MessagePack value from data. Trailing bytes
// after the value, truncated input, invalid UTF-8 in strings and unrecognized or
// unsupported tag bytes all produce a DecodeError; a partial value is never
// returned.
func (codec *Codec) Unpackb(data []byte) (interface{}, error) {
	state := &unpacker{data: data}

	value, err := state.unpackValue()
	if err != nil {
		return nil, err
	}

	if state.offset != len(state.data) {
		return nil, &DecodeError{
			Reason: "trailing bytes after value",
			Offset: state.offset,
		}
	}

	return value, nil
}

type unpacker struct {
	data   []byte
	offset int
}

func (state *unpacker) remaining() int {
	return len(state.data) - state.offset
}

func (state *unpacker) readByte() (byte, error) {
	if state.offset >= len(state.data) {
		return 0, &DecodeError{Reason: "truncated input", Offset: state.offset}
	}
	value := state.data[state.offset]
	state.offset++
	return value, nil
}

func (state *unpacker) readBytes(count int) ([]byte, error) {
	if count < 0 || state.offset+count > len(state.data) {
		return nil, &DecodeError{Reason: "truncated input", Offset: state.offset}
	}
	value := state.data[state.offset : state.offset+count]
	state.offset += count
	return value, nil
}

func (state *unpacker) readUint16() (uint16, error) {
	raw, err := state.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(raw), nil
}

func (state *unpacker) readUint32() (uint32, error) {
	raw, err := state.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(raw), nil
}

func (state *unpacker) readUint64() (uint64, error) {
	raw, err := state.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (state *unpacker) unpackValue() (interface{}, error) {
	tagOffset := state.offset

	tag, err := state.readByte()
	if err != nil {
		return nil, err
	}

	switch {
	case tag <= 0x7f:
		// positive fixint
		return int64(tag), nil
	case tag >= 0xe0:
		// negative fixint
		return int64(int8(tag)), nil
	case tag >= 0x80 && tag <= 0x8f:
		return state.unpackMap(int(tag & 0x0f))
	case tag >= 0x90 && tag <= 0x9f:
		return state.unpackArray(int(tag & 0x0f))
	case tag >= 0xa0 && tag <= 0xbf:
		return state.unpackString(int(tag & 0x1f))
	}

	switch tag {
	case 0xc0:
		return nil, nil
	case 0xc2:
		return false, nil
	case 0xc3:
		return true, nil

	case 0xc4, 0xc5, 0xc6:
		length, err := state.unpackLength(tag - 0xc4)
		if err != nil {
			return nil, err
		}
		raw, err := state.readBytes(length)
		if err != nil {
			return nil, err
		}
		// Copied out so the result does not alias the input buffer.
		value := make([]byte, length)
		copy(value, raw)
		return value, nil

	case 0xca:
		raw, err := state.readUint32()
		if err != nil {
			return nil, err
		}
		return float64(math.Float32frombits(raw)), nil
	case 0xcb:
		raw, err := state.readUint64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(raw), nil

	case 0xcc:
		value, err := state.readByte()
		return int64(value), err
	case 0xcd:
		value, err := state.readUint16()
		return int64(value), err
	case 0xce:
		value, err := state.readUint32()
		return int64(value), err
	case 0xcf:
		value, err := state.readUint64()
		if err != nil {
			return nil, err
		}
		if value > math.MaxInt64 {
			return value, nil
		}
		return int64(value), nil

	case 0xd0:
		value, err := state.readByte()
		return int64(int8(value)), err
	case 0xd1:
		value, err := state.readUint16()
		return int64(int16(value)), err
	case 0xd2:
		value, err := state.readUint32()
		return int64(int32(value)), err
	case 0xd3:
		value, err := state.readUint64()
		return int64(value), err

	case 0xd9, 0xda, 0xdb:
		length, err := state.unpackLength(tag - 0xd9)
		if err != nil {
			return nil, err
		}
		return state.unpackString(length)

	case 0xdc:
		count, err := state.readUint16()
		if err != nil {
			return nil, err
		}
		return state.unpackArray(int(count))
	case 0xdd:
		count, err := state.readUint32()
		if err != nil {
			return nil, err
		}
		return state.unpackArray(int(count))

	case 0xde:
		count, err := state.readUint16()
		if err != nil {
			return nil, err
		}
		return state.unpackMap(int(count))
	case 0xdf:
		count, err := state.readUint32()
		if err != nil {
			return nil, err
		}
		return state.unpackMap(int(count))

	case 0xc7, 0xc8, 0xc9, 0xd4, 0xd5, 0xd6, 0xd7, 0xd8:
		return nil, &DecodeError{
			Reason: "unsupported extension tag",
			Offset: tagOffset,
		}
	}

	return nil, &DecodeError{Reason: "unrecognized tag byte", Offset: tagOffset}
}

// unpackLength reads a 1, 2 or 4 byte big-endian length for the str/bin
// families. width selects which: 0, 1 or 2 respectively.
func (state *unpacker) unpackLength(width byte) (int, error) {
	switch width {
	case 0:
		length, err := state.readByte()
		return int(length), err
	case 1:
		length, err := state.readUint16()
		return int(length), err
	default:
		length, err := state.readUint32()
		return int(length), err
	}
}

func (state *unpacker) unpackString(length int) (interface{}, error) {
	start := state.offset

	raw, err := state.readBytes(length)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(raw) {
		return nil, &DecodeError{Reason: "invalid utf-8 in string", Offset: start}
	}

	return string(raw), nil
}

func (state *unpacker) unpackArray(count int) (interface{}, error) {
	// Every element takes at least one byte, so a count beyond the remaining
	// input is provably truncated. Checking before allocating keeps a hostile
	// length header from demanding gigabytes.
	if count > state.remaining() {
		return nil, &DecodeError{Reason: "truncated input", Offset: state.offset}
	}

	values := make([]interface{}, count)
	for index := 0; index < count; index++ {
		value, err := state.unpackValue()
		if err != nil {
			return nil, err
		}
		values[index] = value
	}
	return values, nil
}

// Mappings decode to map[string]interface{}; the value model's mappings are
// string-keyed, so any other key kind on the wire is malformed input.
func (state *unpacker) unpackMap(count int) (interface{}, error) {
	// Each pair takes at least two bytes; see unpackArray.
	if count > state.remaining()/2 {
		return nil, &DecodeError{Reason: "truncated input", Offset: state.offset}
	}

	values := make(map[string]interface{}, count)

	for index := 0; index < count; index++ {
		keyOffset := state.offset

		key, err := state.unpackValue()
		if err != nil {
			return nil, err
		}
		keyString, ok := key.(string)
		if !ok {
			return nil, &DecodeError{
				Reason: "non-string map key",
				Offset: keyOffset,
			}
		}

		value, err := state.unpackValue()
		if err != nil {
			return nil, err
		}
		values[keyString] = value
	}

	return values, nil
}
