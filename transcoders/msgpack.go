package transcoders

import (
	"github.com/illuscio-dev/contools-go/msgpack"
)

// NewMsgPackTranscoder builds an application/msgpack transcoder on the canonical
// binary codec. Adapters extend the codec with caller-supplied conversions and
// are consulted in order before the built-in value kinds.
func NewMsgPackTranscoder(adapters ...msgpack.Adapter) (*BinaryTranscoder, error) {
	contentCodec := msgpack.NewCodec(adapters...)
	return NewBinaryTranscoder(
		"application/msgpack", contentCodec.Packb, contentCodec.Unpackb,
	)
}
