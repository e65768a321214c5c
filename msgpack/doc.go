// Canonical MessagePack encoding of dynamic content trees.
/*
This package implements the binary wire format used by the msgpack transcoder. It
operates on the dynamic value model exchanged with the transcoders (maps, slices,
strings, byte blobs, bools, ints, floats, nil) rather than on tagged structs,
which is why an off-the-shelf struct codec is not used here.

Encoding is canonical: every value is written in the narrowest format family that
losslessly represents it, multi-byte values are big-endian, and map keys are
written in sorted order. Identical trees therefore always encode to identical
bytes, which interoperating clients rely on.

UUIDs and timestamps are not written as MessagePack extension types. They are
converted to their canonical string forms (the standard UUID text representation
and ISO-8601 with a numeric UTC offset) and packed as ordinary strings. This
trades round-trip type fidelity for uniform decoding: both come back as plain
strings on the other end.

Callers can teach the codec about additional types by registering Adapter
functions, which are consulted in order before the built-in kinds.
*/
package msgpack
