// Transcoders convert between raw body bytes and dynamic content values.
/*
A Transcoder owns exactly one media type. The content registry maps normalized
media type strings to Transcoder instances, and the request boundary uses them to
decode request bodies and encode response bodies.

Two reference implementations are provided. TextTranscoder adapts a string-based
dumps/loads pair and handles character encoding; BinaryTranscoder adapts a
byte-based pack/unpack pair and ignores character encoding. Ready-made
constructors wire these up for JSON, YAML, MessagePack and BSON.

User-supplied transcoders only need to satisfy the Transcoder interface; nothing
in the registry is specific to the two reference implementations.
*/
package transcoders
