package wiretypes

// BinData is used to hold raw binary blob information in decoded content trees and
// structs that need to round-trip through the transcoders. The JSON transcoder will
// base64 this data for transport, the msgpack transcoder writes it as a bin family
// value, and BSON transforms it to a Binary primitive.
type BinData []byte
