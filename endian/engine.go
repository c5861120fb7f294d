// Package endian provides the byte order used for the BOS-M stream and
// block header's multi-byte scalar fields.
//
// The on-wire format mandates big-endian for every multi-byte integer
// field, independent of the bit-packed sections which are always
// MSB-first within a byte regardless of byte order. Unlike a
// general-purpose columnar encoder that lets the caller pick an
// endianness per blob, BOS-M has exactly one wire format, so this
// package narrows to a single engine rather than exposing a selectable
// little/big-endian pair.
package endian

import "encoding/binary"

// Engine combines ByteOrder and AppendByteOrder from encoding/binary into
// a single interface for convenient big-endian scalar field access.
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// BigEndian is the fixed wire-format byte order for BOS-M scalar header
// and frame fields.
var BigEndian Engine = binary.BigEndian
