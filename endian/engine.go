// Package endian provides byte order utilities for wire encoding and decoding.
//
// It combines the ByteOrder and AppendByteOrder interfaces from Go's standard
// encoding/binary package into a single EndianEngine interface so encoders can
// both read fixed-width fields and append them without intermediate buffers.
//
// CBOR multi-byte arguments are network order, so the big-endian engine backs
// the wire writer:
//
//	engine := endian.GetBigEndianEngine()
//	buf = engine.AppendUint32(buf, length)
//
// The returned engines are immutable and stateless, and safe for concurrent
// use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// It is satisfied by binary.BigEndian and binary.LittleEndian, so any code
// written against the standard library interfaces accepts an EndianEngine
// unchanged.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian (network order) engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
