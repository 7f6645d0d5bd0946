package cborwire

import (
	"io"

	"github.com/openmimi/mimicontent/endian"
	"github.com/openmimi/mimicontent/internal/pool"
)

// CBOR major types (RFC 8949 section 3.1).
const (
	majorUnsigned byte = 0
	majorNegative byte = 1
	majorBytes    byte = 2
	majorText     byte = 3
	majorArray    byte = 4
	majorMap      byte = 5
	majorTag      byte = 6
	majorSimple   byte = 7
)

// Additional information values selecting the argument width.
const (
	argUint8  byte = 24
	argUint16 byte = 25
	argUint32 byte = 26
	argUint64 byte = 27
	argBreak  byte = 31
)

// Simple values (major type 7).
const (
	simpleFalse byte = 20
	simpleTrue  byte = 21
	simpleNull  byte = 22
)

// Writer emits canonical deterministic CBOR into a pooled buffer.
//
// All methods append to the internal buffer; none of them can fail. The
// caller is responsible for emitting items in schema order and for sizing
// array and map headers correctly.
type Writer struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
}

// NewWriter creates a new canonical CBOR writer backed by a pooled buffer.
func NewWriter() *Writer {
	return &Writer{
		buf:    pool.GetMessageBuffer(),
		engine: endian.GetBigEndianEngine(),
	}
}

// writeTypeHeader emits the initial byte and the smallest-width argument for
// the given major type. This is the canonical-form choke point: every item
// header in the output goes through it.
func (w *Writer) writeTypeHeader(major byte, arg uint64) {
	mt := major << 5
	switch {
	case arg < 24:
		w.buf.MustWriteByte(mt | byte(arg))
	case arg <= 0xff:
		w.buf.MustWriteByte(mt | argUint8)
		w.buf.MustWriteByte(byte(arg))
	case arg <= 0xffff:
		w.buf.MustWriteByte(mt | argUint16)
		w.buf.B = w.engine.AppendUint16(w.buf.B, uint16(arg))
	case arg <= 0xffffffff:
		w.buf.MustWriteByte(mt | argUint32)
		w.buf.B = w.engine.AppendUint32(w.buf.B, uint32(arg))
	default:
		w.buf.MustWriteByte(mt | argUint64)
		w.buf.B = w.engine.AppendUint64(w.buf.B, arg)
	}
}

// WriteUint writes an unsigned integer (major type 0).
func (w *Writer) WriteUint(val uint64) {
	w.writeTypeHeader(majorUnsigned, val)
}

// WriteInt writes a signed integer, choosing major type 0 for non-negative
// values and major type 1 for negative ones.
func (w *Writer) WriteInt(val int64) {
	if val >= 0 {
		w.writeTypeHeader(majorUnsigned, uint64(val))
		return
	}
	w.writeTypeHeader(majorNegative, uint64(-1-val))
}

// WriteBytes writes a definite-length byte string (major type 2).
func (w *Writer) WriteBytes(data []byte) {
	w.writeTypeHeader(majorBytes, uint64(len(data)))
	w.buf.MustWrite(data)
}

// WriteText writes a definite-length UTF-8 text string (major type 3).
func (w *Writer) WriteText(text string) {
	w.writeTypeHeader(majorText, uint64(len(text)))
	w.buf.MustWrite([]byte(text))
}

// WriteArrayHeader writes the header of a definite-length array with count
// elements. The caller must write exactly count items afterwards.
func (w *Writer) WriteArrayHeader(count int) {
	w.writeTypeHeader(majorArray, uint64(count))
}

// WriteMapHeader writes the header of a definite-length map with count
// key/value pairs. The caller must write exactly 2*count items afterwards.
func (w *Writer) WriteMapHeader(count int) {
	w.writeTypeHeader(majorMap, uint64(count))
}

// WriteTag writes a semantic tag header (major type 6). The caller must
// write the tagged item immediately afterwards.
func (w *Writer) WriteTag(number uint64) {
	w.writeTypeHeader(majorTag, number)
}

// WriteBool writes a boolean simple value.
func (w *Writer) WriteBool(val bool) {
	if val {
		w.buf.MustWriteByte(majorSimple<<5 | simpleTrue)
	} else {
		w.buf.MustWriteByte(majorSimple<<5 | simpleFalse)
	}
}

// WriteNull writes the null simple value.
func (w *Writer) WriteNull() {
	w.buf.MustWriteByte(majorSimple<<5 | simpleNull)
}

// WriteRaw writes a pre-encoded CBOR item verbatim.
//
// The data must be exactly one well-formed item; the writer does not
// validate it. Used for opaque extension values that are carried through
// the codec untouched.
func (w *Writer) WriteRaw(data []byte) {
	w.buf.MustWrite(data)
}

// Bytes returns the encoded data.
//
// The returned slice shares the writer's internal buffer and is only valid
// until the next write or Finish call. Copy it if it must outlive the
// writer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteTo writes the encoded data to sink.
func (w *Writer) WriteTo(sink io.Writer) (int64, error) {
	return w.buf.WriteTo(sink)
}

// Reset clears the writer for reuse, retaining the internal buffer.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Finish releases the internal buffer back to the pool.
//
// After calling Finish the writer must not be used again, and slices
// previously returned by Bytes are invalid.
func (w *Writer) Finish() {
	if w.buf != nil {
		pool.PutMessageBuffer(w.buf)
		w.buf = nil
	}
}
