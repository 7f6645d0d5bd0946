// Package cborwire provides low-level canonical CBOR primitive I/O for the
// mimicontent wire format.
//
// The package implements the subset of RFC 8949 the content format needs:
// unsigned and negative integers, byte strings, text strings, definite-length
// arrays and maps, semantic tags, booleans, and null.
//
// # Canonical form
//
// The Writer always produces canonical deterministic CBOR:
//
//   - Integer arguments use the smallest possible width.
//   - Arrays and maps are definite-length; no indefinite-length items are
//     ever produced.
//
// The Reader is lenient where the format permits: it accepts non-minimal
// integer widths on decode, but rejects indefinite-length items, truncated
// input, and malformed framing.
//
// # Architecture
//
// Writer and Reader are cursor-style: higher layers drive them item by item
// in schema order. This is deliberate — the content format encodes records
// as positional arrays whose lengths depend on inlined variants, so the
// schema layer must own framing decisions and the primitive layer must not
// second-guess them.
//
// Writers draw their output buffers from an internal pool; call Finish to
// return the buffer once the encoded bytes have been copied out.
package cborwire
