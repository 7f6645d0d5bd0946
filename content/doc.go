// Package content implements the MIMI content schema: the message record,
// its recursive nested-part tree, the extension map, the status report, and
// the content-addressed message-ID derivation.
//
// # Wire discipline
//
// Records encode as definite-length CBOR arrays whose length equals the
// record's field count, fields in declaration order; there are no field
// names on the wire. Optional fields occupy one slot and encode as null
// when absent.
//
// A nested part's content is externally tagged: the variant discriminator
// and the variant's fields are spliced into the enclosing array rather than
// nested in one of their own. The enclosing array's length therefore
// depends on the active variant and is computed before the header is
// emitted.
//
// # Purity
//
// Every operation is a synchronous function on owned inputs returning owned
// outputs. The codec keeps no state between calls and is safe for
// concurrent use on disjoint values; decoding allocates fresh buffers for
// all byte and text fields.
package content
