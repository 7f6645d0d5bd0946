// Package errs defines the sentinel errors shared across the mimicontent
// packages.
//
// Each sentinel corresponds to one failure kind of the wire contract.
// Call sites wrap them with fmt.Errorf("%w: ...") to add context; callers
// match with errors.Is.
package errs

import "errors"

var (
	// ErrDeserializationFailed reports malformed CBOR input: truncated
	// items, unexpected major types, or invalid framing.
	ErrDeserializationFailed = errors.New("deserialization failed")

	// ErrSerializationFailed reports a failing output sink. Serializing a
	// well-typed value into memory never fails.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrMissingField reports a positional array shorter than the record's
	// declared field count.
	ErrMissingField = errors.New("missing field")

	// ErrTrailingElements reports a positional array with elements left
	// over after the record's last declared field.
	ErrTrailingElements = errors.New("trailing elements")

	// ErrUnknownVariant reports a variant discriminator with no matching
	// variant in a closed sum type.
	ErrUnknownVariant = errors.New("unknown variant")

	// ErrInvalidUri reports a URI field without tag 32 or with a non-text
	// payload.
	ErrInvalidUri = errors.New("invalid URI")

	// ErrInvalidTimestamp reports a timestamp field without tag 62 or with
	// a non-integer payload.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrTimestampOverflow reports a timestamp value outside the unsigned
	// 64-bit range.
	ErrTimestampOverflow = errors.New("timestamp overflow")

	// ErrDuplicateExtensionKey reports the same extension name appearing
	// twice in one encoded extension map.
	ErrDuplicateExtensionKey = errors.New("duplicate extension key")

	// ErrUnsupportedContentType reports a string rendering request on a
	// part that is not markdown text.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrNotUtf8 reports content bytes claimed as text that are not valid
	// UTF-8.
	ErrNotUtf8 = errors.New("not valid UTF-8")
)
