package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openmimi/mimicontent/errs"
	"github.com/openmimi/mimicontent/format"
)

func time0() time.Time {
	return time.Unix(1700000000, 0).UTC()
}

func minimalContent(t *testing.T) *MimiContent {
	t.Helper()

	return &MimiContent{
		Salt:    mustHex(t, "000102030405060708090a0b0c0d0e0f"),
		TopicID: []byte{},
		NestedPart: NestedPart{
			Disposition: format.DispositionRender,
			Part:        &NullPart{},
		},
	}
}

func TestDeserialize_MinimalRoundTrip(t *testing.T) {
	msg := minimalContent(t)
	wire := msg.Serialize()

	decoded, err := Deserialize(wire)
	require.NoError(t, err)
	require.Equal(t, msg, decoded)
}

func TestDeserialize_AllOptionalFieldsPresent(t *testing.T) {
	msg := minimalContent(t)
	msg.Replaces = mustHex(t, "01b0084467273cc43d6f0ebeac13eb84229c4fffe8f6c3594c905f47779e5a79")
	msg.InReplyTo = mustHex(t, "01a419aef4e16d43cfc06c28235ecfbe9faebc740d0148e7ca20b22150930836")
	msg.TopicID = []byte("release-train")
	msg.Expires = &Expiration{Relative: true, Time: 3600}

	decoded, err := Deserialize(msg.Serialize())
	require.NoError(t, err)
	require.Equal(t, msg, decoded)
}

func TestDeserialize_NullVersusEmptyDistinct(t *testing.T) {
	absent := minimalContent(t)
	present := minimalContent(t)
	present.Replaces = []byte{}

	wireAbsent := absent.Serialize()
	wirePresent := present.Serialize()
	require.NotEqual(t, wireAbsent, wirePresent)

	decodedAbsent, err := Deserialize(wireAbsent)
	require.NoError(t, err)
	require.Nil(t, decodedAbsent.Replaces)

	decodedPresent, err := Deserialize(wirePresent)
	require.NoError(t, err)
	require.NotNil(t, decodedPresent.Replaces)
	require.Empty(t, decodedPresent.Replaces)
}

func TestDeserialize_ShortArrayIsMissingField(t *testing.T) {
	wire := minimalContent(t).Serialize()
	wire[0] = 0x86 // claim 6 fields instead of 7

	_, err := Deserialize(wire)
	require.ErrorIs(t, err, errs.ErrMissingField)
}

func TestDeserialize_LongArrayIsTrailingElements(t *testing.T) {
	wire := minimalContent(t).Serialize()
	wire[0] = 0x88 // claim 8 fields instead of 7

	_, err := Deserialize(wire)
	require.ErrorIs(t, err, errs.ErrTrailingElements)
}

func TestDeserialize_UnknownVariant(t *testing.T) {
	wire := minimalContent(t).Serialize()
	// The message ends with the NestedPart array [disposition, language,
	// discriminator]; bump the NullPart discriminator to an undefined code.
	require.Equal(t, byte(partNull), wire[len(wire)-1])
	wire[len(wire)-1] = 0x04

	_, err := Deserialize(wire)
	require.ErrorIs(t, err, errs.ErrUnknownVariant)
}

func TestDeserialize_VariantLengthMismatch(t *testing.T) {
	wire := minimalContent(t).Serialize()
	// The message ends with the NestedPart array 83 01 60 00. NullPart
	// contributes exactly one slot; a four-element NestedPart carrying it
	// must be rejected.
	require.Equal(t, byte(0x83), wire[len(wire)-4])
	longer := append(wire[:len(wire)-4:len(wire)-4], 0x84, 0x01, 0x60, 0x00, 0x00)

	_, err := Deserialize(longer)
	require.ErrorIs(t, err, errs.ErrTrailingElements)

	// And a two-element NestedPart holds the fixed fields but no
	// discriminator.
	shorter := append(wire[:len(wire)-4:len(wire)-4], 0x82, 0x01, 0x60)

	_, err = Deserialize(shorter)
	require.ErrorIs(t, err, errs.ErrMissingField)
}

func TestDeserialize_TrailingBytesRejected(t *testing.T) {
	wire := minimalContent(t).Serialize()
	wire = append(wire, 0x00)

	_, err := Deserialize(wire)
	require.ErrorIs(t, err, errs.ErrDeserializationFailed)
}

func TestDeserialize_TruncatedInput(t *testing.T) {
	wire := minimalContent(t).Serialize()

	for cut := 1; cut < len(wire); cut++ {
		_, err := Deserialize(wire[:cut])
		require.Error(t, err, "truncation at %d must fail", cut)
	}
}

func TestDeserialize_EmptyInput(t *testing.T) {
	_, err := Deserialize(nil)
	require.ErrorIs(t, err, errs.ErrDeserializationFailed)
}

func TestExpiration_Decode32BitBound(t *testing.T) {
	msg := minimalContent(t)
	msg.Expires = &Expiration{Relative: false, Time: 0xffffffff}

	decoded, err := Deserialize(msg.Serialize())
	require.NoError(t, err)
	require.Equal(t, msg.Expires, decoded.Expires)
}

func TestExpiration_Deadline(t *testing.T) {
	absolute := &Expiration{Relative: false, Time: 1644390004}
	require.Equal(t, int64(1644390004), absolute.Deadline(time0()).Unix())

	relative := &Expiration{Relative: true, Time: 600}
	require.Equal(t, time0().Add(600e9), relative.Deadline(time0()))
}

func TestStringRendering(t *testing.T) {
	msg := minimalContent(t)
	msg.NestedPart.Part = &SinglePart{
		ContentType: "text/markdown;variant=GFM-MIMI",
		Content:     []byte("## Hello"),
	}

	body, err := msg.StringRendering()
	require.NoError(t, err)
	require.Equal(t, "## Hello", body)
}

func TestStringRendering_BareMarkdownType(t *testing.T) {
	msg := minimalContent(t)
	msg.NestedPart.Part = &SinglePart{ContentType: "text/markdown", Content: []byte("hi")}

	body, err := msg.StringRendering()
	require.NoError(t, err)
	require.Equal(t, "hi", body)
}

func TestStringRendering_UnsupportedContentType(t *testing.T) {
	msg := minimalContent(t)
	msg.NestedPart.Part = &SinglePart{ContentType: "text/plain;charset=utf-8", Content: []byte("hi")}

	_, err := msg.StringRendering()
	require.ErrorIs(t, err, errs.ErrUnsupportedContentType)

	// A markdown prefix on a different type must not match.
	msg.NestedPart.Part = &SinglePart{ContentType: "text/markdownish", Content: []byte("hi")}
	_, err = msg.StringRendering()
	require.ErrorIs(t, err, errs.ErrUnsupportedContentType)
}

func TestStringRendering_NonSinglePart(t *testing.T) {
	msg := minimalContent(t)

	_, err := msg.StringRendering()
	require.ErrorIs(t, err, errs.ErrUnsupportedContentType)
}

func TestStringRendering_NotUtf8(t *testing.T) {
	msg := minimalContent(t)
	msg.NestedPart.Part = &SinglePart{
		ContentType: "text/markdown;variant=GFM-MIMI",
		Content:     []byte{0xff, 0xfe},
	}

	_, err := msg.StringRendering()
	require.ErrorIs(t, err, errs.ErrNotUtf8)
}

func TestNestedPart_LengthLaw(t *testing.T) {
	parts := []struct {
		part NestedPartContent
		want byte
	}{
		{&NullPart{}, 0x83},
		{&SinglePart{ContentType: "text/plain", Content: []byte("x")}, 0x85},
		{&ExternalPart{}, 0x8f},
		{&MultiPart{}, 0x85},
	}

	for _, tc := range parts {
		msg := minimalContent(t)
		msg.NestedPart.Part = tc.part
		wire := msg.Serialize()

		// The nested part is the last top-level slot; look for its array
		// header byte in the serialized message and check that decoding
		// keeps the variant's field count.
		decoded, err := Deserialize(wire)
		require.NoError(t, err)

		idx := lastIndexOfPartHeader(wire, tc.want)
		require.GreaterOrEqual(t, idx, 0, "part %T must emit array header %#x", tc.part, tc.want)
		require.Equal(t, msg.NestedPart.Part.fieldCount(), decoded.NestedPart.Part.fieldCount())
	}
}

func lastIndexOfPartHeader(wire []byte, header byte) int {
	for i := len(wire) - 1; i >= 0; i-- {
		if wire[i] == header {
			return i
		}
	}

	return -1
}

func TestMultiPart_DeepNestingRoundTrip(t *testing.T) {
	leaf := NestedPart{
		Disposition: format.DispositionRender,
		Part:        &SinglePart{ContentType: "text/plain", Content: []byte("leaf")},
	}
	inner := NestedPart{
		Disposition: format.DispositionRender,
		Part:        &MultiPart{Semantics: format.PartSemanticsProcessAll, Parts: []NestedPart{leaf, leaf}},
	}
	msg := minimalContent(t)
	msg.NestedPart = NestedPart{
		Disposition: format.DispositionRender,
		Part:        &MultiPart{Semantics: format.PartSemanticsChooseOne, Parts: []NestedPart{inner, leaf}},
	}

	decoded, err := Deserialize(msg.Serialize())
	require.NoError(t, err)
	require.Equal(t, msg, decoded)
}

func TestOpenEnumLenience(t *testing.T) {
	// Every u8 code round-trips: named codes stay named, unnamed codes stay
	// custom, and the wire form is the integer either way.
	for code := 0; code <= 0xff; code++ {
		msg := minimalContent(t)
		msg.NestedPart.Disposition = format.Disposition(code)

		decoded, err := Deserialize(msg.Serialize())
		require.NoError(t, err)
		require.Equal(t, format.Disposition(code), decoded.NestedPart.Disposition)
	}
}

func TestExternalPart_VerifyContentHash(t *testing.T) {
	data := []byte("attachment payload")
	digest, err := format.HashSha256.Sum(data)
	require.NoError(t, err)

	part := &ExternalPart{HashAlg: format.HashSha256, ContentHash: digest}

	ok, err := part.VerifyContentHash(data)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = part.VerifyContentHash([]byte("tampered payload"))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCanonicalBytes_ConstructionOrderIrrelevant(t *testing.T) {
	// Two logically equal values assembled in different orders serialize to
	// identical bytes: the extension map order is canonical, not insertion
	// order.
	first := minimalContent(t)
	require.NoError(t, first.Extensions.SetValue(NewNumberName(2), "room"))
	require.NoError(t, first.Extensions.SetValue(NewTextName("k"), uint64(9)))
	require.NoError(t, first.Extensions.SetValue(NewNumberName(1), "sender"))

	second := minimalContent(t)
	require.NoError(t, second.Extensions.SetValue(NewTextName("k"), uint64(9)))
	require.NoError(t, second.Extensions.SetValue(NewNumberName(1), "sender"))
	require.NoError(t, second.Extensions.SetValue(NewNumberName(2), "room"))

	require.Equal(t, first.Serialize(), second.Serialize())
}

func TestMessageID_Shape(t *testing.T) {
	msg := minimalContent(t)

	id := msg.MessageID([]byte("mimi://a.example/u/a"), []byte("mimi://a.example/r/r"))
	require.Len(t, id, MessageIDSize)
	require.Equal(t, byte(0x01), id[0])

	// Different rooms yield different IDs.
	other := msg.MessageID([]byte("mimi://a.example/u/a"), []byte("mimi://a.example/r/s"))
	require.NotEqual(t, id, other)
}
