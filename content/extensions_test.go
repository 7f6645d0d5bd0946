package content

import (
	"encoding/hex"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/openmimi/mimicontent/cborwire"
	"github.com/openmimi/mimicontent/errs"
)

func TestExtensionName_Order(t *testing.T) {
	names := []ExtensionName{
		NewTextName("alpha"),
		NewNumberName(-3),
		NewTextName("beta"),
		NewNumberName(7),
		NewNumberName(1),
	}

	var ext Extensions
	for _, name := range names {
		require.NoError(t, ext.SetValue(name, true))
	}

	var got []ExtensionName
	for _, entry := range ext.Entries() {
		got = append(got, entry.Name)
	}

	// Numbers before texts, both ascending within kind.
	require.Equal(t, []ExtensionName{
		NewNumberName(-3),
		NewNumberName(1),
		NewNumberName(7),
		NewTextName("alpha"),
		NewTextName("beta"),
	}, got)
}

func TestExtensions_SetReplacesAndDelete(t *testing.T) {
	var ext Extensions
	name := NewTextName("feature")

	require.NoError(t, ext.SetValue(name, "v1"))
	require.NoError(t, ext.SetValue(name, "v2"))
	require.Equal(t, 1, ext.Len())

	var val string
	require.NoError(t, ext.GetValue(name, &val))
	require.Equal(t, "v2", val)

	require.True(t, ext.Delete(name))
	require.False(t, ext.Delete(name))
	require.Zero(t, ext.Len())
}

func TestExtensions_SetRejectsMalformedRaw(t *testing.T) {
	var ext Extensions

	err := ext.Set(NewNumberName(1), cbor.RawMessage{0x82, 0x01}) // array(2) with one element
	require.Error(t, err)

	err = ext.Set(NewNumberName(1), cbor.RawMessage{0x01, 0x02}) // two items
	require.Error(t, err)
}

func TestExtensions_EncodeOrderObservableOnWire(t *testing.T) {
	var ext Extensions
	require.NoError(t, ext.SetValue(NewTextName("z"), uint64(1)))
	require.NoError(t, ext.SetValue(NewNumberName(9), uint64(2)))

	w := cborwire.NewWriter()
	defer w.Finish()
	ext.encode(w)

	// {9: 2, "z": 1} with the numeric key first.
	require.Equal(t, "a20902617a01", hex.EncodeToString(w.Bytes()))
}

func TestExtensions_DecodePreservesWireOrder(t *testing.T) {
	// Non-canonical key order: text key first. The decoder is lenient and
	// keeps wire order, so re-encoding reproduces the input.
	wire := mustHex(t, "a2617a010902")

	var ext Extensions
	r := cborwire.NewReader(wire)
	require.NoError(t, ext.decode(r))
	require.NoError(t, r.ExpectEOF())

	require.Equal(t, 2, ext.Len())
	require.Equal(t, NewTextName("z"), ext.Entries()[0].Name)

	w := cborwire.NewWriter()
	defer w.Finish()
	ext.encode(w)
	require.Equal(t, wire, w.Bytes())
}

func TestExtensions_DuplicateKeyRejected(t *testing.T) {
	var ext Extensions
	r := cborwire.NewReader([]byte{0xa2, 0x01, 0x00, 0x01, 0x01}) // {1: 0, 1: 1}
	err := ext.decode(r)
	require.ErrorIs(t, err, errs.ErrDuplicateExtensionKey)
}

func TestExtensions_KeyMustBeIntegerOrText(t *testing.T) {
	var ext Extensions
	r := cborwire.NewReader([]byte{0xa1, 0x41, 0x61, 0x00}) // {h'61': 0}

	err := ext.decode(r)
	require.ErrorIs(t, err, errs.ErrDeserializationFailed)
}

func TestExtensions_OpaqueValuesRoundTripInContent(t *testing.T) {
	msg := minimalContent(t)
	require.NoError(t, msg.Extensions.SetValue(NewNumberName(5), []string{"a", "b"}))
	require.NoError(t, msg.Extensions.SetValue(NewTextName("meta"), map[string]uint64{"n": 3}))

	decoded, err := Deserialize(msg.Serialize())
	require.NoError(t, err)
	require.Equal(t, msg, decoded)

	var listed []string
	require.NoError(t, decoded.Extensions.GetValue(NewNumberName(5), &listed))
	require.Equal(t, []string{"a", "b"}, listed)
}

func TestExtensions_NegativeNumberKeyRoundTrip(t *testing.T) {
	msg := minimalContent(t)
	require.NoError(t, msg.Extensions.SetValue(NewNumberName(-42), "negative"))

	decoded, err := Deserialize(msg.Serialize())
	require.NoError(t, err)

	var val string
	require.NoError(t, decoded.Extensions.GetValue(NewNumberName(-42), &val))
	require.Equal(t, "negative", val)
}
