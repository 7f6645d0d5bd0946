package content

import (
	"fmt"
	"io"

	"github.com/openmimi/mimicontent/cborwire"
	"github.com/openmimi/mimicontent/errs"
	"github.com/openmimi/mimicontent/format"
)

// perMessageStatusFields is the slot count of a PerMessageStatus record.
const perMessageStatusFields = 2

// PerMessageStatus pairs a message ID with its delivery/read status.
type PerMessageStatus struct {
	MimiID []byte
	Status format.MessageStatus
}

// MessageStatusReport is a batch of per-message statuses. On the wire it is
// a bare array of two-element records with no outer wrapper.
type MessageStatusReport struct {
	Statuses []PerMessageStatus
}

// Serialize encodes the report as canonical CBOR.
func (r *MessageStatusReport) Serialize() []byte {
	w := cborwire.NewWriter()
	defer w.Finish()

	r.encode(w)

	out := make([]byte, w.Len())
	copy(out, w.Bytes())

	return out
}

// SerializeTo encodes the report and writes it to sink.
func (r *MessageStatusReport) SerializeTo(sink io.Writer) error {
	w := cborwire.NewWriter()
	defer w.Finish()

	r.encode(w)

	if _, err := w.WriteTo(sink); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrSerializationFailed, err)
	}

	return nil
}

func (r *MessageStatusReport) encode(w *cborwire.Writer) {
	w.WriteArrayHeader(len(r.Statuses))
	for i := range r.Statuses {
		w.WriteArrayHeader(perMessageStatusFields)
		w.WriteBytes(r.Statuses[i].MimiID)
		w.WriteUint(uint64(r.Statuses[i].Status))
	}
}

// DeserializeMessageStatusReport decodes a status report, rejecting
// trailing bytes.
func DeserializeMessageStatusReport(data []byte) (*MessageStatusReport, error) {
	r := cborwire.NewReader(data)

	count, err := r.ReadArrayHeader()
	if err != nil {
		return nil, err
	}

	report := &MessageStatusReport{Statuses: make([]PerMessageStatus, count)}
	for i := range report.Statuses {
		fields, err := r.ReadArrayHeader()
		if err != nil {
			return nil, err
		}
		if fields < perMessageStatusFields {
			return nil, fmt.Errorf("%w: PerMessageStatus: field index %d", errs.ErrMissingField, fields)
		}
		if fields > perMessageStatusFields {
			return nil, fmt.Errorf("%w: PerMessageStatus", errs.ErrTrailingElements)
		}

		if report.Statuses[i].MimiID, err = r.ReadBytes(); err != nil {
			return nil, err
		}
		status, err := readUint8(r)
		if err != nil {
			return nil, err
		}
		report.Statuses[i].Status = format.MessageStatus(status)
	}

	if err := r.ExpectEOF(); err != nil {
		return nil, err
	}

	return report, nil
}
