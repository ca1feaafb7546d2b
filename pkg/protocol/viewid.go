package protocol

import (
	"fmt"

	"github.com/google/uuid"
)

// ViewIdSize is the encoded size of a ViewId in bytes.
const ViewIdSize = 16

// ViewId is a unique identifier for a view.
//
// The layout is UUID-shaped (one 32-bit field, two 16-bit fields, eight
// bytes), but the value is an opaque bit pattern: the host never inspects
// version or variant bits, and uniqueness is the producer's responsibility.
// ViewId is comparable and usable as a map key; equality covers the full
// bit pattern.
type ViewId struct {
	A uint32
	B uint16
	C uint16
	D [8]byte
}

// NewViewId returns a fresh producer-assigned identifier.
// IDs are random (UUID v4 bits); the host treats them as opaque.
func NewViewId() ViewId {
	return DecodeViewId([16]byte(uuid.New()))
}

// DecodeViewId decodes a ViewId from its 16-byte wire form.
// Every bit pattern is valid; there is no error path.
func DecodeViewId(raw [16]byte) ViewId {
	var id ViewId
	id.A = uint32(raw[0])<<24 | uint32(raw[1])<<16 | uint32(raw[2])<<8 | uint32(raw[3])
	id.B = uint16(raw[4])<<8 | uint16(raw[5])
	id.C = uint16(raw[6])<<8 | uint16(raw[7])
	copy(id.D[:], raw[8:])
	return id
}

// Encode returns the 16-byte wire form. Encode is the exact inverse of
// DecodeViewId for every representable value.
func (id ViewId) Encode() [16]byte {
	var raw [16]byte
	raw[0] = byte(id.A >> 24)
	raw[1] = byte(id.A >> 16)
	raw[2] = byte(id.A >> 8)
	raw[3] = byte(id.A)
	raw[4] = byte(id.B >> 8)
	raw[5] = byte(id.B)
	raw[6] = byte(id.C >> 8)
	raw[7] = byte(id.C)
	copy(raw[8:], id.D[:])
	return raw
}

// IsZero returns true if every field is zero.
func (id ViewId) IsZero() bool {
	return id == ViewId{}
}

// String formats the identifier in the usual 8-4-4-4-12 hex grouping.
// This is purely for logging; the value is not a semantic UUID.
func (id ViewId) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		id.A, id.B, id.C,
		id.D[0], id.D[1], id.D[2], id.D[3], id.D[4], id.D[5], id.D[6], id.D[7])
}

// EncodeTo appends the wire form to the encoder.
func (id ViewId) EncodeTo(e *Encoder) {
	raw := id.Encode()
	e.WriteBytes(raw[:])
}

// DecodeViewIdFrom reads a ViewId from the decoder.
func DecodeViewIdFrom(d *Decoder) (ViewId, error) {
	b, err := d.ReadBytes(ViewIdSize)
	if err != nil {
		return ViewId{}, err
	}
	var raw [16]byte
	copy(raw[:], b)
	return DecodeViewId(raw), nil
}

// EncodeViewIdList encodes a variable-length collection of node handles.
// This is the bulk transfer primitive for returning newly-created nodes to
// the producer in one message.
func EncodeViewIdList(e *Encoder, ids []ViewId) {
	e.WriteUvarint(uint64(len(ids)))
	for _, id := range ids {
		id.EncodeTo(e)
	}
}

// DecodeViewIdList decodes a collection of node handles.
// The caller owns the returned slice.
func DecodeViewIdList(d *Decoder) ([]ViewId, error) {
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	ids := make([]ViewId, count)
	for i := range ids {
		ids[i], err = DecodeViewIdFrom(d)
		if err != nil {
			return nil, err
		}
	}
	return ids, nil
}
