package state

import "github.com/256dpi/quill/coding"

// NameRecord is the full state of a named account.
type NameRecord struct {
	Kind Kind
	Name string
}

// PackedLength returns the encoded size of the record.
func (r *NameRecord) PackedLength() (int, error) {
	return coding.Measure(r.EncodeTo)
}

// Encode will encode the record.
func (r *NameRecord) Encode() ([]byte, error) {
	return coding.Encode(r.EncodeTo)
}

// EncodeTo will write the record to the provided encoder.
func (r *NameRecord) EncodeTo(enc *coding.Encoder) error {
	encodeKind(enc, r.Kind)
	enc.String(r.Name)
	return nil
}

// DecodeFrom will read the record from the provided decoder.
func (r *NameRecord) DecodeFrom(dec *coding.Decoder) error {
	decodeKind(dec, &r.Kind)
	dec.String(&r.Name)
	return nil
}

// DecodeName will decode a name record that spans exactly the provided bytes.
func DecodeName(buf []byte) (NameRecord, error) {
	var record NameRecord
	err := coding.Decode(buf, record.DecodeFrom)
	if err != nil {
		return NameRecord{}, err
	}

	return record, nil
}
