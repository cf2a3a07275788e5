package state

import "github.com/256dpi/quill/coding"

// MessageRecord is a single message.
type MessageRecord struct {
	Kind   Kind
	Sender string
	Body   string

	// SentAt is an opaque timestamp supplied by the sender.
	SentAt string
}

// PackedLength returns the encoded size of the record.
func (r *MessageRecord) PackedLength() (int, error) {
	return coding.Measure(r.EncodeTo)
}

// Encode will encode the record.
func (r *MessageRecord) Encode() ([]byte, error) {
	return coding.Encode(r.EncodeTo)
}

// EncodeTo will write the record to the provided encoder.
func (r *MessageRecord) EncodeTo(enc *coding.Encoder) error {
	encodeKind(enc, r.Kind)
	enc.String(r.Sender)
	enc.String(r.Body)
	enc.String(r.SentAt)
	return nil
}

// DecodeFrom will read the record from the provided decoder.
func (r *MessageRecord) DecodeFrom(dec *coding.Decoder) error {
	decodeKind(dec, &r.Kind)
	dec.String(&r.Sender)
	dec.String(&r.Body)
	dec.String(&r.SentAt)
	return nil
}

// DecodeMessage will decode a message record that spans exactly the provided
// bytes.
func DecodeMessage(buf []byte) (MessageRecord, error) {
	var record MessageRecord
	err := coding.Decode(buf, record.DecodeFrom)
	if err != nil {
		return MessageRecord{}, err
	}

	return record, nil
}

// minMessageLength is the size of a message with empty strings.
const minMessageLength = 1 + 3*coding.LengthSize

// MessageCollection is an ordered log of messages.
type MessageCollection struct {
	Items []MessageRecord
}

// Append will add the message to the end of the collection.
func (c *MessageCollection) Append(msg MessageRecord) {
	c.Items = append(c.Items, msg)
}

// PackedLength returns the encoded size of the collection.
func (c *MessageCollection) PackedLength() (int, error) {
	return coding.Measure(c.EncodeTo)
}

// Encode will encode the collection.
func (c *MessageCollection) Encode() ([]byte, error) {
	return coding.Encode(c.EncodeTo)
}

// EncodeTo will write the collection to the provided encoder.
func (c *MessageCollection) EncodeTo(enc *coding.Encoder) error {
	// check count
	if uint64(len(c.Items)) > 1<<32-1 {
		enc.Fail(coding.ErrMalformedLength)
		return nil
	}

	// write count
	enc.Uint32(uint32(len(c.Items)))

	// write items
	for i := range c.Items {
		err := c.Items[i].EncodeTo(enc)
		if err != nil {
			return err
		}
	}

	return nil
}

// DecodeFrom will read the collection from the provided decoder.
func (c *MessageCollection) DecodeFrom(dec *coding.Decoder) error {
	// read count
	var count uint32
	dec.Uint32(&count)
	if dec.Error() != nil || count == 0 {
		return nil
	}

	// check that the announced items can fit
	if uint64(count)*minMessageLength > uint64(dec.Remaining()) {
		dec.Fail(coding.ErrMalformedLength)
		return nil
	}

	// read items
	c.Items = make([]MessageRecord, count)
	for i := range c.Items {
		err := c.Items[i].DecodeFrom(dec)
		if err != nil {
			return err
		} else if dec.Error() != nil {
			return nil
		}
	}

	return nil
}

// DecodeCollection will decode a collection that spans exactly the provided
// bytes.
func DecodeCollection(buf []byte) (MessageCollection, error) {
	var collection MessageCollection
	err := coding.Decode(buf, collection.DecodeFrom)
	if err != nil {
		return MessageCollection{}, err
	}

	return collection, nil
}
