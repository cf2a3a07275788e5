package qis

import (
	"github.com/256dpi/quill/coding"
	"github.com/256dpi/quill/state"
)

// Append is used to add a message to the message log of an account.
type Append struct {
	Sender string
	Body   string
	SentAt string
}

var appendDesc = &Description{
	Name: "quill/Append",
	Tag:  AppendTag,
}

// Describe implements the Instruction interface.
func (a *Append) Describe() *Description {
	return appendDesc
}

// Record returns the record that will be appended.
func (a *Append) Record() state.MessageRecord {
	return state.MessageRecord{
		Kind:   state.Plain,
		Sender: a.Sender,
		Body:   a.Body,
		SentAt: a.SentAt,
	}
}

// Encode implements the Instruction interface.
func (a *Append) Encode() ([]byte, error) {
	record := a.Record()
	return record.Encode()
}

// Decode implements the Instruction interface.
func (a *Append) Decode(bytes []byte) error {
	// decode record
	var record state.MessageRecord
	err := coding.Decode(bytes, record.DecodeFrom)
	if err != nil {
		return err
	}

	// set fields
	a.Sender = record.Sender
	a.Body = record.Body
	a.SentAt = record.SentAt

	return nil
}
