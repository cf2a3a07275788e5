package qis

import (
	"github.com/256dpi/quill/coding"
	"github.com/256dpi/quill/state"
)

// Rename is used to overwrite the name stored in an account.
type Rename struct {
	// The new name.
	Name string
}

var renameDesc = &Description{
	Name: "quill/Rename",
	Tag:  RenameTag,
}

// Describe implements the Instruction interface.
func (r *Rename) Describe() *Description {
	return renameDesc
}

// Record returns the record that will be stored.
func (r *Rename) Record() state.NameRecord {
	return state.NameRecord{
		Kind: state.Plain,
		Name: r.Name,
	}
}

// Encode implements the Instruction interface.
func (r *Rename) Encode() ([]byte, error) {
	record := r.Record()
	return record.Encode()
}

// Decode implements the Instruction interface.
func (r *Rename) Decode(bytes []byte) error {
	// decode record
	var record state.NameRecord
	err := coding.Decode(bytes, record.DecodeFrom)
	if err != nil {
		return err
	}

	// set name
	r.Name = record.Name

	return nil
}
