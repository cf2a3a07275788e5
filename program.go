// Package quill implements a program that stores a name or an append-only
// message log in the fixed size data buffer of an account.
package quill

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"

	"github.com/256dpi/quill/qis"
)

// Config is used to configure a program.
type Config struct {
	// The logger used to report processed instructions.
	//
	// Default: logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// Program processes instructions against account buffers.
type Program struct {
	config Config
}

// New will create and return a program.
func New(config Config) *Program {
	// set default logger
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	return &Program{
		config: config,
	}
}

// Unpack will decode an instruction payload. All decoding failures are
// reported as ErrInvalidInstruction.
func Unpack(payload []byte) (qis.Instruction, error) {
	// unpack instruction
	ins, err := qis.Unpack(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInstruction, err)
	}

	return ins, nil
}

// Process will decode the payload and execute the instruction against the
// first supplied account. Both instructions require exactly one account,
// additional accounts are ignored.
func (p *Program) Process(programID Identity, accounts []*Account, payload []byte) error {
	// unpack instruction
	ins, err := Unpack(payload)
	if err != nil {
		return err
	}

	// get account
	account, err := NewAccounts(accounts).Next()
	if err != nil {
		return err
	}

	return p.Route(ins, account, programID)
}

// Route will verify the account and dispatch the instruction. The buffer is
// not modified if an error is returned.
func (p *Program) Route(ins qis.Instruction, account *Account, programID Identity) error {
	// check instruction
	if ins == nil {
		return ErrInvalidInstruction
	}

	// check account
	if account == nil {
		return ErrMissingAccount
	}

	// prepare logger
	log := p.config.Logger.WithFields(logrus.Fields{
		"program": programID.String(),
		"account": account.Key.String(),
	})

	// the program may only modify accounts it owns
	if account.Owner != programID {
		log.Warn("account does not have the correct program id")
		return ErrWrongOwner
	}

	// check writability
	if !account.Writable {
		log.Warn("account is not writable")
		return ErrNotWritable
	}

	// log instruction
	log.Infof("Instruction: %s", ins.Describe().Name)
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		log.Debug(pretty.Sprint(ins))
	}

	// dispatch instruction
	switch ins := ins.(type) {
	case *qis.Rename:
		return WriteName(account.Data, ins.Name)
	case *qis.Append:
		return AppendMessage(account.Data, ins.Record())
	default:
		return ErrInvalidInstruction
	}
}
