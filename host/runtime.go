package host

import (
	"bytes"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/256dpi/quill"
	"github.com/256dpi/quill/seq"
)

// ErrUnknownProgram is returned when a transaction targets a program that has
// not been deployed.
var ErrUnknownProgram = errors.New("host: unknown program")

// ErrDuplicateAccount is returned when a transaction lists an account twice.
var ErrDuplicateAccount = errors.New("host: duplicate account")

// ErrIllegalModification is returned when a program modified an account it
// was not allowed to modify.
var ErrIllegalModification = errors.New("host: illegal account modification")

// Processor is implemented by programs.
type Processor interface {
	Process(programID quill.Identity, accounts []*quill.Account, payload []byte) error
}

// AccountMeta references an account used by a transaction.
type AccountMeta struct {
	Key      quill.Identity
	Writable bool
}

// Transaction is a single program invocation.
type Transaction struct {
	Program  quill.Identity
	Accounts []AccountMeta
	Payload  []byte
}

// RuntimeConfig is used to configure a runtime.
type RuntimeConfig struct {
	// The prefix for account keys.
	//
	// Default: "accounts".
	AccountPrefix string

	// The prefix for journal keys.
	//
	// Default: "journal".
	JournalPrefix string

	// The logger used to report executed transactions.
	//
	// Default: logrus.StandardLogger().
	Logger logrus.FieldLogger
}

// Runtime executes transactions one at a time and persists the modified
// accounts of successful transactions.
type Runtime struct {
	db       *DB
	config   RuntimeConfig
	accounts *AccountTable
	journal  *Journal
	programs map[quill.Identity]Processor
	mutex    sync.Mutex
}

// CreateRuntime will create a runtime that stores its state in the provided
// db.
func CreateRuntime(db *DB, config RuntimeConfig) (*Runtime, error) {
	// set defaults
	if config.AccountPrefix == "" {
		config.AccountPrefix = "accounts"
	}
	if config.JournalPrefix == "" {
		config.JournalPrefix = "journal"
	}
	if config.Logger == nil {
		config.Logger = logrus.StandardLogger()
	}

	// create account table
	accounts, err := CreateAccountTable(db, AccountTableConfig{
		Prefix: config.AccountPrefix,
	})
	if err != nil {
		return nil, err
	}

	// create journal
	journal, err := CreateJournal(db, JournalConfig{
		Prefix: config.JournalPrefix,
	})
	if err != nil {
		return nil, err
	}

	return &Runtime{
		db:       db,
		config:   config,
		accounts: accounts,
		journal:  journal,
		programs: map[quill.Identity]Processor{},
	}, nil
}

// Deploy will make the program available under the specified identity.
func (r *Runtime) Deploy(id quill.Identity, program Processor) {
	// acquire mutex
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.programs[id] = program
}

// Accounts returns the account table.
func (r *Runtime) Accounts() *AccountTable {
	return r.accounts
}

// Journal returns the journal.
func (r *Runtime) Journal() *Journal {
	return r.journal
}

// Execute will execute the transaction and return the sequence of its journal
// entry. Account changes are only persisted if the program succeeds. Errors
// returned by the program are journaled and returned together with the
// sequence.
func (r *Runtime) Execute(tx Transaction) (uint64, error) {
	// acquire mutex
	r.mutex.Lock()
	defer r.mutex.Unlock()

	// get program
	program, ok := r.programs[tx.Program]
	if !ok {
		return 0, ErrUnknownProgram
	}

	// load accounts
	handles := make([]*quill.Account, 0, len(tx.Accounts))
	originals := make([][]byte, 0, len(tx.Accounts))
	seen := map[quill.Identity]bool{}
	for _, meta := range tx.Accounts {
		// check duplicate
		if seen[meta.Key] {
			return 0, ErrDuplicateAccount
		}
		seen[meta.Key] = true

		// get account
		account, err := r.accounts.Get(meta.Key)
		if err != nil {
			return 0, err
		}

		// keep original and hand out a copy
		originals = append(originals, account.Data)
		account.Data = append([]byte(nil), account.Data...)
		account.Writable = meta.Writable

		handles = append(handles, account)
	}

	// run program
	err := program.Process(tx.Program, handles, tx.Payload)

	// verify modifications
	var modified []*quill.Account
	if err == nil {
		for i, account := range handles {
			// skip unchanged accounts
			if bytes.Equal(originals[i], account.Data) {
				continue
			}

			// only writable and owned accounts may change and never in size
			if !account.Writable || account.Owner != tx.Program || len(originals[i]) != len(account.Data) {
				err = ErrIllegalModification
				modified = nil
				break
			}

			modified = append(modified, account)
		}
	}

	// prepare entry
	entry := Entry{
		Sequence: seq.Generate(1),
		Program:  tx.Program,
		Payload:  tx.Payload,
	}
	for _, meta := range tx.Accounts {
		entry.Accounts = append(entry.Accounts, meta.Key)
	}
	if err != nil {
		entry.Error = err.Error()
	}

	// commit
	commitErr := r.commit(entry, modified)
	if commitErr != nil {
		return 0, commitErr
	}

	// prepare logger
	log := r.config.Logger.WithFields(logrus.Fields{
		"sequence": entry.Sequence,
		"program":  tx.Program.String(),
		"accounts": len(tx.Accounts),
	})

	// log result
	if err != nil {
		log.WithError(err).Warn("rejected transaction")
	} else {
		log.WithField("modified", len(modified)).Info("executed transaction")
	}

	return entry.Sequence, err
}

func (r *Runtime) commit(entry Entry, modified []*quill.Account) error {
	// prepare batch
	batch := r.db.NewBatch()
	defer batch.Close()

	// stage accounts
	for _, account := range modified {
		err := r.accounts.stage(batch, account)
		if err != nil {
			return err
		}
	}

	// stage entry
	err := r.journal.stage(batch, entry)
	if err != nil {
		return err
	}

	// commit batch
	err = batch.Commit(defaultWriteOptions)
	if err != nil {
		return err
	}

	// update journal
	r.journal.committed(entry)

	return nil
}
