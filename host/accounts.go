package host

import (
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/256dpi/quill"
	"github.com/256dpi/quill/coding"
)

// ErrAccountExists is returned when an account is created twice.
var ErrAccountExists = errors.New("host: account exists")

// ErrAccountNotFound is returned when an account does not exist.
var ErrAccountNotFound = errors.New("host: account not found")

// DefaultSpace is the default size of an account buffer.
const DefaultSpace = 100000

// AccountTableConfig is used to configure an account table.
type AccountTableConfig struct {
	// The prefix for all account keys.
	Prefix string
}

// AccountTable manages the storage of accounts.
type AccountTable struct {
	db     *DB
	prefix []byte
	mutex  sync.Mutex
}

// CreateAccountTable will create a table that stores accounts in the provided
// db.
func CreateAccountTable(db *DB, config AccountTableConfig) (*AccountTable, error) {
	// check prefix
	if config.Prefix == "" {
		panic("host: missing prefix")
	}

	// create table
	t := &AccountTable{
		db:     db,
		prefix: append([]byte(config.Prefix), '!'),
	}

	return t, nil
}

// Create will create a zeroed account with the specified capacity that is
// owned by the provided program.
func (t *AccountTable) Create(key, owner quill.Identity, space int) error {
	// check space
	if space < 0 {
		panic("host: negative space")
	}

	// acquire mutex
	t.mutex.Lock()
	defer t.mutex.Unlock()

	// check existence
	_, err := t.Get(key)
	if err == nil {
		return ErrAccountExists
	} else if err != ErrAccountNotFound {
		return err
	}

	// prepare batch
	batch := t.db.NewBatch()
	defer batch.Close()

	// stage account
	err = t.stage(batch, &quill.Account{
		Key:   key,
		Owner: owner,
		Data:  make([]byte, space),
	})
	if err != nil {
		return err
	}

	// commit batch
	err = batch.Commit(defaultWriteOptions)
	if err != nil {
		return err
	}

	return nil
}

// Get will read the specified account. The returned account is not writable
// and its data is a copy.
func (t *AccountTable) Get(key quill.Identity) (*quill.Account, error) {
	// get value
	value, closer, err := t.db.Get(t.makeKey(key))
	if err == pebble.ErrNotFound {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, err
	}
	defer closer.Close()

	// decode account
	account := &quill.Account{Key: key}
	err = coding.Decode(value, func(dec *coding.Decoder) error {
		dec.Raw(account.Owner[:])
		dec.Bytes(&account.Data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Count will return the number of stored accounts.
func (t *AccountTable) Count() (int, error) {
	// create iterator
	iter, err := t.db.NewIter(&pebble.IterOptions{
		LowerBound: t.prefix,
		UpperBound: upperBound(t.prefix),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	// count keys
	var count int
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}

	return count, nil
}

func (t *AccountTable) stage(batch *pebble.Batch, account *quill.Account) error {
	// encode account
	value, err := coding.Encode(func(enc *coding.Encoder) error {
		enc.Raw(account.Owner[:])
		enc.Bytes(account.Data)
		return nil
	})
	if err != nil {
		return err
	}

	return batch.Set(t.makeKey(account.Key), value, nil)
}

func (t *AccountTable) makeKey(key quill.Identity) []byte {
	b := make([]byte, 0, len(t.prefix)+quill.IdentityLength)
	return append(append(b, t.prefix...), key[:]...)
}

func upperBound(prefix []byte) []byte {
	// copy and increment last byte
	end := append([]byte(nil), prefix...)
	end[len(end)-1]++

	return end
}
