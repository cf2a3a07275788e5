package host

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"

	"github.com/256dpi/quill"
	"github.com/256dpi/quill/coding"
	"github.com/256dpi/quill/seq"
)

// Entry is a single executed transaction in the journal.
type Entry struct {
	// The sequence of the entry.
	Sequence uint64

	// The executed program.
	Program quill.Identity

	// The accounts passed to the program.
	Accounts []quill.Identity

	// The instruction payload.
	Payload []byte

	// The error text if the transaction has been rejected.
	Error string
}

// JournalConfig is used to configure a journal.
type JournalConfig struct {
	// The prefix for all journal keys.
	Prefix string
}

// Journal manages the storage of executed transactions.
type Journal struct {
	db     *DB
	prefix []byte

	receivers sync.Map

	length int
	head   uint64
	mutex  sync.Mutex
}

// CreateJournal will create a journal that stores entries in the provided db.
func CreateJournal(db *DB, config JournalConfig) (*Journal, error) {
	// check prefix
	if config.Prefix == "" {
		panic("host: missing prefix")
	}

	// create journal
	j := &Journal{
		db:     db,
		prefix: append([]byte(config.Prefix), '#'),
	}

	// init journal
	err := j.init()
	if err != nil {
		return nil, err
	}

	return j, nil
}

func (j *Journal) init() error {
	// create iterator
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: j.prefix,
		UpperBound: upperBound(j.prefix),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	// count all items and find head
	var length int
	var head uint64
	for iter.First(); iter.Valid(); iter.Next() {
		// increment length
		length++

		// parse key
		s, err := seq.Decode(iter.Key()[len(j.prefix):])
		if err != nil {
			return err
		}

		// set head
		head = s
	}

	// set length and head
	j.length = length
	j.head = head

	// ensure new sequences are after the head
	seq.Observe(head)

	return nil
}

// Read will read entries from and including the specified sequence up to the
// requested amount of entries.
func (j *Journal) Read(sequence uint64, amount int) ([]Entry, error) {
	// create iterator
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: j.makeKey(sequence),
		UpperBound: upperBound(j.prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	// prepare list
	list := make([]Entry, 0, amount)

	// iterate until enough entries have been loaded
	for iter.First(); iter.Valid() && len(list) < amount; iter.Next() {
		// parse key
		s, err := seq.Decode(iter.Key()[len(j.prefix):])
		if err != nil {
			return nil, err
		}

		// decode entry
		entry, err := decodeEntry(iter.Value())
		if err != nil {
			return nil, err
		}

		// set sequence
		entry.Sequence = s

		// add entry
		list = append(list, entry)
	}

	return list, nil
}

// Length will return the number of stored entries.
func (j *Journal) Length() int {
	// get length
	j.mutex.Lock()
	length := j.length
	j.mutex.Unlock()

	return length
}

// Head will return the last committed sequence.
func (j *Journal) Head() uint64 {
	// get head
	j.mutex.Lock()
	head := j.head
	j.mutex.Unlock()

	return head
}

// Subscribe will subscribe the specified channel to changes to the last
// sequence stored in the journal. Notifications will be skipped if the
// specified channel is not writable for some reason.
func (j *Journal) Subscribe(receiver chan<- uint64) {
	j.receivers.Store(receiver, receiver)
}

// Unsubscribe will remove a previously subscribed receiver.
func (j *Journal) Unsubscribe(receiver chan<- uint64) {
	j.receivers.Delete(receiver)
}

func (j *Journal) stage(batch *pebble.Batch, entry Entry) error {
	// encode entry
	value, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	return batch.Set(j.makeKey(entry.Sequence), value, nil)
}

func (j *Journal) committed(entry Entry) {
	// acquire mutex
	j.mutex.Lock()

	// increment length
	j.length++

	// set head sequence
	if entry.Sequence > j.head {
		j.head = entry.Sequence
	}

	// get head
	head := j.head

	// release mutex
	j.mutex.Unlock()

	// send notifications to all receivers and skip full receivers
	j.receivers.Range(func(_, value interface{}) bool {
		select {
		case value.(chan<- uint64) <- head:
		default:
		}

		return true
	})
}

func (j *Journal) makeKey(s uint64) []byte {
	b := make([]byte, 0, len(j.prefix)+seq.EncodedLength)
	return append(append(b, j.prefix...), seq.Encode(s, false)...)
}

func encodeEntry(entry Entry) ([]byte, error) {
	return coding.Encode(func(enc *coding.Encoder) error {
		// encode version
		enc.Uint8(1)

		// encode program and accounts
		enc.Raw(entry.Program[:])
		enc.Uint32(uint32(len(entry.Accounts)))
		for _, key := range entry.Accounts {
			enc.Raw(key[:])
		}

		// encode payload and error
		enc.Bytes(entry.Payload)
		enc.String(entry.Error)

		return nil
	})
}

func decodeEntry(value []byte) (Entry, error) {
	var entry Entry
	err := coding.Decode(value, func(dec *coding.Decoder) error {
		// decode version
		var version uint8
		dec.Uint8(&version)
		if dec.Error() == nil && version != 1 {
			return fmt.Errorf("host: invalid entry version %d", version)
		}

		// decode program and accounts
		dec.Raw(entry.Program[:])
		var count uint32
		dec.Uint32(&count)
		if uint64(count)*quill.IdentityLength > uint64(dec.Remaining()) {
			dec.Fail(coding.ErrMalformedLength)
			return nil
		}
		for i := uint32(0); i < count; i++ {
			var key quill.Identity
			dec.Raw(key[:])
			entry.Accounts = append(entry.Accounts, key)
		}

		// decode payload and error
		dec.Bytes(&entry.Payload)
		dec.String(&entry.Error)

		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	return entry, nil
}
