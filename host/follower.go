package host

import "gopkg.in/tomb.v2"

// FollowerConfig is used to configure a follower.
type FollowerConfig struct {
	// The first sequence to deliver.
	Start uint64

	// The channel on which entries are sent.
	Entries chan<- Entry

	// The channel on which a read error is sent before the follower stops.
	Errors chan<- error

	// The amount of entries read from the journal at once.
	//
	// Default: 100.
	Batch int
}

// Follower streams journal entries in sequence order and waits for new
// entries once it has caught up with the head.
type Follower struct {
	journal *Journal
	config  FollowerConfig
	tomb    tomb.Tomb
}

// NewFollower will create and return a follower.
func NewFollower(journal *Journal, config FollowerConfig) *Follower {
	// set default
	if config.Batch <= 0 {
		config.Batch = 100
	}

	// prepare follower
	f := &Follower{
		journal: journal,
		config:  config,
	}

	// run worker
	f.tomb.Go(f.worker)

	return f
}

// Close will close the follower.
func (f *Follower) Close() {
	f.tomb.Kill(nil)
	_ = f.tomb.Wait()
}

func (f *Follower) worker() error {
	// subscribe to notifications
	notifications := make(chan uint64, 1)
	f.journal.Subscribe(notifications)
	defer f.journal.Unsubscribe(notifications)

	// set initial position
	position := f.config.Start

	for {
		// wait for notification if caught up
		if f.journal.Head() < position || f.journal.Length() == 0 {
			select {
			case <-notifications:
			case <-f.tomb.Dying():
				return tomb.ErrDying
			}

			continue
		}

		// read entries
		entries, err := f.journal.Read(position, f.config.Batch)
		if err != nil {
			select {
			case f.config.Errors <- err:
			default:
			}

			return err
		}

		// wait if nothing new is readable
		if len(entries) == 0 {
			select {
			case <-notifications:
			case <-f.tomb.Dying():
				return tomb.ErrDying
			}

			continue
		}

		// deliver entries
		for _, entry := range entries {
			select {
			case f.config.Entries <- entry:
				position = entry.Sequence + 1
			case <-f.tomb.Dying():
				return tomb.ErrDying
			}
		}
	}
}
