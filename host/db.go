// Package host implements a local runtime that stores accounts in a pebble
// database and executes program instructions against them.
package host

import (
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

var defaultWriteOptions = pebble.Sync

// DB is a generic database.
type DB = pebble.DB

// DBConfig is used to configure a database.
type DBConfig struct {
	// Whether the database should only be kept in memory.
	Memory bool
}

// OpenDB will open or create the specified db.
func OpenDB(directory string, config DBConfig) (*DB, error) {
	// open memory db
	if config.Memory {
		return pebble.Open(directory, &pebble.Options{
			FS: vfs.NewMem(),
		})
	}

	// check directory
	if directory == "" {
		panic("host: missing directory")
	}

	// ensure directory
	err := os.MkdirAll(directory, 0777)
	if err != nil {
		return nil, err
	}

	// open db
	db, err := pebble.Open(directory, &pebble.Options{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
