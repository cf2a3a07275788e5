package host

import (
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/256dpi/quill"
	"github.com/256dpi/quill/qis"
)

var programID = quill.Identity{1}
var userID = quill.Identity{9}

func openDB() *DB {
	db, err := OpenDB("", DBConfig{Memory: true})
	if err != nil {
		panic(err)
	}

	return db
}

func createRuntime(db *DB) (*Runtime, *logtest.Hook) {
	// prepare logger
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	// create runtime
	runtime, err := CreateRuntime(db, RuntimeConfig{
		Logger: logger,
	})
	if err != nil {
		panic(err)
	}

	// deploy program
	runtime.Deploy(programID, quill.New(quill.Config{
		Logger: logger,
	}))

	return runtime, hook
}

func pack(ins qis.Instruction) []byte {
	payload, err := qis.Pack(ins)
	if err != nil {
		panic(err)
	}

	return payload
}
