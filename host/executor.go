package host

import (
	"sync"

	"gopkg.in/tomb.v2"
)

type tuple struct {
	tx  Transaction
	ack func(uint64, error)
}

// ExecutorConfig is used to configure an executor.
type ExecutorConfig struct {
	// The number of transactions that may be queued.
	//
	// Default: 1.
	QueueSize int
}

// Executor provides an interface to asynchronously submit transactions that
// are executed one after another in submission order.
type Executor struct {
	runtime *Runtime
	config  ExecutorConfig
	pipe    chan tuple
	mutex   sync.RWMutex
	once    sync.Once
	tomb    tomb.Tomb
}

// NewExecutor will create and return an executor.
func NewExecutor(runtime *Runtime, config ExecutorConfig) *Executor {
	// set default
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}

	// prepare executor
	e := &Executor{
		runtime: runtime,
		config:  config,
		pipe:    make(chan tuple, config.QueueSize),
	}

	// run worker
	e.tomb.Go(e.worker)

	return e
}

// Submit will queue the transaction and call the provided callback with the
// sequence and error returned by the runtime. False is returned if the
// executor has been closed.
func (e *Executor) Submit(tx Transaction, ack func(uint64, error)) bool {
	// check if closed
	select {
	case <-e.tomb.Dying():
		return false
	default:
	}

	// create tuple
	tpl := tuple{
		tx:  tx,
		ack: ack,
	}

	// acquire mutex
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	// queue transaction
	select {
	case e.pipe <- tpl:
		return true
	case <-e.tomb.Dying():
		return false
	}
}

// Close will close the executor. Already queued transactions are executed
// before Close returns.
func (e *Executor) Close() {
	// kill tomb
	e.tomb.Kill(nil)

	// close pipe
	e.once.Do(func() {
		e.mutex.Lock()
		close(e.pipe)
		e.mutex.Unlock()
	})

	// wait for exit
	_ = e.tomb.Wait()
}

func (e *Executor) worker() error {
	for {
		// wait for next tuple
		tpl, ok := <-e.pipe
		if !ok {
			return tomb.ErrDying
		}

		// execute transaction
		sequence, err := e.runtime.Execute(tpl.tx)

		// call ack
		if tpl.ack != nil {
			tpl.ack(sequence, err)
		}
	}
}
