// Package session owns the client session lifecycle: the in-memory session,
// its persistence through an injected store, and change notification.
package session

import (
	"errors"
	"fmt"
)

// ErrNoSession is returned by a Store when the session slot is empty.
var ErrNoSession = errors.New("no stored session")

// Store is the persistence capability the manager writes the session through.
// It holds a single opaque record; the manager owns the encoding.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}

// PersistenceError reports a store failure during Establish or Clear. The
// in-memory session transition has still completed; callers should warn that
// the session will not survive a restart.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("session store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
