package localstore

import (
	"sync"

	"github.com/cyclesync/cyclesync-client/internal/session"
)

// Memory is an in-memory session.Store for tests. FailWith arms it to return
// a fixed error from Save and Delete, exercising persistence-failure paths.
type Memory struct {
	mu      sync.Mutex
	data    []byte
	present bool
	failErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// FailWith makes subsequent Save and Delete calls fail with err. Pass nil to
// disarm.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *Memory) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return nil, session.ErrNoSession
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *Memory) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.present = true
	return nil
}

func (m *Memory) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.data = nil
	m.present = false
	return nil
}
