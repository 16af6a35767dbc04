package mock

import (
	"sync"

	"github.com/poiesic/ncerr/core"
	"github.com/poiesic/ncerr/translate"
)

// Handle is a session handle with a fixed public id.
type Handle uint32

// PublicID returns the handle value.
func (h Handle) PublicID() uint32 {
	return uint32(h)
}

// MockResolver is a test double for translate.SessionResolver.
type MockResolver struct {
	// ResolveFunc is called by Resolve if set.
	// If nil, the session table is consulted.
	ResolveFunc func(id core.SessionID) (translate.SessionHandle, bool)

	sessions  map[core.SessionID]uint32
	mu        sync.Mutex
	callCount int
}

// NewMockResolver creates a resolver mapping internal ids to public ids.
func NewMockResolver(sessions map[core.SessionID]uint32) *MockResolver {
	if sessions == nil {
		sessions = map[core.SessionID]uint32{}
	}
	return &MockResolver{sessions: sessions}
}

// Resolve looks id up in the session table.
func (m *MockResolver) Resolve(id core.SessionID) (translate.SessionHandle, bool) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(id)
	}

	public, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	return Handle(public), true
}

// CallCount returns the number of Resolve calls.
func (m *MockResolver) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
