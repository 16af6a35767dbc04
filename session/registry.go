// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package session keeps the table of live protocol sessions used to resolve
// the holders of datastore locks.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/poiesic/ncerr/core"
	"github.com/poiesic/ncerr/translate"
)

var (
	// ErrSessionExists is returned when an internal id is registered twice.
	ErrSessionExists = errors.New("session already registered")

	// ErrSessionNotFound is returned when unregistering an unknown session.
	ErrSessionNotFound = errors.New("session not found")
)

// Session is a registered peer session.
type Session struct {
	ID       core.SessionID
	publicID uint32
}

// PublicID returns the identifier NETCONF clients know the session by.
func (s *Session) PublicID() uint32 {
	return s.publicID
}

// Registry maps internal session ids to live sessions.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
}

var _ translate.SessionResolver = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.SessionID]*Session)}
}

// Register adds a session with internal id and public id.
func (r *Registry) Register(id core.SessionID, publicID uint32) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; ok {
		return nil, fmt.Errorf("%w: %d", ErrSessionExists, id)
	}
	s := &Session{ID: id, publicID: publicID}
	r.sessions[id] = s
	return s, nil
}

// Unregister removes the session with internal id.
func (r *Registry) Unregister(id core.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// Resolve returns the live session with internal id.
func (r *Registry) Resolve(id core.SessionID) (translate.SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
