package mock

import (
	"context"
	"sync"

	"github.com/poiesic/ncerr/core"
)

// Attachment is one recorded AttachError call.
type Attachment struct {
	Dst   core.SessionID
	Error *core.ProtocolError
}

// Copy is one recorded CopyErrors call.
type Copy struct {
	Src core.SessionID
	Dst core.SessionID
}

// MockSink is a test double for translate.ErrorSink.
// It records every call, including failed ones.
type MockSink struct {
	// AttachErrorFunc is called by AttachError if set.
	AttachErrorFunc func(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error

	// CopyErrorsFunc is called by CopyErrors if set.
	CopyErrorsFunc func(ctx context.Context, src, dst core.SessionID) error

	mu       sync.Mutex
	attached []Attachment
	copies   []Copy
}

// NewMockSink creates a sink that accepts everything.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// AttachError records the attachment.
func (m *MockSink) AttachError(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error {
	m.mu.Lock()
	m.attached = append(m.attached, Attachment{Dst: dst, Error: perr})
	m.mu.Unlock()

	if m.AttachErrorFunc != nil {
		return m.AttachErrorFunc(ctx, dst, perr)
	}
	return nil
}

// CopyErrors records the copy.
func (m *MockSink) CopyErrors(ctx context.Context, src, dst core.SessionID) error {
	m.mu.Lock()
	m.copies = append(m.copies, Copy{Src: src, Dst: dst})
	m.mu.Unlock()

	if m.CopyErrorsFunc != nil {
		return m.CopyErrorsFunc(ctx, src, dst)
	}
	return nil
}

// Attached returns a snapshot of the recorded attachments.
func (m *MockSink) Attached() []Attachment {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Attachment(nil), m.attached...)
}

// Copies returns a snapshot of the recorded copies.
func (m *MockSink) Copies() []Copy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Copy(nil), m.copies...)
}

// Reset clears recorded calls and injected behavior.
func (m *MockSink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attached = nil
	m.copies = nil
	m.AttachErrorFunc = nil
	m.CopyErrorsFunc = nil
}
