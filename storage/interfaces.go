package storage

import (
	"context"

	"github.com/poiesic/ncerr/core"
)

// ErrorRepository keeps the ordered list of protocol errors attached to each session.
// It is the error sink the translators write to; the protocol layer reads the
// list back when it serializes the reply and clears it afterwards.
// Implementations must be thread-safe and support concurrent access.
type ErrorRepository interface {
	// AttachError appends perr to the error list of session dst.
	// The error is validated with core.ValidateProtocolError first.
	AttachError(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error

	// CopyErrors appends every error of session src, in order and unchanged,
	// to the error list of session dst. Copying a session onto itself is a no-op.
	CopyErrors(ctx context.Context, src, dst core.SessionID) error

	// GetErrors returns the errors of a session in attachment order.
	// Returns an empty slice (no error) for a session without errors.
	GetErrors(ctx context.Context, session core.SessionID) ([]*core.ProtocolError, error)

	// ClearErrors removes every error of a session.
	ClearErrors(ctx context.Context, session core.SessionID) error

	// Close releases repository resources. It does not close the backend.
	Close() error
}
