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


package translate

import (
	"context"

	"github.com/poiesic/ncerr/core"
)

// SessionHandle is a live peer session as seen by the protocol layer.
type SessionHandle interface {
	// PublicID returns the session identifier visible to NETCONF clients.
	PublicID() uint32
}

// SessionResolver maps an internal session identifier to a live session.
// Resolve must be a bounded in-memory lookup. A missing session is reported
// with ok == false, never as an error.
type SessionResolver interface {
	Resolve(id core.SessionID) (handle SessionHandle, ok bool)
}

// ErrorSink receives assembled protocol errors for outgoing sessions.
type ErrorSink interface {
	// AttachError appends perr to the errors of session dst.
	AttachError(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error

	// CopyErrors appends every error of session src to session dst unchanged.
	CopyErrors(ctx context.Context, src, dst core.SessionID) error
}
