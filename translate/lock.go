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
	"strconv"

	"github.com/poiesic/ncerr/classify"
	"github.com/poiesic/ncerr/core"
)

// Conflict selects the protocol error produced for a datastore lock conflict.
type Conflict int

const (
	// ConflictLockDenied is a lock request refused because another session holds the lock.
	ConflictLockDenied Conflict = iota
	// ConflictInUse is an operation refused because a locked resource is in use.
	ConflictInUse
)

func (c Conflict) String() string {
	if c == ConflictInUse {
		return core.TagInUse
	}
	return core.TagLockDenied
}

func (c Conflict) message() string {
	if c == ConflictInUse {
		return core.MessageInUse
	}
	return core.MessageLockDenied
}

// LockConflict builds the error of a lock conflict reported by message.
// The holder's internal id is resolved to its public id; an unresolved holder
// is reported as session 0. ok is false when message names no holder.
func LockConflict(conflict Conflict, message string, resolver SessionResolver) (perr *core.ProtocolError, ok bool) {
	internal, ok := classify.LockSessionID(message)
	if !ok {
		return nil, false
	}

	var public uint32
	if handle, found := resolver.Resolve(core.SessionID(internal)); found && handle != nil {
		public = handle.PublicID()
	}

	return &core.ProtocolError{
		Type:    core.ErrorTypeProtocol,
		Tag:     conflict.String(),
		Message: conflict.message(),
		Info: []core.ErrorInfo{
			{Name: core.InfoSessionID, Value: strconv.FormatUint(uint64(public), 10)},
		},
	}, true
}
