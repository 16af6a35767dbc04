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


package storage

import (
	"fmt"

	"github.com/poiesic/ncerr/core"
)

// MarshalProtocolError serializes a ProtocolError to bytes.
func MarshalProtocolError(perr *core.ProtocolError) []byte {
	buf := make([]byte, core.ProtocolErrorMUS.Size(*perr))
	core.ProtocolErrorMUS.Marshal(*perr, buf)
	return buf
}

// UnmarshalProtocolError deserializes a ProtocolError from bytes.
// Trailing bytes after the record are reported as ErrSerializationFailed.
func UnmarshalProtocolError(data []byte) (*core.ProtocolError, error) {
	perr, n, err := core.ProtocolErrorMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &perr, nil
}
