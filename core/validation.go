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


package core

import "fmt"

// ValidateProtocolError validates a ProtocolError before it is attached to a session.
//
// Validation rules:
//   - Type must be one of transport, rpc, protocol, application
//   - Tag must be a NETCONF error-tag
//   - Message must not be empty
//   - Every Info entry must have a name
//
// NOT validated:
//   - AppTag (free-form, module-qualified tags are allowed)
//   - Path (instance-identifier syntax belongs to the datastore)
func ValidateProtocolError(perr *ProtocolError) error {
	if perr == nil {
		return fmt.Errorf("%w: error is nil", ErrInvalidProtocolError)
	}

	if err := ValidateErrorType(perr.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProtocolError, err)
	}

	if perr.Tag == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProtocolError, ErrEmptyTag)
	}
	if !IsKnownTag(perr.Tag) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidProtocolError, ErrUnknownTag, perr.Tag)
	}

	if perr.Message == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProtocolError, ErrEmptyMessage)
	}

	for i, info := range perr.Info {
		if info.Name == "" {
			return fmt.Errorf("%w: %w: entry %d", ErrInvalidProtocolError, ErrEmptyInfoName, i)
		}
	}

	return nil
}

// ValidateErrorType validates that an ErrorType has a valid value.
func ValidateErrorType(t ErrorType) error {
	switch t {
	case ErrorTypeTransport, ErrorTypeRPC, ErrorTypeProtocol, ErrorTypeApplication:
		return nil
	}
	return fmt.Errorf("%w: value %q", ErrInvalidErrorType, string(t))
}
