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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProtocolError indicates a ProtocolError failed validation.
	ErrInvalidProtocolError = errors.New("invalid protocol error")

	// ErrInvalidErrorType indicates an ErrorType outside the NETCONF vocabulary.
	ErrInvalidErrorType = errors.New("invalid error type")

	// ErrEmptyTag indicates the error-tag is empty.
	ErrEmptyTag = errors.New("error tag cannot be empty")

	// ErrUnknownTag indicates an error-tag outside the NETCONF vocabulary.
	ErrUnknownTag = errors.New("unknown error tag")

	// ErrEmptyMessage indicates the error-message is empty.
	ErrEmptyMessage = errors.New("error message cannot be empty")

	// ErrEmptyInfoName indicates an error-info entry without a name.
	ErrEmptyInfoName = errors.New("error info name cannot be empty")
)

// Translation contract errors
var (
	// ErrContractViolation indicates a classified message lacked a field its
	// class guarantees. The message format and the rule table disagree.
	ErrContractViolation = errors.New("validation message contract violation")

	// ErrNoValidationError indicates the generic translator was called without
	// any validation error record.
	ErrNoValidationError = errors.New("no validation error record")
)

// ErrMalformedRecord indicates stored bytes that do not decode to a record.
var ErrMalformedRecord = errors.New("malformed record encoding")
