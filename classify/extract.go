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


package classify

import (
	"strconv"
	"strings"
)

// Markers emitted by the validation engine.
const (
	dataLocationMarker   = "data location "
	schemaLocationMarker = "Schema location "
	lockSessionMarker    = "DS-locked by session "

	leafrefPrefix            = "Invalid leafref value"
	instanceIdentifierPrefix = "Invalid instance-identifier"

	// Characters the engine appends after every location.
	locationTrailerLen = 2
)

// ExtractPath returns the data path following "data location ", falling back
// to the schema path following "Schema location ". The two trailing characters
// of the message are not part of the path.
func ExtractPath(message string) (string, bool) {
	start := markerEnd(message, dataLocationMarker)
	if start < 0 {
		start = markerEnd(message, schemaLocationMarker)
	}
	if start < 0 {
		return "", false
	}
	end := len(message) - locationTrailerLen
	if end < start {
		return "", false
	}
	return message[start:end], true
}

// MustMessage returns the custom must error text: everything before the space
// that precedes the last '(' (the engine appends " (path: ...)").
func MustMessage(message string) (string, bool) {
	open := strings.LastIndexByte(message, '(')
	if open < 1 {
		return "", false
	}
	return message[:open-1], true
}

// LeafrefValue returns the offending value of an "Invalid leafref value" message.
func LeafrefValue(message string) (string, bool) {
	return QuotedValue(message, len(leafrefPrefix)+1)
}

// InstanceIdentifierValue returns the offending value of an
// "Invalid instance-identifier" message.
func InstanceIdentifierValue(message string) (string, bool) {
	return QuotedValue(message, len(instanceIdentifierPrefix)+1)
}

// QuotedValue returns the text between the double quote at offset and the next
// double quote. It fails if offset does not hold a quote or the quote is never closed.
func QuotedValue(message string, offset int) (string, bool) {
	if offset < 0 || offset >= len(message) || message[offset] != '"' {
		return "", false
	}
	rest := message[offset+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// ParentPath truncates path at its last '/'. A node directly under the root
// has the root "/" as parent.
func ParentPath(path string) (string, bool) {
	sep := strings.LastIndexByte(path, '/')
	switch {
	case sep < 0:
		return "", false
	case sep == 0:
		return path[:1], true
	default:
		return path[:sep], true
	}
}

// LockSessionID returns the internal session id following "DS-locked by session ".
// Like atoi, it skips leading whitespace and an optional '+', then reads the
// decimal digits. It yields 0 when there are none, when they overflow 32 bits
// or when the number is negative. ok is false only when the marker is absent.
func LockSessionID(message string) (id uint32, ok bool) {
	start := markerEnd(message, lockSessionMarker)
	if start < 0 {
		return 0, false
	}
	digits := strings.TrimLeft(message[start:], " \t\n\v\f\r")
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	end := 0
	for end < len(digits) && digits[end] >= '0' && digits[end] <= '9' {
		end++
	}
	parsed, err := strconv.ParseUint(digits[:end], 10, 32)
	if err != nil {
		return 0, true
	}
	return uint32(parsed), true
}

// markerEnd returns the offset just past the first occurrence of marker, or -1.
func markerEnd(message, marker string) int {
	idx := strings.Index(message, marker)
	if idx < 0 {
		return -1
	}
	return idx + len(marker)
}
