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

// NETCONF <error-tag> values (RFC 6241, Appendix A).
const (
	TagInUse           = "in-use"
	TagInvalidValue    = "invalid-value"
	TagMissingElement  = "missing-element"
	TagBadElement      = "bad-element"
	TagLockDenied      = "lock-denied"
	TagOperationFailed = "operation-failed"
	TagDataMissing     = "data-missing"
)

// <error-app-tag> values (RFC 7950, section 15 and RFC 8639).
const (
	AppTagDataNotUnique      = "data-not-unique"
	AppTagTooManyElements    = "too-many-elements"
	AppTagTooFewElements     = "too-few-elements"
	AppTagMustViolation      = "must-violation"
	AppTagInstanceRequired   = "instance-required"
	AppTagMandatoryChoice    = "mandatory-choice"
	AppTagNoSuchSubscription = "ietf-subscribed-notifications:no-such-subscription"
)

// <error-info> child names.
const (
	InfoSessionID     = "session-id"
	InfoBadElement    = "bad-element"
	InfoNonUnique     = "non-unique"
	InfoMissingChoice = "missing-choice"
)

// Fixed <error-message> texts.
const (
	MessageLockDenied      = "Access to the requested lock is denied because the lock is currently held by another entity."
	MessageInUse           = "The request requires a resource that already is in use."
	MessageMissingElement  = "An expected element is missing."
	MessageNotUnique       = "Unique constraint violated."
	MessageTooMany         = "Too many elements."
	MessageTooFew          = "Too few elements."
	MessageMandatoryChoice = "Missing mandatory choice."
)

var knownTags = map[string]bool{}

func init() {
	for _, tag := range []string{
		TagInUse,
		TagInvalidValue,
		"too-big",
		TagMissingElement,
		TagBadElement,
		"unknown-attribute",
		"missing-attribute",
		"bad-attribute",
		"unknown-element",
		"unknown-namespace",
		"access-denied",
		TagLockDenied,
		"resource-denied",
		"rollback-failed",
		"data-exists",
		TagDataMissing,
		"operation-not-supported",
		TagOperationFailed,
		"malformed-message",
	} {
		knownTags[tag] = true
	}
}

// IsKnownTag reports whether tag is part of the NETCONF error-tag vocabulary.
func IsKnownTag(tag string) bool {
	return knownTags[tag]
}
