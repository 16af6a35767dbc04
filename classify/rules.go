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
	"slices"
	"strings"
)

// Class identifies the kind of validation failure a message describes.
type Class int

const (
	// ClassForeign is a message no rule recognizes. It is passed through unchanged.
	ClassForeign Class = iota
	ClassDataNotUnique
	ClassTooManyElements
	ClassTooFewElements
	ClassMustViolation
	ClassLeafrefRequired
	ClassInstanceIdentifierRequired
	ClassMandatoryChoice
)

var classNames = map[Class]string{
	ClassForeign:                    "foreign",
	ClassDataNotUnique:              "data-not-unique",
	ClassTooManyElements:            "too-many-elements",
	ClassTooFewElements:             "too-few-elements",
	ClassMustViolation:              "must-violation",
	ClassLeafrefRequired:            "instance-required-leafref",
	ClassInstanceIdentifierRequired: "instance-required-instance-identifier",
	ClassMandatoryChoice:            "mandatory-choice",
}

// String returns the metric/log label of the class.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "unknown"
}

// Rule matches a message that begins with Prefix and, when Contains is set,
// also includes Contains anywhere in the message. Matching is case-sensitive.
type Rule struct {
	Class    Class
	Prefix   string
	Contains string
}

// Matches reports whether the rule applies to message.
func (r Rule) Matches(message string) bool {
	if !strings.HasPrefix(message, r.Prefix) {
		return false
	}
	return r.Contains == "" || strings.Contains(message, r.Contains)
}

// rules is the ordered classification table. The phrases are produced by the
// datastore's validation engine and must stay byte-exact with it.
var rules = []Rule{
	{Class: ClassDataNotUnique, Prefix: "Unique data leaf(s)"},
	{Class: ClassTooManyElements, Prefix: "Too many"},
	{Class: ClassTooFewElements, Prefix: "Too few"},
	{Class: ClassMustViolation, Prefix: "Must condition"},
	{Class: ClassLeafrefRequired, Prefix: leafrefPrefix, Contains: "no existing target instance"},
	{Class: ClassInstanceIdentifierRequired, Prefix: instanceIdentifierPrefix, Contains: "required instance not found"},
	{Class: ClassMandatoryChoice, Prefix: "Mandatory choice"},
}

// Rules returns a copy of the classification table in evaluation order.
// Callers needing a different table pass it to ClassifyWith.
func Rules() []Rule {
	return slices.Clone(rules)
}

// Classify returns the class of the first rule in the classification table
// matching message, or ClassForeign when none does.
func Classify(message string) Class {
	return ClassifyWith(rules, message)
}

// ClassifyWith evaluates rules top to bottom; the first match wins.
func ClassifyWith(rules []Rule, message string) Class {
	for _, rule := range rules {
		if rule.Matches(message) {
			return rule.Class
		}
	}
	return ClassForeign
}
