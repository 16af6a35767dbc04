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
	"github.com/poiesic/ncerr/classify"
	"github.com/poiesic/ncerr/core"
)

// Outcome is the result of translating one validation record.
type Outcome struct {
	Class classify.Class
	// Error is the assembled protocol error; nil when Class is ClassForeign.
	Error *core.ProtocolError
}

// Foreign reports whether the record must be passed through unchanged.
func (o Outcome) Foreign() bool {
	return o.Class == classify.ClassForeign
}

// Translate classifies record and assembles its protocol error.
// A foreign record yields an Outcome without error value. A classified record
// missing a guaranteed field yields a *ContractError.
func Translate(record core.ValidationErrorRecord) (Outcome, error) {
	class := classify.Classify(record.Message)
	if class == classify.ClassForeign {
		return Outcome{Class: class}, nil
	}

	fields, err := Extract(class, record.Message)
	if err != nil {
		return Outcome{Class: class}, err
	}

	perr, err := Assemble(class, fields)
	if err != nil {
		return Outcome{Class: class}, err
	}
	return Outcome{Class: class, Error: perr}, nil
}

// Extract pulls the fields of class out of message.
func Extract(class classify.Class, message string) (Fields, error) {
	var f Fields
	violation := func(field string) (Fields, error) {
		return Fields{}, &ContractError{
			Class:       class,
			Field:       field,
			Message:     message,
			Fingerprint: core.IDFromContent(message),
		}
	}

	path, ok := classify.ExtractPath(message)
	if !ok {
		return violation("location")
	}
	f.Path = path

	switch class {
	case classify.ClassMustViolation:
		if f.Condition, ok = classify.MustMessage(message); !ok {
			return violation("path annotation")
		}
	case classify.ClassLeafrefRequired:
		if f.Value, ok = classify.LeafrefValue(message); !ok {
			return violation("quoted value")
		}
	case classify.ClassInstanceIdentifierRequired:
		if f.Value, ok = classify.InstanceIdentifierValue(message); !ok {
			return violation("quoted value")
		}
	case classify.ClassMandatoryChoice:
		if f.Parent, ok = classify.ParentPath(path); !ok {
			return violation("parent node")
		}
	}
	return f, nil
}
