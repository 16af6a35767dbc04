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
	"fmt"

	"github.com/poiesic/ncerr/classify"
	"github.com/poiesic/ncerr/core"
)

// Fields holds the values extracted from a classified message.
type Fields struct {
	// Path is the data or schema location of the failure.
	Path string
	// Parent is the parent node of Path (mandatory-choice only).
	Parent string
	// Value is the offending quoted value (instance-required only).
	Value string
	// Condition is the must condition text without its path annotation.
	Condition string
}

type assembly struct {
	tag     string
	appTag  string
	path    func(Fields) string
	message func(Fields) string
	info    func(Fields) []core.ErrorInfo
}

func fixed(message string) func(Fields) string {
	return func(Fields) string { return message }
}

func fieldPath(f Fields) string   { return f.Path }
func fieldParent(f Fields) string { return f.Parent }

// assemblies maps every non-foreign class to its protocol error shape.
var assemblies = map[classify.Class]assembly{
	classify.ClassDataNotUnique: {
		tag:     core.TagOperationFailed,
		appTag:  core.AppTagDataNotUnique,
		message: fixed(core.MessageNotUnique),
		info: func(f Fields) []core.ErrorInfo {
			return []core.ErrorInfo{{Name: core.InfoNonUnique, Value: f.Path}}
		},
	},
	classify.ClassTooManyElements: {
		tag:     core.TagOperationFailed,
		appTag:  core.AppTagTooManyElements,
		path:    fieldPath,
		message: fixed(core.MessageTooMany),
	},
	classify.ClassTooFewElements: {
		tag:     core.TagOperationFailed,
		appTag:  core.AppTagTooFewElements,
		path:    fieldPath,
		message: fixed(core.MessageTooFew),
	},
	classify.ClassMustViolation: {
		tag:     core.TagOperationFailed,
		appTag:  core.AppTagMustViolation,
		path:    fieldPath,
		message: func(f Fields) string { return f.Condition },
	},
	classify.ClassLeafrefRequired: {
		tag:    core.TagDataMissing,
		appTag: core.AppTagInstanceRequired,
		path:   fieldPath,
		message: func(f Fields) string {
			return fmt.Sprintf("Required leafref target with value \"%s\" missing.", f.Value)
		},
	},
	classify.ClassInstanceIdentifierRequired: {
		tag:    core.TagDataMissing,
		appTag: core.AppTagInstanceRequired,
		path:   fieldPath,
		message: func(f Fields) string {
			return fmt.Sprintf("Required instance-identifier \"%s\" missing.", f.Value)
		},
	},
	classify.ClassMandatoryChoice: {
		tag:     core.TagDataMissing,
		appTag:  core.AppTagMandatoryChoice,
		path:    fieldParent,
		message: fixed(core.MessageMandatoryChoice),
		info: func(f Fields) []core.ErrorInfo {
			return []core.ErrorInfo{{Name: core.InfoMissingChoice, Value: f.Path}}
		},
	},
}

// Assemble builds the protocol error of a classified message from its fields.
// Every assembled error has type protocol. ClassForeign has no assembly.
func Assemble(class classify.Class, f Fields) (*core.ProtocolError, error) {
	a, ok := assemblies[class]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrForeignClass, class)
	}

	perr := &core.ProtocolError{
		Type:    core.ErrorTypeProtocol,
		Tag:     a.tag,
		AppTag:  a.appTag,
		Message: a.message(f),
	}
	if a.path != nil {
		perr.Path = a.path(f)
	}
	if a.info != nil {
		perr.Info = a.info(f)
	}
	return perr, nil
}
