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
	"errors"
	"fmt"

	"github.com/poiesic/ncerr/classify"
	"github.com/poiesic/ncerr/core"
)

var (
	// ErrResolverRequired is returned when a session resolver is not provided.
	ErrResolverRequired = errors.New("session resolver required")

	// ErrSinkRequired is returned when an error sink is not provided.
	ErrSinkRequired = errors.New("error sink required")

	// ErrForeignClass is returned when assembling a class that has no assembly.
	ErrForeignClass = errors.New("class has no protocol error assembly")
)

// ContractError reports a classified message missing a field its class guarantees.
type ContractError struct {
	Class   classify.Class
	Field   string
	Message string
	// Fingerprint identifies Message across log lines and reports.
	Fingerprint core.ID
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s message without %s: %q", core.ErrContractViolation, e.Class, e.Field, e.Message)
}

// Unwrap returns core.ErrContractViolation.
func (e *ContractError) Unwrap() error {
	return core.ErrContractViolation
}
