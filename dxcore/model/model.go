/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package model defines the contracts that dxpass value types implement.
//
// Digits, statuses, failures, rules, passcodes and policy documents all share
// one baseline: they validate their own invariants, round-trip through JSON
// and YAML, identify themselves by a type name, report whether they are zero,
// and offer a redacted string form that is safe to log. Passcode is the reason
// the redaction contract exists: an entered passcode MUST never reach a log
// line through String.
//
// Implementations are value types and are safe for concurrent reads. Callers
// MUST synchronize concurrent writes (unmarshaling into a shared value).
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model combines every contract a dxpass domain type implements.
//
// Unmarshal methods need a pointer receiver, so the usual compile-time check
// is written against the pointer type:
//
//	var _ model.Model = (*Rule)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by types that check their own invariants.
//
// Validate MUST be deterministic and free of side effects, and it MUST NOT
// mutate the receiver. Calling it twice on the same value yields the same
// result. When validation fails the error SHOULD be a
// *errors.ValidationError naming the type and field at fault.
type Validatable interface {
	Validate() error
}

// Serializable is implemented by types that round-trip through JSON and YAML.
//
// Marshal methods MUST reject values that fail Validate instead of emitting
// them. Unmarshal methods MUST validate what they decoded and leave the
// receiver unusable (callers MUST NOT use it) when they return an error.
//
// Struct types use the local alias pattern to avoid recursing into their own
// methods:
//
//	func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
//	    type alias Policy
//	    if err := node.Decode((*alias)(p)); err != nil {
//	        return &errors.UnmarshalError{Type: "Policy", Reason: err.Error()}
//	    }
//	    return p.Validate()
//	}
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by types with a log-safe representation.
//
// Redacted MUST hide secret content. For a passcode that means every digit is
// masked and only the length survives. String MAY expose everything and MUST
// NOT be used for production logging. For types without secrets (enums) the
// two forms are identical.
type Loggable interface {
	Redacted() string
	String() string
}

// Identifiable is implemented by types that report a constant CamelCase type
// name, used in error messages and log fields.
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable is implemented by types that can report whether they hold
// their zero value. A zero value is not necessarily invalid: StatusUnknown is
// both zero and valid.
type ZeroCheckable interface {
	IsZero() bool
}
