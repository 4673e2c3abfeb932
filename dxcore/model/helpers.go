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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Checkable is the subset of Model needed to validate a value and name it in
// an error message. Enum-like types satisfy it with their value receivers, so
// slices of plain values can be validated without taking pointers.
type Checkable interface {
	Validatable
	Identifiable
}

// ValidateAll validates every element and returns one error aggregating all
// failures, collected with rxmerr. Each failure is prefixed with its index
// and type name. Empty slices are valid. The whole slice is always visited.
func ValidateAll[T Checkable](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// SafeString returns Redacted unless unsafe is set, in which case it returns
// String. Keeping the decision in one call makes it visible at every call site
// that may print a passcode.
//
//	fmt.Println(model.SafeString(entered, *reveal))
func SafeString[T Loggable](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and then encodes it with json.Marshal.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and then encodes it with yaml.Marshal.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes data into m and validates the result. T is normally a
// pointer type, and m points at it:
//
//	p := &policy.Policy{}
//	err := model.FromJSON(data, p)
func FromJSON[T Model](data []byte, m T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", m.TypeName(), err)
	}
	return nil
}

// FromYAML decodes data into m and validates the result. See FromJSON.
func FromYAML[T Model](data []byte, m T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", m.TypeName(), err)
	}
	return nil
}
