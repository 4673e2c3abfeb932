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

package passcode

import (
	"encoding/json"
	"strings"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Passcode is an entered digit string such as "4821".
//
// Passcode is a secret. String returns the digits and exists for completion
// callbacks and tests; logs MUST use Redacted, which keeps only the length.
type Passcode string

// FromDigits renders digits as a Passcode. Invalid digits render as '?', which
// Validate then rejects.
func FromDigits(digits []Digit) Passcode {
	var b strings.Builder
	b.Grow(len(digits))
	for _, d := range digits {
		b.WriteRune(d.Rune())
	}
	return Passcode(b.String())
}

// Parse validates s and returns it as a Passcode.
func Parse(s string) (Passcode, error) {
	p := Passcode(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Digits returns the passcode as a Digit slice. The boolean is false when a
// character is not a decimal digit.
func (p Passcode) Digits() ([]Digit, bool) {
	out := make([]Digit, 0, len(p))
	for _, r := range string(p) {
		d, ok := DigitFromRune(r)
		if !ok {
			return nil, false
		}
		out = append(out, d)
	}
	return out, true
}

// Len returns the number of characters in the passcode.
func (p Passcode) Len() int {
	return len(p)
}

// String returns the digits. Do not log it.
func (p Passcode) String() string {
	return string(p)
}

// Redacted returns one '*' per character.
func (p Passcode) Redacted() string {
	return strings.Repeat("*", len(p))
}

// TypeName returns "Passcode".
func (p Passcode) TypeName() string {
	return "Passcode"
}

// IsZero reports whether the passcode is empty.
func (p Passcode) IsZero() bool {
	return p == ""
}

// Validate requires a non-empty string made only of the digits 0-9. The
// rejected value is never attached to the error.
func (p Passcode) Validate() error {
	if p == "" {
		return &errors.ValidationError{Type: "Passcode", Reason: "must not be empty"}
	}
	if _, ok := p.Digits(); !ok {
		return &errors.ValidationError{Type: "Passcode", Reason: "must contain only digits 0-9"}
	}
	return nil
}

// MarshalJSON encodes a valid passcode as a JSON string.
func (p Passcode) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(string(p))
}

// UnmarshalJSON decodes a JSON string and validates it.
func (p *Passcode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Passcode", Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes a valid passcode as a YAML string.
func (p Passcode) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return string(p), nil
}

// UnmarshalYAML decodes a YAML scalar and validates it. Unquoted scalars with
// leading zeros ("0042") keep their zeros because the node's text is used.
func (p *Passcode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &errors.UnmarshalError{Type: "Passcode", Reason: "expected a scalar"}
	}
	parsed, err := Parse(node.Value)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var _ model.Model = (*Passcode)(nil)
