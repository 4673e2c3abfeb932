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

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Failure identifies why a completed passcode was rejected.
//
// The set is closed: each kind corresponds to exactly one validation rule,
// and at most one Failure is reported per completed entry (the first rule to
// fail in precedence order). The zero value, FailureNone, means "no failure"
// and is not itself a valid Failure.
type Failure int

const (
	// FailureNone is the zero value: nothing was rejected.
	FailureNone Failure = iota

	// FailureNotEnoughUniqueDigits is reported when the passcode contains
	// fewer than three distinct digits.
	FailureNotEnoughUniqueDigits

	// FailureIsWrappingSequence is reported when the passcode is an
	// ascending or descending run that wraps modulo 10, such as "8901" or
	// "1098".
	FailureIsWrappingSequence
)

// String constants for Failure values.
const (
	FailureNoneStr                  = "none"
	FailureNotEnoughUniqueDigitsStr = "not-enough-unique-digits"
	FailureIsWrappingSequenceStr    = "is-wrapping-sequence"
)

// ParseFailure converts a name into a Failure. "none" is rejected because
// FailureNone is not a failure kind.
func ParseFailure(s string) (Failure, error) {
	switch s {
	case FailureNotEnoughUniqueDigitsStr, "NotEnoughUniqueDigits", "not_enough_unique_digits":
		return FailureNotEnoughUniqueDigits, nil
	case FailureIsWrappingSequenceStr, "IsWrappingSequence", "is_wrapping_sequence":
		return FailureIsWrappingSequence, nil
	default:
		return FailureNone, &errors.ParseError{Type: "Failure", Value: s}
	}
}

// String returns the canonical name. FailureNone renders as "none", any
// other undefined value as "unknown".
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return FailureNoneStr
	case FailureNotEnoughUniqueDigits:
		return FailureNotEnoughUniqueDigitsStr
	case FailureIsWrappingSequence:
		return FailureIsWrappingSequenceStr
	default:
		return "unknown"
	}
}

// Description returns a sentence suitable for showing to the person entering
// the passcode.
func (f Failure) Description() string {
	switch f {
	case FailureNotEnoughUniqueDigits:
		return "Passcode does not contain three unique digits."
	case FailureIsWrappingSequence:
		return "Passcode contains wrapping sequence."
	default:
		return ""
	}
}

// Valid reports whether f is one of the failure kinds. FailureNone is not.
func (f Failure) Valid() bool {
	return f == FailureNotEnoughUniqueDigits || f == FailureIsWrappingSequence
}

// TypeName returns "Failure".
func (f Failure) TypeName() string {
	return "Failure"
}

// Redacted returns the same representation as String.
func (f Failure) Redacted() string {
	return f.String()
}

// IsZero reports whether f is FailureNone.
func (f Failure) IsZero() bool {
	return f == FailureNone
}

// Equal reports whether other is a Failure or *Failure with the same value.
func (f Failure) Equal(other any) bool {
	switch v := other.(type) {
	case Failure:
		return f == v
	case *Failure:
		if v == nil {
			return false
		}
		return f == *v
	default:
		return false
	}
}

// Validate returns a *ValidationError unless f is a failure kind.
func (f Failure) Validate() error {
	if !f.Valid() {
		return &errors.ValidationError{
			Type:   "Failure",
			Reason: "invalid Failure value",
			Value:  int(f),
		}
	}
	return nil
}

// MarshalJSON encodes a valid Failure as its name.
func (f Failure) MarshalJSON() ([]byte, error) {
	if !f.Valid() {
		return nil, &errors.MarshalError{Type: "Failure", Value: int(f)}
	}
	return []byte(`"` + f.String() + `"`), nil
}

// UnmarshalJSON accepts the name or the numeric constant.
func (f *Failure) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Failure", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &errors.UnmarshalError{Type: "Failure", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseFailure(s)
		if err != nil {
			return err
		}
		*f = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Failure", Data: data, Reason: err.Error()}
	}
	if !Failure(i).Valid() {
		return &errors.UnmarshalError{Type: "Failure", Data: data, Reason: "invalid numeric value"}
	}
	*f = Failure(i)
	return nil
}

// MarshalYAML encodes a valid Failure as its name.
func (f Failure) MarshalYAML() (any, error) {
	if !f.Valid() {
		return nil, &errors.MarshalError{Type: "Failure", Value: int(f)}
	}
	return f.String(), nil
}

// UnmarshalYAML accepts a Failure name.
func (f *Failure) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Failure", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseFailure(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Failure) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, &errors.MarshalError{Type: "Failure", Value: int(f)}
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseFailure.
func (f *Failure) UnmarshalText(text []byte) error {
	parsed, err := ParseFailure(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

var _ model.Model = (*Failure)(nil)
