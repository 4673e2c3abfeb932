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

// Package passcode defines the value types of numeric passcode entry: the
// Digit a keypad button produces, the Status of an entry, the Failure kind
// reported when a completed passcode is rejected, and the Passcode value
// itself.
//
// All types implement model.Model. Status and Failure are enum-like and
// serialize as lowercase kebab-case names; Digit serializes as a number;
// Passcode serializes as its digit string but redacts every digit in
// Redacted.
package passcode

import (
	"encoding/json"
	"strconv"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Digit is a single keypad digit in the range [0, 9].
//
// The zero value is the digit 0 and is valid. Values outside the range can
// only be produced by numeric casts and are rejected by Validate and by the
// keypad.
type Digit int

// MinDigit and MaxDigit bound the valid Digit range.
const (
	MinDigit Digit = 0
	MaxDigit Digit = 9
)

// ParseDigit converts a one-character string "0".."9" into a Digit. Any other
// input returns a *ParseError.
func ParseDigit(s string) (Digit, error) {
	if len(s) != 1 || s[0] < '0' || s[0] > '9' {
		return MinDigit, &errors.ParseError{Type: "Digit", Value: s}
	}
	return Digit(s[0] - '0'), nil
}

// DigitFromRune converts '0'..'9' into a Digit. The boolean is false for any
// other rune.
func DigitFromRune(r rune) (Digit, bool) {
	if r < '0' || r > '9' {
		return MinDigit, false
	}
	return Digit(r - '0'), true
}

// Valid reports whether d is within [0, 9].
func (d Digit) Valid() bool {
	return d >= MinDigit && d <= MaxDigit
}

// Rune returns the character rendering of d ('0'..'9'), or '?' when d is not
// valid.
func (d Digit) Rune() rune {
	if !d.Valid() {
		return '?'
	}
	return rune('0' + d)
}

// String returns the single-character rendering of d, or "unknown" when d is
// not valid.
func (d Digit) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return string(d.Rune())
}

// TypeName returns "Digit".
func (d Digit) TypeName() string {
	return "Digit"
}

// Redacted masks the digit. A lone Digit is part of a passcode and is treated
// with the same care.
func (d Digit) Redacted() string {
	return "*"
}

// IsZero reports whether d is the digit 0.
func (d Digit) IsZero() bool {
	return d == MinDigit
}

// Equal reports whether other is a Digit or *Digit with the same value.
func (d Digit) Equal(other any) bool {
	switch v := other.(type) {
	case Digit:
		return d == v
	case *Digit:
		if v == nil {
			return false
		}
		return d == *v
	default:
		return false
	}
}

// Validate returns a *ValidationError when d is outside [0, 9].
func (d Digit) Validate() error {
	if !d.Valid() {
		return &errors.ValidationError{
			Type:   "Digit",
			Reason: "must be within [0, 9]",
			Value:  int(d),
		}
	}
	return nil
}

// MarshalJSON encodes a valid Digit as a JSON number.
func (d Digit) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Digit", Value: int(d)}
	}
	return []byte(strconv.Itoa(int(d))), nil
}

// UnmarshalJSON accepts a JSON number (7) or a one-character string ("7").
func (d *Digit) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Digit", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &errors.UnmarshalError{Type: "Digit", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseDigit(s)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Digit", Data: data, Reason: err.Error()}
	}
	if !Digit(i).Valid() {
		return &errors.UnmarshalError{Type: "Digit", Data: data, Reason: "out of range"}
	}
	*d = Digit(i)
	return nil
}

// MarshalYAML encodes a valid Digit as a YAML integer.
func (d Digit) MarshalYAML() (any, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Digit", Value: int(d)}
	}
	return int(d), nil
}

// UnmarshalYAML accepts a YAML scalar 0..9.
func (d *Digit) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Digit", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseDigit(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Digit) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, &errors.MarshalError{Type: "Digit", Value: int(d)}
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseDigit.
func (d *Digit) UnmarshalText(text []byte) error {
	parsed, err := ParseDigit(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ model.Model = (*Digit)(nil)
