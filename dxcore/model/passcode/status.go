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

// Status is the validity state of a passcode entry.
//
// An entry starts in StatusUnknown and only moves to StatusValid or
// StatusInvalid once the configured number of digits has been entered and the
// active rules have been evaluated. Clearing the entry returns it to
// StatusUnknown. The presentation layer maps Status to the dot colour.
type Status int

const (
	// StatusUnknown means no verdict has been reached: the entry is
	// incomplete, was reset, or completed without any active rule.
	StatusUnknown Status = iota

	// StatusValid means the completed passcode passed every active rule.
	StatusValid

	// StatusInvalid means one of the active rules rejected the completed
	// passcode. The next digit press clears the entry.
	StatusInvalid
)

// String constants for Status values. These names are stable and MAY appear
// in configuration, CLI output and JSON/YAML documents.
const (
	StatusUnknownStr = "unknown"
	StatusValidStr   = "valid"
	StatusInvalidStr = "invalid"
)

// ParseStatus converts a name into a Status. Lowercase, Title and UPPER case
// variants are accepted; anything else returns a *ParseError.
func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusUnknownStr, "Unknown", "UNKNOWN":
		return StatusUnknown, nil
	case StatusValidStr, "Valid", "VALID":
		return StatusValid, nil
	case StatusInvalidStr, "Invalid", "INVALID":
		return StatusInvalid, nil
	default:
		return StatusUnknown, &errors.ParseError{Type: "Status", Value: s}
	}
}

// String returns the canonical lowercase name, or "unknown" for values that
// are not defined constants.
func (s Status) String() string {
	switch s {
	case StatusValid:
		return StatusValidStr
	case StatusInvalid:
		return StatusInvalidStr
	default:
		return StatusUnknownStr
	}
}

// Valid reports whether s is one of the defined constants.
func (s Status) Valid() bool {
	return s == StatusUnknown || s == StatusValid || s == StatusInvalid
}

// Decided reports whether s is StatusValid or StatusInvalid.
func (s Status) Decided() bool {
	return s == StatusValid || s == StatusInvalid
}

// TypeName returns "Status".
func (s Status) TypeName() string {
	return "Status"
}

// Redacted returns the same representation as String.
func (s Status) Redacted() string {
	return s.String()
}

// IsZero reports whether s is StatusUnknown.
func (s Status) IsZero() bool {
	return s == StatusUnknown
}

// Equal reports whether other is a Status or *Status with the same value.
func (s Status) Equal(other any) bool {
	switch v := other.(type) {
	case Status:
		return s == v
	case *Status:
		if v == nil {
			return false
		}
		return s == *v
	default:
		return false
	}
}

// Validate returns a *ValidationError when s is not a defined constant.
func (s Status) Validate() error {
	if !s.Valid() {
		return &errors.ValidationError{
			Type:   "Status",
			Reason: "invalid Status value",
			Value:  int(s),
		}
	}
	return nil
}

// MarshalJSON encodes a valid Status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Status", Value: int(s)}
	}
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON accepts the name ("valid") or the numeric constant (1).
func (s *Status) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Status", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Status", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseStatus(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Status", Data: data, Reason: err.Error()}
	}
	if !Status(i).Valid() {
		return &errors.UnmarshalError{Type: "Status", Data: data, Reason: "invalid numeric value"}
	}
	*s = Status(i)
	return nil
}

// MarshalYAML encodes a valid Status as its name.
func (s Status) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Status", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML accepts a Status name.
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Status", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Status", Value: int(s)}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseStatus.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

var _ model.Model = (*Status)(nil)
