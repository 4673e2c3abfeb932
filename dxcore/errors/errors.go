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

// Package errors provides the error value carriers shared by the dxpass
// packages.
//
// Enum-like types (Digit, Status, Failure, Rule), policy documents and the
// keypad constructor all report problems through the same four types so that
// callers can recognise them with errors.As regardless of where they were
// produced:
//
//   - ParseError: text could not be mapped to a known constant.
//   - MarshalError: a value outside the known constants was about to be
//     encoded.
//   - UnmarshalError: JSON or YAML input could not be decoded.
//   - ValidationError: a value or configuration violates an invariant.
//
// Messages are stable and prefixed with "dxpass:". Passcode validation
// failures (not enough unique digits, wrapping sequence) are deliberately not
// errors; they are reported as passcode.Failure values.
//
// Packages MAY alias these types locally:
//
//	type ParseError = errors.ParseError
package errors

import "strconv"

// ParseError is returned when text cannot be interpreted as a value of an
// enum-like type.
//
// Type names the logical type (for example, "Rule" or "Digit") and Value holds
// the exact input that was rejected.
//
//	func ParseStatus(s string) (Status, error) {
//	    switch s {
//	    case "valid":
//	        return StatusValid, nil
//	    default:
//	        return StatusUnknown, &errors.ParseError{Type: "Status", Value: s}
//	    }
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed.
	Type string

	// Value is the rejected textual representation.
	Value string
}

// Error implements the error interface for ParseError.
//
// The format is:
//
//	"dxpass: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxpass: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when a value that does not correspond to a known
// constant is about to be serialized.
//
// In practice a MarshalError points at a programming error, such as a numeric
// cast that was never validated.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The format is:
//
//	"dxpass: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxpass: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when JSON or YAML input cannot be decoded into a
// typed value.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal. It is not part of the
	// formatted message.
	Data []byte

	// Reason is a short description of the failure, without the type name.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The format is:
//
//	"dxpass: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxpass: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when a value or a configuration violates one of
// its invariants.
//
//	func (c Config) Validate() error {
//	    if c.OnComplete == nil {
//	        return &errors.ValidationError{
//	            Type:   "Config",
//	            Field:  "OnComplete",
//	            Reason: "must not be nil",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field names the offending field. Empty when the error applies to the
	// whole value.
	Field string

	// Reason explains why validation failed.
	Reason string

	// Value optionally carries the rejected value. It MUST NOT hold a
	// passcode.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The format is:
//
//	"dxpass: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxpass: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxpass: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxpass: invalid " + e.Type + ": " + e.Reason
}
