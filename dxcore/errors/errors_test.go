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

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestParseError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{"Rule type", &ParseError{Type: "Rule", Value: "no-palindromes"}, "dxpass: invalid Rule value: no-palindromes"},
		{"Digit type", &ParseError{Type: "Digit", Value: "x"}, "dxpass: invalid Digit value: x"},
		{"empty value", &ParseError{Type: "Status", Value: ""}, "dxpass: invalid Status value: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ParseError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarshalError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *MarshalError
		want string
	}{
		{"positive value", &MarshalError{Type: "Failure", Value: 99}, "dxpass: cannot marshal invalid Failure value: 99"},
		{"negative value", &MarshalError{Type: "Status", Value: -1}, "dxpass: cannot marshal invalid Status value: -1"},
		{"value 42 should be decimal not unicode", &MarshalError{Type: "Rule", Value: 42}, "dxpass: cannot marshal invalid Rule value: 42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("MarshalError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnmarshalError_Error(t *testing.T) {
	err := &UnmarshalError{Type: "Policy", Data: []byte(`{broken`), Reason: "unexpected end of JSON input"}
	want := "dxpass: cannot unmarshal Policy: unexpected end of JSON input"
	if got := err.Error(); got != want {
		t.Errorf("UnmarshalError.Error() = %q, want %q", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			"with field",
			&ValidationError{Type: "Config", Field: "Digits", Reason: "must be positive", Value: -1},
			"dxpass: invalid Config.Digits: must be positive",
		},
		{
			"without field",
			&ValidationError{Type: "Rule", Reason: "invalid Rule value"},
			"dxpass: invalid Rule: invalid Rule value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrors_As(t *testing.T) {
	wrapped := fmt.Errorf("loading policy: %w", &ValidationError{Type: "Policy", Field: "Digits", Reason: "out of range"})

	var ve *ValidationError
	if !stderrors.As(wrapped, &ve) {
		t.Fatalf("errors.As() did not find *ValidationError in %v", wrapped)
	}
	if ve.Field != "Digits" {
		t.Errorf("Field = %q, want Digits", ve.Field)
	}
}

func TestErrors_Implements_Error_Interface(t *testing.T) {
	var _ error = (*ParseError)(nil)
	var _ error = (*MarshalError)(nil)
	var _ error = (*UnmarshalError)(nil)
	var _ error = (*ValidationError)(nil)
}
